package types

// AttributeMap holds the open-ended string-keyed attributes users can attach
// to stock items and orders. Stored as jsonb via the gorm json serializer.
type AttributeMap map[string]string

// Clone returns a shallow copy so callers can mutate without aliasing.
func (m AttributeMap) Clone() AttributeMap {
	if m == nil {
		return nil
	}
	out := make(AttributeMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
