package enums

import "fmt"

// PreferenceKind selects which field-preference document is addressed.
type PreferenceKind string

const (
	PreferenceKindStock PreferenceKind = "stock"
	PreferenceKindOrder PreferenceKind = "order"
)

var validPreferenceKinds = []PreferenceKind{
	PreferenceKindStock,
	PreferenceKindOrder,
}

// String implements fmt.Stringer.
func (k PreferenceKind) String() string {
	return string(k)
}

// IsValid reports whether the kind is recognized.
func (k PreferenceKind) IsValid() bool {
	for _, candidate := range validPreferenceKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParsePreferenceKind converts a raw string into a PreferenceKind.
func ParsePreferenceKind(value string) (PreferenceKind, error) {
	for _, candidate := range validPreferenceKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid preference kind %q", value)
}
