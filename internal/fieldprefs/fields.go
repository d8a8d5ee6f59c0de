package fieldprefs

import (
	"regexp"
	"strings"

	"github.com/stocknote/stocknote-backend/pkg/enums"
)

// CustomField is a user-authored form field descriptor.
type CustomField struct {
	Name        string          `json:"name"`
	Placeholder string          `json:"placeholder,omitempty"`
	Type        enums.FieldType `json:"type"`
	Required    bool            `json:"required"`
}

// FieldItem is one entry in a preference list: either a builtin tag or a
// custom field, each with independent visibility and sort order.
type FieldItem struct {
	Builtin   string       `json:"builtin,omitempty"`
	Custom    *CustomField `json:"custom,omitempty"`
	Visible   bool         `json:"visible"`
	SortOrder int          `json:"sortOrder"`
}

const customIDPrefix = "custom_"

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// ID returns the stable identity of the descriptor. Builtin fields are keyed
// by their enumeration tag, custom fields by a name-derived slug.
func (f FieldItem) ID() string {
	if f.Builtin != "" {
		return f.Builtin
	}
	if f.Custom != nil {
		return customIDPrefix + slugify(f.Custom.Name)
	}
	return ""
}

// IsBuiltin reports whether the descriptor is a compiled-in field.
func (f FieldItem) IsBuiltin() bool {
	return f.Builtin != ""
}

// Label returns the display label for the descriptor under the given kind.
func (f FieldItem) Label(kind enums.PreferenceKind) string {
	if f.Custom != nil {
		return f.Custom.Name
	}
	switch kind {
	case enums.PreferenceKindStock:
		return enums.BuiltinStockField(f.Builtin).Label()
	case enums.PreferenceKindOrder:
		return enums.BuiltinOrderField(f.Builtin).Label()
	}
	return f.Builtin
}

// requiredBuiltin reports whether the descriptor is a builtin field whose
// visibility may not be turned off.
func (f FieldItem) requiredBuiltin(kind enums.PreferenceKind) bool {
	if f.Builtin == "" {
		return false
	}
	switch kind {
	case enums.PreferenceKindStock:
		return enums.BuiltinStockField(f.Builtin).Required()
	case enums.PreferenceKindOrder:
		return enums.BuiltinOrderField(f.Builtin).Required()
	}
	return false
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugRe.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}
