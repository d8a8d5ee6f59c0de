package fieldprefs

import "github.com/stocknote/stocknote-backend/pkg/enums"

// DefaultPreferences returns the hard-coded initial descriptor list for the
// given kind: every builtin field in its fixed order, all visible.
func DefaultPreferences(kind enums.PreferenceKind) Preferences {
	prefs := Preferences{Kind: kind}
	switch kind {
	case enums.PreferenceKindStock:
		for i, tag := range enums.BuiltinStockFields() {
			prefs.Fields = append(prefs.Fields, FieldItem{
				Builtin:   tag.String(),
				Visible:   true,
				SortOrder: i,
			})
		}
	case enums.PreferenceKindOrder:
		for i, tag := range enums.BuiltinOrderFields() {
			prefs.Fields = append(prefs.Fields, FieldItem{
				Builtin:   tag.String(),
				Visible:   true,
				SortOrder: i,
			})
		}
	}
	return prefs
}
