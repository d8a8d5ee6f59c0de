package enums

import "fmt"

// BuiltinStockField identifies a compiled-in stock item form field.
type BuiltinStockField string

const (
	BuiltinStockFieldName     BuiltinStockField = "name"
	BuiltinStockFieldQuantity BuiltinStockField = "quantity"
	BuiltinStockFieldPrice    BuiltinStockField = "price"
	BuiltinStockFieldCost     BuiltinStockField = "cost"
	BuiltinStockFieldCategory BuiltinStockField = "category"
	BuiltinStockFieldNotes    BuiltinStockField = "notes"
)

var validBuiltinStockFields = []BuiltinStockField{
	BuiltinStockFieldName,
	BuiltinStockFieldQuantity,
	BuiltinStockFieldPrice,
	BuiltinStockFieldCost,
	BuiltinStockFieldCategory,
	BuiltinStockFieldNotes,
}

var builtinStockFieldMeta = map[BuiltinStockField]builtinFieldMeta{
	BuiltinStockFieldName:     {Label: "Name", Required: true},
	BuiltinStockFieldQuantity: {Label: "Quantity", Required: true},
	BuiltinStockFieldPrice:    {Label: "Price", Required: true},
	BuiltinStockFieldCost:     {Label: "Cost", Required: false},
	BuiltinStockFieldCategory: {Label: "Category", Required: false},
	BuiltinStockFieldNotes:    {Label: "Notes", Required: false},
}

// String implements fmt.Stringer.
func (f BuiltinStockField) String() string {
	return string(f)
}

// IsValid reports whether the tag is a known builtin stock field.
func (f BuiltinStockField) IsValid() bool {
	_, ok := builtinStockFieldMeta[f]
	return ok
}

// Label returns the compiled-in display label.
func (f BuiltinStockField) Label() string {
	return builtinStockFieldMeta[f].Label
}

// Required reports whether the field must always stay visible.
func (f BuiltinStockField) Required() bool {
	return builtinStockFieldMeta[f].Required
}

// ParseBuiltinStockField converts raw input into a BuiltinStockField.
func ParseBuiltinStockField(value string) (BuiltinStockField, error) {
	for _, candidate := range validBuiltinStockFields {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid builtin stock field %q", value)
}

// BuiltinStockFields returns the fixed initial ordering of builtin fields.
func BuiltinStockFields() []BuiltinStockField {
	out := make([]BuiltinStockField, len(validBuiltinStockFields))
	copy(out, validBuiltinStockFields)
	return out
}
