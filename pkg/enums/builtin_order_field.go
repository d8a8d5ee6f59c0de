package enums

import "fmt"

// BuiltinOrderField identifies a compiled-in order form field.
type BuiltinOrderField string

const (
	BuiltinOrderFieldOrderDate      BuiltinOrderField = "orderDate"
	BuiltinOrderFieldOrderReference BuiltinOrderField = "orderReference"
	BuiltinOrderFieldCustomerName   BuiltinOrderField = "customerName"
	BuiltinOrderFieldOrderStatus    BuiltinOrderField = "orderStatus"
	BuiltinOrderFieldItemsSection   BuiltinOrderField = "itemsSection"
	BuiltinOrderFieldPlatform       BuiltinOrderField = "platform"
	BuiltinOrderFieldShipping       BuiltinOrderField = "shipping"
	BuiltinOrderFieldSellingFees    BuiltinOrderField = "sellingFees"
	BuiltinOrderFieldAdditional     BuiltinOrderField = "additionalCosts"
	BuiltinOrderFieldCompletionDate BuiltinOrderField = "orderCompletionDate"
	BuiltinOrderFieldNotes          BuiltinOrderField = "notes"
)

// validBuiltinOrderFields holds the fixed initial display order.
var validBuiltinOrderFields = []BuiltinOrderField{
	BuiltinOrderFieldOrderDate,
	BuiltinOrderFieldOrderReference,
	BuiltinOrderFieldCustomerName,
	BuiltinOrderFieldOrderStatus,
	BuiltinOrderFieldItemsSection,
	BuiltinOrderFieldPlatform,
	BuiltinOrderFieldShipping,
	BuiltinOrderFieldSellingFees,
	BuiltinOrderFieldAdditional,
	BuiltinOrderFieldCompletionDate,
	BuiltinOrderFieldNotes,
}

// builtinOrderFieldMeta carries the compiled-in display metadata.
type builtinFieldMeta struct {
	Label    string
	Required bool
}

var builtinOrderFieldMeta = map[BuiltinOrderField]builtinFieldMeta{
	BuiltinOrderFieldOrderDate:      {Label: "Order Date", Required: true},
	BuiltinOrderFieldOrderReference: {Label: "Order Reference", Required: false},
	BuiltinOrderFieldCustomerName:   {Label: "Customer Name", Required: false},
	BuiltinOrderFieldOrderStatus:    {Label: "Order Status", Required: true},
	BuiltinOrderFieldItemsSection:   {Label: "Items", Required: true},
	BuiltinOrderFieldPlatform:       {Label: "Platform", Required: false},
	BuiltinOrderFieldShipping:       {Label: "Shipping", Required: false},
	BuiltinOrderFieldSellingFees:    {Label: "Selling Fees", Required: false},
	BuiltinOrderFieldAdditional:     {Label: "Additional Costs", Required: false},
	BuiltinOrderFieldCompletionDate: {Label: "Completion Date", Required: false},
	BuiltinOrderFieldNotes:          {Label: "Notes", Required: false},
}

// String implements fmt.Stringer.
func (f BuiltinOrderField) String() string {
	return string(f)
}

// IsValid reports whether the tag is a known builtin order field.
func (f BuiltinOrderField) IsValid() bool {
	_, ok := builtinOrderFieldMeta[f]
	return ok
}

// Label returns the compiled-in display label.
func (f BuiltinOrderField) Label() string {
	return builtinOrderFieldMeta[f].Label
}

// Required reports whether the field must always stay visible.
func (f BuiltinOrderField) Required() bool {
	return builtinOrderFieldMeta[f].Required
}

// ParseBuiltinOrderField converts raw input into a BuiltinOrderField.
func ParseBuiltinOrderField(value string) (BuiltinOrderField, error) {
	for _, candidate := range validBuiltinOrderFields {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid builtin order field %q", value)
}

// BuiltinOrderFields returns the fixed initial ordering of builtin fields.
func BuiltinOrderFields() []BuiltinOrderField {
	out := make([]BuiltinOrderField, len(validBuiltinOrderFields))
	copy(out, validBuiltinOrderFields)
	return out
}
