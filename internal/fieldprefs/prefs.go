package fieldprefs

import (
	"sort"

	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
	"github.com/stocknote/stocknote-backend/pkg/enums"
)

// Preferences is an ordered field descriptor list for one preference kind.
// Mutating operations keep sort orders dense (0..n-1).
type Preferences struct {
	Kind   enums.PreferenceKind `json:"kind"`
	Fields []FieldItem          `json:"fieldItems"`
}

// AddCustomField appends a user-defined field, visible, at the end of the
// list. Descriptors with a colliding id are rejected.
func (p *Preferences) AddCustomField(custom CustomField) error {
	if custom.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "custom field name required")
	}
	if !custom.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "custom field type invalid")
	}
	item := FieldItem{
		Custom:    &custom,
		Visible:   true,
		SortOrder: len(p.Fields),
	}
	if p.indexOf(item.ID()) >= 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "field with this name already exists")
	}
	p.Fields = append(p.Fields, item)
	return nil
}

// RemoveField removes the descriptor with the given id and closes the sort
// order gap left behind.
func (p *Preferences) RemoveField(id string) error {
	idx := p.indexOf(id)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "field not found")
	}
	p.Fields = append(p.Fields[:idx], p.Fields[idx+1:]...)
	p.renumber()
	return nil
}

// MoveField reorders the descriptor at position from (in sort order) to
// position to, then renumbers the whole list.
func (p *Preferences) MoveField(from, to int) error {
	ordered := p.AllFieldsInOrder()
	if from < 0 || from >= len(ordered) || to < 0 || to >= len(ordered) {
		return pkgerrors.New(pkgerrors.CodeValidation, "move positions out of range")
	}
	item := ordered[from]
	ordered = append(ordered[:from], ordered[from+1:]...)
	rest := make([]FieldItem, 0, len(ordered)+1)
	rest = append(rest, ordered[:to]...)
	rest = append(rest, item)
	rest = append(rest, ordered[to:]...)
	p.Fields = rest
	p.renumber()
	return nil
}

// SetVisibility flips the visibility flag for the descriptor with the given
// id. Required builtin fields cannot be hidden.
func (p *Preferences) SetVisibility(id string, visible bool) error {
	idx := p.indexOf(id)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "field not found")
	}
	if !visible && p.Fields[idx].requiredBuiltin(p.Kind) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "required field cannot be hidden")
	}
	p.Fields[idx].Visible = visible
	return nil
}

// VisibleFields returns visible descriptors ascending by sort order.
// Required builtin fields are always included, whatever their stored flag.
func (p Preferences) VisibleFields() []FieldItem {
	out := make([]FieldItem, 0, len(p.Fields))
	for _, f := range p.Fields {
		if f.Visible || f.requiredBuiltin(p.Kind) {
			out = append(out, f)
		}
	}
	sortBySortOrder(out)
	return out
}

// AllFieldsInOrder returns every descriptor ascending by sort order.
func (p Preferences) AllFieldsInOrder() []FieldItem {
	out := make([]FieldItem, len(p.Fields))
	copy(out, p.Fields)
	sortBySortOrder(out)
	return out
}

func (p *Preferences) indexOf(id string) int {
	for i, f := range p.Fields {
		if f.ID() == id {
			return i
		}
	}
	return -1
}

// renumber reassigns sortOrder = list index for the current slice order.
func (p *Preferences) renumber() {
	for i := range p.Fields {
		p.Fields[i].SortOrder = i
	}
}

func sortBySortOrder(items []FieldItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SortOrder < items[j].SortOrder
	})
}
