package fieldprefs

import (
	"reflect"
	"testing"

	"github.com/stocknote/stocknote-backend/pkg/enums"
)

func orderDefaults(t *testing.T) Preferences {
	t.Helper()
	return DefaultPreferences(enums.PreferenceKindOrder)
}

func fieldIDs(items []FieldItem) []string {
	ids := make([]string, len(items))
	for i, f := range items {
		ids[i] = f.ID()
	}
	return ids
}

func TestDefaultOrderPreferencesShape(t *testing.T) {
	prefs := orderDefaults(t)

	if len(prefs.Fields) != 11 {
		t.Fatalf("expected 11 builtin descriptors, got %d", len(prefs.Fields))
	}

	want := []string{
		"orderDate", "orderReference", "customerName", "orderStatus",
		"itemsSection", "platform", "shipping", "sellingFees",
		"additionalCosts", "orderCompletionDate", "notes",
	}
	got := fieldIDs(prefs.AllFieldsInOrder())
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected default ordering:\n got %v\nwant %v", got, want)
	}

	for i, f := range prefs.AllFieldsInOrder() {
		if f.SortOrder != i {
			t.Fatalf("field %s has sortOrder %d, want %d", f.ID(), f.SortOrder, i)
		}
		if !f.Visible {
			t.Fatalf("field %s should default to visible", f.ID())
		}
	}
}

func TestAddCustomFieldAppendsVisible(t *testing.T) {
	prefs := orderDefaults(t)
	custom := CustomField{Name: "Tracking Number", Type: enums.FieldTypeText}

	if err := prefs.AddCustomField(custom); err != nil {
		t.Fatalf("add: %v", err)
	}

	last := prefs.AllFieldsInOrder()[len(prefs.Fields)-1]
	if last.ID() != "custom_tracking_number" {
		t.Fatalf("unexpected id %q", last.ID())
	}
	if !last.Visible {
		t.Fatal("new custom field must start visible")
	}
	if last.SortOrder != 11 {
		t.Fatalf("expected sortOrder 11, got %d", last.SortOrder)
	}
}

func TestAddCustomFieldRejectsDuplicateID(t *testing.T) {
	prefs := orderDefaults(t)
	if err := prefs.AddCustomField(CustomField{Name: "Gift Wrap", Type: enums.FieldTypeToggle}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	// Same slug from a differently-cased name.
	if err := prefs.AddCustomField(CustomField{Name: "gift wrap", Type: enums.FieldTypeText}); err == nil {
		t.Fatal("expected duplicate id rejection")
	}
}

func TestAddCustomFieldValidation(t *testing.T) {
	prefs := orderDefaults(t)
	if err := prefs.AddCustomField(CustomField{Type: enums.FieldTypeText}); err == nil {
		t.Fatal("expected missing name rejection")
	}
	if err := prefs.AddCustomField(CustomField{Name: "X", Type: enums.FieldType("blob")}); err == nil {
		t.Fatal("expected invalid type rejection")
	}
}

func TestRemoveFieldRenumbersDensely(t *testing.T) {
	prefs := orderDefaults(t)
	if err := prefs.RemoveField("customerName"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	ordered := prefs.AllFieldsInOrder()
	if len(ordered) != 10 {
		t.Fatalf("expected 10 survivors, got %d", len(ordered))
	}
	for i, f := range ordered {
		if f.SortOrder != i {
			t.Fatalf("gap at index %d: sortOrder %d", i, f.SortOrder)
		}
	}
	// Relative order of survivors preserved.
	want := []string{
		"orderDate", "orderReference", "orderStatus", "itemsSection",
		"platform", "shipping", "sellingFees", "additionalCosts",
		"orderCompletionDate", "notes",
	}
	if got := fieldIDs(ordered); !reflect.DeepEqual(got, want) {
		t.Fatalf("survivor order changed:\n got %v\nwant %v", got, want)
	}
}

func TestRemoveFieldUnknownID(t *testing.T) {
	prefs := orderDefaults(t)
	if err := prefs.RemoveField("custom_missing"); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestMoveFieldReordersAndRenumbers(t *testing.T) {
	prefs := orderDefaults(t)
	if err := prefs.MoveField(0, 3); err != nil {
		t.Fatalf("move: %v", err)
	}

	got := fieldIDs(prefs.AllFieldsInOrder())
	want := []string{
		"orderReference", "customerName", "orderStatus", "orderDate",
		"itemsSection", "platform", "shipping", "sellingFees",
		"additionalCosts", "orderCompletionDate", "notes",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order after move:\n got %v\nwant %v", got, want)
	}
	for i, f := range prefs.AllFieldsInOrder() {
		if f.SortOrder != i {
			t.Fatalf("non-dense sortOrder after move at %d", i)
		}
	}
}

func TestMoveFieldOutOfRange(t *testing.T) {
	prefs := orderDefaults(t)
	if err := prefs.MoveField(-1, 2); err == nil {
		t.Fatal("expected range error")
	}
	if err := prefs.MoveField(0, len(prefs.Fields)); err == nil {
		t.Fatal("expected range error")
	}
}

func TestVisibleFieldsFiltersAndSorts(t *testing.T) {
	prefs := orderDefaults(t)
	if err := prefs.SetVisibility("notes", false); err != nil {
		t.Fatalf("hide notes: %v", err)
	}
	if err := prefs.SetVisibility("platform", false); err != nil {
		t.Fatalf("hide platform: %v", err)
	}

	visible := fieldIDs(prefs.VisibleFields())
	want := []string{
		"orderDate", "orderReference", "customerName", "orderStatus",
		"itemsSection", "shipping", "sellingFees", "additionalCosts",
		"orderCompletionDate",
	}
	if !reflect.DeepEqual(visible, want) {
		t.Fatalf("unexpected visible set:\n got %v\nwant %v", visible, want)
	}
}

func TestRequiredBuiltinAlwaysVisible(t *testing.T) {
	prefs := orderDefaults(t)

	if err := prefs.SetVisibility("orderDate", false); err == nil {
		t.Fatal("expected refusal to hide required builtin")
	}

	// Even with a stale stored flag, VisibleFields keeps required builtins.
	for i := range prefs.Fields {
		if prefs.Fields[i].Builtin == "orderStatus" {
			prefs.Fields[i].Visible = false
		}
	}
	for _, f := range prefs.VisibleFields() {
		if f.ID() == "orderStatus" {
			return
		}
	}
	t.Fatal("required builtin missing from VisibleFields")
}

func TestMoveThenVisibleReflectsNewOrder(t *testing.T) {
	prefs := orderDefaults(t)
	if err := prefs.SetVisibility("notes", false); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if err := prefs.MoveField(6, 0); err != nil { // shipping to front
		t.Fatalf("move: %v", err)
	}

	visible := fieldIDs(prefs.VisibleFields())
	if visible[0] != "shipping" {
		t.Fatalf("expected shipping first, got %v", visible)
	}
	for _, id := range visible {
		if id == "notes" {
			t.Fatal("hidden optional field leaked into visible set")
		}
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	prefs := orderDefaults(t)
	if err := prefs.AddCustomField(CustomField{
		Name:        "Tracking Number",
		Placeholder: "e.g. RM123456789GB",
		Type:        enums.FieldTypeText,
		Required:    true,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := prefs.SetVisibility("notes", false); err != nil {
		t.Fatalf("hide: %v", err)
	}

	payload, err := EncodePayload(prefs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodePayload(enums.PreferenceKindOrder, payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, prefs) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, prefs)
	}
}

func TestStockDefaultsUseStockMetadata(t *testing.T) {
	prefs := DefaultPreferences(enums.PreferenceKindStock)
	if len(prefs.Fields) != 6 {
		t.Fatalf("expected 6 builtin stock descriptors, got %d", len(prefs.Fields))
	}
	if err := prefs.SetVisibility("price", false); err == nil {
		t.Fatal("price is required for stock and cannot be hidden")
	}
	if err := prefs.SetVisibility("notes", false); err != nil {
		t.Fatalf("notes should be hideable: %v", err)
	}
}
