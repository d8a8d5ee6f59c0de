package stock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
	"github.com/stocknote/stocknote-backend/pkg/pagination"
)

type fakeStockRepo struct {
	items map[uuid.UUID]*models.StockItem

	listRows   []models.StockItem
	listCursor *pagination.Cursor
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{items: map[uuid.UUID]*models.StockItem{}}
}

func (f *fakeStockRepo) WithTx(_ *gorm.DB) Repository { return f }

func (f *fakeStockRepo) Create(_ context.Context, item *models.StockItem) (*models.StockItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeStockRepo) Find(_ context.Context, id uuid.UUID) (*models.StockItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeStockRepo) List(_ context.Context, _ pagination.Params, _ Filters) ([]models.StockItem, *pagination.Cursor, error) {
	return f.listRows, f.listCursor, nil
}

func (f *fakeStockRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeStockRepo) Save(_ context.Context, item *models.StockItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeStockRepo) AdjustQuantity(_ context.Context, id uuid.UUID, delta int) (int64, error) {
	item, ok := f.items[id]
	if !ok {
		return 0, nil
	}
	if item.Quantity+delta < 0 {
		return 0, nil
	}
	item.Quantity += delta
	return 1, nil
}

func (f *fakeStockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

type fakeGate struct {
	limit int64
}

func (f fakeGate) CanAddStockItem(_ context.Context, currentCount int64) error {
	if f.limit > 0 && currentCount >= f.limit {
		return pkgerrors.New(pkgerrors.CodeForbidden, "stock item limit reached")
	}
	return nil
}

type fakeStockDemo struct {
	enabled bool
	items   []models.StockItem
}

func (f *fakeStockDemo) Enabled(_ context.Context) (bool, error) { return f.enabled, nil }

func (f *fakeStockDemo) StockItems(_ context.Context) ([]models.StockItem, error) {
	return f.items, nil
}

func newStockService(t *testing.T, repo Repository, gate EntitlementGate, demo DemoProvider) Service {
	t.Helper()
	svc, err := NewService(repo, gate, demo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newFakeStockRepo()
	svc := newStockService(t, repo, fakeGate{}, &fakeStockDemo{})

	item, err := svc.Create(context.Background(), Input{Name: "Blue Beanie", Quantity: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Currency != "USD" {
		t.Fatalf("default currency = %s", item.Currency)
	}
	if item.ID == uuid.Nil {
		t.Fatal("id not assigned")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newStockService(t, newFakeStockRepo(), fakeGate{}, &fakeStockDemo{})

	_, err := svc.Create(context.Background(), Input{})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(context.Background(), Input{Name: "X", Quantity: -1})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(context.Background(), Input{Name: "X", Currency: "DOGE"})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateEnforcesEntitlementLimit(t *testing.T) {
	repo := newFakeStockRepo()
	svc := newStockService(t, repo, fakeGate{limit: 2}, &fakeStockDemo{})

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), Input{Name: "Item"}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	_, err := svc.Create(context.Background(), Input{Name: "One Too Many"})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestAdjustQuantity(t *testing.T) {
	repo := newFakeStockRepo()
	svc := newStockService(t, repo, fakeGate{}, &fakeStockDemo{})

	item, err := svc.Create(context.Background(), Input{Name: "Socks", Quantity: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	adjusted, err := svc.Adjust(context.Background(), item.ID, AdjustInput{Delta: -2})
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if adjusted.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", adjusted.Quantity)
	}
}

func TestAdjustRejectsUnderflow(t *testing.T) {
	repo := newFakeStockRepo()
	svc := newStockService(t, repo, fakeGate{}, &fakeStockDemo{})

	item, err := svc.Create(context.Background(), Input{Name: "Socks", Quantity: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Adjust(context.Background(), item.ID, AdjustInput{Delta: -5})
	assertCode(t, err, pkgerrors.CodeStateConflict)

	reloaded, err := svc.Get(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.Quantity != 1 {
		t.Fatalf("quantity changed on rejected adjust: %d", reloaded.Quantity)
	}
}

func TestAdjustMissingItem(t *testing.T) {
	svc := newStockService(t, newFakeStockRepo(), fakeGate{}, &fakeStockDemo{})
	_, err := svc.Adjust(context.Background(), uuid.New(), AdjustInput{Delta: 1})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestAdjustZeroDelta(t *testing.T) {
	svc := newStockService(t, newFakeStockRepo(), fakeGate{}, &fakeStockDemo{})
	_, err := svc.Adjust(context.Background(), uuid.New(), AdjustInput{Delta: 0})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdatePreservesIdentity(t *testing.T) {
	repo := newFakeStockRepo()
	svc := newStockService(t, repo, fakeGate{}, &fakeStockDemo{})

	item, err := svc.Create(context.Background(), Input{Name: "Old Name", Quantity: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), item.ID, Input{Name: "New Name", Quantity: 7})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != item.ID {
		t.Fatal("id changed on update")
	}
	if updated.Name != "New Name" || updated.Quantity != 7 {
		t.Fatalf("fields not applied: %+v", updated)
	}
}

func TestDemoModeRejectsWrites(t *testing.T) {
	svc := newStockService(t, newFakeStockRepo(), fakeGate{}, &fakeStockDemo{enabled: true})

	_, err := svc.Create(context.Background(), Input{Name: "X"})
	assertCode(t, err, pkgerrors.CodeStateConflict)

	_, err = svc.Adjust(context.Background(), uuid.New(), AdjustInput{Delta: 1})
	assertCode(t, err, pkgerrors.CodeStateConflict)

	err = svc.Delete(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestDemoModeServesGeneratedStock(t *testing.T) {
	categoryID := uuid.New()
	demo := &fakeStockDemo{
		enabled: true,
		items: []models.StockItem{
			{ID: uuid.New(), Name: "Hat", Quantity: 4, CategoryID: &categoryID},
			{ID: uuid.New(), Name: "Scarf", Quantity: 0},
		},
	}
	svc := newStockService(t, newFakeStockRepo(), fakeGate{}, demo)

	list, err := svc.List(context.Background(), pagination.Params{}, Filters{CategoryID: &categoryID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Name != "Hat" {
		t.Fatalf("unexpected demo list: %+v", list.Items)
	}

	inStock := true
	list, err = svc.List(context.Background(), pagination.Params{}, Filters{InStock: &inStock})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Name != "Hat" {
		t.Fatalf("unexpected in-stock filter result: %+v", list.Items)
	}
}

func TestListEncodesNextCursor(t *testing.T) {
	repo := newFakeStockRepo()
	repo.listRows = []models.StockItem{{ID: uuid.New(), Name: "Hat"}}
	repo.listCursor = &pagination.Cursor{CreatedAt: time.Now().UTC(), ID: uuid.New()}
	svc := newStockService(t, repo, fakeGate{}, &fakeStockDemo{})

	list, err := svc.List(context.Background(), pagination.Params{Limit: 1}, Filters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.NextCursor == "" {
		t.Fatal("expected next cursor")
	}
}
