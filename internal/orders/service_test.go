package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	"github.com/stocknote/stocknote-backend/pkg/enums"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
	"github.com/stocknote/stocknote-backend/pkg/pagination"
)

type fakeOrdersRepo struct {
	orders map[uuid.UUID]*models.Order
	items  map[uuid.UUID][]models.OrderItem
	stock  map[uuid.UUID]models.StockItem

	listRows   []models.Order
	listCursor *pagination.Cursor
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{
		orders: map[uuid.UUID]*models.Order{},
		items:  map[uuid.UUID][]models.OrderItem{},
		stock:  map[uuid.UUID]models.StockItem{},
	}
}

func (f *fakeOrdersRepo) WithTx(_ *gorm.DB) Repository { return f }

func (f *fakeOrdersRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrdersRepo) Find(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	copied.Items = append([]models.OrderItem(nil), f.items[id]...)
	for i := range copied.Items {
		if copied.Items[i].StockItemID != nil {
			if stock, ok := f.stock[*copied.Items[i].StockItemID]; ok {
				stockCopy := stock
				copied.Items[i].StockItem = &stockCopy
			}
		}
	}
	return &copied, nil
}

func (f *fakeOrdersRepo) List(_ context.Context, _ pagination.Params, _ Filters) ([]models.Order, *pagination.Cursor, error) {
	return f.listRows, f.listCursor, nil
}

func (f *fakeOrdersRepo) ListBetween(_ context.Context, _, _ time.Time) ([]models.Order, error) {
	return f.listRows, nil
}

func (f *fakeOrdersRepo) Save(_ context.Context, order *models.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrdersRepo) ReplaceItems(_ context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	f.items[orderID] = items
	return nil
}

func (f *fakeOrdersRepo) UpdateReminderNotificationID(_ context.Context, orderID uuid.UUID, notificationID *string) error {
	if order, ok := f.orders[orderID]; ok {
		order.ReminderNotificationID = notificationID
	}
	return nil
}

func (f *fakeOrdersRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.orders, id)
	delete(f.items, id)
	return nil
}

func (f *fakeOrdersRepo) FindStockItems(_ context.Context, ids []uuid.UUID) ([]models.StockItem, error) {
	var found []models.StockItem
	for _, id := range ids {
		if item, ok := f.stock[id]; ok {
			found = append(found, item)
		}
	}
	return found, nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeScheduler struct {
	scheduled []ReminderRequest
	canceled  []string
	nextID    string
}

func (f *fakeScheduler) Schedule(_ context.Context, req ReminderRequest) (string, error) {
	f.scheduled = append(f.scheduled, req)
	if req.NotificationID != "" {
		return req.NotificationID, nil
	}
	return f.nextID, nil
}

func (f *fakeScheduler) Cancel(_ context.Context, notificationID string) error {
	f.canceled = append(f.canceled, notificationID)
	return nil
}

type fakeDemo struct {
	enabled bool
	orders  []models.Order
}

func (f *fakeDemo) Enabled(_ context.Context) (bool, error) { return f.enabled, nil }

func (f *fakeDemo) Orders(_ context.Context) ([]models.Order, error) { return f.orders, nil }

func newOrderService(t *testing.T, repo Repository, scheduler ReminderScheduler, demo DemoProvider) Service {
	t.Helper()
	svc, err := NewService(repo, fakeTxRunner{}, scheduler, demo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedStock(t *testing.T, repo *fakeOrdersRepo, price, cost string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	repo.stock[id] = models.StockItem{ID: id, Name: "Widget", Quantity: 10, Price: dec(t, price), Cost: dec(t, cost)}
	return id
}

func TestCreateComputesTotals(t *testing.T) {
	repo := newFakeOrdersRepo()
	scheduler := &fakeScheduler{}
	svc := newOrderService(t, repo, scheduler, &fakeDemo{})

	stockID := seedStock(t, repo, "10.00", "4.00")

	detail, err := svc.Create(context.Background(), Input{
		ShippingCost:    dec(t, "2.50"),
		AdditionalCosts: dec(t, "1.00"),
		Items:           []ItemInput{{StockItemID: stockID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if got := detail.Totals.TotalValue.String(); got != "33.5" {
		t.Fatalf("total value = %s", got)
	}
	if got := detail.Totals.Profit.String(); got != "14.5" {
		t.Fatalf("profit = %s", got)
	}
	if detail.Order.Status != enums.OrderStatusReceived {
		t.Fatalf("default status = %s", detail.Order.Status)
	}
	if len(scheduler.scheduled) != 0 {
		t.Fatal("reminder scheduled without being enabled")
	}
}

func TestCreateAcceptsNegativeCosts(t *testing.T) {
	repo := newFakeOrdersRepo()
	svc := newOrderService(t, repo, &fakeScheduler{}, &fakeDemo{})

	stockID := seedStock(t, repo, "10.00", "4.00")

	// A refunded fee or shipping credit is recorded as a negative amount
	// and feeds the totals unchanged.
	detail, err := svc.Create(context.Background(), Input{
		ShippingCost:    dec(t, "-2.50"),
		SellingFees:     dec(t, "-0.99"),
		AdditionalCosts: dec(t, "1.00"),
		Items:           []ItemInput{{StockItemID: stockID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create with negative costs: %v", err)
	}

	if got := detail.Order.ShippingCost.String(); got != "-2.5" {
		t.Fatalf("shipping cost = %s", got)
	}
	if got := detail.Order.SellingFees.String(); got != "-0.99" {
		t.Fatalf("selling fees = %s", got)
	}
	// 10.00 + (-2.50) + 1.00 = 8.50
	if got := detail.Totals.TotalValue.String(); got != "8.5" {
		t.Fatalf("total value = %s", got)
	}
	// 4.00 + (-2.50) + 1.00 = 2.50; profit = 10.00 - 2.50 = 7.50
	if got := detail.Totals.Profit.String(); got != "7.5" {
		t.Fatalf("profit = %s", got)
	}
}

func TestCreateRejectsUnknownStockItem(t *testing.T) {
	repo := newFakeOrdersRepo()
	svc := newOrderService(t, repo, &fakeScheduler{}, &fakeDemo{})

	_, err := svc.Create(context.Background(), Input{
		Items: []ItemInput{{StockItemID: uuid.New(), Quantity: 1}},
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	repo := newFakeOrdersRepo()
	svc := newOrderService(t, repo, &fakeScheduler{}, &fakeDemo{})
	stockID := seedStock(t, repo, "1.00", "0.50")

	_, err := svc.Create(context.Background(), Input{
		Items: []ItemInput{{StockItemID: stockID, Quantity: 0}},
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateSchedulesReminderBeforeCompletion(t *testing.T) {
	repo := newFakeOrdersRepo()
	scheduler := &fakeScheduler{nextID: "order_reminder_test"}
	svc := newOrderService(t, repo, scheduler, &fakeDemo{})

	completion := time.Date(2026, 9, 10, 17, 0, 0, 0, time.UTC)
	detail, err := svc.Create(context.Background(), Input{
		CompletionDate:      &completion,
		ReminderEnabled:     true,
		ReminderLeadMinutes: 60,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(scheduler.scheduled) != 1 {
		t.Fatalf("expected one schedule call, got %d", len(scheduler.scheduled))
	}
	wantDue := completion.Add(-time.Hour)
	if !scheduler.scheduled[0].Due.Equal(wantDue) {
		t.Fatalf("due = %s, want %s", scheduler.scheduled[0].Due, wantDue)
	}
	if detail.Order.ReminderNotificationID == nil || *detail.Order.ReminderNotificationID != "order_reminder_test" {
		t.Fatalf("notification id not stored: %v", detail.Order.ReminderNotificationID)
	}
}

func TestCreateReminderWithoutCompletionCountsForward(t *testing.T) {
	repo := newFakeOrdersRepo()
	scheduler := &fakeScheduler{nextID: "order_reminder_fwd"}
	svc := newOrderService(t, repo, scheduler, &fakeDemo{})

	received := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), Input{
		ReceivedAt:          &received,
		ReminderEnabled:     true,
		ReminderLeadMinutes: 30,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	wantDue := received.Add(30 * time.Minute)
	if !scheduler.scheduled[0].Due.Equal(wantDue) {
		t.Fatalf("due = %s, want %s", scheduler.scheduled[0].Due, wantDue)
	}
}

func TestUpdateDisablingReminderCancels(t *testing.T) {
	repo := newFakeOrdersRepo()
	scheduler := &fakeScheduler{nextID: "order_reminder_x"}
	svc := newOrderService(t, repo, scheduler, &fakeDemo{})

	completion := time.Now().Add(48 * time.Hour).UTC()
	created, err := svc.Create(context.Background(), Input{
		CompletionDate:      &completion,
		ReminderEnabled:     true,
		ReminderLeadMinutes: 15,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.Order.ID, Input{
		CompletionDate:  &completion,
		ReminderEnabled: false,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(scheduler.canceled) != 1 || scheduler.canceled[0] != "order_reminder_x" {
		t.Fatalf("expected cancel of order_reminder_x, got %v", scheduler.canceled)
	}
	if updated.Order.ReminderNotificationID != nil {
		t.Fatal("notification id should be cleared")
	}
}

func TestUpdateReplacesItemListWholesale(t *testing.T) {
	repo := newFakeOrdersRepo()
	svc := newOrderService(t, repo, &fakeScheduler{}, &fakeDemo{})

	first := seedStock(t, repo, "5.00", "2.00")
	second := seedStock(t, repo, "7.00", "3.00")

	created, err := svc.Create(context.Background(), Input{
		Items: []ItemInput{{StockItemID: first, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.Order.ID, Input{
		Items: []ItemInput{{StockItemID: second, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(updated.Order.Items) != 1 {
		t.Fatalf("expected 1 line after replace, got %d", len(updated.Order.Items))
	}
	if *updated.Order.Items[0].StockItemID != second {
		t.Fatal("old line survived the replace")
	}
	if got := updated.Totals.ItemsTotal.String(); got != "7" {
		t.Fatalf("items total = %s", got)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := newOrderService(t, newFakeOrdersRepo(), &fakeScheduler{}, &fakeDemo{})
	_, err := svc.Update(context.Background(), uuid.New(), Input{})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteCancelsReminder(t *testing.T) {
	repo := newFakeOrdersRepo()
	scheduler := &fakeScheduler{nextID: "order_reminder_del"}
	svc := newOrderService(t, repo, scheduler, &fakeDemo{})

	completion := time.Now().Add(24 * time.Hour)
	created, err := svc.Create(context.Background(), Input{
		CompletionDate:  &completion,
		ReminderEnabled: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), created.Order.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(scheduler.canceled) != 1 {
		t.Fatalf("expected reminder cancel, got %v", scheduler.canceled)
	}
	if _, err := svc.Get(context.Background(), created.Order.ID); err == nil {
		t.Fatal("order still readable after delete")
	}
}

func TestDemoModeRejectsWrites(t *testing.T) {
	svc := newOrderService(t, newFakeOrdersRepo(), &fakeScheduler{}, &fakeDemo{enabled: true})

	_, err := svc.Create(context.Background(), Input{})
	assertCode(t, err, pkgerrors.CodeStateConflict)

	_, err = svc.Update(context.Background(), uuid.New(), Input{})
	assertCode(t, err, pkgerrors.CodeStateConflict)

	err = svc.Delete(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestDemoModeServesGeneratedOrders(t *testing.T) {
	shipped := enums.OrderStatusShipped
	demo := &fakeDemo{
		enabled: true,
		orders: []models.Order{
			{ID: uuid.New(), Status: enums.OrderStatusReceived, Platform: enums.PlatformEbay},
			{ID: uuid.New(), Status: enums.OrderStatusShipped, Platform: enums.PlatformEtsy},
		},
	}
	svc := newOrderService(t, newFakeOrdersRepo(), &fakeScheduler{}, demo)

	list, err := svc.List(context.Background(), pagination.Params{}, Filters{Status: &shipped})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Orders) != 1 || list.Orders[0].Status != enums.OrderStatusShipped {
		t.Fatalf("unexpected demo list: %+v", list.Orders)
	}

	detail, err := svc.Get(context.Background(), demo.orders[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Order.ID != demo.orders[0].ID {
		t.Fatal("wrong demo order returned")
	}
}

func TestListEncodesNextCursor(t *testing.T) {
	repo := newFakeOrdersRepo()
	repo.listRows = []models.Order{{ID: uuid.New(), Status: enums.OrderStatusReceived}}
	repo.listCursor = &pagination.Cursor{CreatedAt: time.Now().UTC(), ID: uuid.New()}
	svc := newOrderService(t, repo, &fakeScheduler{}, &fakeDemo{})

	list, err := svc.List(context.Background(), pagination.Params{Limit: 1}, Filters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.NextCursor == "" {
		t.Fatal("expected encoded next cursor")
	}
	if _, err := pagination.ParseCursor(list.NextCursor); err != nil {
		t.Fatalf("cursor round trip: %v", err)
	}
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
