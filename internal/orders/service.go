package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	"github.com/stocknote/stocknote-backend/pkg/enums"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
	"github.com/stocknote/stocknote-backend/pkg/logger"
	"github.com/stocknote/stocknote-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ReminderRequest carries what the scheduler needs to queue one order
// completion reminder. A non-empty NotificationID reschedules in place.
type ReminderRequest struct {
	NotificationID string
	OrderID        uuid.UUID
	Due            time.Time
	Message        string
}

// ReminderScheduler queues and cancels order completion reminders. Schedule
// returns the notification id the reminder was queued under.
type ReminderScheduler interface {
	Schedule(ctx context.Context, req ReminderRequest) (string, error)
	Cancel(ctx context.Context, notificationID string) error
}

// DemoProvider answers whether demo mode is active and serves the generated
// order set while it is.
type DemoProvider interface {
	Enabled(ctx context.Context) (bool, error)
	Orders(ctx context.Context) ([]models.Order, error)
}

// Service defines order CRUD plus the derived listing and detail reads.
type Service interface {
	List(ctx context.Context, params pagination.Params, filters Filters) (*List, error)
	Get(ctx context.Context, orderID uuid.UUID) (*Detail, error)
	Create(ctx context.Context, input Input) (*Detail, error)
	Update(ctx context.Context, orderID uuid.UUID, input Input) (*Detail, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
}

type service struct {
	repo      Repository
	tx        txRunner
	scheduler ReminderScheduler
	demo      DemoProvider
	logg      *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, scheduler ReminderScheduler, demo DemoProvider, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("reminder scheduler required")
	}
	if demo == nil {
		return nil, fmt.Errorf("demo provider required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		scheduler: scheduler,
		demo:      demo,
		logg:      logg,
	}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*List, error) {
	if enabled, err := s.demo.Enabled(ctx); err == nil && enabled {
		return s.listDemo(ctx, filters)
	}

	rows, next, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	list := &List{Orders: make([]Summary, 0, len(rows))}
	for i := range rows {
		list.Orders = append(list.Orders, summarize(&rows[i]))
	}
	if next != nil {
		list.NextCursor = pagination.EncodeCursor(*next)
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*Detail, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	if enabled, err := s.demo.Enabled(ctx); err == nil && enabled {
		return s.getDemo(ctx, orderID)
	}

	order, err := s.repo.Find(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return detail(order), nil
}

func (s *service) Create(ctx context.Context, input Input) (*Detail, error) {
	if err := s.rejectDemoWrite(ctx); err != nil {
		return nil, err
	}

	order, items, err := s.buildOrder(ctx, input)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return repo.ReplaceItems(ctx, order.ID, items)
	})
	if err != nil {
		return nil, err
	}

	s.syncReminder(ctx, order)
	return s.reload(ctx, order.ID)
}

func (s *service) Update(ctx context.Context, orderID uuid.UUID, input Input) (*Detail, error) {
	if err := s.rejectDemoWrite(ctx); err != nil {
		return nil, err
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	existing, err := s.repo.Find(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	order, items, err := s.buildOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	order.ID = existing.ID
	order.ReminderNotificationID = existing.ReminderNotificationID
	order.CreatedAt = existing.CreatedAt

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
		}
		return repo.ReplaceItems(ctx, order.ID, items)
	})
	if err != nil {
		return nil, err
	}

	s.syncReminder(ctx, order)
	return s.reload(ctx, order.ID)
}

func (s *service) Delete(ctx context.Context, orderID uuid.UUID) error {
	if err := s.rejectDemoWrite(ctx); err != nil {
		return err
	}
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.Find(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if order.ReminderNotificationID != nil {
		if err := s.scheduler.Cancel(ctx, *order.ReminderNotificationID); err != nil {
			s.warn(ctx, "cancel reminder on delete", err)
		}
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

// buildOrder validates the input and materializes the order row plus its
// line set. Line stock references must all resolve.
func (s *service) buildOrder(ctx context.Context, input Input) (*models.Order, []models.OrderItem, error) {
	status := input.Status
	if status == "" {
		status = enums.OrderStatusReceived
	}
	if !status.IsValid() {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	platform := input.Platform
	if platform == "" {
		platform = enums.PlatformOther
	}
	if !platform.IsValid() {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid platform")
	}
	// Cost fields are recorded as-is. Negative amounts are legitimate
	// (refunded fees, shipping credits) and flow straight into the
	// calculators.
	if input.ReminderLeadMinutes < 0 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "reminder lead cannot be negative")
	}

	receivedAt := time.Now().UTC()
	if input.ReceivedAt != nil {
		receivedAt = input.ReceivedAt.UTC()
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, nil, err
	}

	order := &models.Order{
		ReceivedAt:          receivedAt,
		Reference:           input.Reference,
		CustomerName:        input.CustomerName,
		Status:              status,
		Platform:            platform,
		ShippingCost:        input.ShippingCost,
		SellingFees:         input.SellingFees,
		TransactionFees:     input.TransactionFees,
		OtherCosts:          input.OtherCosts,
		AdditionalCosts:     input.AdditionalCosts,
		CompletionDate:      input.CompletionDate,
		ReminderEnabled:     input.ReminderEnabled,
		ReminderLeadMinutes: input.ReminderLeadMinutes,
		Notes:               input.Notes,
		Attributes:          input.Attributes.Clone(),
	}
	return order, items, nil
}

func (s *service) buildItems(ctx context.Context, inputs []ItemInput) ([]models.OrderItem, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	for _, line := range inputs {
		if line.StockItemID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order line stock item required")
		}
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order line quantity must be positive")
		}
		ids = append(ids, line.StockItemID)
	}

	found, err := s.repo.FindStockItems(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve stock items")
	}
	known := make(map[uuid.UUID]struct{}, len(found))
	for _, item := range found {
		known[item.ID] = struct{}{}
	}

	items := make([]models.OrderItem, 0, len(inputs))
	for _, line := range inputs {
		if _, ok := known[line.StockItemID]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order line references unknown stock item")
		}
		id := line.StockItemID
		items = append(items, models.OrderItem{
			StockItemID: &id,
			Quantity:    line.Quantity,
		})
	}
	return items, nil
}

// syncReminder reconciles the stored reminder queue entry with the order's
// reminder fields. Failures are logged, never surfaced: schedule drift is
// recoverable, a lost order write is not.
func (s *service) syncReminder(ctx context.Context, order *models.Order) {
	if !order.ReminderEnabled {
		if order.ReminderNotificationID != nil {
			if err := s.scheduler.Cancel(ctx, *order.ReminderNotificationID); err != nil {
				s.warn(ctx, "cancel reminder", err)
				return
			}
			if err := s.repo.UpdateReminderNotificationID(ctx, order.ID, nil); err != nil {
				s.warn(ctx, "clear reminder notification id", err)
			}
			order.ReminderNotificationID = nil
		}
		return
	}

	req := ReminderRequest{
		OrderID: order.ID,
		Due:     reminderDue(order),
		Message: reminderMessage(order),
	}
	if order.ReminderNotificationID != nil {
		req.NotificationID = *order.ReminderNotificationID
	}

	notificationID, err := s.scheduler.Schedule(ctx, req)
	if err != nil {
		s.warn(ctx, "schedule reminder", err)
		return
	}
	if order.ReminderNotificationID == nil || *order.ReminderNotificationID != notificationID {
		if err := s.repo.UpdateReminderNotificationID(ctx, order.ID, &notificationID); err != nil {
			s.warn(ctx, "store reminder notification id", err)
			return
		}
		order.ReminderNotificationID = &notificationID
	}
}

// reminderDue anchors on the completion date when one is set, counting the
// lead backwards. Without one the lead counts forward from receipt.
func reminderDue(order *models.Order) time.Time {
	lead := time.Duration(order.ReminderLeadMinutes) * time.Minute
	if order.CompletionDate != nil {
		return order.CompletionDate.Add(-lead)
	}
	return order.ReceivedAt.Add(lead)
}

func reminderMessage(order *models.Order) string {
	switch {
	case order.Reference != nil && *order.Reference != "":
		return fmt.Sprintf("Order %s is due for completion", *order.Reference)
	case order.CustomerName != nil && *order.CustomerName != "":
		return fmt.Sprintf("Order for %s is due for completion", *order.CustomerName)
	default:
		return "An order is due for completion"
	}
}

func (s *service) reload(ctx context.Context, orderID uuid.UUID) (*Detail, error) {
	order, err := s.repo.Find(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return detail(order), nil
}

func (s *service) rejectDemoWrite(ctx context.Context) error {
	enabled, err := s.demo.Enabled(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check demo mode")
	}
	if enabled {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "orders are read only while demo mode is active")
	}
	return nil
}

// listDemo serves the generated set with the filters applied in memory. The
// demo set is small and fixed, so no cursor is returned.
func (s *service) listDemo(ctx context.Context, filters Filters) (*List, error) {
	rows, err := s.demo.Orders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load demo orders")
	}

	list := &List{Orders: make([]Summary, 0, len(rows))}
	for i := range rows {
		order := &rows[i]
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		if filters.Platform != nil && order.Platform != *filters.Platform {
			continue
		}
		if filters.DateFrom != nil && order.ReceivedAt.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && !order.ReceivedAt.Before(*filters.DateTo) {
			continue
		}
		list.Orders = append(list.Orders, summarize(order))
	}
	return list, nil
}

func (s *service) getDemo(ctx context.Context, orderID uuid.UUID) (*Detail, error) {
	rows, err := s.demo.Orders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load demo orders")
	}
	for i := range rows {
		if rows[i].ID == orderID {
			return detail(&rows[i]), nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func summarize(order *models.Order) Summary {
	totalItems := 0
	for _, item := range order.Items {
		totalItems += item.Quantity
	}
	return Summary{
		ID:           order.ID,
		ReceivedAt:   order.ReceivedAt,
		Reference:    order.Reference,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		Platform:     order.Platform,
		TotalItems:   totalItems,
		TotalValue:   TotalValue(order),
		Profit:       CalculatedProfit(order),
		CreatedAt:    order.CreatedAt,
	}
}

func detail(order *models.Order) *Detail {
	return &Detail{
		Order: order,
		Totals: Totals{
			ItemsTotal:     ItemsTotal(order),
			ItemsCostTotal: ItemsCostTotal(order),
			TotalValue:     TotalValue(order),
			TotalCost:      TotalCost(order),
			Profit:         CalculatedProfit(order),
		},
	}
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(ctx, msg, err)
}
