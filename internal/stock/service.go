package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	"github.com/stocknote/stocknote-backend/pkg/enums"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
	"github.com/stocknote/stocknote-backend/pkg/pagination"
)

// EntitlementGate decides whether the account may add another stock item at
// its current count.
type EntitlementGate interface {
	CanAddStockItem(ctx context.Context, currentCount int64) error
}

// DemoProvider answers whether demo mode is active and serves the generated
// stock set while it is.
type DemoProvider interface {
	Enabled(ctx context.Context) (bool, error)
	StockItems(ctx context.Context) ([]models.StockItem, error)
}

// Service defines stock item CRUD plus the relative quantity adjustment.
type Service interface {
	List(ctx context.Context, params pagination.Params, filters Filters) (*List, error)
	Get(ctx context.Context, itemID uuid.UUID) (*models.StockItem, error)
	Create(ctx context.Context, input Input) (*models.StockItem, error)
	Update(ctx context.Context, itemID uuid.UUID, input Input) (*models.StockItem, error)
	Adjust(ctx context.Context, itemID uuid.UUID, input AdjustInput) (*models.StockItem, error)
	Delete(ctx context.Context, itemID uuid.UUID) error
}

type service struct {
	repo         Repository
	entitlements EntitlementGate
	demo         DemoProvider
}

// NewService builds a stock service with the required dependencies.
func NewService(repo Repository, entitlements EntitlementGate, demo DemoProvider) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if entitlements == nil {
		return nil, fmt.Errorf("entitlement gate required")
	}
	if demo == nil {
		return nil, fmt.Errorf("demo provider required")
	}
	return &service{repo: repo, entitlements: entitlements, demo: demo}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*List, error) {
	if enabled, err := s.demo.Enabled(ctx); err == nil && enabled {
		return s.listDemo(ctx, filters)
	}

	rows, next, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock items")
	}
	list := &List{Items: rows}
	if next != nil {
		list.NextCursor = pagination.EncodeCursor(*next)
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, itemID uuid.UUID) (*models.StockItem, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock item id required")
	}

	if enabled, err := s.demo.Enabled(ctx); err == nil && enabled {
		return s.getDemo(ctx, itemID)
	}

	item, err := s.repo.Find(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock item")
	}
	return item, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.StockItem, error) {
	if err := s.rejectDemoWrite(ctx); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stock items")
	}
	if err := s.entitlements.CanAddStockItem(ctx, count); err != nil {
		return nil, err
	}

	item := materialize(input)
	if _, err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create stock item")
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, itemID uuid.UUID, input Input) (*models.StockItem, error) {
	if err := s.rejectDemoWrite(ctx); err != nil {
		return nil, err
	}
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock item id required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.Find(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock item")
	}

	item := materialize(input)
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save stock item")
	}
	return item, nil
}

// Adjust applies a relative quantity change. Order saves never touch stock;
// this is the one write path for quantity movement.
func (s *service) Adjust(ctx context.Context, itemID uuid.UUID, input AdjustInput) (*models.StockItem, error) {
	if err := s.rejectDemoWrite(ctx); err != nil {
		return nil, err
	}
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock item id required")
	}
	if input.Delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta must be non-zero")
	}

	affected, err := s.repo.AdjustQuantity(ctx, itemID, input.Delta)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust quantity")
	}
	if affected == 0 {
		if _, err := s.repo.Find(ctx, itemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock item")
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quantity cannot go below zero")
	}

	item, err := s.repo.Find(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload stock item")
	}
	return item, nil
}

func (s *service) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := s.rejectDemoWrite(ctx); err != nil {
		return err
	}
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock item id required")
	}

	if _, err := s.repo.Find(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock item")
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete stock item")
	}
	return nil
}

func validateInput(input Input) error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Cost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
	}
	if input.Currency != "" && !input.Currency.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid currency")
	}
	return nil
}

func materialize(input Input) *models.StockItem {
	currency := input.Currency
	if currency == "" {
		currency = enums.CurrencyUSD
	}
	return &models.StockItem{
		Name:       input.Name,
		Quantity:   input.Quantity,
		Price:      input.Price,
		Cost:       input.Cost,
		Currency:   currency,
		CategoryID: input.CategoryID,
		Notes:      input.Notes,
		Attributes: input.Attributes.Clone(),
	}
}

func (s *service) rejectDemoWrite(ctx context.Context) error {
	enabled, err := s.demo.Enabled(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check demo mode")
	}
	if enabled {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "stock is read only while demo mode is active")
	}
	return nil
}

func (s *service) listDemo(ctx context.Context, filters Filters) (*List, error) {
	rows, err := s.demo.StockItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load demo stock")
	}

	list := &List{Items: make([]models.StockItem, 0, len(rows))}
	for _, item := range rows {
		if filters.CategoryID != nil {
			if item.CategoryID == nil || *item.CategoryID != *filters.CategoryID {
				continue
			}
		}
		if filters.InStock != nil {
			if *filters.InStock != (item.Quantity > 0) {
				continue
			}
		}
		list.Items = append(list.Items, item)
	}
	return list, nil
}

func (s *service) getDemo(ctx context.Context, itemID uuid.UUID) (*models.StockItem, error) {
	rows, err := s.demo.StockItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load demo stock")
	}
	for i := range rows {
		if rows[i].ID == itemID {
			return &rows[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found")
}
