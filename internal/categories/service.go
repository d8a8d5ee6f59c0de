package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocknote/stocknote-backend/pkg/db"
	"github.com/stocknote/stocknote-backend/pkg/db/models"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
)

// Input carries the writable category fields.
type Input struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
	Icon  string `json:"icon" validate:"omitempty,max=50"`
}

// Summary is a category with its current stock item count.
type Summary struct {
	models.Category
	StockItemCount int64 `json:"stock_item_count"`
}

// DemoProvider answers whether demo mode is active and serves the generated
// category set while it is.
type DemoProvider interface {
	Enabled(ctx context.Context) (bool, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// Service defines category CRUD.
type Service interface {
	List(ctx context.Context) ([]Summary, error)
	Create(ctx context.Context, input Input) (*models.Category, error)
	Update(ctx context.Context, categoryID uuid.UUID, input Input) (*models.Category, error)
	Delete(ctx context.Context, categoryID uuid.UUID) error
}

type service struct {
	repo Repository
	demo DemoProvider
}

// NewService builds a category service with the required dependencies.
func NewService(repo Repository, demo DemoProvider) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if demo == nil {
		return nil, fmt.Errorf("demo provider required")
	}
	return &service{repo: repo, demo: demo}, nil
}

func (s *service) List(ctx context.Context) ([]Summary, error) {
	if enabled, err := s.demo.Enabled(ctx); err == nil && enabled {
		rows, err := s.demo.Categories(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load demo categories")
		}
		out := make([]Summary, 0, len(rows))
		for _, category := range rows {
			out = append(out, Summary{Category: category})
		}
		return out, nil
	}

	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]Summary, 0, len(rows))
	for _, category := range rows {
		count, err := s.repo.CountStockItems(ctx, category.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category stock")
		}
		out = append(out, Summary{Category: category, StockItemCount: count})
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Category, error) {
	if err := s.rejectDemoWrite(ctx); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}

	category := &models.Category{Name: input.Name}
	if input.Color != "" {
		category.Color = input.Color
	}
	if input.Icon != "" {
		category.Icon = input.Icon
	}
	if _, err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

func (s *service) Update(ctx context.Context, categoryID uuid.UUID, input Input) (*models.Category, error) {
	if err := s.rejectDemoWrite(ctx); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}

	category, err := s.repo.Find(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	category.Name = input.Name
	if input.Color != "" {
		category.Color = input.Color
	}
	if input.Icon != "" {
		category.Icon = input.Icon
	}
	if err := s.repo.Save(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save category")
	}
	return category, nil
}

func (s *service) Delete(ctx context.Context, categoryID uuid.UUID) error {
	if err := s.rejectDemoWrite(ctx); err != nil {
		return err
	}
	if categoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}

	if _, err := s.repo.Find(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) rejectDemoWrite(ctx context.Context) error {
	enabled, err := s.demo.Enabled(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check demo mode")
	}
	if enabled {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "categories are read only while demo mode is active")
	}
	return nil
}
