package categories

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
)

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*models.Category
	stockCount map[uuid.UUID]int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: map[uuid.UUID]*models.Category{},
		stockCount: map[uuid.UUID]int64{},
	}
}

func (f *fakeCategoryRepo) WithTx(_ *gorm.DB) Repository { return f }

func (f *fakeCategoryRepo) Create(_ context.Context, category *models.Category) (*models.Category, error) {
	for _, existing := range f.categories {
		if existing.Name == category.Name {
			return nil, fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	f.categories[category.ID] = category
	return category, nil
}

func (f *fakeCategoryRepo) Find(_ context.Context, id uuid.UUID) (*models.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (f *fakeCategoryRepo) ListAll(_ context.Context) ([]models.Category, error) {
	var rows []models.Category
	for _, category := range f.categories {
		rows = append(rows, *category)
	}
	return rows, nil
}

func (f *fakeCategoryRepo) Save(_ context.Context, category *models.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) CountStockItems(_ context.Context, id uuid.UUID) (int64, error) {
	return f.stockCount[id], nil
}

type fakeCategoryDemo struct {
	enabled    bool
	categories []models.Category
}

func (f *fakeCategoryDemo) Enabled(_ context.Context) (bool, error) { return f.enabled, nil }

func (f *fakeCategoryDemo) Categories(_ context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func newCategoryService(t *testing.T, repo Repository, demo DemoProvider) Service {
	t.Helper()
	svc, err := NewService(repo, demo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func TestCreateAppliesModelDefaults(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(t, repo, &fakeCategoryDemo{})

	category, err := svc.Create(context.Background(), Input{Name: "Knitwear", Color: "#FF9500"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if category.Color != "#FF9500" {
		t.Fatalf("color = %s", category.Color)
	}
	if category.ID == uuid.Nil {
		t.Fatal("id not assigned")
	}
}

func TestCreateDuplicateName(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(t, repo, &fakeCategoryDemo{})

	if _, err := svc.Create(context.Background(), Input{Name: "Knitwear"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(context.Background(), Input{Name: "Knitwear"})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateRequiresName(t *testing.T) {
	svc := newCategoryService(t, newFakeCategoryRepo(), &fakeCategoryDemo{})
	_, err := svc.Create(context.Background(), Input{})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestListIncludesStockCounts(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(t, repo, &fakeCategoryDemo{})

	category, err := svc.Create(context.Background(), Input{Name: "Knitwear"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.stockCount[category.ID] = 4

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].StockItemCount != 4 {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := newCategoryService(t, newFakeCategoryRepo(), &fakeCategoryDemo{})
	_, err := svc.Update(context.Background(), uuid.New(), Input{Name: "X"})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteRemovesCategory(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(t, repo, &fakeCategoryDemo{})

	category, err := svc.Create(context.Background(), Input{Name: "Knitwear"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), category.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), category.ID); err == nil {
		t.Fatal("second delete should report not found")
	}
}

func TestDemoModeRejectsWrites(t *testing.T) {
	svc := newCategoryService(t, newFakeCategoryRepo(), &fakeCategoryDemo{enabled: true})

	_, err := svc.Create(context.Background(), Input{Name: "X"})
	assertCode(t, err, pkgerrors.CodeStateConflict)

	err = svc.Delete(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestDemoModeServesGeneratedCategories(t *testing.T) {
	demo := &fakeCategoryDemo{
		enabled:    true,
		categories: []models.Category{{ID: uuid.New(), Name: "Demo Knits"}},
	}
	svc := newCategoryService(t, newFakeCategoryRepo(), demo)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Demo Knits" {
		t.Fatalf("unexpected demo list: %+v", list)
	}
}
