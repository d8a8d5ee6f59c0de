package entitlements

import (
	"context"
	"testing"

	"github.com/stocknote/stocknote-backend/pkg/config"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
)

func TestFreeTierEnforcesLimit(t *testing.T) {
	svc, err := NewService(config.EntitlementsConfig{FreeTierStockLimit: 3})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.CanAddStockItem(context.Background(), 2); err != nil {
		t.Fatalf("under limit: %v", err)
	}

	err = svc.CanAddStockItem(context.Background(), 3)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden at limit, got %v", err)
	}
	if svc.StockItemLimit() != 3 {
		t.Fatalf("limit = %d", svc.StockItemLimit())
	}
}

func TestPremiumHasNoLimit(t *testing.T) {
	svc, err := NewService(config.EntitlementsConfig{Premium: true})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.CanAddStockItem(context.Background(), 100000); err != nil {
		t.Fatalf("premium should be unlimited: %v", err)
	}
	if svc.StockItemLimit() != 0 {
		t.Fatal("premium limit should report zero (unlimited)")
	}
	if !svc.Premium() {
		t.Fatal("premium flag lost")
	}
}

func TestFreeTierRequiresPositiveLimit(t *testing.T) {
	if _, err := NewService(config.EntitlementsConfig{}); err == nil {
		t.Fatal("expected config rejection")
	}
}
