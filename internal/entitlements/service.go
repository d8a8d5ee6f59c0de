package entitlements

import (
	"context"
	"fmt"

	"github.com/stocknote/stocknote-backend/pkg/config"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
)

// Service answers plan-level capability questions. The free tier caps how
// many stock items can exist; premium removes the cap.
type Service interface {
	CanAddStockItem(ctx context.Context, currentCount int64) error
	StockItemLimit() int64
	Premium() bool
}

type service struct {
	cfg config.EntitlementsConfig
}

// NewService builds an entitlement service from static plan configuration.
func NewService(cfg config.EntitlementsConfig) (Service, error) {
	if !cfg.Premium && cfg.FreeTierStockLimit <= 0 {
		return nil, fmt.Errorf("free tier stock limit must be positive")
	}
	return &service{cfg: cfg}, nil
}

func (s *service) CanAddStockItem(_ context.Context, currentCount int64) error {
	if s.cfg.Premium {
		return nil
	}
	if currentCount >= int64(s.cfg.FreeTierStockLimit) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "free plan stock item limit reached").
			WithDetails(map[string]any{"limit": s.cfg.FreeTierStockLimit})
	}
	return nil
}

func (s *service) StockItemLimit() int64 {
	if s.cfg.Premium {
		return 0
	}
	return int64(s.cfg.FreeTierStockLimit)
}

func (s *service) Premium() bool {
	return s.cfg.Premium
}
