package demo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/stocknote/stocknote-backend/pkg/config"
	"github.com/stocknote/stocknote-backend/pkg/db/models"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
	"github.com/stocknote/stocknote-backend/pkg/redis"
)

// FlagStore persists the demo mode toggle across restarts.
type FlagStore interface {
	Get(ctx context.Context) (enabled bool, found bool, err error)
	Set(ctx context.Context, enabled bool) error
}

type redisFlagStore struct {
	client *redis.Client
}

// NewRedisFlagStore keeps the demo toggle in redis.
func NewRedisFlagStore(client *redis.Client) (FlagStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisFlagStore{client: client}, nil
}

func (s *redisFlagStore) Get(ctx context.Context) (bool, bool, error) {
	value, err := s.client.Get(ctx, s.client.DemoFlagKey())
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, false, nil
		}
		return false, false, err
	}
	return value == "1", true, nil
}

func (s *redisFlagStore) Set(ctx context.Context, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	return s.client.Set(ctx, s.client.DemoFlagKey(), value, 0)
}

// Manager owns the demo toggle and the generated dataset. The dataset is
// built lazily per process and dropped whenever the toggle flips in either
// direction, so re-enabling always serves a fresh snapshot.
type Manager struct {
	flags FlagStore
	cfg   config.DemoConfig
	clock func() time.Time

	mu      sync.Mutex
	dataset *Dataset
}

// NewManager builds a demo manager with the required dependencies.
func NewManager(flags FlagStore, cfg config.DemoConfig) (*Manager, error) {
	if flags == nil {
		return nil, fmt.Errorf("demo flag store required")
	}
	return &Manager{flags: flags, cfg: cfg, clock: time.Now}, nil
}

// Enabled reports whether demo mode is active. The stored toggle wins; with
// no stored value, configuration decides.
func (m *Manager) Enabled(ctx context.Context) (bool, error) {
	enabled, found, err := m.flags.Get(ctx)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read demo flag")
	}
	if !found {
		return m.cfg.Enabled, nil
	}
	return enabled, nil
}

// SetEnabled flips the toggle and drops the cached dataset.
func (m *Manager) SetEnabled(ctx context.Context, enabled bool) error {
	if err := m.flags.Set(ctx, enabled); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write demo flag")
	}
	m.mu.Lock()
	m.dataset = nil
	m.mu.Unlock()
	return nil
}

// Dataset returns the cached snapshot, generating it on first use.
func (m *Manager) Dataset(ctx context.Context) (*Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dataset == nil {
		m.dataset = Generate(m.cfg.Seed, m.clock())
	}
	return m.dataset, nil
}

func (m *Manager) Categories(ctx context.Context) ([]models.Category, error) {
	dataset, err := m.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.Categories, nil
}

func (m *Manager) StockItems(ctx context.Context) ([]models.StockItem, error) {
	dataset, err := m.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.StockItems, nil
}

func (m *Manager) Orders(ctx context.Context) ([]models.Order, error) {
	dataset, err := m.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.Orders, nil
}
