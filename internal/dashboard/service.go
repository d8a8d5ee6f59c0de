package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocknote/stocknote-backend/internal/orders"
	"github.com/stocknote/stocknote-backend/pkg/config"
	"github.com/stocknote/stocknote-backend/pkg/currency"
	"github.com/stocknote/stocknote-backend/pkg/db/models"
	"github.com/stocknote/stocknote-backend/pkg/enums"
	pkgerrors "github.com/stocknote/stocknote-backend/pkg/errors"
)

// Range names the supported dashboard windows.
type Range string

const (
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
	RangeAll   Range = "all"
)

// StatusCount is one slice of the status breakdown, ordered by lifecycle.
type StatusCount struct {
	Status enums.OrderStatus `json:"status"`
	Count  int               `json:"count"`
}

// PlatformCount is one slice of the platform breakdown, busiest first.
type PlatformCount struct {
	Platform enums.Platform `json:"platform"`
	Count    int            `json:"count"`
}

// Summary aggregates the order book over a window. Money fields carry both
// the raw decimal and a locale-formatted display string.
type Summary struct {
	Range          Range           `json:"range"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OrderCount     int             `json:"order_count"`
	ItemsSold      int             `json:"items_sold"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenueDisplay string          `json:"revenue_display"`
	Cost           decimal.Decimal `json:"cost"`
	CostDisplay    string          `json:"cost_display"`
	Profit         decimal.Decimal `json:"profit"`
	ProfitDisplay  string          `json:"profit_display"`
	ByStatus       []StatusCount   `json:"by_status"`
	ByPlatform     []PlatformCount `json:"by_platform"`
}

// OrderSource loads orders received inside a window.
type OrderSource interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
}

// DemoProvider answers whether demo mode is active and serves the generated
// order set while it is.
type DemoProvider interface {
	Enabled(ctx context.Context) (bool, error)
	Orders(ctx context.Context) ([]models.Order, error)
}

// Service computes dashboard summaries.
type Service interface {
	Summary(ctx context.Context, window Range) (*Summary, error)
}

type service struct {
	source    OrderSource
	demo      DemoProvider
	formatter *currency.Formatter
	display   enums.Currency
	clock     func() time.Time
}

// NewService builds a dashboard service with the required dependencies.
func NewService(source OrderSource, demo DemoProvider, cfg config.DisplayConfig) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("order source required")
	}
	if demo == nil {
		return nil, fmt.Errorf("demo provider required")
	}
	display := enums.Currency(cfg.Currency)
	if !display.IsValid() {
		display = enums.CurrencyUSD
	}
	return &service{
		source:    source,
		demo:      demo,
		formatter: currency.NewFormatter(cfg.Locale),
		display:   display,
		clock:     time.Now,
	}, nil
}

func (s *service) Summary(ctx context.Context, window Range) (*Summary, error) {
	from, to, err := s.bounds(window)
	if err != nil {
		return nil, err
	}

	rows, err := s.loadOrders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Range:   window,
		From:    from,
		To:      to,
		Revenue: decimal.Zero,
		Cost:    decimal.Zero,
		Profit:  decimal.Zero,
	}

	statusCounts := map[enums.OrderStatus]int{}
	platformCounts := map[enums.Platform]int{}
	for i := range rows {
		order := &rows[i]
		summary.OrderCount++
		statusCounts[order.Status]++
		platformCounts[order.Platform]++
		// Canceled and returned orders never earned anything.
		if order.Status == enums.OrderStatusCanceled || order.Status == enums.OrderStatusReturned {
			continue
		}
		for _, line := range order.Items {
			summary.ItemsSold += line.Quantity
		}
		summary.Revenue = summary.Revenue.Add(orders.TotalValue(order))
		summary.Cost = summary.Cost.Add(orders.TotalCost(order))
		summary.Profit = summary.Profit.Add(orders.CalculatedProfit(order))
	}

	summary.RevenueDisplay = s.formatter.Format(summary.Revenue, s.display)
	summary.CostDisplay = s.formatter.Format(summary.Cost, s.display)
	summary.ProfitDisplay = s.formatter.Format(summary.Profit, s.display)
	summary.ByStatus = rankStatuses(statusCounts)
	summary.ByPlatform = rankPlatforms(platformCounts)
	return summary, nil
}

func (s *service) loadOrders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	if enabled, err := s.demo.Enabled(ctx); err == nil && enabled {
		rows, err := s.demo.Orders(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load demo orders")
		}
		var inRange []models.Order
		for _, order := range rows {
			if order.ReceivedAt.Before(from) || !order.ReceivedAt.Before(to) {
				continue
			}
			inRange = append(inRange, order)
		}
		return inRange, nil
	}

	rows, err := s.source.ListBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders for dashboard")
	}
	return rows, nil
}

// bounds resolves the window to a half-open [from, to) interval anchored on
// the current local day.
func (s *service) bounds(window Range) (time.Time, time.Time, error) {
	now := s.clock().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := startOfDay.AddDate(0, 0, 1)

	switch window {
	case RangeToday:
		return startOfDay, to, nil
	case RangeWeek:
		return to.AddDate(0, 0, -7), to, nil
	case RangeMonth:
		return to.AddDate(0, -1, 0), to, nil
	case RangeYear:
		return to.AddDate(-1, 0, 0), to, nil
	case RangeAll:
		return time.Time{}, to, nil
	default:
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown dashboard range")
	}
}

func rankStatuses(counts map[enums.OrderStatus]int) []StatusCount {
	out := make([]StatusCount, 0, len(counts))
	for status, count := range counts {
		out = append(out, StatusCount{Status: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Status.Rank() < out[j].Status.Rank()
	})
	return out
}

func rankPlatforms(counts map[enums.Platform]int) []PlatformCount {
	out := make([]PlatformCount, 0, len(counts))
	for platform, count := range counts {
		out = append(out, PlatformCount{Platform: platform, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Platform < out[j].Platform
	})
	return out
}
