package enums

import "fmt"

// OrderStatus tracks the lifecycle of a recorded order.
type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "received"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
	OrderStatusReturned   OrderStatus = "returned"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusInProgress,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCanceled,
	OrderStatusReturned,
}

// orderStatusRank is the single display/sort ordering table for statuses.
// Every consumer ranks through Rank; the table is defined exactly once.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusReceived:   0,
	OrderStatusInProgress: 1,
	OrderStatusShipped:    2,
	OrderStatusCompleted:  3,
	OrderStatusReturned:   4,
	OrderStatusCanceled:   5,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// Rank returns the total-order position used for display sorting. Unknown
// statuses sort last.
func (s OrderStatus) Rank() int {
	if rank, ok := orderStatusRank[s]; ok {
		return rank
	}
	return len(orderStatusRank)
}

// IsTerminal reports whether no further transitions are expected.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusCanceled, OrderStatusReturned:
		return true
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// OrderStatuses returns all known statuses in rank order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(validOrderStatuses))
	copy(out, validOrderStatuses)
	return out
}
