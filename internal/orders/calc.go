package orders

import (
	"github.com/shopspring/decimal"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
)

// ItemsTotal sums price multiplied by quantity over the order lines. Lines
// whose stock reference was nullified contribute zero.
func ItemsTotal(order *models.Order) decimal.Decimal {
	total := decimal.Zero
	if order == nil {
		return total
	}
	for _, item := range order.Items {
		if item.StockItem == nil {
			continue
		}
		total = total.Add(item.StockItem.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ItemsCostTotal sums cost multiplied by quantity over the order lines.
func ItemsCostTotal(order *models.Order) decimal.Decimal {
	total := decimal.Zero
	if order == nil {
		return total
	}
	for _, item := range order.Items {
		if item.StockItem == nil {
			continue
		}
		total = total.Add(item.StockItem.Cost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalValue is the items total plus the shipping and additional cost
// scalars. Selling, transaction and other fees are record-keeping fields and
// stay out of the totals.
func TotalValue(order *models.Order) decimal.Decimal {
	if order == nil {
		return decimal.Zero
	}
	return ItemsTotal(order).Add(order.ShippingCost).Add(order.AdditionalCosts)
}

// TotalCost is the items cost total plus the same two scalars.
func TotalCost(order *models.Order) decimal.Decimal {
	if order == nil {
		return decimal.Zero
	}
	return ItemsCostTotal(order).Add(order.ShippingCost).Add(order.AdditionalCosts)
}

// CalculatedProfit is the items total minus the total cost. Negative results
// are reported as-is.
func CalculatedProfit(order *models.Order) decimal.Decimal {
	if order == nil {
		return decimal.Zero
	}
	return ItemsTotal(order).Sub(TotalCost(order))
}
