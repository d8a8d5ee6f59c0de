package orders

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", value, err)
	}
	return d
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(t, want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func TestOrderTotals(t *testing.T) {
	order := &models.Order{
		ShippingCost:    dec(t, "2.50"),
		AdditionalCosts: dec(t, "1.00"),
		// Fee fields are record keeping only and must not move the totals.
		SellingFees:     dec(t, "99.99"),
		TransactionFees: dec(t, "88.88"),
		OtherCosts:      dec(t, "77.77"),
		Items: []models.OrderItem{
			{
				Quantity: 3,
				StockItem: &models.StockItem{
					Price: dec(t, "10.00"),
					Cost:  dec(t, "4.00"),
				},
			},
		},
	}

	assertDecimal(t, "items total", ItemsTotal(order), "30.00")
	assertDecimal(t, "items cost total", ItemsCostTotal(order), "12.00")
	assertDecimal(t, "total value", TotalValue(order), "33.50")
	assertDecimal(t, "total cost", TotalCost(order), "15.50")
	assertDecimal(t, "profit", CalculatedProfit(order), "14.50")
}

func TestOrderTotalsMultipleLines(t *testing.T) {
	order := &models.Order{
		ShippingCost: dec(t, "3.00"),
		Items: []models.OrderItem{
			{Quantity: 2, StockItem: &models.StockItem{Price: dec(t, "5.25"), Cost: dec(t, "2.10")}},
			{Quantity: 1, StockItem: &models.StockItem{Price: dec(t, "19.99"), Cost: dec(t, "7.50")}},
		},
	}

	assertDecimal(t, "items total", ItemsTotal(order), "30.49")
	assertDecimal(t, "items cost total", ItemsCostTotal(order), "11.70")
	assertDecimal(t, "total value", TotalValue(order), "33.49")
	assertDecimal(t, "total cost", TotalCost(order), "14.70")
	assertDecimal(t, "profit", CalculatedProfit(order), "15.79")
}

func TestOrderTotalsEmptyOrder(t *testing.T) {
	order := &models.Order{}

	assertDecimal(t, "items total", ItemsTotal(order), "0")
	assertDecimal(t, "total value", TotalValue(order), "0")
	assertDecimal(t, "profit", CalculatedProfit(order), "0")
}

func TestOrderTotalsNilOrder(t *testing.T) {
	assertDecimal(t, "items total", ItemsTotal(nil), "0")
	assertDecimal(t, "items cost total", ItemsCostTotal(nil), "0")
	assertDecimal(t, "total value", TotalValue(nil), "0")
	assertDecimal(t, "total cost", TotalCost(nil), "0")
	assertDecimal(t, "profit", CalculatedProfit(nil), "0")
}

func TestOrderTotalsNullifiedStockReference(t *testing.T) {
	order := &models.Order{
		ShippingCost: dec(t, "1.50"),
		Items: []models.OrderItem{
			{Quantity: 4, StockItem: nil},
			{Quantity: 1, StockItem: &models.StockItem{Price: dec(t, "8.00"), Cost: dec(t, "3.00")}},
		},
	}

	assertDecimal(t, "items total", ItemsTotal(order), "8.00")
	assertDecimal(t, "items cost total", ItemsCostTotal(order), "3.00")
	assertDecimal(t, "total value", TotalValue(order), "9.50")
}

func TestCalculatedProfitCanGoNegative(t *testing.T) {
	order := &models.Order{
		ShippingCost:    dec(t, "10.00"),
		AdditionalCosts: dec(t, "5.00"),
		Items: []models.OrderItem{
			{Quantity: 1, StockItem: &models.StockItem{Price: dec(t, "4.00"), Cost: dec(t, "2.00")}},
		},
	}

	assertDecimal(t, "profit", CalculatedProfit(order), "-13.00")
}
