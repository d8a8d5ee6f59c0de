package demo

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	"github.com/stocknote/stocknote-backend/pkg/enums"
)

// Dataset is one self-consistent generated snapshot: every stock item
// references a generated category and every order line references a
// generated stock item.
type Dataset struct {
	Categories []models.Category
	StockItems []models.StockItem
	Orders     []models.Order
}

type categorySeed struct {
	name  string
	color string
	icon  string
}

var categorySeeds = []categorySeed{
	{"Hats & Beanies", "#FF9500", "hat"},
	{"Scarves", "#34C759", "scarf"},
	{"Blankets", "#5856D6", "blanket"},
	{"Amigurumi", "#FF2D55", "bear"},
	{"Accessories", "#8E8E93", "tag"},
}

type productSeed struct {
	name  string
	price string
	cost  string
}

var productSeeds = []productSeed{
	{"Chunky Knit Beanie", "18.00", "6.50"},
	{"Ribbed Winter Hat", "16.50", "5.75"},
	{"Infinity Scarf", "24.00", "8.00"},
	{"Tartan Wrap Scarf", "28.50", "10.25"},
	{"Baby Blanket", "45.00", "17.00"},
	{"Granny Square Throw", "65.00", "24.50"},
	{"Octopus Amigurumi", "22.00", "7.25"},
	{"Bunny Amigurumi", "25.00", "8.50"},
	{"Dinosaur Amigurumi", "27.50", "9.00"},
	{"Keychain Charm", "8.00", "2.50"},
	{"Coaster Set", "14.00", "4.75"},
	{"Plant Hanger", "19.50", "6.00"},
	{"Headband Ear Warmer", "15.00", "5.00"},
	{"Market Tote Bag", "32.00", "11.50"},
	{"Fingerless Gloves", "17.50", "6.25"},
}

var customerSeeds = []string{
	"Emma Davies", "Liam Murphy", "Sophie Turner", "Noah Clarke",
	"Olivia Bennett", "Jack Harrison", "Ava Mitchell", "Oscar Reed",
	"Isla Thompson", "Harry Walsh",
}

// statusWeights skews generated orders towards the states a working shop
// actually sits in.
var statusWeights = []struct {
	status enums.OrderStatus
	weight int
}{
	{enums.OrderStatusReceived, 4},
	{enums.OrderStatusInProgress, 3},
	{enums.OrderStatusShipped, 2},
	{enums.OrderStatusCompleted, 5},
	{enums.OrderStatusCanceled, 1},
}

var platformWeights = []struct {
	platform enums.Platform
	weight   int
}{
	{enums.PlatformEtsy, 5},
	{enums.PlatformEbay, 2},
	{enums.PlatformInPerson, 2},
	{enums.PlatformShopify, 1},
	{enums.PlatformOther, 1},
}

// Generate builds a dataset from the seed. The same seed and reference time
// always produce the same snapshot, so demo screens are stable across
// requests within a day.
func Generate(seed int64, now time.Time) *Dataset {
	rng := rand.New(rand.NewSource(seed))
	now = now.UTC()

	dataset := &Dataset{}

	for _, cs := range categorySeeds {
		dataset.Categories = append(dataset.Categories, models.Category{
			ID:        deterministicID(rng),
			Name:      cs.name,
			Color:     cs.color,
			Icon:      cs.icon,
			CreatedAt: now.AddDate(0, -6, 0),
		})
	}

	for i, ps := range productSeeds {
		category := dataset.Categories[i%len(dataset.Categories)]
		categoryID := category.ID
		item := models.StockItem{
			ID:         deterministicID(rng),
			Name:       ps.name,
			Quantity:   rng.Intn(12),
			Price:      mustDecimal(ps.price),
			Cost:       mustDecimal(ps.cost),
			Currency:   enums.CurrencyUSD,
			CategoryID: &categoryID,
			CreatedAt:  now.AddDate(0, 0, -rng.Intn(120)),
		}
		copied := category
		item.Category = &copied
		dataset.StockItems = append(dataset.StockItems, item)
	}

	orderCount := 14 + rng.Intn(6)
	for i := 0; i < orderCount; i++ {
		dataset.Orders = append(dataset.Orders, generateOrder(rng, dataset.StockItems, now, i))
	}
	return dataset
}

// generateOrder spreads receipt dates so today, this week and the last few
// months all have demo activity.
func generateOrder(rng *rand.Rand, stock []models.StockItem, now time.Time, seq int) models.Order {
	var receivedAt time.Time
	switch {
	case seq < 2:
		receivedAt = now.Add(-time.Duration(1+rng.Intn(8)) * time.Hour)
	case seq < 6:
		receivedAt = now.AddDate(0, 0, -(1 + rng.Intn(6)))
	default:
		receivedAt = now.AddDate(0, 0, -(7 + rng.Intn(80)))
	}

	status := pickStatus(rng)
	order := models.Order{
		ID:           deterministicID(rng),
		ReceivedAt:   receivedAt,
		Status:       status,
		Platform:     pickPlatform(rng),
		ShippingCost: mustDecimal(fmt.Sprintf("%d.50", 2+rng.Intn(4))),
		CreatedAt:    receivedAt,
	}

	reference := fmt.Sprintf("DEMO-%04d", 1000+seq)
	order.Reference = &reference
	customer := customerSeeds[rng.Intn(len(customerSeeds))]
	order.CustomerName = &customer

	if rng.Intn(3) == 0 {
		order.AdditionalCosts = mustDecimal(fmt.Sprintf("%d.00", 1+rng.Intn(3)))
	}
	if !status.IsTerminal() {
		completion := receivedAt.AddDate(0, 0, 7+rng.Intn(14))
		order.CompletionDate = &completion
	}

	lineCount := 1 + rng.Intn(3)
	for j := 0; j < lineCount; j++ {
		item := stock[rng.Intn(len(stock))]
		itemCopy := item
		stockID := item.ID
		order.Items = append(order.Items, models.OrderItem{
			ID:          deterministicID(rng),
			OrderID:     order.ID,
			StockItemID: &stockID,
			StockItem:   &itemCopy,
			Quantity:    1 + rng.Intn(2),
			CreatedAt:   receivedAt,
		})
	}
	return order
}

func pickStatus(rng *rand.Rand) enums.OrderStatus {
	total := 0
	for _, entry := range statusWeights {
		total += entry.weight
	}
	roll := rng.Intn(total)
	for _, entry := range statusWeights {
		if roll < entry.weight {
			return entry.status
		}
		roll -= entry.weight
	}
	return enums.OrderStatusReceived
}

func pickPlatform(rng *rand.Rand) enums.Platform {
	total := 0
	for _, entry := range platformWeights {
		total += entry.weight
	}
	roll := rng.Intn(total)
	for _, entry := range platformWeights {
		if roll < entry.weight {
			return entry.platform
		}
		roll -= entry.weight
	}
	return enums.PlatformOther
}

// deterministicID derives uuids from the seeded stream so the same seed
// yields the same ids.
func deterministicID(rng *rand.Rand) uuid.UUID {
	var raw [16]byte
	rng.Read(raw[:])
	raw[6] = (raw[6] & 0x0f) | 0x40
	raw[8] = (raw[8] & 0x3f) | 0x80
	return uuid.UUID(raw)
}

func mustDecimal(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
