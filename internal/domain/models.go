package domain

import (
	"database/sql"
	"strings"
)

// PricingKind selects which attribute set a category's products carry.
// It is fixed at category creation; renaming a category does not change it.
type PricingKind string

const (
	PricingFlat       PricingKind = "flat"        // single price
	PricingBySize     PricingKind = "by_size"     // one price per pizza size
	PricingFlatVolume PricingKind = "flat_volume" // price + milliliters
	PricingFlatWeight PricingKind = "flat_weight" // price + grams
)

func ValidPricingKind(k string) bool {
	switch PricingKind(k) {
	case PricingFlat, PricingBySize, PricingFlatVolume, PricingFlatWeight:
		return true
	}
	return false
}

// KindForCategoryName maps the legacy menu names onto pricing kinds.
// Used as the default when a category is created without an explicit kind.
func KindForCategoryName(name string) PricingKind {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "PIZZAS":
		return PricingBySize
	case "BEBIDAS":
		return PricingFlatVolume
	case "COMPLEMENTOS":
		return PricingFlatWeight
	default:
		return PricingFlat
	}
}

// Sizes lists the valid pizza size selectors, menu order.
var Sizes = []string{"individual", "chica", "mediana", "grande", "h4"}

func ValidSize(s string) bool {
	for _, v := range Sizes {
		if v == s {
			return true
		}
	}
	return false
}

type Category struct {
	ID           string      `db:"id"`
	Name         string      `db:"name"`
	Description  string      `db:"description"`
	DisplayOrder int         `db:"display_order"`
	Image        string      `db:"image"`
	PricingKind  PricingKind `db:"pricing_kind"`
	CreatedAt    string      `db:"created_at"`
	UpdatedAt    string      `db:"updated_at"`
}

// Product attributes use NULL (invalid sql.Null*) for "not set"; a price of 0
// is still treated as unavailable by the pricing resolver.
type Product struct {
	ID              string          `db:"id"`
	CategoryID      string          `db:"category_id"`
	Name            string          `db:"name"`
	Image           string          `db:"image"`
	Price           sql.NullFloat64 `db:"price"`
	PriceIndividual sql.NullFloat64 `db:"price_individual"`
	PriceChica      sql.NullFloat64 `db:"price_chica"`
	PriceMediana    sql.NullFloat64 `db:"price_mediana"`
	PriceGrande     sql.NullFloat64 `db:"price_grande"`
	PriceH4         sql.NullFloat64 `db:"price_h4"`
	ML              sql.NullInt64   `db:"ml"`
	Grams           sql.NullInt64   `db:"grams"`
	Ingredients     string          `db:"ingredients"`
	CreatedAt       string          `db:"created_at"`
	UpdatedAt       string          `db:"updated_at"`
}

// SizePrice returns the price attribute for a size selector.
// Unknown sizes yield the zero (unset) value.
func (p Product) SizePrice(size string) sql.NullFloat64 {
	switch size {
	case "individual":
		return p.PriceIndividual
	case "chica":
		return p.PriceChica
	case "mediana":
		return p.PriceMediana
	case "grande":
		return p.PriceGrande
	case "h4":
		return p.PriceH4
	}
	return sql.NullFloat64{}
}

// CartKey identifies one cart line: a product plus the size it was added
// with. Size is empty for products without size-based pricing.
type CartKey struct {
	ProductID string
	Size      string
}

// Order statuses in their usual progression. The admin may set any of them
// directly; monotonic progression is not enforced.
const (
	StatusPendiente     = "pendiente"
	StatusEnPreparacion = "en_preparacion"
	StatusListo         = "listo"
	StatusCompletado    = "completado"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPendiente, StatusEnPreparacion, StatusListo, StatusCompletado:
		return true
	}
	return false
}

// Tables are numbered 1..13; each QR code encodes one table.
const (
	MinTable = 1
	MaxTable = 13
)

type Order struct {
	ID          string  `db:"id"`
	TableNumber int     `db:"table_number"`
	Total       float64 `db:"total"`
	Status      string  `db:"status"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

// OrderItem is a snapshot taken at submission; it keeps the names and price
// as they were, so later catalog edits do not alter historical orders.
type OrderItem struct {
	OrderID      string  `db:"order_id"`
	ProductName  string  `db:"product_name"`
	CategoryName string  `db:"category_name"`
	Qty          int     `db:"qty"`
	UnitPrice    float64 `db:"unit_price"`
	Size         string  `db:"size"`
	Subtotal     float64 `db:"subtotal"`
}
