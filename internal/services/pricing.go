package services

import (
	"fmt"

	"github.com/TheRipper284/mh/internal/domain"
)

// ResolvePrice maps a product plus an optional size selector to a unit
// price, dispatching on the category's pricing kind. A NULL or zero price
// counts as not set and resolves to ErrPricing.
func ResolvePrice(p domain.Product, cat domain.Category, size string) (float64, error) {
	if cat.PricingKind == domain.PricingBySize {
		if size == "" || !domain.ValidSize(size) {
			return 0, fmt.Errorf("%w: size not offered", domain.ErrPricing)
		}
		price := p.SizePrice(size)
		if !price.Valid || price.Float64 <= 0 {
			return 0, fmt.Errorf("%w: price not set", domain.ErrPricing)
		}
		return price.Float64, nil
	}

	// All other kinds carry a flat price; any size argument is ignored.
	if !p.Price.Valid || p.Price.Float64 <= 0 {
		return 0, fmt.Errorf("%w: price not set", domain.ErrPricing)
	}
	return p.Price.Float64, nil
}
