package services_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/TheRipper284/mh/internal/domain"
	"github.com/TheRipper284/mh/internal/services"
)

func nf(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: true} }

func TestResolvePrice_BySize(t *testing.T) {
	cat := domain.Category{Name: "PIZZAS", PricingKind: domain.PricingBySize}
	p := domain.Product{
		Name:            "Hawaiana",
		PriceIndividual: nf(60),
		PriceChica:      nf(85),
		PriceMediana:    nf(120),
		PriceGrande:     nf(150),
		PriceH4:         nf(190),
	}

	price, err := services.ResolvePrice(p, cat, "grande")
	if err != nil {
		t.Fatal(err)
	}
	if price != 150 {
		t.Fatalf("want 150, got %v", price)
	}

	// no size on a by-size product
	if _, err := services.ResolvePrice(p, cat, ""); !errors.Is(err, domain.ErrPricing) {
		t.Fatalf("want ErrPricing for missing size, got %v", err)
	}

	// unknown size
	if _, err := services.ResolvePrice(p, cat, "familiar"); !errors.Is(err, domain.ErrPricing) {
		t.Fatalf("want ErrPricing for unknown size, got %v", err)
	}

	// size with no price set
	p2 := domain.Product{Name: "Nueva", PriceChica: nf(85)}
	if _, err := services.ResolvePrice(p2, cat, "grande"); !errors.Is(err, domain.ErrPricing) {
		t.Fatalf("want ErrPricing for unset size price, got %v", err)
	}
}

func TestResolvePrice_FlatIgnoresSize(t *testing.T) {
	cat := domain.Category{Name: "BEBIDAS", PricingKind: domain.PricingFlatVolume}
	p := domain.Product{Name: "Refresco 600ml", Price: nf(20)}

	price, err := services.ResolvePrice(p, cat, "grande")
	if err != nil {
		t.Fatal(err)
	}
	if price != 20 {
		t.Fatalf("size must be ignored for flat pricing; want 20, got %v", price)
	}
}

func TestResolvePrice_UnsetOrZeroFlat(t *testing.T) {
	cat := domain.Category{Name: "ESPECIALIDADES", PricingKind: domain.PricingFlat}

	if _, err := services.ResolvePrice(domain.Product{}, cat, ""); !errors.Is(err, domain.ErrPricing) {
		t.Fatalf("want ErrPricing for unset price, got %v", err)
	}
	// zero counts as not set
	if _, err := services.ResolvePrice(domain.Product{Price: nf(0)}, cat, ""); !errors.Is(err, domain.ErrPricing) {
		t.Fatalf("want ErrPricing for zero price, got %v", err)
	}
}
