package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/TheRipper284/mh/internal/domain"
	"github.com/TheRipper284/mh/internal/repos"
	"github.com/TheRipper284/mh/internal/services"
)

func catalogSvc(db *sqlx.DB) *services.CatalogService {
	return services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db))
}

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestCategory_PricingKindDerivedAndFixed(t *testing.T) {
	db := memdb(t)
	svc := catalogSvc(db)

	id, err := svc.CreateCategory(services.CategoryInput{Name: "Pizzas", DisplayOrder: 5})
	if err != nil {
		t.Fatal(err)
	}
	cat, err := svc.GetCategory(id)
	if err != nil {
		t.Fatal(err)
	}
	if cat.PricingKind != domain.PricingBySize {
		t.Fatalf("want by_size derived from name, got %s", cat.PricingKind)
	}

	// renaming must not change the kind: products keep their attribute shape
	if err := svc.UpdateCategory(id, services.CategoryInput{Name: "PROMOCIONES", DisplayOrder: 5}); err != nil {
		t.Fatal(err)
	}
	cat, _ = svc.GetCategory(id)
	if cat.Name != "PROMOCIONES" || cat.PricingKind != domain.PricingBySize {
		t.Fatalf("kind must survive rename, got %+v", cat)
	}

	pid, err := svc.CreateProduct(id, services.ProductInput{
		Name:       "Cuatro Quesos",
		Price:      fp(99), // must be discarded for a by-size category
		SizePrices: map[string]*float64{"mediana": fp(110)},
	})
	if err != nil {
		t.Fatal(err)
	}
	p, _ := svc.GetProduct(pid)
	if p.Price.Valid {
		t.Fatalf("flat price must not be stored for by-size products: %+v", p.Price)
	}
	if !p.PriceMediana.Valid || p.PriceMediana.Float64 != 110 {
		t.Fatalf("size price lost: %+v", p.PriceMediana)
	}
}

func TestCategory_ExplicitKindWins(t *testing.T) {
	db := memdb(t)
	svc := catalogSvc(db)

	id, err := svc.CreateCategory(services.CategoryInput{Name: "POSTRES", PricingKind: "flat_weight"})
	if err != nil {
		t.Fatal(err)
	}
	cat, _ := svc.GetCategory(id)
	if cat.PricingKind != domain.PricingFlatWeight {
		t.Fatalf("want explicit flat_weight, got %s", cat.PricingKind)
	}

	if _, err := svc.CreateCategory(services.CategoryInput{Name: "X", PricingKind: "per_person"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown kind must be rejected, got %v", err)
	}
}

func TestProduct_EditClearsStaleFlatPrice(t *testing.T) {
	db := memdb(t)
	svc := catalogSvc(db)

	// a pizza that somehow carries a flat price (legacy data)
	mustExec(t, db, `INSERT INTO products(id,category_id,name,price,price_grande) VALUES
	  ('vieja','cat-pizzas','Vieja',75,150)`)

	if err := svc.UpdateProduct("vieja", services.ProductInput{
		Name:       "Vieja",
		SizePrices: map[string]*float64{"grande": fp(150)},
	}); err != nil {
		t.Fatal(err)
	}
	p, err := svc.GetProduct("vieja")
	if err != nil {
		t.Fatal(err)
	}
	if p.Price.Valid {
		t.Fatalf("stale flat price must be cleared on edit, got %+v", p.Price)
	}
	if !p.PriceGrande.Valid || p.PriceGrande.Float64 != 150 {
		t.Fatalf("size price lost on edit: %+v", p.PriceGrande)
	}
}

func TestProduct_ComplementosIngredientsAllowList(t *testing.T) {
	db := memdb(t)
	svc := catalogSvc(db)

	// listed dish keeps its ingredients (case-insensitive substring)
	pid, err := svc.CreateProduct("cat-complementos", services.ProductInput{
		Name:        "Alitas BBQ 12pz",
		Ingredients: "alitas, salsa bbq",
		Price:       fp(95),
		Grams:       ip(450),
	})
	if err != nil {
		t.Fatal(err)
	}
	p, _ := svc.GetProduct(pid)
	if p.Ingredients != "alitas, salsa bbq" {
		t.Fatalf("listed dish must keep ingredients, got %q", p.Ingredients)
	}
	if !p.Grams.Valid || p.Grams.Int64 != 450 {
		t.Fatalf("grams lost: %+v", p.Grams)
	}

	// unlisted dish gets an empty ingredients field
	pid2, err := svc.CreateProduct("cat-complementos", services.ProductInput{
		Name:        "Papas gajo",
		Ingredients: "papas, sazonador",
		Price:       fp(55),
		Grams:       ip(300),
	})
	if err != nil {
		t.Fatal(err)
	}
	p2, _ := svc.GetProduct(pid2)
	if p2.Ingredients != "" {
		t.Fatalf("unlisted dish must not keep ingredients, got %q", p2.Ingredients)
	}
}

func TestCategory_DeleteRequiresNoProducts(t *testing.T) {
	db := memdb(t)
	svc := catalogSvc(db)

	if err := svc.DeleteCategory("cat-pizzas"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("delete with products must fail, got %v", err)
	}
	if _, err := svc.GetCategory("cat-pizzas"); err != nil {
		t.Fatalf("category must survive failed delete: %v", err)
	}

	mustExec(t, db, `DELETE FROM products WHERE category_id='cat-pizzas'`)
	if err := svc.DeleteCategory("cat-pizzas"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetCategory("cat-pizzas"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}

func TestCategory_ListOrderedByDisplayOrder(t *testing.T) {
	db := memdb(t)
	svc := catalogSvc(db)

	// a second category sharing display_order 1: ties keep insertion order
	mustExec(t, db, `INSERT INTO categories(id,name,pricing_kind,display_order) VALUES
	  ('cat-promos','PROMOS','flat',1)`)

	cats, err := svc.ListCategories()
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	want := []string{"cat-bebidas", "cat-promos", "cat-pizzas", "cat-complementos"}
	if len(ids) != len(want) {
		t.Fatalf("want %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("want %v, got %v", want, ids)
		}
	}
}
