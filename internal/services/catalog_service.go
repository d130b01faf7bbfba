package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/TheRipper284/mh/internal/domain"
	"github.com/TheRipper284/mh/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// ---------- Categories ----------

type CategoryInput struct {
	Name         string
	Description  string
	DisplayOrder int
	Image        string
	PricingKind  string // empty means derive from the name
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) GetCategory(id string) (domain.Category, error) {
	return s.Cats.Get(id)
}

func (s *CatalogService) CreateCategory(in CategoryInput) (string, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	kind := domain.PricingKind(in.PricingKind)
	if in.PricingKind == "" {
		kind = domain.KindForCategoryName(in.Name)
	} else if !domain.ValidPricingKind(in.PricingKind) {
		return "", fmt.Errorf("%w: unknown pricing kind %q", domain.ErrValidation, in.PricingKind)
	}
	return s.Cats.Create(domain.Category{
		Name:         in.Name,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
		Image:        in.Image,
		PricingKind:  kind,
	})
}

// UpdateCategory edits name/description/order/image. The pricing kind stays
// whatever it was at creation, so renaming never changes which attributes
// the category's products accept.
func (s *CatalogService) UpdateCategory(id string, in CategoryInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	return s.Cats.Update(id, domain.Category{
		Name:         in.Name,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
		Image:        in.Image,
	})
}

// DeleteCategory requires the category to have no products, so deletion
// cannot orphan them.
func (s *CatalogService) DeleteCategory(id string) error {
	n, err := s.Cats.ProductCount(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: category still has %d products", domain.ErrValidation, n)
	}
	return s.Cats.Delete(id)
}

// ---------- Products ----------

type ProductInput struct {
	Name        string
	Ingredients string
	Image       string
	Price       *float64
	SizePrices  map[string]*float64 // keyed by domain.Sizes
	ML          *int
	Grams       *int
}

// Dishes whose COMPLEMENTOS entry lists ingredients; everything else in that
// category gets an empty ingredients field.
var complementosConIngredientes = []string{
	"spaghetti",
	"al horno",
	"spaghetti a la boloñesa",
	"papa al horno",
	"alitas bbq",
	"mango habanero",
}

func keepsIngredients(name string) bool {
	n := strings.ToLower(name)
	for _, dish := range complementosConIngredientes {
		if strings.Contains(n, dish) {
			return true
		}
	}
	return false
}

// buildProduct maps the input onto the attribute set the category's pricing
// kind accepts; everything else stays NULL, which also clears stale values
// on update (a flat price left over from before a product was by-size).
func buildProduct(kind domain.PricingKind, in ProductInput) domain.Product {
	p := domain.Product{Name: in.Name, Image: in.Image}
	switch kind {
	case domain.PricingBySize:
		p.PriceIndividual = nullFloat(in.SizePrices["individual"])
		p.PriceChica = nullFloat(in.SizePrices["chica"])
		p.PriceMediana = nullFloat(in.SizePrices["mediana"])
		p.PriceGrande = nullFloat(in.SizePrices["grande"])
		p.PriceH4 = nullFloat(in.SizePrices["h4"])
		p.Ingredients = in.Ingredients
	case domain.PricingFlatVolume:
		p.Price = nullFloat(in.Price)
		p.ML = nullInt(in.ML)
	case domain.PricingFlatWeight:
		p.Price = nullFloat(in.Price)
		p.Grams = nullInt(in.Grams)
		if keepsIngredients(in.Name) {
			p.Ingredients = in.Ingredients
		}
	default:
		p.Price = nullFloat(in.Price)
	}
	return p
}

func (s *CatalogService) ListProductsByCategory(catID string) ([]domain.Product, error) {
	return s.Prods.ListByCategory(catID)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Search(q string) ([]domain.Product, error) {
	return s.Prods.Search(q)
}

func (s *CatalogService) CreateProduct(categoryID string, in ProductInput) (string, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	cat, err := s.Cats.Get(categoryID)
	if err != nil {
		return "", err
	}
	p := buildProduct(cat.PricingKind, in)
	p.CategoryID = cat.ID
	return s.Prods.Create(p)
}

func (s *CatalogService) UpdateProduct(id string, in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	existing, err := s.Prods.Get(id)
	if err != nil {
		return err
	}
	cat, err := s.Cats.Get(existing.CategoryID)
	if err != nil {
		return err
	}
	return s.Prods.Update(id, buildProduct(cat.PricingKind, in))
}

func (s *CatalogService) DeleteProduct(id string) error {
	return s.Prods.Delete(id)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
