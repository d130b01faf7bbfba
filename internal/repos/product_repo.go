package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/TheRipper284/mh/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, category_id, name, image,
  price, price_individual, price_chica, price_mediana, price_grande, price_h4,
  ml, grams, ingredients,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) ListByCategory(catID string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE category_id = ?
	  ORDER BY LOWER(name)
	`, catID)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) Search(q string) ([]domain.Product, error) {
	var out []domain.Product
	like := "%" + q + "%"
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE LOWER(name) LIKE LOWER(?) OR LOWER(ingredients) LIKE LOWER(?)
	  ORDER BY LOWER(name)
	  LIMIT 50
	`, like, like)
	return out, err
}

func (r *ProductRepo) Create(p domain.Product) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
	  INSERT INTO products(
	    id, category_id, name, image,
	    price, price_individual, price_chica, price_mediana, price_grande, price_h4,
	    ml, grams, ingredients
	  ) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, id, p.CategoryID, p.Name, p.Image,
		p.Price, p.PriceIndividual, p.PriceChica, p.PriceMediana, p.PriceGrande, p.PriceH4,
		p.ML, p.Grams, p.Ingredients)
	return id, err
}

// Update rewrites every attribute column from p. The catalog service builds p
// per the category's pricing kind, so columns that do not apply arrive as
// NULL and any stale value (a flat price on a by-size product) is cleared.
// An empty image keeps the stored one.
func (r *ProductRepo) Update(id string, p domain.Product) error {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name = ?,
	      image = CASE WHEN ? = '' THEN image ELSE ? END,
	      price = ?, price_individual = ?, price_chica = ?, price_mediana = ?,
	      price_grande = ?, price_h4 = ?,
	      ml = ?, grams = ?, ingredients = ?,
	      updated_at = ?
	  WHERE id = ?
	`, p.Name, p.Image, p.Image,
		p.Price, p.PriceIndividual, p.PriceChica, p.PriceMediana, p.PriceGrande, p.PriceH4,
		p.ML, p.Grams, p.Ingredients,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
