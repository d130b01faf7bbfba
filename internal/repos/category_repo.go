package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/TheRipper284/mh/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// List returns categories in display order. Ties keep the insertion order,
// which sqlite's rowid makes stable.
func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, description, display_order, image, pricing_kind,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  ORDER BY display_order, rowid
	`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, description, display_order, image, pricing_kind,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, domain.ErrNotFound
	}
	return c, err
}

func (r *CategoryRepo) Create(c domain.Category) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
	  INSERT INTO categories(id,name,description,display_order,image,pricing_kind)
	  VALUES(?,?,?,?,?,?)
	`, id, c.Name, c.Description, c.DisplayOrder, c.Image, c.PricingKind)
	return id, err
}

// Update sets the editable fields. The pricing kind is intentionally not
// updatable: it is fixed for the life of the category. An empty image keeps
// the stored one (no new upload).
func (r *CategoryRepo) Update(id string, c domain.Category) error {
	res, err := r.db.Exec(`
	  UPDATE categories
	  SET name = ?, description = ?, display_order = ?,
	      image = CASE WHEN ? = '' THEN image ELSE ? END,
	      updated_at = ?
	  WHERE id = ?
	`, c.Name, c.Description, c.DisplayOrder, c.Image, c.Image,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) ProductCount(id string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE category_id = ?`, id)
	return n, err
}
