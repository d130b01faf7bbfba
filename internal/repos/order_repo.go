package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/TheRipper284/mh/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// CashSummary aggregates orders over a reporting window.
type CashSummary struct {
	Count int     `db:"cnt"`
	Sum   float64 `db:"total_sum"`
	Avg   float64 `db:"total_avg"`
}

// Create writes the order header and all its line items in one transaction,
// so readers never observe a partial order.
func (r *OrderRepo) Create(o domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, table_number, total, status, created_at, updated_at)
	  VALUES(?,?,?,?,?,?)
	`, o.ID, o.TableNumber, o.Total, o.Status, o.CreatedAt, o.UpdatedAt); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_name, category_name, qty, unit_price, size, subtotal)
		  VALUES(?,?,?,?,?,?,?)
		`, o.ID, it.ProductName, it.CategoryName, it.Qty, it.UnitPrice, it.Size, it.Subtotal); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
	  SELECT id, table_number, total, status, created_at, updated_at
	  FROM orders WHERE id = ?
	`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, nil, domain.ErrNotFound
		}
		return domain.Order{}, nil, err
	}

	var items []domain.OrderItem
	if err := r.db.Select(&items, `
	  SELECT order_id, product_name, category_name, qty, unit_price, size, subtotal
	  FROM order_items
	  WHERE order_id = ?
	  ORDER BY rowid
	`, id); err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) UpdateStatus(id, status string, now time.Time) error {
	res, err := r.db.Exec(`
	  UPDATE orders SET status = ?, updated_at = ? WHERE id = ?
	`, status, now.UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Active returns orders the kitchen still owes, newest first.
func (r *OrderRepo) Active() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT id, table_number, total, status, created_at, updated_at
	  FROM orders
	  WHERE status IN ('pendiente','en_preparacion')
	  ORDER BY created_at DESC
	`)
	return out, err
}

// CompletedSince returns completed orders created after the cutoff, newest first.
func (r *OrderRepo) CompletedSince(cutoff time.Time) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT id, table_number, total, status, created_at, updated_at
	  FROM orders
	  WHERE status = 'completado' AND created_at >= ?
	  ORDER BY created_at DESC
	`, cutoff.UTC().Format(time.RFC3339))
	return out, err
}

// CashRange aggregates orders created in [start, end). AVG over zero rows is
// NULL in sqlite, coalesced to 0 here.
func (r *OrderRepo) CashRange(start, end time.Time, onlyCompleted bool) (CashSummary, error) {
	q := `
	  SELECT COUNT(*) AS cnt,
	         COALESCE(SUM(total),0) AS total_sum,
	         COALESCE(AVG(total),0) AS total_avg
	  FROM orders
	  WHERE created_at >= ? AND created_at < ?`
	args := []any{start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)}
	if onlyCompleted {
		q += ` AND status = 'completado'`
	}
	var s CashSummary
	err := r.db.Get(&s, q, args...)
	return s, err
}
