package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/TheRipper284/mh/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartLine is one cart row joined with the live product name for display.
type CartLine struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Size      string  `db:"size"`
	Qty       int     `db:"qty"`
	UnitPrice float64 `db:"unit_price"`
	Subtotal  float64 `db:"subtotal"`
}

func (l CartLine) Key() domain.CartKey {
	return domain.CartKey{ProductID: l.ProductID, Size: l.Size}
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// UpsertLine inserts a line for (product,size) or increments its quantity
// when the pair is already in the cart.
func (r *CartRepo) UpsertLine(cartID string, key domain.CartKey, qty int, unitPrice float64) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,size,qty,unit_price,created_at)
		VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id,size) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, key.ProductID, key.Size, qty, unitPrice)
	return err
}

// SetQty overwrites a line's quantity. Missing lines are a no-op so retried
// requests stay idempotent.
func (r *CartRepo) SetQty(cartID string, key domain.CartKey, qty int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE cart_id = ? AND product_id = ? AND size = ?
	`, qty, cartID, key.ProductID, key.Size)
	return err
}

func (r *CartRepo) RemoveLine(cartID string, key domain.CartKey) error {
	_, err := r.db.Exec(`
		DELETE FROM cart_items
		WHERE cart_id = ? AND product_id = ? AND size = ?
	`, cartID, key.ProductID, key.Size)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}

// Lines returns the cart joined with live product names; the subtotal is
// always computed as qty*price, never stored.
func (r *CartRepo) Lines(cartID string) ([]CartLine, error) {
	rows := []CartLine{}
	err := r.db.Select(&rows, `
	  SELECT ci.product_id, p.name, ci.size, ci.qty, ci.unit_price,
	         (ci.qty*ci.unit_price) AS subtotal
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.rowid
	`, cartID)
	return rows, err
}

// RawLines returns cart rows without the product join, so checkout can see
// lines whose product has since been deleted and skip them explicitly.
func (r *CartRepo) RawLines(cartID string) ([]CartLine, error) {
	rows := []CartLine{}
	err := r.db.Select(&rows, `
	  SELECT product_id, '' AS name, size, qty, unit_price,
	         (qty*unit_price) AS subtotal
	  FROM cart_items
	  WHERE cart_id = ?
	  ORDER BY rowid
	`, cartID)
	return rows, err
}

// ItemCount sums quantities across lines (the cart badge number).
func (r *CartRepo) ItemCount(cartID string) (int, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COALESCE(SUM(qty),0) FROM cart_items WHERE cart_id = ?
	`, cartID)
	return n, err
}
