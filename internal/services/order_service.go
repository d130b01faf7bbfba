package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/TheRipper284/mh/internal/domain"
	"github.com/TheRipper284/mh/internal/repos"
)

type OrderService struct {
	Carts    *repos.CartRepo
	Prods    *repos.ProductRepo
	Cats     *repos.CategoryRepo
	Orders   *repos.OrderRepo
	Sessions *repos.SessionRepo
}

func NewOrderService(carts *repos.CartRepo, prods *repos.ProductRepo, cats *repos.CategoryRepo,
	orders *repos.OrderRepo, sessions *repos.SessionRepo) *OrderService {
	return &OrderService{Carts: carts, Prods: prods, Cats: cats, Orders: orders, Sessions: sessions}
}

// Submit converts the session's cart into an order for the table bound to
// that session. Each line is snapshotted with the product and category names
// as they are right now; a line whose product has been deleted since it was
// added is skipped rather than failing the whole order. The cart is cleared
// on success.
func (s *OrderService) Submit(sessionID string) (string, error) {
	table, err := s.Sessions.Table(sessionID)
	if err != nil {
		return "", err
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return "", err
	}
	lines, err := s.Carts.RawLines(cartID)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", domain.ErrEmptyCart
	}

	var items []domain.OrderItem
	total := 0.0
	for _, l := range lines {
		p, err := s.Prods.Get(l.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			continue // product removed between add-to-cart and checkout
		}
		if err != nil {
			return "", err
		}
		catName := ""
		if cat, err := s.Cats.Get(p.CategoryID); err == nil {
			catName = cat.Name
		}
		subtotal := float64(l.Qty) * l.UnitPrice
		items = append(items, domain.OrderItem{
			ProductName:  p.Name,
			CategoryName: catName,
			Qty:          l.Qty,
			UnitPrice:    l.UnitPrice,
			Size:         l.Size,
			Subtotal:     subtotal,
		})
		total += subtotal
	}

	now := time.Now().UTC().Format(time.RFC3339)
	o := domain.Order{
		ID:          uuid.NewString(),
		TableNumber: table,
		Total:       total,
		Status:      domain.StatusPendiente,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Orders.Create(o, items); err != nil {
		return "", err
	}
	_ = s.Carts.Clear(cartID)
	return o.ID, nil
}

// UpdateStatus sets any of the four recognized statuses. Progression is not
// enforced; the admin may move an order backward to correct a mistake.
func (s *OrderService) UpdateStatus(orderID, status string) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return s.Orders.UpdateStatus(orderID, status, time.Now())
}

func (s *OrderService) Get(orderID string) (domain.Order, []domain.OrderItem, error) {
	return s.Orders.Get(orderID)
}

// Active lists orders still owed to tables (pendiente or en_preparacion).
func (s *OrderService) Active() ([]domain.Order, error) {
	return s.Orders.Active()
}

// RecentlyCompleted lists completado orders created in the last 24 hours.
func (s *OrderService) RecentlyCompleted() ([]domain.Order, error) {
	return s.Orders.CompletedSince(time.Now().Add(-24 * time.Hour))
}

// DailyCash aggregates orders created during one calendar day of the
// deployment's local time zone.
func (s *OrderService) DailyCash(day time.Time, onlyCompleted bool) (repos.CashSummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	return s.Orders.CashRange(start, start.AddDate(0, 0, 1), onlyCompleted)
}
