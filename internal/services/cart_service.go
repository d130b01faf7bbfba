package services

import (
	"github.com/TheRipper284/mh/internal/domain"
	"github.com/TheRipper284/mh/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
	Cats  *repos.CategoryRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo, cats *repos.CategoryRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods, Cats: cats}
}

// Add resolves the price for product+size and upserts the cart line,
// incrementing the quantity when the same (product,size) pair is added
// again. Pricing failures leave the cart untouched. Returns the total item
// count for the cart badge.
func (s *CartService) Add(sessionID, productID string, qty int, size string) (int, error) {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return 0, err
	}
	cat, err := s.Cats.Get(p.CategoryID)
	if err != nil {
		return 0, err
	}
	price, err := ResolvePrice(p, cat, size)
	if err != nil {
		return 0, err
	}
	if cat.PricingKind != domain.PricingBySize {
		size = "" // size is part of the line key only when it priced the line
	}

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return 0, err
	}
	key := domain.CartKey{ProductID: productID, Size: size}
	if err := s.Carts.UpsertLine(cartID, key, qty, price); err != nil {
		return 0, err
	}
	return s.Carts.ItemCount(cartID)
}

// UpdateQty sets a line's quantity; zero or negative removes the line.
// Updating a key that is not in the cart is a silent no-op.
func (s *CartService) UpdateQty(sessionID string, key domain.CartKey, qty int) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	if qty <= 0 {
		return s.Carts.RemoveLine(cartID, key)
	}
	return s.Carts.SetQty(cartID, key, qty)
}

func (s *CartService) Remove(sessionID string, key domain.CartKey) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveLine(cartID, key)
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

type CartView struct {
	Lines     []repos.CartLine
	Total     float64
	ItemCount int
}

func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return CartView{}, err
	}
	total := 0.0
	count := 0
	for _, l := range lines {
		total += l.Subtotal
		count += l.Qty
	}
	return CartView{Lines: lines, Total: total, ItemCount: count}, nil
}

func (s *CartService) ItemCount(sessionID string) (int, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return 0, err
	}
	return s.Carts.ItemCount(cartID)
}
