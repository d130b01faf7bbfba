package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheRipper284/mh/internal/domain"
	applog "github.com/TheRipper284/mh/internal/log"
	"github.com/TheRipper284/mh/internal/services"
	"github.com/TheRipper284/mh/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func cartKeyFromForm(c *fiber.Ctx) (domain.CartKey, bool) {
	productID, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return domain.CartKey{}, false
	}
	size, ok := validate.Size(c.FormValue("size"))
	if !ok {
		return domain.CartKey{}, false
	}
	return domain.CartKey{ProductID: productID, Size: size}, true
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		applog.Error(c, "cart.load", err, nil)
		return notice(c, err)
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

// POST /cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	key, ok := cartKeyFromForm(c)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"form": "cart.add"})
		return notice(c, domain.ErrValidation)
	}
	qty := validate.Qty(c.FormValue("qty"))

	count, err := h.Cart.Add(sid, key.ProductID, qty, key.Size)
	if err != nil {
		applog.Error(c, "cart.add", err, map[string]any{"product_id": key.ProductID, "size": key.Size})
		return notice(c, err)
	}
	applog.Info(c, "cart.add", map[string]any{"product_id": key.ProductID, "size": key.Size, "count": count})
	return c.Redirect("/cart")
}

// POST /cart/update
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	key, ok := cartKeyFromForm(c)
	if !ok {
		return notice(c, domain.ErrValidation)
	}
	qty := validate.QtyOrZero(c.FormValue("qty"))
	if err := h.Cart.UpdateQty(sid, key, qty); err != nil {
		applog.Error(c, "cart.update", err, map[string]any{"product_id": key.ProductID})
		return notice(c, err)
	}
	return c.Redirect("/cart")
}

// POST /cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	key, ok := cartKeyFromForm(c)
	if !ok {
		return notice(c, domain.ErrValidation)
	}
	if err := h.Cart.Remove(sid, key); err != nil {
		applog.Error(c, "cart.remove", err, map[string]any{"product_id": key.ProductID})
		return notice(c, err)
	}
	return c.Redirect("/cart")
}

// POST /cart/clear
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "cart.clear", err, nil)
		return notice(c, err)
	}
	return c.Redirect("/cart")
}
