package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheRipper284/mh/internal/domain"
	applog "github.com/TheRipper284/mh/internal/log"
	"github.com/TheRipper284/mh/internal/services"
	"github.com/TheRipper284/mh/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

// POST /orders — checkout: the session's cart becomes an order for the
// session's table.
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	sid := ensureSID(c)
	orderID, err := h.Order.Submit(sid)
	if err != nil {
		applog.Security(c, "order.submit.fail", map[string]any{"sid": sid, "error": err.Error()})
		return notice(c, err)
	}
	applog.Audit(c, "order.submit", map[string]any{"order_id": orderID})
	return c.Redirect("/order/" + orderID)
}

// GET /order/:id — the patron's status page; the kitchen's progress shows
// up on reload.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	o, items, err := h.Order.Get(id)
	if err != nil {
		return notice(c, err)
	}
	return render(c, "order", fiber.Map{"Order": o, "Items": items})
}
