package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/TheRipper284/mh/internal/domain"
	applog "github.com/TheRipper284/mh/internal/log"
	"github.com/TheRipper284/mh/internal/services"
	"github.com/TheRipper284/mh/internal/validate"
)

type AdminHandler struct {
	Catalog *services.CatalogService
	Order   *services.OrderService
}

// GET /admin — the dashboard: categories plus the live order board.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "admin.dashboard", err, nil)
		return notice(c, err)
	}
	return render(c, "admin", fiber.Map{"Categories": cats})
}

// GET /admin/orders — active orders plus the last day's completed ones.
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	active, err := h.Order.Active()
	if err != nil {
		applog.Error(c, "admin.orders.list", err, nil)
		return notice(c, err)
	}
	completed, err := h.Order.RecentlyCompleted()
	if err != nil {
		applog.Error(c, "admin.orders.list", err, nil)
		return notice(c, err)
	}
	return render(c, "admin_orders", fiber.Map{
		"Active":    active,
		"Completed": completed,
		"Statuses": []string{
			domain.StatusPendiente, domain.StatusEnPreparacion,
			domain.StatusListo, domain.StatusCompletado,
		},
	})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	status := c.FormValue("status")
	if err := h.Order.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.status", err, map[string]any{"order_id": id, "status": status})
		return notice(c, err)
	}
	applog.Audit(c, "admin.orders.status", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// GET /admin/cash?date=YYYY-MM-DD&completed=1 — daily cash report.
// Defaults to today in the local time zone.
func (h *AdminHandler) Cash(c *fiber.Ctx) error {
	day := time.Now()
	dateStr := c.Query("date")
	if dateStr != "" {
		d, ok := validate.Date(dateStr)
		if !ok {
			return notice(c, domain.ErrValidation)
		}
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			return notice(c, domain.ErrValidation)
		}
		day = parsed
	}
	onlyCompleted := c.Query("completed") == "1"

	summary, err := h.Order.DailyCash(day, onlyCompleted)
	if err != nil {
		applog.Error(c, "admin.cash", err, nil)
		return notice(c, err)
	}
	return render(c, "admin_cash", fiber.Map{
		"Date":          day.Format("2006-01-02"),
		"OnlyCompleted": onlyCompleted,
		"Summary":       summary,
	})
}
