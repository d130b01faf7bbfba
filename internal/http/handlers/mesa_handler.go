package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/TheRipper284/mh/internal/domain"
	applog "github.com/TheRipper284/mh/internal/log"
	"github.com/TheRipper284/mh/internal/repos"
	"github.com/TheRipper284/mh/internal/validate"
)

type MesaHandler struct {
	Sessions *repos.SessionRepo
}

// GET /mesa/:num — the QR code landing. Binds the table to the visitor's
// session and drops them on the menu. Out-of-range tables are rejected
// before anything is written.
func (h *MesaHandler) Bind(c *fiber.Ctx) error {
	table, ok := validate.Table(c.Params("num"))
	if !ok {
		applog.Security(c, "mesa.bind.invalid", map[string]any{"num": c.Params("num")})
		return notice(c, domain.ErrValidation)
	}
	sid := ensureSID(c)
	if err := h.Sessions.BindTable(sid, table); err != nil {
		applog.Error(c, "mesa.bind", err, map[string]any{"table": table})
		return notice(c, err)
	}
	applog.Info(c, "mesa.bind", map[string]any{"table": table})
	return c.Redirect("/")
}

// AttachTable exposes the bound table to templates via Locals.
func AttachTable(sessions *repos.SessionRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if table, err := sessions.Table(sid); err == nil {
				c.Locals("table", table)
			}
		}
		return c.Next()
	}
}
