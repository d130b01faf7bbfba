package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/TheRipper284/mh/internal/log"
	"github.com/TheRipper284/mh/internal/services"
)

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/admin/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Redirect("/admin/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
