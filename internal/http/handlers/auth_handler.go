package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/TheRipper284/mh/internal/log"
	"github.com/TheRipper284/mh/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "admin_login", fiber.Map{})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	username := c.FormValue("username")
	password := c.FormValue("password")

	u, err := h.Auth.Login(sid, username, password)
	if err != nil {
		applog.Security(c, "admin.login.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusUnauthorized).Render("admin_login", fiber.Map{
			"Err": "Credenciales incorrectas",
		})
	}
	applog.Audit(c, "admin.login", map[string]any{"user_id": u.ID})
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		_ = h.Auth.Logout(sid)
	}
	return c.Redirect("/")
}
