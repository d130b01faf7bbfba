package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/TheRipper284/mh/internal/domain"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if tbl, ok := c.Locals("table").(int); ok {
		data["Table"] = tbl
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// notice renders a user-facing message for a recoverable error; every error
// kind out of the services maps to a request status here, never a crash.
func notice(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Algo salió mal. Intenta de nuevo."
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, msg = fiber.StatusNotFound, "No encontrado"
	case errors.Is(err, domain.ErrInvalidID):
		status, msg = fiber.StatusBadRequest, "ID inválido"
	case errors.Is(err, domain.ErrPricing):
		status, msg = fiber.StatusBadRequest, "Producto no disponible en esa presentación"
	case errors.Is(err, domain.ErrEmptyCart):
		status, msg = fiber.StatusBadRequest, "Tu carrito está vacío"
	case errors.Is(err, domain.ErrNoTable):
		status, msg = fiber.StatusBadRequest, "Escanea el código QR de tu mesa primero"
	case errors.Is(err, domain.ErrInvalidStatus):
		status, msg = fiber.StatusBadRequest, "Estado de pedido inválido"
	case errors.Is(err, domain.ErrValidation):
		status, msg = fiber.StatusBadRequest, "Datos inválidos"
	}
	if rerr := c.Status(status).Render("notice", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}
