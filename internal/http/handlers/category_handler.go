package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/TheRipper284/mh/internal/domain"
	applog "github.com/TheRipper284/mh/internal/log"
	"github.com/TheRipper284/mh/internal/media"
	"github.com/TheRipper284/mh/internal/services"
	"github.com/TheRipper284/mh/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
	Media   *media.Store
}

// GET / — the menu: categories in display order.
func (h *CategoryHandler) Home(c *fiber.Ctx) error {
	ensureSID(c)
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "menu.load", err, nil)
		return notice(c, err)
	}
	return render(c, "index", fiber.Map{"Categories": cats})
}

// GET /category/:id — products of one category.
func (h *CategoryHandler) Show(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	cat, err := h.Catalog.GetCategory(id)
	if err != nil {
		return notice(c, err)
	}
	products, err := h.Catalog.ListProductsByCategory(id)
	if err != nil {
		applog.Error(c, "category.load", err, map[string]any{"category_id": id})
		return notice(c, err)
	}
	return render(c, "category_view", fiber.Map{
		"Category": cat,
		"Products": products,
		"Sizes":    domain.Sizes,
	})
}

// GET /search — menu search by product name or ingredients.
func (h *CategoryHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if len(q) > 50 {
		q = q[:50]
	}
	var products []domain.Product
	if q != "" {
		var err error
		products, err = h.Catalog.Search(q)
		if err != nil {
			applog.Error(c, "menu.search", err, nil)
			return notice(c, err)
		}
	}
	return render(c, "search", fiber.Map{"Q": q, "Products": products})
}

// ---------- Admin CRUD ----------

func (h *CategoryHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "category_form", fiber.Map{"Action": "Crear", "Category": domain.Category{}})
}

func (h *CategoryHandler) categoryInput(c *fiber.Ctx) (services.CategoryInput, error) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return services.CategoryInput{}, fmt.Errorf("%w: name", domain.ErrValidation)
	}
	order, ok := validate.Amount(c.FormValue("order"))
	if !ok {
		return services.CategoryInput{}, fmt.Errorf("%w: order", domain.ErrValidation)
	}
	in := services.CategoryInput{
		Name:        name,
		Description: c.FormValue("description"),
		PricingKind: c.FormValue("pricing_kind"),
	}
	if order != nil {
		in.DisplayOrder = *order
	}
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		path, err := h.Media.Save(fh)
		if err != nil {
			return services.CategoryInput{}, fmt.Errorf("%w: image", domain.ErrValidation)
		}
		in.Image = path
	}
	return in, nil
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	in, err := h.categoryInput(c)
	if err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "category"})
		return notice(c, err)
	}
	id, err := h.Catalog.CreateCategory(in)
	if err != nil {
		applog.Error(c, "admin.category.create", err, nil)
		return notice(c, err)
	}
	applog.Audit(c, "admin.category.create", map[string]any{"category_id": id})
	return c.Redirect("/admin")
}

func (h *CategoryHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	cat, err := h.Catalog.GetCategory(id)
	if err != nil {
		return notice(c, err)
	}
	return render(c, "category_form", fiber.Map{"Action": "Editar", "Category": cat})
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	in, err := h.categoryInput(c)
	if err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "category"})
		return notice(c, err)
	}
	if err := h.Catalog.UpdateCategory(id, in); err != nil {
		applog.Error(c, "admin.category.update", err, map[string]any{"category_id": id})
		return notice(c, err)
	}
	applog.Audit(c, "admin.category.update", map[string]any{"category_id": id})
	return c.Redirect("/admin")
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		applog.Error(c, "admin.category.delete", err, map[string]any{"category_id": id})
		return notice(c, err)
	}
	applog.Audit(c, "admin.category.delete", map[string]any{"category_id": id})
	return c.Redirect("/admin")
}
