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

type ProductHandler struct {
	Catalog *services.CatalogService
	Media   *media.Store
}

// GET /admin/products/:categoryId — manage one category's products.
func (h *ProductHandler) Manage(c *fiber.Ctx) error {
	catID, ok := validate.ID(c.Params("categoryId"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	cat, err := h.Catalog.GetCategory(catID)
	if err != nil {
		return notice(c, err)
	}
	products, err := h.Catalog.ListProductsByCategory(catID)
	if err != nil {
		applog.Error(c, "admin.products.list", err, map[string]any{"category_id": catID})
		return notice(c, err)
	}
	return render(c, "manage_products", fiber.Map{"Category": cat, "Products": products})
}

// productInput collects every attribute field; the catalog service keeps
// only the ones the category's pricing kind accepts.
func (h *ProductHandler) productInput(c *fiber.Ctx) (services.ProductInput, error) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return services.ProductInput{}, fmt.Errorf("%w: name", domain.ErrValidation)
	}
	in := services.ProductInput{
		Name:        name,
		Ingredients: c.FormValue("ingredients"),
		SizePrices:  map[string]*float64{},
	}

	var pok bool
	if in.Price, pok = validate.Price(c.FormValue("price")); !pok {
		return services.ProductInput{}, fmt.Errorf("%w: price", domain.ErrValidation)
	}
	for _, size := range domain.Sizes {
		p, pok := validate.Price(c.FormValue("price_" + size))
		if !pok {
			return services.ProductInput{}, fmt.Errorf("%w: price_%s", domain.ErrValidation, size)
		}
		in.SizePrices[size] = p
	}
	if in.ML, pok = validate.Amount(c.FormValue("ml")); !pok {
		return services.ProductInput{}, fmt.Errorf("%w: ml", domain.ErrValidation)
	}
	if in.Grams, pok = validate.Amount(c.FormValue("grams")); !pok {
		return services.ProductInput{}, fmt.Errorf("%w: grams", domain.ErrValidation)
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		path, err := h.Media.Save(fh)
		if err != nil {
			return services.ProductInput{}, fmt.Errorf("%w: image", domain.ErrValidation)
		}
		in.Image = path
	}
	return in, nil
}

func (h *ProductHandler) NewForm(c *fiber.Ctx) error {
	catID, ok := validate.ID(c.Params("categoryId"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	cat, err := h.Catalog.GetCategory(catID)
	if err != nil {
		return notice(c, err)
	}
	return render(c, "product_form", fiber.Map{
		"Action": "Crear", "Category": cat, "Product": domain.Product{}, "Sizes": domain.Sizes,
	})
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	catID, ok := validate.ID(c.Params("categoryId"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	in, err := h.productInput(c)
	if err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "product"})
		return notice(c, err)
	}
	id, err := h.Catalog.CreateProduct(catID, in)
	if err != nil {
		applog.Error(c, "admin.product.create", err, map[string]any{"category_id": catID})
		return notice(c, err)
	}
	applog.Audit(c, "admin.product.create", map[string]any{"product_id": id})
	return c.Redirect("/admin/products/" + catID)
}

func (h *ProductHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return notice(c, err)
	}
	cat, err := h.Catalog.GetCategory(p.CategoryID)
	if err != nil {
		return notice(c, err)
	}
	return render(c, "product_form", fiber.Map{
		"Action": "Editar", "Category": cat, "Product": p, "Sizes": domain.Sizes,
	})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	in, err := h.productInput(c)
	if err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "product"})
		return notice(c, err)
	}
	if err := h.Catalog.UpdateProduct(id, in); err != nil {
		applog.Error(c, "admin.product.update", err, map[string]any{"product_id": id})
		return notice(c, err)
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return notice(c, err)
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product_id": id})
	return c.Redirect("/admin/products/" + p.CategoryID)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notice(c, domain.ErrInvalidID)
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return notice(c, err)
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		applog.Error(c, "admin.product.delete", err, map[string]any{"product_id": id})
		return notice(c, err)
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin/products/" + p.CategoryID)
}
