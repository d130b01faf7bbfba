package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"github.com/TheRipper284/mh/internal/config"
	"github.com/TheRipper284/mh/internal/http/handlers"
	applog "github.com/TheRipper284/mh/internal/log"
	"github.com/TheRipper284/mh/internal/media"
	"github.com/TheRipper284/mh/internal/repos"
	"github.com/TheRipper284/mh/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN, cfg.AdminUser, cfg.AdminPass)
	if err != nil {
		log.Fatal(err)
	}

	mediaStore, err := media.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	// Admin auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notice", fiber.Map{
				"Message": "Algo salió mal. Intenta de nuevo.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Algo salió mal. Intenta de nuevo.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 100 << 20 // menu photos come from phones

	deps := handlers.NewDeps(db, mediaStore)

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.AttachTable(deps.Sessions))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notice", fiber.Map{"Message": "Verificación de seguridad fallida. Recarga la página."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	uploadDir := cfg.UploadDir
	if !filepath.IsAbs(uploadDir) {
		if abs, err := filepath.Abs(uploadDir); err == nil {
			uploadDir = abs
		}
	}
	log.Printf("[static] /static  -> ./static")
	log.Printf("[static] /uploads -> %s", uploadDir)

	app.Static("/static", "./static")
	// Guarded uploads to avoid traversal
	app.Get("/uploads/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "uploads.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(uploadDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- Public pages ----------
	app.Get("/", deps.CategoryHandler.Home)
	app.Get("/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.CategoryHandler.Search)
	app.Get("/category/:id", deps.CategoryHandler.Show)
	app.Get("/mesa/:num", deps.MesaHandler.Bind)

	// Cart & orders
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/cart/clear", deps.CartHandler.Clear)
	app.Post("/orders", deps.OrderHandler.Submit)
	app.Get("/order/:id", deps.OrderHandler.View)

	// Admin auth (login throttled)
	app.Get("/admin/login", authH.LoginForm)
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("admin_login", fiber.Map{"Err": "Demasiados intentos. Espera unos minutos."})
		},
	}), authH.Login)
	app.Post("/admin/logout", authH.Logout)

	// Admin panel
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/category/new", deps.CategoryHandler.NewForm)
	admin.Post("/category/new", deps.CategoryHandler.Create)
	admin.Get("/category/edit/:id", deps.CategoryHandler.EditForm)
	admin.Post("/category/edit/:id", deps.CategoryHandler.Update)
	admin.Post("/category/delete/:id", deps.CategoryHandler.Delete)
	admin.Get("/products/:categoryId", deps.ProductHandler.Manage)
	admin.Get("/product/new/:categoryId", deps.ProductHandler.NewForm)
	admin.Post("/product/new/:categoryId", deps.ProductHandler.Create)
	admin.Get("/product/edit/:id", deps.ProductHandler.EditForm)
	admin.Post("/product/edit/:id", deps.ProductHandler.Update)
	admin.Post("/product/delete/:id", deps.ProductHandler.Delete)
	admin.Get("/orders", deps.AdminHandler.Orders)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/cash", deps.AdminHandler.Cash)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notice", fiber.Map{"Message": "Página no encontrada"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
