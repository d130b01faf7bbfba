package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/TheRipper284/mh/internal/media"
	"github.com/TheRipper284/mh/internal/repos"
	"github.com/TheRipper284/mh/internal/services"
)

type Deps struct {
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	MesaHandler     *MesaHandler
	AdminHandler    *AdminHandler
	Sessions        *repos.SessionRepo
}

// NewDeps wires repos, services and handlers off one store handle; nothing
// here is package-level state, so tests can build a Deps around an
// in-memory database.
func NewDeps(db *sqlx.DB, mediaStore *media.Store) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	sessionRepo := repos.NewSessionRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo, catRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, catRepo, orderRepo, sessionRepo)

	return &Deps{
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc, Media: mediaStore},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc, Media: mediaStore},
		CartHandler:     &CartHandler{Cart: cartSvc},
		OrderHandler:    &OrderHandler{Order: orderSvc},
		MesaHandler:     &MesaHandler{Sessions: sessionRepo},
		AdminHandler:    &AdminHandler{Catalog: catalogSvc, Order: orderSvc},
		Sessions:        sessionRepo,
	}
}
