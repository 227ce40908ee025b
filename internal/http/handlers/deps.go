package handlers

import (
	"github.com/jmoiron/sqlx"

	"emporium/internal/assets"
	"emporium/internal/repos"
	"emporium/internal/services"
)

type Deps struct {
	Auth            *services.AuthService
	AuthHandler     *AuthHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	OrderHandler    *OrderHandler
	UserHandler     *UserHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService, store assets.Store) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo, store)
	orderSvc := services.NewOrderService(orderRepo, prodRepo)

	return &Deps{
		Auth:            auth,
		AuthHandler:     &AuthHandler{Auth: auth},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		UserHandler:     &UserHandler{Users: userRepo},
	}
}
