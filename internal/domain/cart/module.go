package cart

import (
	"marketplace_api/internal/domain/cart/handler"
	"marketplace_api/internal/domain/cart/repository"
	"marketplace_api/internal/domain/cart/service"
	productRepo "marketplace_api/internal/domain/product/repository"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "cart" }

func (m *Module) Priority() int { return 25 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	cartService := service.NewCartService(
		repository.NewCartRepository(ctx.DB),
		productRepo.NewProductRepository(ctx.DB),
	)
	h := handler.NewCartHandler(cartService)

	cart := ctx.Router.Group("/api/v1/cart", middleware.AuthMiddleware())
	cart.GET("", h.GetCart)
	cart.DELETE("", h.ClearCart)
	cart.POST("/items", h.AddItem)
	cart.PUT("/items", h.UpdateItem)
	cart.DELETE("/items/:productId", h.RemoveItem)

	return nil
}

func init() {
	registry.Register(&Module{})
}
