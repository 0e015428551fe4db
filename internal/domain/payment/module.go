package payment

import (
	notificationRepo "marketplace_api/internal/domain/notification/repository"
	notificationService "marketplace_api/internal/domain/notification/service"
	orderRepo "marketplace_api/internal/domain/order/repository"
	"marketplace_api/internal/domain/payment/gateway"
	"marketplace_api/internal/domain/payment/handler"
	"marketplace_api/internal/domain/payment/service"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	"marketplace_api/internal/pkg/config"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "payment" }

func (m *Module) Priority() int { return 40 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	cfg := config.GlobalConfig
	notifications := notificationService.NewNotificationService(
		notificationRepo.NewNotificationRepository(ctx.DB), ctx.Hub, ctx.Pool)

	paymentService := service.NewPaymentService(
		orderRepo.NewOrderRepository(ctx.DB),
		shopRepo.NewShopRepository(ctx.DB),
		notifications,
		gateway.NewMomoGateway(cfg.Momo, cfg.App.ServerSite),
		gateway.NewZaloPayGateway(cfg.ZaloPay, cfg.App.ServerSite),
	)
	h := handler.NewPaymentHandler(paymentService)

	api := ctx.Router.Group("/api/v1")

	// Provider callbacks are unauthenticated; the HMAC is the authentication.
	api.POST("/payments/momo/callback", h.MomoCallback)
	api.POST("/payments/zalopay/callback", h.ZaloPayCallback)

	authed := api.Group("", middleware.AuthMiddleware())
	for _, provider := range []string{gateway.ProviderMomo, gateway.ProviderZaloPay} {
		authed.POST("/payments/"+provider+"/initiate", h.Initiate(provider))
		authed.GET("/payments/"+provider+"/status/:orderId", h.CheckStatus(provider))
	}

	return nil
}

func init() {
	registry.Register(&Module{})
}
