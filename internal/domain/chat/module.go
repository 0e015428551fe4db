package chat

import (
	"marketplace_api/internal/domain/chat/handler"
	"marketplace_api/internal/domain/chat/repository"
	"marketplace_api/internal/domain/chat/service"
	shopRepo "marketplace_api/internal/domain/shop/repository"
	userModel "marketplace_api/internal/domain/user/model"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "chat" }

func (m *Module) Priority() int { return 75 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	chatService := service.NewChatService(
		repository.NewChatRepository(ctx.DB),
		shopRepo.NewShopRepository(ctx.DB),
		ctx.Hub,
	)
	h := handler.NewChatHandler(chatService)

	chat := ctx.Router.Group("/api/v1/chat", middleware.AuthMiddleware())
	chat.POST("/rooms", h.OpenRoom)
	chat.GET("/rooms", h.ListMyRooms)
	chat.POST("/rooms/:id/messages", h.SendMessage)
	chat.GET("/rooms/:id/messages", h.GetMessages)
	chat.GET("/unread-count", h.UnreadCount)

	shopkeeper := ctx.Router.Group("/api/v1/shopkeeper",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(userModel.RoleShopkeeper))
	shopkeeper.GET("/chat/rooms", h.ListShopRooms)

	return nil
}

func init() {
	registry.Register(&Module{})
}
