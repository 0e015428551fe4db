package user

import (
	"marketplace_api/internal/domain/user/handler"
	"marketplace_api/internal/domain/user/model"
	"marketplace_api/internal/domain/user/repository"
	"marketplace_api/internal/domain/user/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/internal/pkg/registry"
)

type Module struct{}

func (m *Module) Name() string { return "user" }

// Priority 10: everything else depends on accounts and sessions.
func (m *Module) Priority() int { return 10 }

func (m *Module) Init(ctx *registry.ModuleContext) error {
	userService := service.NewUserService(repository.NewUserRepository(ctx.DB), ctx.Redis)
	h := handler.NewUserHandler(userService)

	api := ctx.Router.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", h.Register)
	auth.GET("/active-account/:token", h.ActivateAccount)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.RefreshToken)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/reset-password", h.ResetPassword)
	auth.POST("/logout", middleware.AuthMiddleware(), h.Logout)

	users := api.Group("/users", middleware.AuthMiddleware())
	users.GET("/me", h.GetProfile)
	users.PATCH("/me", h.UpdateProfile)
	users.PUT("/me/password", h.ChangePassword)
	users.POST("/addresses", h.CreateAddress)
	users.GET("/addresses", h.ListAddresses)
	users.PUT("/addresses/:id", h.UpdateAddress)
	users.DELETE("/addresses/:id", h.DeleteAddress)

	admin := api.Group("/admin",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(model.RoleAdmin, model.RoleSuperAdmin))
	admin.GET("/users", h.ListUsers)
	admin.PATCH("/users/:id/status", h.SetUserStatus)

	return nil
}

func init() {
	registry.Register(&Module{})
}
