package handler

import (
	"net/http"

	"marketplace_api/internal/domain/user/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "registration"
// @Success 201 {object} response.Response
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.Register(input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, user)
}

// ActivateAccount godoc
// @Summary Activate an account with the emailed token
// @Tags auth
// @Produce json
// @Param token path string true "activation token"
// @Success 200 {object} response.Response
// @Router /auth/active-account/{token} [get]
func (h *UserHandler) ActivateAccount(c *gin.Context) {
	if err := h.service.ActivateAccount(c.Param("token")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Account activated", nil)
}

// Login godoc
// @Summary Log in with username or email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "credentials"
// @Success 200 {object} response.Response
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Login(input, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// RefreshToken godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body refreshRequest true "refresh token"
// @Success 200 {object} response.Response
// @Router /auth/refresh [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	pair, err := h.service.RefreshToken(req.RefreshToken)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, pair)
}

// Logout godoc
// @Summary Revoke the current session
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
// @Security BearerAuth
func (h *UserHandler) Logout(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	if err := h.service.Logout(claims.SessionID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Logged out", nil)
}

// ForgotPassword godoc
// @Summary Request a password reset mail
// @Tags auth
// @Accept json
// @Produce json
// @Param request body forgotPasswordRequest true "email"
// @Success 200 {object} response.Response
// @Router /auth/forgot-password [post]
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.ForgotPassword(req.Email); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "If the email is registered, a reset link has been sent", nil)
}

// ResetPassword godoc
// @Summary Reset the password with the emailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body resetPasswordRequest true "reset"
// @Success 200 {object} response.Response
// @Router /auth/reset-password [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.ResetPassword(req.Token, req.NewPassword); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Password has been reset", nil)
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} response.Response
// @Router /users/me [get]
// @Security BearerAuth
func (h *UserHandler) GetProfile(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	user, err := h.service.GetProfile(claims.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.UpdateProfileInput true "profile"
// @Success 200 {object} response.Response
// @Router /users/me [patch]
// @Security BearerAuth
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, user)
}

// ChangePassword godoc
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.ChangePasswordInput true "passwords"
// @Success 200 {object} response.Response
// @Router /users/me/password [put]
// @Security BearerAuth
func (h *UserHandler) ChangePassword(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.ChangePassword(claims.UserID, input); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Password changed", nil)
}

// ListUsers godoc
// @Summary List users (admin)
// @Tags admin
// @Produce json
// @Param status query string false "status filter"
// @Param search query string false "display name search"
// @Success 200 {object} response.Response
// @Router /admin/users [get]
// @Security BearerAuth
func (h *UserHandler) ListUsers(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListUsers(&p, c.Query("status"), c.Query("search"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// SetUserStatus godoc
// @Summary Activate or deactivate a user (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param request body setStatusRequest true "status"
// @Success 200 {object} response.Response
// @Router /admin/users/{id}/status [patch]
// @Security BearerAuth
func (h *UserHandler) SetUserStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SetUserStatus(c.Param("id"), req.Status); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "User status updated", nil)
}

// CreateAddress godoc
// @Summary Add a delivery address
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.AddressInput true "address"
// @Success 201 {object} response.Response
// @Router /users/addresses [post]
// @Security BearerAuth
func (h *UserHandler) CreateAddress(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	address, err := h.service.CreateAddress(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, address)
}

// ListAddresses godoc
// @Summary List the authenticated user's addresses
// @Tags users
// @Produce json
// @Success 200 {object} response.Response
// @Router /users/addresses [get]
// @Security BearerAuth
func (h *UserHandler) ListAddresses(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	addresses, err := h.service.ListAddresses(claims.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, addresses)
}

// UpdateAddress godoc
// @Summary Update a delivery address
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "address id"
// @Param request body service.AddressInput true "address"
// @Success 200 {object} response.Response
// @Router /users/addresses/{id} [put]
// @Security BearerAuth
func (h *UserHandler) UpdateAddress(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	address, err := h.service.UpdateAddress(claims.UserID, c.Param("id"), input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, address)
}

// DeleteAddress godoc
// @Summary Delete a delivery address
// @Tags users
// @Produce json
// @Param id path string true "address id"
// @Success 200 {object} response.Response
// @Router /users/addresses/{id} [delete]
// @Security BearerAuth
func (h *UserHandler) DeleteAddress(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	if err := h.service.DeleteAddress(claims.UserID, c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Address deleted", nil)
}
