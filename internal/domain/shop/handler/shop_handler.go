package handler

import (
	"net/http"

	"marketplace_api/internal/domain/shop/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	service service.ShopService
}

func NewShopHandler(s service.ShopService) *ShopHandler {
	return &ShopHandler{service: s}
}

type reviewShopRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateShop godoc
// @Summary Open a shop
// @Tags shops
// @Accept json
// @Produce json
// @Param request body service.ShopInput true "shop"
// @Success 201 {object} response.Response
// @Router /shops [post]
// @Security BearerAuth
func (h *ShopHandler) CreateShop(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.ShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	shop, err := h.service.CreateShop(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, shop)
}

// GetShop godoc
// @Summary Get a shop by id
// @Tags shops
// @Produce json
// @Param id path string true "shop id"
// @Success 200 {object} response.Response
// @Router /shops/{id} [get]
func (h *ShopHandler) GetShop(c *gin.Context) {
	shop, err := h.service.GetShopByID(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, shop)
}

// ListShops godoc
// @Summary List shops
// @Tags shops
// @Produce json
// @Param status query string false "status filter"
// @Success 200 {object} response.Response
// @Router /shops [get]
func (h *ShopHandler) ListShops(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListShops(&p, c.Query("status"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// GetMyShop godoc
// @Summary Get the authenticated user's shop
// @Tags shops
// @Produce json
// @Success 200 {object} response.Response
// @Router /shopkeeper/shop [get]
// @Security BearerAuth
func (h *ShopHandler) GetMyShop(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	shop, err := h.service.GetMyShop(claims.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, shop)
}

// UpdateMyShop godoc
// @Summary Update the authenticated user's shop
// @Tags shops
// @Accept json
// @Produce json
// @Param request body service.ShopInput true "shop"
// @Success 200 {object} response.Response
// @Router /shopkeeper/shop [put]
// @Security BearerAuth
func (h *ShopHandler) UpdateMyShop(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.ShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	shop, err := h.service.UpdateShop(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, shop)
}

// ReviewShop godoc
// @Summary Approve or reject a shop (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "shop id"
// @Param request body reviewShopRequest true "status"
// @Success 200 {object} response.Response
// @Router /admin/shops/{id}/review [patch]
// @Security BearerAuth
func (h *ShopHandler) ReviewShop(c *gin.Context) {
	var req reviewShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	shop, err := h.service.ReviewShop(c.Param("id"), req.Status)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Shop reviewed", shop)
}
