package handler

import (
	"net/http"

	"marketplace_api/internal/domain/wishlist/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	service service.WishlistService
}

func NewWishlistHandler(s service.WishlistService) *WishlistHandler {
	return &WishlistHandler{service: s}
}

type addWishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// Add godoc
// @Summary Add a product to the wishlist
// @Tags wishlist
// @Accept json
// @Produce json
// @Param request body addWishlistRequest true "product"
// @Success 200 {object} response.Response
// @Router /wishlist [post]
// @Security BearerAuth
func (h *WishlistHandler) Add(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var req addWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Add(claims.UserID, req.ProductID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Product added to wishlist", nil)
}

// Remove godoc
// @Summary Remove a product from the wishlist
// @Tags wishlist
// @Produce json
// @Param productId path string true "product id"
// @Success 200 {object} response.Response
// @Router /wishlist/{productId} [delete]
// @Security BearerAuth
func (h *WishlistHandler) Remove(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	if err := h.service.Remove(claims.UserID, c.Param("productId")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Product removed from wishlist", nil)
}

// List godoc
// @Summary List the authenticated user's wishlist
// @Tags wishlist
// @Produce json
// @Success 200 {object} response.Response
// @Router /wishlist [get]
// @Security BearerAuth
func (h *WishlistHandler) List(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.List(claims.UserID, &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}
