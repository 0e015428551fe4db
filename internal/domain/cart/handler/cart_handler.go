package handler

import (
	"net/http"

	"marketplace_api/internal/domain/cart/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	service service.CartService
}

func NewCartHandler(s service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

// GetCart godoc
// @Summary Get the authenticated user's cart
// @Tags cart
// @Produce json
// @Success 200 {object} response.Response
// @Router /cart [get]
// @Security BearerAuth
func (h *CartHandler) GetCart(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	cart, err := h.service.GetCart(claims.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, cart)
}

// AddItem godoc
// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body service.CartItemInput true "item"
// @Success 200 {object} response.Response
// @Router /cart/items [post]
// @Security BearerAuth
func (h *CartHandler) AddItem(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.CartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.service.AddItem(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, cart)
}

// UpdateItem godoc
// @Summary Set the quantity of a cart line
// @Tags cart
// @Accept json
// @Produce json
// @Param request body service.CartItemInput true "item"
// @Success 200 {object} response.Response
// @Router /cart/items [put]
// @Security BearerAuth
func (h *CartHandler) UpdateItem(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.CartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.service.UpdateItem(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, cart)
}

// RemoveItem godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Produce json
// @Param productId path string true "product id"
// @Success 200 {object} response.Response
// @Router /cart/items/{productId} [delete]
// @Security BearerAuth
func (h *CartHandler) RemoveItem(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	cart, err := h.service.RemoveItem(claims.UserID, c.Param("productId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, cart)
}

// ClearCart godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Success 200 {object} response.Response
// @Router /cart [delete]
// @Security BearerAuth
func (h *CartHandler) ClearCart(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	if err := h.service.ClearCart(claims.UserID); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Cart cleared", nil)
}
