package handler

import (
	"net/http"

	"marketplace_api/internal/domain/product/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

type setProductStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListProducts godoc
// @Summary Browse products
// @Tags products
// @Produce json
// @Param shopId query string false "shop filter"
// @Param categoryId query string false "category filter"
// @Success 200 {object} response.Response
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListProducts(&p, c.Query("shopId"), c.Query("categoryId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// ListAllProducts godoc
// @Summary List products of any status
// @Tags products
// @Produce json
// @Param status query string false "product status filter"
// @Success 200 {object} response.Response
// @Router /admin/products [get]
// @Security BearerAuth
func (h *ProductHandler) ListAllProducts(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.ListAllProducts(&p, c.Query("status"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}

// GetProduct godoc
// @Summary Get a product by id
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} response.Response
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProductByID(c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct godoc
// @Summary List a product in the shopkeeper's shop
// @Tags products
// @Accept json
// @Produce json
// @Param request body service.ProductInput true "product"
// @Success 201 {object} response.Response
// @Router /shopkeeper/products [post]
// @Security BearerAuth
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.service.CreateProduct(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, product)
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param request body service.ProductInput true "product"
// @Success 200 {object} response.Response
// @Router /shopkeeper/products/{id} [put]
// @Security BearerAuth
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.service.UpdateProduct(claims.UserID, c.Param("id"), input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} response.Response
// @Router /shopkeeper/products/{id} [delete]
// @Security BearerAuth
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	if err := h.service.DeleteProduct(claims.UserID, c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Product deleted", nil)
}

// SetProductStatus godoc
// @Summary Activate or deactivate a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param request body setProductStatusRequest true "status"
// @Success 200 {object} response.Response
// @Router /shopkeeper/products/{id}/status [patch]
// @Security BearerAuth
func (h *ProductHandler) SetProductStatus(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var req setProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SetProductStatus(claims.UserID, c.Param("id"), req.Status); err != nil {
		response.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Product status updated", nil)
}

// ListCategories godoc
// @Summary List categories
// @Tags products
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory godoc
// @Summary Create a category (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body service.CategoryInput true "category"
// @Success 201 {object} response.Response
// @Router /admin/categories [post]
// @Security BearerAuth
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.service.CreateCategory(input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, category)
}
