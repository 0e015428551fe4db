package handler

import (
	"net/http"

	"marketplace_api/internal/domain/rating/service"
	"marketplace_api/internal/pkg/middleware"
	"marketplace_api/pkg/response"
	"marketplace_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	service service.RatingService
}

func NewRatingHandler(s service.RatingService) *RatingHandler {
	return &RatingHandler{service: s}
}

// Rate godoc
// @Summary Rate a purchased product
// @Tags ratings
// @Accept json
// @Produce json
// @Param request body service.RateInput true "rating"
// @Success 200 {object} response.Response
// @Router /ratings [post]
// @Security BearerAuth
func (h *RatingHandler) Rate(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var input service.RateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	rating, err := h.service.Rate(claims.UserID, input)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, rating)
}

// GetProductRatings godoc
// @Summary List a product's ratings with the average
// @Tags ratings
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} response.Response
// @Router /products/{id}/ratings [get]
func (h *RatingHandler) GetProductRatings(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.GetProductRatings(c.Param("id"), &p)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}
