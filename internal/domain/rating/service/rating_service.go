package service

import (
	"errors"

	"marketplace_api/internal/domain/rating/model"
	"marketplace_api/internal/domain/rating/repository"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/utils"

	"gorm.io/gorm"
)

type RateInput struct {
	ProductID string `json:"productId" binding:"required"`
	Stars     int    `json:"stars" binding:"required,gte=1,lte=5"`
	Comment   string `json:"comment"`
}

type ProductRatings struct {
	Average float64           `json:"average"`
	Page    *utils.PageResult `json:"page"`
}

type RatingService interface {
	// Rate creates or updates the caller's review of a purchased product.
	Rate(userID string, input RateInput) (*model.Rating, error)
	GetProductRatings(productID string, p *utils.Pagination) (*ProductRatings, error)
}

type ratingService struct {
	repo repository.RatingRepository
}

func NewRatingService(repo repository.RatingRepository) RatingService {
	return &ratingService{repo: repo}
}

func (s *ratingService) Rate(userID string, input RateInput) (*model.Rating, error) {
	purchased, err := s.repo.HasPurchased(userID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, apperrors.NotAcceptable("You can only rate products from completed orders")
	}

	rating, err := s.repo.GetByUserAndProduct(userID, input.ProductID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		rating = &model.Rating{UserID: userID, ProductID: input.ProductID}
		rating.CreatedBy = userID
	}

	rating.Stars = input.Stars
	rating.Comment = input.Comment
	rating.UpdatedBy = userID

	if err := s.repo.Upsert(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) GetProductRatings(productID string, p *utils.Pagination) (*ProductRatings, error) {
	offset, limit := p.GetPageOffset()
	ratings, total, err := s.repo.GetListByProduct(productID, offset, limit)
	if err != nil {
		return nil, err
	}

	avg, err := s.repo.AverageByProduct(productID)
	if err != nil {
		return nil, err
	}

	page := utils.NewPageResult(ratings, total, p)
	return &ProductRatings{Average: avg, Page: &page}, nil
}
