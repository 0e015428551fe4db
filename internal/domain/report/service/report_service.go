package service

import (
	"errors"

	"marketplace_api/internal/domain/report/model"
	"marketplace_api/internal/domain/report/repository"
	"marketplace_api/pkg/apperrors"
	"marketplace_api/pkg/utils"

	"gorm.io/gorm"
)

type CreateReportInput struct {
	Title string  `json:"title" binding:"required,max=255"`
	Body  string  `json:"body" binding:"required"`
	Image *string `json:"image"`
}

type ReportService interface {
	CreateReport(senderID string, input CreateReportInput) (*model.Report, error)
	ListReports(p *utils.Pagination) (*utils.PageResult, error)
	MarkReportRead(id string) error
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) CreateReport(senderID string, input CreateReportInput) (*model.Report, error) {
	report := &model.Report{
		SenderID: senderID,
		Title:    input.Title,
		Body:     input.Body,
		Image:    input.Image,
	}
	report.CreatedBy = senderID

	if err := s.repo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) ListReports(p *utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.GetPageOffset()
	reports, total, err := s.repo.GetList(offset, limit)
	if err != nil {
		return nil, err
	}
	result := utils.NewPageResult(reports, total, p)
	return &result, nil
}

func (s *reportService) MarkReportRead(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Report not found")
		}
		return err
	}
	return s.repo.MarkRead(id)
}
