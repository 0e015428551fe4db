package repository

import (
	"marketplace_api/internal/domain/report/model"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(report *model.Report) error
	GetByID(id string) (*model.Report, error)
	GetList(offset, limit int) ([]model.Report, int64, error)
	MarkRead(id string) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) GetByID(id string) (*model.Report, error) {
	var report model.Report
	if err := r.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) GetList(offset, limit int) ([]model.Report, int64, error) {
	var reports []model.Report
	var total int64

	query := r.db.Model(&model.Report{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) MarkRead(id string) error {
	return r.db.Model(&model.Report{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true).Error
}
