package repository

import (
	"marketplace_api/internal/domain/product/model"
	"marketplace_api/pkg/apperrors"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	GetByID(id string) (*model.Product, error)
	GetByIDs(ids []string) ([]model.Product, error)
	GetList(offset, limit int, shopID, categoryID string) ([]model.Product, int64, error)
	// GetListAdmin lists products of any status; empty status means all.
	GetListAdmin(offset, limit int, status string) ([]model.Product, int64, error)
	Update(product *model.Product) error
	Delete(product *model.Product) error
	// DecrementStock conditionally takes qty units off the shelf. The update
	// only applies while enough stock remains, so concurrent checkouts
	// cannot oversell. Pass the enclosing transaction handle, or nil to run
	// standalone.
	DecrementStock(tx *gorm.DB, productID string, qty int) error
	RestoreStock(tx *gorm.DB, productID string, qty int) error

	CreateCategory(category *model.Category) error
	GetCategories() ([]model.Category, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Categories").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ids []string) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetList(offset, limit int, shopID, categoryID string) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.Model(&model.Product{}).Where("status = ?", model.ProductActive)
	if shopID != "" {
		query = query.Where("shop_id = ?", shopID)
	}
	if categoryID != "" {
		query = query.Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Where("pc.category_id = ?", categoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Categories").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) GetListAdmin(offset, limit int, status string) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.Model(&model.Product{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Categories").Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(product *model.Product) error {
	return r.db.Delete(product).Error
}

func (r *productRepository) DecrementStock(tx *gorm.DB, productID string, qty int) error {
	db := r.db
	if tx != nil {
		db = tx
	}

	result := db.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotAcceptable("Product is out of stock")
	}
	return nil
}

func (r *productRepository) RestoreStock(tx *gorm.DB, productID string, qty int) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.Model(&model.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}

func (r *productRepository) CreateCategory(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *productRepository) GetCategories() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
