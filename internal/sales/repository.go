package sales

import (
	"context"
	"time"

	"github.com/angelmondragon/testmart-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ListFilter narrows sale listings. Date bounds are inclusive.
type ListFilter struct {
	ProductID *int64
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Repository manages persistence for immutable sale records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, sale *models.Sale) error
	List(ctx context.Context, filter ListFilter) ([]models.Sale, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a sales repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Sale, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("sales.*")
	if filter.Category != nil {
		query = query.
			Joins("JOIN products ON products.id = sales.product_id").
			Where("products.category = ?", *filter.Category)
	}
	if filter.ProductID != nil {
		query = query.Where("sales.product_id = ?", *filter.ProductID)
	}
	if filter.StartDate != nil {
		query = query.Where("sales.sale_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("sales.sale_date <= ?", *filter.EndDate)
	}

	var sales []models.Sale
	if err := query.Order("sales.sale_date DESC, sales.id DESC").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}
