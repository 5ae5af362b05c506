package revenue

import (
	"context"
	"time"

	"github.com/angelmondragon/testmart-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleAmount is the projection of a sale needed for bucketing.
type SaleAmount struct {
	SaleDate    time.Time
	TotalAmount decimal.Decimal
}

// Repository streams sale amounts without loading the full table in memory.
type Repository interface {
	EachSale(ctx context.Context, category *string, fn func(SaleAmount) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) EachSale(ctx context.Context, category *string, fn func(SaleAmount) error) error {
	query := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("sales.sale_date, sales.total_amount")
	if category != nil {
		query = query.
			Joins("JOIN products ON products.id = sales.product_id").
			Where("products.category = ?", *category)
	}

	rows, err := query.Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row SaleAmount
		if err := rows.Scan(&row.SaleDate, &row.TotalAmount); err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return rows.Err()
}
