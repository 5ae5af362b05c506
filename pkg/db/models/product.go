package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalogue entry. Inventory, sales and ledger rows point
// at it by id; nothing is preloaded implicitly.
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;size:255;not null"`
	Category    string          `gorm:"column:category;size:255;not null;index:idx_products_category"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	Description *string         `gorm:"column:description;type:text"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
