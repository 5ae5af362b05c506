package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records a completed sale. TotalAmount is always computed server side
// from the product price at the moment of sale.
type Sale struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   int64           `gorm:"column:product_id;not null;index:idx_sales_product_id"`
	Quantity    int             `gorm:"column:quantity;not null"`
	SaleDate    time.Time       `gorm:"column:sale_date;type:date;not null;index:idx_sales_sale_date"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null"`
}

// All lists every persisted entity in dependency order, for AutoMigrate in
// tests and the embedded SQLite mode.
func All() []any {
	return []any{&Product{}, &Inventory{}, &InventoryLog{}, &Sale{}}
}
