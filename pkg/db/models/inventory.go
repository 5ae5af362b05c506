package models

import "time"

// Inventory is the materialized stock level for exactly one product.
type Inventory struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   int64     `gorm:"column:product_id;not null;uniqueIndex:idx_inventory_product_id"`
	Stock       int       `gorm:"column:stock;not null"`
	LastUpdated time.Time `gorm:"column:last_updated;autoUpdateTime"`
}

func (Inventory) TableName() string { return "inventory" }
