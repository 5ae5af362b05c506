package models

import (
	"time"

	"github.com/angelmondragon/testmart-backend/pkg/enums"
)

// InventoryLog is one append-only ledger entry. Change is signed: positive for
// initial stock and restocks, negative for sales.
type InventoryLog struct {
	ID        int64                    `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64                    `gorm:"column:product_id;not null;index:idx_inventory_log_product_changed,priority:1"`
	Change    int                      `gorm:"column:change;not null"`
	Reason    enums.InventoryLogReason `gorm:"column:reason;size:32;not null"`
	ChangedAt time.Time                `gorm:"column:changed_at;not null;index:idx_inventory_log_product_changed,priority:2"`
}

func (InventoryLog) TableName() string { return "inventory_log" }
