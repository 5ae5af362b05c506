package inventory

import (
	"time"

	"github.com/angelmondragon/testmart-backend/pkg/db/models"
)

// InventoryDTO exposes the stock level for one product.
type InventoryDTO struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	Stock       int       `json:"stock"`
	LastUpdated time.Time `json:"last_updated"`
}

// LogDTO is one ledger entry.
type LogDTO struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Change    int       `json:"change"`
	Reason    string    `json:"reason"`
	ChangedAt time.Time `json:"changed_at"`
}

func NewInventoryDTO(inv *models.Inventory) *InventoryDTO {
	return &InventoryDTO{
		ID:          inv.ID,
		ProductID:   inv.ProductID,
		Stock:       inv.Stock,
		LastUpdated: inv.LastUpdated,
	}
}

func NewInventoryDTOs(rows []models.Inventory) []InventoryDTO {
	out := make([]InventoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewInventoryDTO(&rows[i]))
	}
	return out
}

func NewLogDTOs(entries []models.InventoryLog) []LogDTO {
	out := make([]LogDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, LogDTO{
			ID:        entry.ID,
			ProductID: entry.ProductID,
			Change:    entry.Change,
			Reason:    entry.Reason.String(),
			ChangedAt: entry.ChangedAt,
		})
	}
	return out
}
