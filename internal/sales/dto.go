package sales

import (
	"github.com/angelmondragon/testmart-backend/pkg/db/models"
	"github.com/angelmondragon/testmart-backend/pkg/types"
)

// SaleDTO is the sale payload returned to clients.
type SaleDTO struct {
	ID          int64      `json:"id"`
	ProductID   int64      `json:"product_id"`
	Quantity    int        `json:"quantity"`
	SaleDate    types.Date `json:"sale_date"`
	TotalAmount string     `json:"total_amount"`
}

func NewSaleDTO(sale *models.Sale) *SaleDTO {
	return &SaleDTO{
		ID:          sale.ID,
		ProductID:   sale.ProductID,
		Quantity:    sale.Quantity,
		SaleDate:    types.NewDate(sale.SaleDate),
		TotalAmount: sale.TotalAmount.StringFixed(2),
	}
}

func NewSaleDTOs(sales []models.Sale) []SaleDTO {
	out := make([]SaleDTO, 0, len(sales))
	for i := range sales {
		out = append(out, *NewSaleDTO(&sales[i]))
	}
	return out
}
