package routes

import (
	"fmt"

	"github.com/angelmondragon/testmart-backend/internal/inventory"
	products "github.com/angelmondragon/testmart-backend/internal/products"
	"github.com/angelmondragon/testmart-backend/internal/revenue"
	"github.com/angelmondragon/testmart-backend/internal/sales"
	"github.com/angelmondragon/testmart-backend/pkg/db"
	"github.com/angelmondragon/testmart-backend/pkg/logger"
	"github.com/angelmondragon/testmart-backend/pkg/metrics"
)

// BuildServices wires repositories and services over a single db client.
// cmd/api and cmd/seed share it so both write through the same ledger rules.
func BuildServices(client *db.Client, logg *logger.Logger, salesMetrics *metrics.SalesMetrics) (Services, error) {
	if client == nil {
		return Services{}, fmt.Errorf("db client required")
	}
	conn := client.DB()

	productRepo := products.NewRepository(conn)
	inventoryRepo := inventory.NewRepository(conn)

	productService, err := products.NewService(productRepo, client)
	if err != nil {
		return Services{}, fmt.Errorf("product service: %w", err)
	}
	inventoryService, err := inventory.NewService(inventoryRepo, client)
	if err != nil {
		return Services{}, fmt.Errorf("inventory service: %w", err)
	}
	salesService, err := sales.NewService(client, sales.NewRepository(conn), productRepo, inventoryRepo, logg, salesMetrics)
	if err != nil {
		return Services{}, fmt.Errorf("sales service: %w", err)
	}
	revenueService, err := revenue.NewService(revenue.NewRepository(conn))
	if err != nil {
		return Services{}, fmt.Errorf("revenue service: %w", err)
	}

	return Services{
		Products:  productService,
		Inventory: inventoryService,
		Sales:     salesService,
		Revenue:   revenueService,
	}, nil
}
