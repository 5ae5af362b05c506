package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/testmart-backend/api/routes"
	"github.com/angelmondragon/testmart-backend/pkg/db/dbtest"
	"github.com/angelmondragon/testmart-backend/pkg/db/models"
	"github.com/angelmondragon/testmart-backend/pkg/logger"
)

func TestSeederKeepsLedgerConsistent(t *testing.T) {
	client := dbtest.NewClient(t)
	svcs, err := routes.BuildServices(client, logger.Nop(), nil)
	require.NoError(t, err)

	got, err := newSeeder(svcs, logger.Nop(), options{days: 10, seed: 42}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(demoProducts), got.products)

	conn := client.DB()
	var inventories []models.Inventory
	require.NoError(t, conn.Find(&inventories).Error)
	require.Len(t, inventories, len(demoProducts))

	for _, inv := range inventories {
		var total int64
		require.NoError(t, conn.Model(&models.InventoryLog{}).
			Where("product_id = ?", inv.ProductID).
			Select("COALESCE(SUM(change), 0)").Scan(&total).Error)
		assert.Equal(t, int64(inv.Stock), total, "product %d", inv.ProductID)
		assert.GreaterOrEqual(t, inv.Stock, 0)
	}

	var saleCount int64
	require.NoError(t, conn.Model(&models.Sale{}).Count(&saleCount).Error)
	assert.Equal(t, got.sales, saleCount)

	require.NoError(t, resetData(context.Background(), client))
	var remaining int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&remaining).Error)
	assert.Zero(t, remaining)
}
