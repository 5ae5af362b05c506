package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/testmart-backend/pkg/db/dbtest"
	"github.com/angelmondragon/testmart-backend/pkg/db/models"
	"github.com/angelmondragon/testmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/testmart-backend/pkg/errors"
	"github.com/angelmondragon/testmart-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*service, *gorm.DB) {
	t.Helper()
	client := dbtest.NewClient(t)
	svc, err := NewService(NewRepository(client.DB()), client)
	require.NoError(t, err)
	return svc.(*service), client.DB()
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, name string) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Category: "Electronics", Price: decimal.NewFromInt(10)}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func logsFor(t *testing.T, conn *gorm.DB, productID int64) []models.InventoryLog {
	t.Helper()
	var logs []models.InventoryLog
	require.NoError(t, conn.Where("product_id = ?", productID).Order("id ASC").Find(&logs).Error)
	return logs
}

func TestCreateInventoryWritesInitialStockLog(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := mustCreateProduct(t, conn, "Keyboard")

	inv, err := svc.CreateInventory(ctx, product.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, product.ID, inv.ProductID)
	assert.Equal(t, 25, inv.Stock)

	logs := logsFor(t, conn, product.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, 25, logs[0].Change)
	assert.Equal(t, enums.InventoryLogReasonInitialStock, logs[0].Reason)
}

func TestCreateInventoryTwiceConflicts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := mustCreateProduct(t, conn, "Monitor")

	_, err := svc.CreateInventory(ctx, product.ID, 5)
	require.NoError(t, err)

	_, err = svc.CreateInventory(ctx, product.ID, 7)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))

	assert.Len(t, logsFor(t, conn, product.ID), 1)
}

func TestCreateInventoryUnknownProduct(t *testing.T) {
	svc, conn := newTestService(t)

	_, err := svc.CreateInventory(context.Background(), 999, 5)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, "Product with id 999 does not exist", pkgerrors.As(err).Message())

	var count int64
	require.NoError(t, conn.Model(&models.Inventory{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateInventoryRejectsNegativeStock(t *testing.T) {
	svc, conn := newTestService(t)
	product := mustCreateProduct(t, conn, "Cable")

	_, err := svc.CreateInventory(context.Background(), product.ID, -1)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestAdjustStockRecordsDelta(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := mustCreateProduct(t, conn, "Webcam")
	_, err := svc.CreateInventory(ctx, product.ID, 20)
	require.NoError(t, err)

	inv, err := svc.AdjustStock(ctx, product.ID, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, inv.Stock)

	var stored models.Inventory
	require.NoError(t, conn.First(&stored, "product_id = ?", product.ID).Error)
	assert.Equal(t, 12, stored.Stock)

	logs := logsFor(t, conn, product.ID)
	require.Len(t, logs, 2)
	assert.Equal(t, -8, logs[1].Change)
	assert.Equal(t, enums.InventoryLogReasonManualAdjustment, logs[1].Reason)

	_, err = svc.AdjustStock(ctx, product.ID, 30)
	require.NoError(t, err)
	logs = logsFor(t, conn, product.ID)
	assert.Equal(t, 18, logs[2].Change)

	sum := 0
	for _, entry := range logs {
		sum += entry.Change
	}
	assert.Equal(t, 30, sum)
}

func TestAdjustStockMissingInventory(t *testing.T) {
	svc, conn := newTestService(t)
	product := mustCreateProduct(t, conn, "Speaker")

	_, err := svc.AdjustStock(context.Background(), product.ID, 3)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, "Inventory not found", pkgerrors.As(err).Message())
	assert.Empty(t, logsFor(t, conn, product.ID))
}

func TestLowStockAndList(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	for name, stock := range map[string]int{"a": 3, "b": 10, "c": 25, "d": 0} {
		product := mustCreateProduct(t, conn, name)
		_, err := svc.CreateInventory(ctx, product.ID, stock)
		require.NoError(t, err)
	}

	low, err := svc.LowStock(ctx, DefaultLowStockThreshold)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, 0, low[0].Stock)
	assert.Equal(t, 3, low[1].Stock)

	all, err := svc.ListInventory(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ProductID, all[i].ProductID)
	}

	_, err = svc.LowStock(ctx, -1)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestGetInventory(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := mustCreateProduct(t, conn, "Router")
	_, err := svc.CreateInventory(ctx, product.ID, 4)
	require.NoError(t, err)

	inv, err := svc.GetInventory(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, inv.Stock)

	_, err = svc.GetInventory(ctx, product.ID+1)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestListLogsMostRecentFirstWithPaging(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := mustCreateProduct(t, conn, "Tablet")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	_, err := svc.CreateInventory(ctx, product.ID, 10)
	require.NoError(t, err)
	_, err = svc.AdjustStock(ctx, product.ID, 8)
	require.NoError(t, err)
	_, err = svc.AdjustStock(ctx, product.ID, 15)
	require.NoError(t, err)

	logs, err := svc.ListLogs(ctx, product.ID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, 7, logs[0].Change)
	assert.Equal(t, -2, logs[1].Change)
	assert.Equal(t, 10, logs[2].Change)
	assert.Equal(t, "initial stock", logs[2].Reason)

	page, err := svc.ListLogs(ctx, product.ID, pagination.Params{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, -2, page[0].Change)

	_, err = svc.ListLogs(ctx, 404, pagination.Params{})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}
