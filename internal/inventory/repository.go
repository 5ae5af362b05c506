package inventory

import (
	"context"
	"time"

	"github.com/angelmondragon/testmart-backend/pkg/db/models"
	"github.com/angelmondragon/testmart-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository manages inventory rows and their append-only ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ProductExists(ctx context.Context, productID int64) (bool, error)
	FindByProductID(ctx context.Context, productID int64) (*models.Inventory, error)
	FindByProductIDForUpdate(ctx context.Context, productID int64) (*models.Inventory, error)
	Create(ctx context.Context, inventory *models.Inventory) error
	SetStock(ctx context.Context, productID int64, stock int, at time.Time) error
	DecrementStock(ctx context.Context, productID int64, quantity int, at time.Time) (bool, error)
	List(ctx context.Context) ([]models.Inventory, error)
	ListBelow(ctx context.Context, threshold int) ([]models.Inventory, error)
	AppendLog(ctx context.Context, entry *models.InventoryLog) error
	ListLogs(ctx context.Context, productID int64, params pagination.Params) ([]models.InventoryLog, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ProductExists(ctx context.Context, productID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) FindByProductID(ctx context.Context, productID int64) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.db.WithContext(ctx).First(&inv, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindByProductIDForUpdate reads the row with SELECT ... FOR UPDATE so the
// caller's transaction holds it until commit. SQLite ignores the clause and
// relies on its single writer instead.
func (r *repository) FindByProductIDForUpdate(ctx context.Context, productID int64) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inv, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) Create(ctx context.Context, inventory *models.Inventory) error {
	return r.db.WithContext(ctx).Create(inventory).Error
}

func (r *repository) SetStock(ctx context.Context, productID int64, stock int, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Inventory{}).
		Where("product_id = ?", productID).
		Updates(map[string]any{
			"stock":        stock,
			"last_updated": at,
		}).Error
}

// DecrementStock subtracts quantity only while enough stock remains. It reports
// false when the guard rejected the update.
func (r *repository) DecrementStock(ctx context.Context, productID int64, quantity int, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Inventory{}).
		Where("product_id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]any{
			"stock":        gorm.Expr("stock - ?", quantity),
			"last_updated": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) List(ctx context.Context) ([]models.Inventory, error) {
	var rows []models.Inventory
	if err := r.db.WithContext(ctx).Order("product_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListBelow(ctx context.Context, threshold int) ([]models.Inventory, error) {
	var rows []models.Inventory
	if err := r.db.WithContext(ctx).
		Where("stock < ?", threshold).
		Order("stock ASC, product_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) AppendLog(ctx context.Context, entry *models.InventoryLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ListLogs(ctx context.Context, productID int64, params pagination.Params) ([]models.InventoryLog, error) {
	params = params.Normalize()
	var logs []models.InventoryLog
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("changed_at DESC, id DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
