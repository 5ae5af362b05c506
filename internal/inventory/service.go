package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/testmart-backend/pkg/db"
	"github.com/angelmondragon/testmart-backend/pkg/db/models"
	"github.com/angelmondragon/testmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/testmart-backend/pkg/errors"
	"github.com/angelmondragon/testmart-backend/pkg/pagination"
	"gorm.io/gorm"
)

// DefaultLowStockThreshold applies when callers do not provide a threshold.
const DefaultLowStockThreshold = 10

// Service exposes the inventory ledger.
type Service interface {
	CreateInventory(ctx context.Context, productID int64, initialStock int) (*InventoryDTO, error)
	AdjustStock(ctx context.Context, productID int64, newStock int) (*InventoryDTO, error)
	GetInventory(ctx context.Context, productID int64) (*InventoryDTO, error)
	ListInventory(ctx context.Context) ([]InventoryDTO, error)
	LowStock(ctx context.Context, threshold int) ([]InventoryDTO, error)
	ListLogs(ctx context.Context, productID int64, params pagination.Params) ([]LogDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService wires the inventory ledger with its repository and unit of work.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{
		repo: repo,
		tx:   tx,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// CreateInventory inserts the inventory row and its "initial stock" ledger
// entry in one unit of work.
func (s *service) CreateInventory(ctx context.Context, productID int64, initialStock int) (*InventoryDTO, error) {
	if err := validateStock(initialStock); err != nil {
		return nil, err
	}

	var created *models.Inventory
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindByProductID(ctx, productID); err == nil {
			return conflictError(productID)
		} else if !db.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load inventory")
		}

		exists, err := repo.ProductExists(ctx, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check product")
		}
		if !exists {
			return ProductNotFound(productID)
		}

		at := s.now()
		inv := &models.Inventory{ProductID: productID, Stock: initialStock, LastUpdated: at}
		if err := repo.Create(ctx, inv); err != nil {
			if db.IsUniqueViolation(err, "") {
				return conflictError(productID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory")
		}
		if err := repo.AppendLog(ctx, &models.InventoryLog{
			ProductID: productID,
			Change:    initialStock,
			Reason:    enums.InventoryLogReasonInitialStock,
			ChangedAt: at,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory log")
		}
		created = inv
		return nil
	})
	if err != nil {
		return nil, wrapTxError(err, "create inventory")
	}
	return NewInventoryDTO(created), nil
}

// AdjustStock sets the stock to an absolute value and records the delta.
func (s *service) AdjustStock(ctx context.Context, productID int64, newStock int) (*InventoryDTO, error) {
	if err := validateStock(newStock); err != nil {
		return nil, err
	}

	var updated *models.Inventory
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		inv, err := repo.FindByProductIDForUpdate(ctx, productID)
		if err != nil {
			if db.IsNotFound(err) {
				return InventoryNotFound()
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: lock inventory")
		}

		delta := newStock - inv.Stock
		at := s.now()
		if err := repo.SetStock(ctx, productID, newStock, at); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update stock")
		}
		if err := repo.AppendLog(ctx, &models.InventoryLog{
			ProductID: productID,
			Change:    delta,
			Reason:    enums.InventoryLogReasonManualAdjustment,
			ChangedAt: at,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory log")
		}

		inv.Stock = newStock
		inv.LastUpdated = at
		updated = inv
		return nil
	})
	if err != nil {
		return nil, wrapTxError(err, "adjust stock")
	}
	return NewInventoryDTO(updated), nil
}

func (s *service) GetInventory(ctx context.Context, productID int64) (*InventoryDTO, error) {
	inv, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, InventoryNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load inventory")
	}
	return NewInventoryDTO(inv), nil
}

func (s *service) ListInventory(ctx context.Context) ([]InventoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list inventory")
	}
	return NewInventoryDTOs(rows), nil
}

// LowStock returns rows whose stock is strictly below threshold.
func (s *service) LowStock(ctx context.Context, threshold int) ([]InventoryDTO, error) {
	if threshold < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "threshold must be non-negative")
	}
	rows, err := s.repo.ListBelow(ctx, threshold)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list low stock")
	}
	return NewInventoryDTOs(rows), nil
}

// ListLogs pages through a product's ledger, most recent first.
func (s *service) ListLogs(ctx context.Context, productID int64, params pagination.Params) ([]LogDTO, error) {
	if params.Offset < 0 || params.Limit < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offset and limit must be non-negative")
	}
	exists, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check product")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	entries, err := s.repo.ListLogs(ctx, productID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list inventory logs")
	}
	return NewLogDTOs(entries), nil
}

// ProductNotFound is the error returned when a referenced product is missing.
func ProductNotFound(productID int64) error {
	return pkgerrors.Newf(pkgerrors.CodeNotFound, "Product with id %d does not exist", productID)
}

// InventoryNotFound is the error returned when a product has no inventory row.
func InventoryNotFound() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "Inventory not found")
}

func conflictError(productID int64) error {
	return pkgerrors.Newf(pkgerrors.CodeConflict, "Inventory for product %d already exists", productID)
}

func validateStock(stock int) error {
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}
	return nil
}

func wrapTxError(err error, op string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
