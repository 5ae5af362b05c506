package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/testmart-backend/internal/inventory"
	product "github.com/angelmondragon/testmart-backend/internal/products"
	"github.com/angelmondragon/testmart-backend/pkg/db"
	"github.com/angelmondragon/testmart-backend/pkg/db/models"
	"github.com/angelmondragon/testmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/testmart-backend/pkg/errors"
	"github.com/angelmondragon/testmart-backend/pkg/logger"
	"github.com/angelmondragon/testmart-backend/pkg/metrics"
	"github.com/angelmondragon/testmart-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service records sales and answers sale queries.
type Service interface {
	CreateSale(ctx context.Context, input CreateSaleInput) (*SaleDTO, error)
	ListSales(ctx context.Context, filter ListFilter) ([]SaleDTO, error)
	ListSalesByProduct(ctx context.Context, productID int64) ([]SaleDTO, error)
	ListSalesByDateRange(ctx context.Context, start, end time.Time) ([]SaleDTO, error)
}

// CreateSaleInput is the caller supplied part of a sale. The total is always
// computed from the current product price.
type CreateSaleInput struct {
	ProductID int64
	Quantity  int
	SaleDate  time.Time
}

// maxTotalAmount is the first value that no longer fits NUMERIC(10,2).
var maxTotalAmount = decimal.New(1, 8)

type txRunner interface {
	WithRetryTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	tx        txRunner
	sales     Repository
	products  product.Repository
	inventory inventory.Repository
	logg      *logger.Logger
	metrics   *metrics.SalesMetrics
	now       func() time.Time
}

// NewService wires the sale transaction processor.
func NewService(
	tx txRunner,
	sales Repository,
	products product.Repository,
	inventoryRepo inventory.Repository,
	logg *logger.Logger,
	salesMetrics *metrics.SalesMetrics,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if sales == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		tx:        tx,
		sales:     sales,
		products:  products,
		inventory: inventoryRepo,
		logg:      logg,
		metrics:   salesMetrics,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// CreateSale runs the check-and-decrement sequence as a single unit of work:
// the inventory row is locked before the stock check, the decrement is guarded
// by stock >= quantity, and the sale and its ledger entry commit together.
func (s *service) CreateSale(ctx context.Context, input CreateSaleInput) (*SaleDTO, error) {
	started := time.Now()
	ctx = s.logg.WithProductID(ctx, input.ProductID)

	if err := validateCreateInput(input); err != nil {
		s.metrics.ObserveFailure(metrics.ReasonInvalidInput, time.Since(started))
		return nil, err
	}
	saleDate := types.DateOf(input.SaleDate)

	var created *models.Sale
	err := s.tx.WithRetryTx(ctx, func(tx *gorm.DB) error {
		created = nil
		products := s.products.WithTx(tx)
		stock := s.inventory.WithTx(tx)
		sales := s.sales.WithTx(tx)

		item, err := products.FindByID(ctx, input.ProductID)
		if err != nil {
			if db.IsNotFound(err) {
				return inventory.ProductNotFound(input.ProductID)
			}
			return err
		}

		inv, err := stock.FindByProductIDForUpdate(ctx, input.ProductID)
		if err != nil {
			if db.IsNotFound(err) {
				return inventory.InventoryNotFound()
			}
			return err
		}
		if inv.Stock < input.Quantity {
			return insufficientStock(inv.Stock, input.Quantity)
		}

		total := item.Price.Mul(decimal.NewFromInt(int64(input.Quantity)))
		if total.GreaterThanOrEqual(maxTotalAmount) {
			return pkgerrors.New(pkgerrors.CodeValidation, "Sale total exceeds the maximum of 99999999.99")
		}

		sale := &models.Sale{
			ProductID:   input.ProductID,
			Quantity:    input.Quantity,
			SaleDate:    saleDate,
			TotalAmount: total,
		}
		if err := sales.Create(ctx, sale); err != nil {
			return err
		}

		at := s.now()
		ok, err := stock.DecrementStock(ctx, input.ProductID, input.Quantity, at)
		if err != nil {
			return err
		}
		if !ok {
			return insufficientStock(inv.Stock, input.Quantity)
		}

		if err := stock.AppendLog(ctx, &models.InventoryLog{
			ProductID: input.ProductID,
			Change:    -input.Quantity,
			Reason:    enums.InventoryLogReasonSale,
			ChangedAt: at,
		}); err != nil {
			return err
		}

		created = sale
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, err, started)
	}

	s.metrics.ObserveSuccess(input.Quantity, time.Since(started))
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"sale_id":      created.ID,
		"quantity":     created.Quantity,
		"total_amount": created.TotalAmount.StringFixed(2),
	}), "sale recorded")
	return NewSaleDTO(created), nil
}

// fail keeps domain errors intact and turns anything else into a generic
// transaction failure.
func (s *service) fail(ctx context.Context, err error, started time.Time) error {
	if typed := pkgerrors.As(err); typed != nil {
		s.metrics.ObserveFailure(failureReason(typed.Code()), time.Since(started))
		return typed
	}
	s.metrics.ObserveFailure(metrics.ReasonTransaction, time.Since(started))
	s.logg.Error(ctx, "sale transaction rolled back", err)
	return pkgerrors.Wrap(pkgerrors.CodeTransaction, err, "Internal server error during sale transaction")
}

func (s *service) ListSales(ctx context.Context, filter ListFilter) ([]SaleDTO, error) {
	normalized, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.sales.List(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sales")
	}
	return NewSaleDTOs(rows), nil
}

func (s *service) ListSalesByProduct(ctx context.Context, productID int64) ([]SaleDTO, error) {
	return s.ListSales(ctx, ListFilter{ProductID: &productID})
}

func (s *service) ListSalesByDateRange(ctx context.Context, start, end time.Time) ([]SaleDTO, error) {
	return s.ListSales(ctx, ListFilter{StartDate: &start, EndDate: &end})
}

func validateCreateInput(input CreateSaleInput) error {
	if input.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.SaleDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale_date is required")
	}
	return nil
}

func normalizeFilter(filter ListFilter) (ListFilter, error) {
	out := ListFilter{ProductID: filter.ProductID}
	if filter.Category != nil {
		if category := strings.TrimSpace(*filter.Category); category != "" {
			out.Category = &category
		}
	}
	if filter.StartDate != nil {
		start := types.DateOf(*filter.StartDate)
		out.StartDate = &start
	}
	if filter.EndDate != nil {
		end := types.DateOf(*filter.EndDate)
		out.EndDate = &end
	}
	if out.StartDate != nil && out.EndDate != nil && out.StartDate.After(*out.EndDate) {
		return ListFilter{}, pkgerrors.New(pkgerrors.CodeValidation, "start_date must not be after end_date")
	}
	return out, nil
}

func insufficientStock(available, requested int) error {
	return pkgerrors.Newf(
		pkgerrors.CodeInsufficientStock,
		"Not enough stock. Available: %d, Requested: %d", available, requested,
	).WithDetails(map[string]int{"available": available, "requested": requested})
}

func failureReason(code pkgerrors.Code) string {
	switch code {
	case pkgerrors.CodeNotFound:
		return metrics.ReasonNotFound
	case pkgerrors.CodeInsufficientStock:
		return metrics.ReasonInsufficientStock
	case pkgerrors.CodeValidation:
		return metrics.ReasonInvalidInput
	default:
		return metrics.ReasonTransaction
	}
}
