package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/angelmondragon/testmart-backend/api/routes"
	products "github.com/angelmondragon/testmart-backend/internal/products"
	"github.com/angelmondragon/testmart-backend/internal/sales"
	"github.com/angelmondragon/testmart-backend/pkg/db"
	"github.com/angelmondragon/testmart-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/testmart-backend/pkg/errors"
	"github.com/angelmondragon/testmart-backend/pkg/logger"
	"github.com/angelmondragon/testmart-backend/pkg/types"
)

const (
	defaultDays     = 30
	saleChance      = 0.5
	restockChance   = 0.1
	minInitialStock = 5
	maxInitialStock = 50
)

type demoProduct struct {
	name     string
	category string
	price    string
}

var demoProducts = []demoProduct{
	{name: "Echo Dot", category: "Electronics", price: "49.99"},
	{name: "iPhone 14", category: "Mobiles", price: "999.00"},
	{name: "Air Fryer", category: "Kitchen", price: "120.00"},
	{name: "Samsung TV", category: "Electronics", price: "599.99"},
	{name: "Yoga Mat", category: "Fitness", price: "25.00"},
}

type options struct {
	reset bool
	days  int
	seed  int64
}

type summary struct {
	products int
	sales    int64
	restocks int64
}

type seeder struct {
	svcs  routes.Services
	logg  *logger.Logger
	opts  options
	today time.Time

	sales    atomic.Int64
	restocks atomic.Int64
}

func newSeeder(svcs routes.Services, logg *logger.Logger, opts options) *seeder {
	if opts.days <= 0 {
		opts.days = defaultDays
	}
	return &seeder{svcs: svcs, logg: logg, opts: opts, today: types.DateOf(time.Now().UTC())}
}

// Run creates the catalogue, then replays each product's history
// concurrently. Every write goes through the services, so stock always
// equals the sum of the product's ledger entries.
func (s *seeder) Run(ctx context.Context) (summary, error) {
	created := make([]*products.ProductDTO, 0, len(demoProducts))
	for _, p := range demoProducts {
		dto, err := s.svcs.Products.CreateProduct(ctx, products.CreateProductInput{
			Name:     p.name,
			Category: p.category,
			Price:    decimal.RequireFromString(p.price),
		})
		if err != nil {
			return summary{}, fmt.Errorf("create product %q: %w", p.name, err)
		}
		created = append(created, dto)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, product := range created {
		rng := rand.New(rand.NewPCG(uint64(s.opts.seed), uint64(i)))
		g.Go(func() error {
			return s.seedHistory(gctx, rng, product.ID)
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, err
	}

	return summary{products: len(created), sales: s.sales.Load(), restocks: s.restocks.Load()}, nil
}

func (s *seeder) seedHistory(ctx context.Context, rng *rand.Rand, productID int64) error {
	ctx = s.logg.WithProductID(ctx, productID)

	initial := minInitialStock + rng.IntN(maxInitialStock-minInitialStock+1)
	if _, err := s.svcs.Inventory.CreateInventory(ctx, productID, initial); err != nil {
		return fmt.Errorf("create inventory for product %d: %w", productID, err)
	}

	for day := s.opts.days - 1; day >= 0; day-- {
		date := s.today.AddDate(0, 0, -day)

		if rng.Float64() < restockChance {
			if err := s.restock(ctx, rng, productID); err != nil {
				return err
			}
		}
		if rng.Float64() >= saleChance {
			continue
		}

		_, err := s.svcs.Sales.CreateSale(ctx, sales.CreateSaleInput{
			ProductID: productID,
			Quantity:  1 + rng.IntN(5),
			SaleDate:  date,
		})
		switch {
		case err == nil:
			s.sales.Add(1)
		case pkgerrors.HasCode(err, pkgerrors.CodeInsufficientStock):
			s.logg.Debug(ctx, "seed.sale_skipped")
		default:
			return fmt.Errorf("create sale for product %d: %w", productID, err)
		}
	}
	return nil
}

func (s *seeder) restock(ctx context.Context, rng *rand.Rand, productID int64) error {
	current, err := s.svcs.Inventory.GetInventory(ctx, productID)
	if err != nil {
		return fmt.Errorf("load inventory for product %d: %w", productID, err)
	}
	if _, err := s.svcs.Inventory.AdjustStock(ctx, productID, current.Stock+10+rng.IntN(21)); err != nil {
		return fmt.Errorf("restock product %d: %w", productID, err)
	}
	s.restocks.Add(1)
	return nil
}

// resetData removes all rows in dependency order.
func resetData(ctx context.Context, client *db.Client) error {
	return client.WithTx(ctx, func(tx *gorm.DB) error {
		for _, model := range []any{&models.Sale{}, &models.InventoryLog{}, &models.Inventory{}, &models.Product{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}
