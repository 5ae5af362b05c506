package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/testmart-backend/api/controllers"
	"github.com/angelmondragon/testmart-backend/api/middleware"
	"github.com/angelmondragon/testmart-backend/internal/inventory"
	products "github.com/angelmondragon/testmart-backend/internal/products"
	"github.com/angelmondragon/testmart-backend/internal/revenue"
	"github.com/angelmondragon/testmart-backend/internal/sales"
	"github.com/angelmondragon/testmart-backend/pkg/config"
	"github.com/angelmondragon/testmart-backend/pkg/logger"
	"github.com/angelmondragon/testmart-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/testmart-backend/pkg/redis"
)

// Services groups the domain services exposed over HTTP.
type Services struct {
	Products  products.Service
	Inventory inventory.Service
	Sales     sales.Service
	Revenue   revenue.Service
}

// Deps holds the infrastructure the router needs. Redis and Idempotency may
// be nil when redis is not configured.
type Deps struct {
	DB          controllers.Pinger
	Redis       controllers.Pinger
	Idempotency pkgredis.IdempotencyStore
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps, svcs Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Idempotency(deps.Idempotency, cfg.Idempotency.TTL, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(svcs.Products, logg))
			r.Get("/", controllers.ListProducts(svcs.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(svcs.Products, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(svcs.Products, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(svcs.Products, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/", controllers.CreateInventory(svcs.Inventory, logg))
			r.Get("/", controllers.ListInventory(svcs.Inventory, logg))
			r.Get("/low-stock", controllers.LowStock(svcs.Inventory, cfg.Inventory.LowStockThreshold, logg))
			r.Get("/{productId}", controllers.GetInventory(svcs.Inventory, logg))
			r.Put("/{productId}", controllers.AdjustStock(svcs.Inventory, logg))
			r.Get("/{productId}/logs", controllers.InventoryLogs(svcs.Inventory, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", controllers.CreateSale(svcs.Sales, logg))
			r.Get("/", controllers.ListSales(svcs.Sales, logg))
			r.Get("/revenue", controllers.RevenueByPeriod(svcs.Revenue, logg))
			r.Get("/revenue/comparison", controllers.RevenueComparison(svcs.Revenue, logg))
		})
	})

	return r
}
