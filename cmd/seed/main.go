package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/angelmondragon/testmart-backend/api/routes"
	"github.com/angelmondragon/testmart-backend/pkg/config"
	"github.com/angelmondragon/testmart-backend/pkg/db"
	"github.com/angelmondragon/testmart-backend/pkg/logger"
	"github.com/angelmondragon/testmart-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	reset := flag.Bool("reset", false, "delete existing products, inventory, logs and sales first")
	days := flag.Int("days", defaultDays, "days of sales history to generate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat(),
	})
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "seed": *seed, "days": *days})

	if err := run(ctx, cfg, logg, options{reset: *reset, days: *days, seed: *seed}); err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "demo data created")
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts options) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	svcs, err := routes.BuildServices(dbClient, logg, nil)
	if err != nil {
		return err
	}

	if opts.reset {
		logg.Info(ctx, "clearing existing data")
		if err := resetData(ctx, dbClient); err != nil {
			return err
		}
	}

	summary, err := newSeeder(svcs, logg, opts).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("seeded %d products, %d sales, %d restocks\n", summary.products, summary.sales, summary.restocks)
	return nil
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
