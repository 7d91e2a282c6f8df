package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/idempotency"
	"github.com/nikolayk812/storefront/internal/idgen"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/settlement"
)

// app holds the operations exposed to the request layer.
type app struct {
	Carts     *service.CartService
	Orders    *service.OrderService
	Payments  *service.PaymentService
	Invoices  *service.InvoiceService
	Customers *service.CustomerService
	Catalog   *service.CatalogService
}

func main() {
	configDir := flag.String("config", "./configs", "directory with base.yaml and <env>.yaml")
	envName := flag.String("env", os.Getenv("STOREFRONT_ENV"), "config overlay name, e.g. dev")
	seed := flag.Bool("seed", true, "create missing catalog products from catalog.seed_file")
	flag.Parse()

	if err := run(*configDir, *envName, *seed); err != nil {
		slog.Error("storefront stopped", "error", err)
		os.Exit(1)
	}
}

func run(configDir, envName string, seed bool) error {
	cfg, err := config.Load(configDir, envName)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := logging.Init(logging.Options{
		Component: cfg.App.Name,
		Level:     cfg.App.LogLevel,
		FilePath:  cfg.App.LogFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithCtx(ctx, log)

	pool, err := newPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("db.Migrate: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var opts []service.PaymentOption
	if cfg.IdempotencyEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("rdb.Ping: %w", err)
		}

		store, err := idempotency.NewRedisStore(rdb, cfg.Redis.IdempotencyTTL)
		if err != nil {
			return fmt.Errorf("idempotency.NewRedisStore: %w", err)
		}
		opts = append(opts, service.WithIdempotencyStore(store))
	}

	a, err := newApp(cfg, pool, metrics.New(reg), opts...)
	if err != nil {
		return err
	}

	if seed && cfg.Catalog.SeedFile != "" {
		if err := seedCatalog(ctx, cfg, a.Catalog); err != nil {
			return fmt.Errorf("seedCatalog: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.App.MetricsAddr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	log.Info("storefront ready", "env", cfg.App.Env, "gateway", cfg.Payment.Gateway)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	log.Info("storefront stopped")
	return nil
}

func newPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	if cfg.Postgres.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolCfg.MinConns = cfg.Postgres.MinConns
	}
	if cfg.Postgres.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.Postgres.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}

func newApp(cfg config.Config, pool *pgxpool.Pool, m *metrics.Metrics, opts ...service.PaymentOption) (*app, error) {
	uow, err := repository.NewUnitOfWork(pool)
	if err != nil {
		return nil, fmt.Errorf("repository.NewUnitOfWork: %w", err)
	}

	ids, err := idgen.New(cfg.IDGenConfig())
	if err != nil {
		return nil, fmt.Errorf("idgen.New: %w", err)
	}

	settler, err := settlement.New(cfg.Payment.Gateway)
	if err != nil {
		return nil, fmt.Errorf("settlement.New: %w", err)
	}

	store := cart.NewStore()
	catalog := repository.NewCatalog(pool)
	customers := repository.NewCustomer(pool)
	orders := repository.NewOrder(pool)

	var a app

	if a.Carts, err = service.NewCartService(store, catalog, customers); err != nil {
		return nil, fmt.Errorf("service.NewCartService: %w", err)
	}
	if a.Orders, err = service.NewOrderService(uow, orders, repository.NewFeedback(pool), store, ids, m); err != nil {
		return nil, fmt.Errorf("service.NewOrderService: %w", err)
	}
	if a.Payments, err = service.NewPaymentService(uow, repository.NewPaymentAttempt(pool), store, settler, ids, m, opts...); err != nil {
		return nil, fmt.Errorf("service.NewPaymentService: %w", err)
	}
	if a.Invoices, err = service.NewInvoiceService(uow, orders, repository.NewInvoice(pool)); err != nil {
		return nil, fmt.Errorf("service.NewInvoiceService: %w", err)
	}
	if a.Customers, err = service.NewCustomerService(uow, customers, ids); err != nil {
		return nil, fmt.Errorf("service.NewCustomerService: %w", err)
	}
	if a.Catalog, err = service.NewCatalogService(uow, catalog, ids); err != nil {
		return nil, fmt.Errorf("service.NewCatalogService: %w", err)
	}

	return &a, nil
}

// seedCatalog adds the seed products whose names are not taken yet.
func seedCatalog(ctx context.Context, cfg config.Config, catalog *service.CatalogService) error {
	log := logging.FromCtx(ctx).With("method", "seedCatalog", "file", cfg.Catalog.SeedFile)

	cur, err := cfg.Currency()
	if err != nil {
		return fmt.Errorf("cfg.Currency: %w", err)
	}

	seed, err := config.LoadSeed(cfg.Catalog.SeedFile)
	if err != nil {
		return fmt.Errorf("config.LoadSeed: %w", err)
	}

	products, err := seed.NewProducts(cur)
	if err != nil {
		return fmt.Errorf("seed.NewProducts: %w", err)
	}

	added := 0
	for _, np := range products {
		_, err := catalog.AddProduct(ctx, np)
		if errors.Is(err, domain.ErrConflict) {
			log.Debug("seed product exists", "name", np.Name)
			continue
		}
		if err != nil {
			return fmt.Errorf("catalog.AddProduct[%s]: %w", np.Name, err)
		}
		added++
	}

	log.Info("catalog seeded", "added", added, "total", len(products))
	return nil
}
