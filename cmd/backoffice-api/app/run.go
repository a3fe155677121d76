package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/aq2208/backoffice-api/configs"
	"github.com/aq2208/backoffice-api/internal/adapter/cache"
	httpadapter "github.com/aq2208/backoffice-api/internal/adapter/http"
	"github.com/aq2208/backoffice-api/internal/adapter/http/middleware"
	"github.com/aq2208/backoffice-api/internal/adapter/repo"
	"github.com/aq2208/backoffice-api/internal/logging"
	"github.com/aq2208/backoffice-api/internal/usecase"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Run wires the whole service and blocks serving HTTP.
func Run(cfg configs.Config, env string) error {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile, logging.ParseLevel(cfg.App.LogLevel))

	// monetary fields serialize as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	customerRepo := repo.NewMySQLCustomerRepo(db)
	productRepo := repo.NewMySQLProductRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)

	customerCache := cache.NewCustomerCache(cfg.Cache.TTL)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)

	customers := usecase.NewCustomers(customerRepo, customerCache)
	products := usecase.NewProducts(productRepo)
	orders := usecase.NewOrders(orderRepo, customerRepo, productRepo, idem)
	reports := usecase.NewReports(orderRepo, customerRepo)

	router := httpadapter.NewRouter(httpadapter.Handlers{
		Customers: httpadapter.NewCustomerHandler(customers),
		Products:  httpadapter.NewProductHandler(products),
		Orders:    httpadapter.NewOrderHandler(orders),
		Reports:   httpadapter.NewReportHandler(reports),
		Token:     httpadapter.NewTokenHandler(cfg),
	}, middleware.NewAuthz(cfg))

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
	logger.Info("backoffice-api starting", "env", env, "addr", cfg.App.HTTPAddr)
	return srv.ListenAndServe()
}
