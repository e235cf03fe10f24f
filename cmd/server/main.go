package main

import (
	"net/http"

	"github.com/Nikolai0169/Ecommerce/internal/cart"
	"github.com/Nikolai0169/Ecommerce/internal/catalog"
	"github.com/Nikolai0169/Ecommerce/internal/config"
	"github.com/Nikolai0169/Ecommerce/internal/db"
	"github.com/Nikolai0169/Ecommerce/internal/httpapi"
	"github.com/Nikolai0169/Ecommerce/internal/inventory"
	"github.com/Nikolai0169/Ecommerce/internal/logger"
	"github.com/Nikolai0169/Ecommerce/internal/metrics"
	"github.com/Nikolai0169/Ecommerce/internal/middleware"
	"github.com/Nikolai0169/Ecommerce/internal/order"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database, err := db.Open(cfg)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	defer database.Close()

	registry := metrics.NewRegistry()

	catalogRepo := catalog.NewRepository(database)
	catalogSvc := catalog.NewService(catalogRepo, catalog.DiskAssets{Dir: cfg.AssetDir}, registry)

	inventorySvc := inventory.NewService(database)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, catalogRepo, inventorySvc)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, registry)

	api := &httpapi.API{
		Catalog:   catalogSvc,
		Inventory: inventorySvc,
		Cart:      cartSvc,
		Orders:    orderSvc,
	}

	handler := middleware.RequestID(
		middleware.Logging(
			middleware.RateLimit(
				httpapi.NewRouter(api),
			),
		),
	)

	log.Info("server listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
