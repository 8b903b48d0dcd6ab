package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/ledger"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-api/internal/interfaces/console"
	"github.com/jhoicas/ventas-api/pkg/config"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})

	ctx := context.Background()
	pool := postgres.NewConnPool(cfg.Pool.MaxConns, postgres.NewConnFactory(cfg.DB))

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("preparar esquema de PostgreSQL")
	}

	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	menu := console.New(console.Deps{
		Ledger:     ledger.NewUseCase(txRunner),
		ProductUC:  usecase.NewProductUseCase(productRepo),
		SaleUC:     usecase.NewSaleUseCase(saleRepo, movementRepo),
		SupplierUC: usecase.NewSupplierUseCase(supplierRepo),
		ReportUC:   usecase.NewReportUseCase(reportRepo),
	}, os.Stdin, os.Stdout)

	if err := menu.Run(ctx); err != nil {
		log.Error().Err(err).Msg("menú finalizado con error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool.Shutdown(shutdownCtx)
}
