package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/hvaldez/gestorpro/internal/catalog"
	"github.com/hvaldez/gestorpro/internal/client"
	"github.com/hvaldez/gestorpro/internal/config"
	"github.com/hvaldez/gestorpro/internal/database"
	gestorHttp "github.com/hvaldez/gestorpro/internal/http"
	clientHandler "github.com/hvaldez/gestorpro/internal/http/client"
	importHandler "github.com/hvaldez/gestorpro/internal/http/importcsv"
	paymentHandler "github.com/hvaldez/gestorpro/internal/http/payment"
	productHandler "github.com/hvaldez/gestorpro/internal/http/product"
	reportHandler "github.com/hvaldez/gestorpro/internal/http/report"
	saleHandler "github.com/hvaldez/gestorpro/internal/http/sale"
	"github.com/hvaldez/gestorpro/internal/importer"
	"github.com/hvaldez/gestorpro/internal/sale"
	"github.com/hvaldez/gestorpro/internal/store"
	"github.com/hvaldez/gestorpro/internal/store/postgres"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	persister := postgres.New(db)
	if err := persister.EnsureSchema(ctx); err != nil {
		slog.Error("failed to prepare schema", "error", err)
		os.Exit(1)
	}

	st := store.New(persister)
	if err := st.Load(ctx); err != nil {
		slog.Error("failed to load collections", "error", err)
		os.Exit(1)
	}

	var (
		catalogService = catalog.NewService(st)
		clientService  = client.NewService(st)
		engine         = sale.NewEngine(st)
		importService  = importer.NewService()
	)

	var (
		productH = productHandler.NewHandler(catalogService)
		clientH  = clientHandler.NewHandler(clientService)
		saleH    = saleHandler.NewHandler(engine, st)
		paymentH = paymentHandler.NewHandler(engine, st)
		reportH  = reportHandler.NewHandler(st)
		importH  = importHandler.NewHandler(importService, catalogService)
	)

	router := gestorHttp.New(productH, clientH, saleH, paymentH, reportH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
