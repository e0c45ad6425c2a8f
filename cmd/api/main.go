package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/faktur/internal/config"
	"github.com/MrJamesThe3rd/faktur/internal/export"
	"github.com/MrJamesThe3rd/faktur/internal/history"
	fakturHttp "github.com/MrJamesThe3rd/faktur/internal/http"
	exportHandler "github.com/MrJamesThe3rd/faktur/internal/http/export"
	invoiceHandler "github.com/MrJamesThe3rd/faktur/internal/http/invoice"
	"github.com/MrJamesThe3rd/faktur/internal/printing"
	"github.com/MrJamesThe3rd/faktur/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	repo, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer closer.Close()

	profile, err := printing.LoadProfile(cfg.CompanyProfile)
	if err != nil {
		slog.Error("failed to load company profile", "error", err)
		os.Exit(1)
	}

	historyService := history.NewService(repo, nil)
	historyService.Load(ctx)

	var (
		invoiceH = invoiceHandler.NewHandler(historyService, printing.NewRenderer(profile))
		exportH  = exportHandler.NewHandler(export.NewService(historyService))
	)

	router := fakturHttp.New(fakturHttp.Options{
		CORSOrigins: cfg.API.CORSOrigins,
		JWTSecret:   cfg.API.JWTSecret,
		Timeout:     cfg.Server.Timeout,
	}, invoiceH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port, "storage", cfg.Storage.Driver)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
