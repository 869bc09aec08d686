package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/pocket/internal/budget/store"
	"github.com/MrJamesThe3rd/pocket/internal/category"
	categoryStore "github.com/MrJamesThe3rd/pocket/internal/category/store"
	"github.com/MrJamesThe3rd/pocket/internal/config"
	"github.com/MrJamesThe3rd/pocket/internal/database"
	"github.com/MrJamesThe3rd/pocket/internal/events"
	"github.com/MrJamesThe3rd/pocket/internal/export"
	pocketHttp "github.com/MrJamesThe3rd/pocket/internal/http"
	budgetHandler "github.com/MrJamesThe3rd/pocket/internal/http/budget"
	categoryHandler "github.com/MrJamesThe3rd/pocket/internal/http/category"
	exportHandler "github.com/MrJamesThe3rd/pocket/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/pocket/internal/http/importcsv"
	reportHandler "github.com/MrJamesThe3rd/pocket/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/pocket/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocket/internal/importer"
	"github.com/MrJamesThe3rd/pocket/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/pocket/internal/matching/store"
	"github.com/MrJamesThe3rd/pocket/internal/report"
	reportStore "github.com/MrJamesThe3rd/pocket/internal/report/store"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
	txStore "github.com/MrJamesThe3rd/pocket/internal/transaction/store"
	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("pocket stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cal, err := cfg.Calendar()
	if err != nil {
		return err
	}

	dsn := cfg.ConnectionString()

	if err := database.Migrate(cfg.DB.Driver, dsn); err != nil {
		return err
	}

	db, err := database.New(cfg.DB.Driver, dsn)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	hub := watch.NewHub()

	if cfg.AMQP.URL != "" {
		pub, err := events.Dial(cfg.AMQP.URL, cfg.App.Name, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
		if err != nil {
			return err
		}
		defer pub.Close()

		hub.AddSink(pub)
		slog.Info("publishing ledger changes", "exchange", cfg.AMQP.Exchange)
	}

	var (
		categoryService    = category.NewService(categoryStore.New(db), hub)
		transactionService = transaction.NewService(txStore.New(db, cfg.DB.Driver), categoryService, hub, cal)
		reportService      = report.NewService(reportStore.New(db, cal), cal, hub)
		budgetService      = budget.NewService(budgetStore.New(db), categoryService, hub, cal)
		matchingService    = matching.NewService(matchingStore.New(db))
		importService      = importer.NewService(importer.NewParser(cfg.DecimalSeparator(), cal.Location), categoryService, matchingService)
		exportService      = export.NewService(transactionService, cal.Location, cfg.DecimalSeparator())
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Seed.DefaultCategories {
		n, err := categoryService.SeedDefaults(ctx)
		if err != nil {
			return fmt.Errorf("seeding categories: %w", err)
		}

		if n > 0 {
			slog.Info("seeded default categories", "count", n)
		}
	}

	router := pocketHttp.New(pocketHttp.Handlers{
		Categories:   categoryHandler.NewHandler(categoryService),
		Transactions: txHandler.NewHandler(transactionService, cal),
		Reports:      reportHandler.NewHandler(reportService, cal),
		Budgets:      budgetHandler.NewHandler(budgetService),
		Import:       importHandler.NewHandler(importService, transactionService, cfg.MaxUploadBytes()),
		Export:       exportHandler.NewHandler(exportService, cal),
	}, cfg.Server.CORSOrigins)

	// No write timeout: report streams stay open for as long as the client
	// listens.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)

	go func() {
		slog.Info("starting server", "port", cfg.App.Port, "driver", cfg.DB.Driver, "timezone", cal.Location.String())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}
