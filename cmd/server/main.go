package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/omerfarukdemir/atlasbank-backend/internal/adapter/http"
	"github.com/omerfarukdemir/atlasbank-backend/internal/adapter/repository/memory"
	"github.com/omerfarukdemir/atlasbank-backend/internal/adapter/repository/postgres"
	"github.com/omerfarukdemir/atlasbank-backend/internal/config"
	"github.com/omerfarukdemir/atlasbank-backend/internal/domain"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/auth"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/catalog"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/dashboard"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/ledger"
)

// repositories is the full persistence surface the services need,
// satisfied by either storage backend.
type repositories struct {
	users        domain.UserRepository
	accounts     domain.AccountRepository
	cards        domain.CardRepository
	transactions domain.TransactionRepository
	ledger       domain.LedgerStore
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var repos repositories
	var db *postgres.DB

	switch cfg.Storage {
	case "postgres":
		db, err = postgres.NewDB(cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		repos = repositories{
			users:        postgres.NewUserRepository(db),
			accounts:     postgres.NewAccountRepository(db),
			cards:        postgres.NewCardRepository(db),
			transactions: postgres.NewTransactionRepository(db),
			ledger:       postgres.NewLedgerStore(db),
		}
	case "memory":
		store := memory.NewStore()
		repos = repositories{
			users:        memory.NewUserRepository(store),
			accounts:     memory.NewAccountRepository(store),
			cards:        memory.NewCardRepository(store),
			transactions: memory.NewTransactionRepository(store),
			ledger:       memory.NewLedgerStore(store),
		}
	}

	ledgerSvc := ledger.NewService(repos.accounts, repos.transactions, repos.ledger)
	catalogSvc := catalog.NewService(repos.accounts, repos.cards)
	authSvc := auth.NewService(repos.users, catalogSvc, ledgerSvc, auth.Config{
		TokenSecret:  cfg.TokenSecret,
		TokenTTL:     cfg.TokenTTL,
		WelcomeBonus: cfg.WelcomeBonus,
	})
	dashboardSvc := dashboard.NewDashboardService(repos.users, repos.accounts, repos.transactions, repos.cards)

	app := httpadapter.NewApp(httpadapter.Services{
		Auth:      authSvc,
		Catalog:   catalogSvc,
		Ledger:    ledgerSvc,
		Dashboard: dashboardSvc,
	}, cfg.AllowedOrigins)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "env", cfg.Env, "port", cfg.Port, "storage", cfg.Storage)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()

	<-stop
	slog.Info("shutting down")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	if db != nil {
		if err := db.Close(); err != nil {
			slog.Error("database close failed", "error", err)
		}
	}

	slog.Info("server exited")
}
