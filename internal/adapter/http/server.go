// Package http exposes the banking services over a JSON REST API.
// Every route lives under /api; everything except register, login and
// health requires a Bearer token.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/auth"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/catalog"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/dashboard"
	"github.com/omerfarukdemir/atlasbank-backend/internal/usecase/ledger"
)

// Services bundles everything the HTTP layer depends on
type Services struct {
	Auth      *auth.Service
	Catalog   *catalog.Service
	Ledger    *ledger.Service
	Dashboard *dashboard.DashboardService
}

// NewApp wires handlers and middleware into a fiber application
func NewApp(svcs Services, allowedOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	authHandler := &AuthHandler{Auth: svcs.Auth}
	accountHandler := &AccountHandler{Catalog: svcs.Catalog}
	ledgerHandler := &LedgerHandler{Ledger: svcs.Ledger}
	dashboardHandler := &DashboardHandler{Dashboard: svcs.Dashboard}

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	private := api.Use(requireAuth(svcs.Auth))

	private.Get("/auth/me", authHandler.Me)

	private.Get("/accounts", accountHandler.ListAccounts)
	private.Post("/accounts", accountHandler.CreateAccount)
	private.Delete("/accounts/:id", accountHandler.CloseAccount)

	private.Get("/accounts/:id/balance", ledgerHandler.GetBalance)
	private.Get("/accounts/:id/transactions", ledgerHandler.ListTransactions)
	private.Post("/accounts/:id/deposit", ledgerHandler.Deposit)
	private.Post("/accounts/:id/withdraw", ledgerHandler.Withdraw)
	private.Post("/accounts/:id/transfer", ledgerHandler.Transfer)
	private.Post("/accounts/:id/pay-bill", ledgerHandler.PayBill)

	private.Get("/cards", accountHandler.ListCards)
	private.Post("/cards", accountHandler.CreateCard)

	private.Get("/dashboard", dashboardHandler.GetOverview)

	return app
}
