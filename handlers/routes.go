package handlers

import (
	"github.com/gofiber/fiber/v2"

	"finance-tracker-go-be/middleware"
)

// RegisterRoutes wires every handler under /v1. Everything except the
// health check and the identity bootstrap sits behind the auth gate.
func RegisterRoutes(app *fiber.App, h *Handler, jwtSecret string) {
	api := app.Group("/v1")

	// Health Check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Identity bootstrap; the only unauthenticated write.
	api.Post("/users", h.UpsertUser)

	auth := middleware.RequireAuth(jwtSecret)

	expenses := api.Group("/expenses", auth)
	expenses.Post("/", h.CreateExpense)
	expenses.Get("/", h.ListExpenses)
	expenses.Get("/:id", h.GetExpense)
	expenses.Put("/:id", h.UpdateExpense)
	expenses.Delete("/:id", h.DeleteExpense)

	wallet := api.Group("/wallet", auth)
	wallet.Post("/", h.CreateWallet)
	wallet.Get("/", h.ListWallets)
	wallet.Put("/:id", h.UpdateWallet)
	wallet.Delete("/:id", h.DeleteWallet)

	category := api.Group("/category", auth)
	category.Post("/", h.CreateCategory)
	category.Get("/", h.ListCategories)
	category.Put("/:id", h.UpdateCategory)
	category.Delete("/:id", h.DeleteCategory)

	analysis := api.Group("/analysis", auth)
	analysis.Get("/expense-overview", h.ExpenseOverview)
	analysis.Get("/expense-overview/period", h.ExpenseOverviewByPeriod)
	analysis.Get("/income-overview", h.IncomeOverview)
	analysis.Get("/income-overview/period", h.IncomeOverviewByPeriod)
	analysis.Get("/wallet-analysis", h.WalletAnalysis)
	analysis.Get("/wallet-analysis/period", h.WalletAnalysisByPeriod)

	api.Post("/scan", auth, h.ScanReceipt)
}
