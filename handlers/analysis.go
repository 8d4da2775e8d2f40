package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finance-tracker-go-be/middleware"
	"finance-tracker-go-be/models"
)

// OverviewRow is one category bucket of an expense or income overview.
// Categories with no matching transactions are omitted, not zeroed.
type OverviewRow struct {
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// WalletAnalysisRow sums both flows for one wallet. Wallets with no
// transactions still appear, with zero totals.
type WalletAnalysisRow struct {
	WalletID     uuid.UUID       `json:"walletId"`
	WalletName   string          `json:"walletName"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}

// ExpenseOverview groups the caller's outflows by category.
func (h *Handler) ExpenseOverview(c *fiber.Ctx) error {
	return h.overview(c, models.TypeExpense, nil)
}

// IncomeOverview groups the caller's income by category.
func (h *Handler) IncomeOverview(c *fiber.Ctx) error {
	return h.overview(c, models.TypeIncome, nil)
}

// ExpenseOverviewByPeriod is ExpenseOverview restricted to a period.
func (h *Handler) ExpenseOverviewByPeriod(c *fiber.Ctx) error {
	rng, err := h.periodFromQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return h.overview(c, models.TypeExpense, rng)
}

// IncomeOverviewByPeriod is IncomeOverview restricted to a period.
func (h *Handler) IncomeOverviewByPeriod(c *fiber.Ctx) error {
	rng, err := h.periodFromQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return h.overview(c, models.TypeIncome, rng)
}

// WalletAnalysis sums income and expense flows per caller wallet.
func (h *Handler) WalletAnalysis(c *fiber.Ctx) error {
	return h.walletAnalysis(c, nil)
}

// WalletAnalysisByPeriod is WalletAnalysis restricted to a period.
func (h *Handler) WalletAnalysisByPeriod(c *fiber.Ctx) error {
	rng, err := h.periodFromQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return h.walletAnalysis(c, rng)
}

func (h *Handler) periodFromQuery(c *fiber.Ctx) (*DateRange, error) {
	rng, err := resolvePeriod(c.Query("period"), c.Query("startDate"), c.Query("endDate"), time.Now())
	if err != nil {
		return nil, err
	}
	return &rng, nil
}

func (h *Handler) overview(c *fiber.Ctx, typ models.TransactionType, rng *DateRange) error {
	userID := middleware.UserID(c)

	var rows []OverviewRow
	q := h.DB.Model(&models.Expense{}).
		Select("category_id, SUM(amount) AS total_amount").
		Where("user_id = ? AND type = ?", userID, typ)
	if rng != nil {
		q = q.Where("date BETWEEN ? AND ?", rng.Start, rng.End)
	}
	if err := q.Group("category_id").Scan(&rows).Error; err != nil {
		return internalError(c, err)
	}

	if len(rows) > 0 {
		ids := make([]uuid.UUID, len(rows))
		for i, row := range rows {
			ids[i] = row.CategoryID
		}
		var categories []models.Category
		if err := h.DB.Where("id IN ?", ids).Find(&categories).Error; err != nil {
			return internalError(c, err)
		}
		names := make(map[uuid.UUID]string, len(categories))
		for _, cat := range categories {
			names[cat.ID] = cat.Name
		}
		for i := range rows {
			if name, ok := names[rows[i].CategoryID]; ok {
				rows[i].CategoryName = name
			} else {
				rows[i].CategoryName = "Unknown"
			}
		}
	} else {
		rows = []OverviewRow{}
	}

	return c.JSON(fiber.Map{"data": rows})
}

func (h *Handler) walletAnalysis(c *fiber.Ctx, rng *DateRange) error {
	userID := middleware.UserID(c)

	var wallets []models.Wallet
	if err := h.DB.Where("user_id = ?", userID).Order("created_at").Find(&wallets).Error; err != nil {
		return internalError(c, err)
	}

	type flowSum struct {
		WalletID uuid.UUID
		Type     models.TransactionType
		Total    decimal.Decimal
	}
	var sums []flowSum
	q := h.DB.Model(&models.Expense{}).
		Select("wallet_id, type, SUM(amount) AS total").
		Where("user_id = ?", userID)
	if rng != nil {
		q = q.Where("date BETWEEN ? AND ?", rng.Start, rng.End)
	}
	if err := q.Group("wallet_id, type").Scan(&sums).Error; err != nil {
		return internalError(c, err)
	}

	income := make(map[uuid.UUID]decimal.Decimal, len(sums))
	expense := make(map[uuid.UUID]decimal.Decimal, len(sums))
	for _, s := range sums {
		if s.Type == models.TypeIncome {
			income[s.WalletID] = s.Total
		} else {
			expense[s.WalletID] = s.Total
		}
	}

	rows := make([]WalletAnalysisRow, 0, len(wallets))
	for _, w := range wallets {
		row := WalletAnalysisRow{
			WalletID:     w.ID,
			WalletName:   w.Name,
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
		}
		if v, ok := income[w.ID]; ok {
			row.TotalIncome = v
		}
		if v, ok := expense[w.ID]; ok {
			row.TotalExpense = v
		}
		rows = append(rows, row)
	}

	return c.JSON(fiber.Map{"data": rows})
}
