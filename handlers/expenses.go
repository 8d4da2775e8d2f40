package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-tracker-go-be/middleware"
	"finance-tracker-go-be/models"
)

// ExpenseRequest is the typed create/update payload for ledger entries.
// Amount accepts a JSON number or a numeric string.
type ExpenseRequest struct {
	Amount        decimal.Decimal        `json:"amount"`
	Description   string                 `json:"description"`
	AttachmentURL string                 `json:"attachmentUrl"`
	CategoryID    uuid.UUID              `json:"categoryId"`
	WalletID      uuid.UUID              `json:"walletId"`
	Type          models.TransactionType `json:"type"`
	Date          time.Time              `json:"date"`
}

// validate returns a client-facing message for the first failed check, or
// "" when the payload is acceptable.
func (r *ExpenseRequest) validate() string {
	if !r.Amount.IsPositive() {
		return "Amount is required and must be positive"
	}
	if r.CategoryID == uuid.Nil {
		return "Category is required"
	}
	if r.WalletID == uuid.Nil {
		return "Wallet is required"
	}
	if !r.Type.Valid() {
		return "Type must be either EXPENSE or INCOME"
	}
	if r.Date.IsZero() {
		return "Date is required"
	}
	return ""
}

// ExpenseResponse decorates a ledger row with its category and wallet
// names for list views. The date is a fixed RFC 3339 string.
type ExpenseResponse struct {
	ID            uuid.UUID              `json:"id"`
	UserID        string                 `json:"userId"`
	WalletID      uuid.UUID              `json:"walletId"`
	CategoryID    uuid.UUID              `json:"categoryId"`
	Amount        decimal.Decimal        `json:"amount"`
	Description   string                 `json:"description"`
	AttachmentURL string                 `json:"attachmentUrl"`
	Type          models.TransactionType `json:"type"`
	Date          string                 `json:"date"`
	CategoryName  string                 `json:"categoryName"`
	WalletName    string                 `json:"walletName"`
}

// CreateExpense records a ledger entry and applies its signed amount to
// the owning wallet's balance. Both writes happen in one transaction, so
// the cached balance cannot drift from the ledger on partial failure.
// Balances may go negative; there is intentionally no floor.
func (h *Handler) CreateExpense(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return badRequest(c, msg)
	}

	var wallet models.Wallet
	if err := h.DB.Where("id = ? AND user_id = ?", req.WalletID, userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Wallet not found")
		}
		return internalError(c, err)
	}
	var category models.Category
	if err := h.DB.Where("id = ? AND user_id = ?", req.CategoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category not found")
		}
		return internalError(c, err)
	}

	expense := models.Expense{
		UserID:        userID,
		WalletID:      req.WalletID,
		CategoryID:    req.CategoryID,
		Amount:        req.Amount,
		Description:   req.Description,
		AttachmentURL: req.AttachmentURL,
		Type:          req.Type,
		Date:          req.Date,
	}

	newBalance := wallet.Balance.Add(models.SignedAmount(req.Type, req.Amount))
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		return tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
			Update("balance", newBalance).Error
	})
	if err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"expense": expense})
}

// ListExpenses returns all the caller's ledger entries with category and
// wallet names joined in.
func (h *Handler) ListExpenses(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var expenses []models.Expense
	err := h.DB.Preload("Category").Preload("Wallet").
		Where("user_id = ?", userID).Order("date DESC").Find(&expenses).Error
	if err != nil {
		return internalError(c, err)
	}

	formatted := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp := ExpenseResponse{
			ID:            e.ID,
			UserID:        e.UserID,
			WalletID:      e.WalletID,
			CategoryID:    e.CategoryID,
			Amount:        e.Amount,
			Description:   e.Description,
			AttachmentURL: e.AttachmentURL,
			Type:          e.Type,
			Date:          e.Date.Format(time.RFC3339),
		}
		if e.Category != nil {
			resp.CategoryName = e.Category.Name
		}
		if e.Wallet != nil {
			resp.WalletName = e.Wallet.Name
		}
		formatted = append(formatted, resp)
	}

	return c.JSON(fiber.Map{"expenses": formatted})
}

// GetExpense returns a single caller-owned ledger entry.
func (h *Handler) GetExpense(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid expense id")
	}

	var expense models.Expense
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Expense not found")
		}
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"expense": expense})
}

// UpdateExpense edits a ledger entry. When the wallet, amount, or type
// changed, the old wallet's balance is reversed by the original signed
// amount and the new wallet's balance adjusted by the new one. When both
// wallets are the same row the net delta is applied once, so the revert
// is never lost to a stale read. All writes share one transaction.
func (h *Handler) UpdateExpense(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid expense id")
	}

	var req ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return badRequest(c, msg)
	}

	var expense models.Expense
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Expense not found")
		}
		return internalError(c, err)
	}

	var category models.Category
	if err := h.DB.Where("id = ? AND user_id = ?", req.CategoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category not found")
		}
		return internalError(c, err)
	}

	oldSigned := models.SignedAmount(expense.Type, expense.Amount)
	newSigned := models.SignedAmount(req.Type, req.Amount)
	affectsBalance := req.WalletID != expense.WalletID ||
		!req.Amount.Equal(expense.Amount) || req.Type != expense.Type

	var oldWallet, newWallet models.Wallet
	if affectsBalance {
		if err := h.DB.Where("id = ? AND user_id = ?", expense.WalletID, userID).First(&oldWallet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(c, "Wallet not found")
			}
			return internalError(c, err)
		}
		if req.WalletID == expense.WalletID {
			newWallet = oldWallet
		} else if err := h.DB.Where("id = ? AND user_id = ?", req.WalletID, userID).First(&newWallet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(c, "Wallet not found")
			}
			return internalError(c, err)
		}
	}

	expense.Amount = req.Amount
	expense.Description = req.Description
	expense.AttachmentURL = req.AttachmentURL
	expense.CategoryID = req.CategoryID
	expense.WalletID = req.WalletID
	expense.Type = req.Type
	expense.Date = req.Date

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if affectsBalance {
			if oldWallet.ID == newWallet.ID {
				balance := oldWallet.Balance.Sub(oldSigned).Add(newSigned)
				if err := tx.Model(&models.Wallet{}).Where("id = ?", oldWallet.ID).
					Update("balance", balance).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&models.Wallet{}).Where("id = ?", oldWallet.ID).
					Update("balance", oldWallet.Balance.Sub(oldSigned)).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.Wallet{}).Where("id = ?", newWallet.ID).
					Update("balance", newWallet.Balance.Add(newSigned)).Error; err != nil {
					return err
				}
			}
		}
		return tx.Save(&expense).Error
	})
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"expense": expense})
}

// DeleteExpense removes a ledger entry and reverses its effect on the
// owning wallet's balance in the same transaction.
func (h *Handler) DeleteExpense(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid expense id")
	}

	var expense models.Expense
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Expense not found")
		}
		return internalError(c, err)
	}

	var wallet models.Wallet
	if err := h.DB.Where("id = ? AND user_id = ?", expense.WalletID, userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Wallet not found")
		}
		return internalError(c, err)
	}

	newBalance := wallet.Balance.Sub(models.SignedAmount(expense.Type, expense.Amount))
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Wallet{}).Where("id = ?", wallet.ID).
			Update("balance", newBalance).Error; err != nil {
			return err
		}
		return tx.Delete(&expense).Error
	})
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Expense deleted successfully"})
}
