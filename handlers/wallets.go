package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-tracker-go-be/middleware"
	"finance-tracker-go-be/models"
)

// WalletRequest is the create/update payload for wallets. Balance and
// currency are optional on create; a direct balance edit is allowed.
type WalletRequest struct {
	Name     string           `json:"name"`
	Balance  *decimal.Decimal `json:"balance"`
	Currency string           `json:"currency"`
}

// CreateWallet adds a wallet for the caller. Balance defaults to zero and
// currency to the configured default.
func (h *Handler) CreateWallet(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req WalletRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "Name is required")
	}

	wallet := models.Wallet{
		UserID:   userID,
		Name:     req.Name,
		Balance:  decimal.Zero,
		Currency: req.Currency,
	}
	if req.Balance != nil {
		wallet.Balance = *req.Balance
	}
	if wallet.Currency == "" {
		wallet.Currency = h.DefaultCurrency
	}

	if err := h.DB.Create(&wallet).Error; err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"wallet": wallet})
}

// ListWallets returns every wallet owned by the caller.
func (h *Handler) ListWallets(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var wallets []models.Wallet
	if err := h.DB.Where("user_id = ?", userID).Order("created_at").Find(&wallets).Error; err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"wallets": wallets})
}

// UpdateWallet patches name, balance, or currency on a caller-owned wallet.
func (h *Handler) UpdateWallet(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid wallet id")
	}

	var req WalletRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var wallet models.Wallet
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Wallet not found")
		}
		return internalError(c, err)
	}

	if req.Name != "" {
		wallet.Name = req.Name
	}
	if req.Balance != nil {
		wallet.Balance = *req.Balance
	}
	if req.Currency != "" {
		wallet.Currency = req.Currency
	}

	if err := h.DB.Save(&wallet).Error; err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"wallet": wallet})
}

// DeleteWallet removes a caller-owned wallet. Deletion is refused while
// transactions still reference the wallet, so balances stay explainable.
func (h *Handler) DeleteWallet(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid wallet id")
	}

	var wallet models.Wallet
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Wallet not found")
		}
		return internalError(c, err)
	}

	var refs int64
	if err := h.DB.Model(&models.Expense{}).Where("wallet_id = ?", wallet.ID).Count(&refs).Error; err != nil {
		return internalError(c, err)
	}
	if refs > 0 {
		return badRequest(c, "Wallet still has transactions")
	}

	if err := h.DB.Delete(&wallet).Error; err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Wallet deleted successfully"})
}
