package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-tracker-go-be/models"
)

// UserRequest is the identity-bootstrap payload sent after the client
// completes signup with the auth provider.
type UserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	ClerkID string `json:"clerkId"`
}

// UpsertUser registers an externally-authenticated identity. First sight
// of a user also provisions their default "Cash" wallet with a zero
// balance, in the same transaction as the user row.
func (h *Handler) UpsertUser(c *fiber.Ctx) error {
	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.ClerkID == "" {
		return badRequest(c, "Missing required fields")
	}

	var existing models.User
	err := h.DB.Where("id = ?", req.ClerkID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"clerkId": existing.ID})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalError(c, err)
	}

	user := models.User{ID: req.ClerkID, Name: req.Name, Email: req.Email}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		wallet := models.Wallet{
			UserID:   user.ID,
			Name:     "Cash",
			Balance:  decimal.Zero,
			Currency: h.DefaultCurrency,
		}
		return tx.Create(&wallet).Error
	})
	if err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"clerkId": user.ID})
}
