package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"finance-tracker-go-be/middleware"
	"finance-tracker-go-be/models"
)

// CategoryRequest is the create/update payload for categories.
type CategoryRequest struct {
	Name string                 `json:"name"`
	Type models.TransactionType `json:"type"`
}

// CreateCategory adds a typed category for the caller.
func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "Name is required")
	}
	if !req.Type.Valid() {
		return badRequest(c, "Type must be either EXPENSE or INCOME")
	}

	category := models.Category{UserID: userID, Name: req.Name, Type: req.Type}
	if err := h.DB.Create(&category).Error; err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

// ListCategories returns every category owned by the caller.
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var categories []models.Category
	if err := h.DB.Where("user_id = ?", userID).Order("created_at").Find(&categories).Error; err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"categories": categories})
}

// UpdateCategory renames or retypes a caller-owned category.
func (h *Handler) UpdateCategory(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid category id")
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Type != "" && !req.Type.Valid() {
		return badRequest(c, "Type must be either EXPENSE or INCOME")
	}

	var category models.Category
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category not found")
		}
		return internalError(c, err)
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Type != "" {
		category.Type = req.Type
	}

	if err := h.DB.Save(&category).Error; err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"category": category})
}

// DeleteCategory removes a caller-owned category, refusing while
// transactions still reference it.
func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid category id")
	}

	var category models.Category
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category not found")
		}
		return internalError(c, err)
	}

	var refs int64
	if err := h.DB.Model(&models.Expense{}).Where("category_id = ?", category.ID).Count(&refs).Error; err != nil {
		return internalError(c, err)
	}
	if refs > 0 {
		return badRequest(c, "Category still has transactions")
	}

	if err := h.DB.Delete(&category).Error; err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
