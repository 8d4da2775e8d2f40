package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler bundles the dependencies every route handler needs. The gorm
// handle is constructed once at startup and injected here; handlers never
// reach for package-level state.
type Handler struct {
	DB              *gorm.DB
	DefaultCurrency string
	GeminiAPIKey    string
}

func New(db *gorm.DB, defaultCurrency, geminiAPIKey string) *Handler {
	return &Handler{
		DB:              db,
		DefaultCurrency: defaultCurrency,
		GeminiAPIKey:    geminiAPIKey,
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": msg})
}

// internalError logs the underlying cause and returns a generic body. The
// raw error never reaches the client.
func internalError(c *fiber.Ctx, err error) error {
	log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
}
