package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"
)

// ScanRequest carries the raw text an external OCR service read off a
// receipt image. The image itself never reaches this backend.
type ScanRequest struct {
	Text string `json:"text"`
}

// ScanSuggestion is the structured expense draft extracted from the
// receipt text. The client prefills the add-expense form with it.
type ScanSuggestion struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ScanReceipt asks Gemini to turn OCR'd receipt text into an expense
// suggestion. Failures here are never fatal for the client flow; it can
// always fall back to manual entry.
func (h *Handler) ScanReceipt(c *fiber.Ctx) error {
	var req ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return badRequest(c, "Receipt text is required")
	}

	if h.GeminiAPIKey == "" {
		log.Println("scan requested but GEMINI_API_KEY not set")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Receipt scanning is not configured"})
	}

	var prompt strings.Builder
	prompt.WriteString("You are a receipt parser. Extract the total amount, a short description, and a likely spending category from this OCR text.\n")
	prompt.WriteString("Return a RAW JSON object. Do NOT use markdown formatting.\n")
	prompt.WriteString("The object must have: 'amount' (numeric string), 'description', and 'category' (e.g., Food, Transport, Utilities, Entertainment, Healthcare).\n\n")
	prompt.WriteString(fmt.Sprintf("Receipt text:\n%s\n", req.Text))

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: h.GeminiAPIKey})
	if err != nil {
		return internalError(c, err)
	}

	resp, err := client.Models.GenerateContent(ctx, "gemini-1.5-flash", genai.Text(prompt.String()), nil)
	if err != nil {
		return internalError(c, err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return internalError(c, fmt.Errorf("empty response from AI"))
	}

	rawText := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			rawText += part.Text
		}
	}

	// Clean Markdown if present (Gemini loves adding ```json ... ```)
	rawText = strings.TrimSpace(rawText)
	rawText = strings.TrimPrefix(rawText, "```json")
	rawText = strings.TrimPrefix(rawText, "```")
	rawText = strings.TrimSuffix(rawText, "```")

	var suggestion ScanSuggestion
	if err := json.Unmarshal([]byte(rawText), &suggestion); err != nil {
		log.Printf("failed to parse AI response: %v. Raw text: %s", err, rawText)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to parse AI response"})
	}

	return c.JSON(fiber.Map{"suggestion": suggestion})
}
