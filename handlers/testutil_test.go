package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"finance-tracker-go-be/database"
	"finance-tracker-go-be/models"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Each pooled connection to :memory: would see its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	app := fiber.New()
	RegisterRoutes(app, New(db, "INR", ""), testSecret)
	return app, db
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doRequest(t *testing.T, app *fiber.App, method, path, auth string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeBody(t *testing.T, raw []byte, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, dest))
}

func seedWallet(t *testing.T, db *gorm.DB, userID, name string, balance decimal.Decimal) models.Wallet {
	t.Helper()

	wallet := models.Wallet{UserID: userID, Name: name, Balance: balance, Currency: "INR"}
	require.NoError(t, db.Create(&wallet).Error)
	return wallet
}

func seedCategory(t *testing.T, db *gorm.DB, userID, name string, typ models.TransactionType) models.Category {
	t.Helper()

	category := models.Category{UserID: userID, Name: name, Type: typ}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func seedExpense(t *testing.T, db *gorm.DB, userID string, walletID, categoryID uuid.UUID, amount string, typ models.TransactionType, date time.Time) models.Expense {
	t.Helper()

	expense := models.Expense{
		UserID:     userID,
		WalletID:   walletID,
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		Type:       typ,
		Date:       date,
	}
	require.NoError(t, db.Create(&expense).Error)
	return expense
}

func walletBalance(t *testing.T, db *gorm.DB, id uuid.UUID) decimal.Decimal {
	t.Helper()

	var wallet models.Wallet
	require.NoError(t, db.First(&wallet, "id = ?", id).Error)
	return wallet.Balance
}
