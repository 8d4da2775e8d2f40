package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType discriminates income from outflow rows.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// SignedAmount returns amount with the sign the type implies for a wallet
// balance: positive for INCOME, negative for EXPENSE.
func SignedAmount(t TransactionType, amount decimal.Decimal) decimal.Decimal {
	if t == TypeIncome {
		return amount
	}
	return amount.Neg()
}

// User mirrors an identity issued by the external auth provider. The ID is
// the provider's subject string; this table is not locally authoritative.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Wallet is a named money container with a denormalized running balance.
type Wallet struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string          `gorm:"not null;index" json:"userId"`
	Name      string          `gorm:"not null" json:"name"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance"`
	Currency  string          `gorm:"not null" json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// Category is a user-owned, typed tag attached to transactions.
type Category struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string          `gorm:"not null;index" json:"userId"`
	Name      string          `gorm:"not null" json:"name"`
	Type      TransactionType `gorm:"not null" json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Expense is a single dated money movement. Despite the name it carries
// both income and outflow rows, discriminated by Type.
type Expense struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string          `gorm:"not null;index" json:"userId"`
	WalletID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"walletId"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"categoryId"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Description   string          `json:"description"`
	AttachmentURL string          `json:"attachmentUrl"`
	Type          TransactionType `gorm:"not null" json:"type"`
	Date          time.Time       `gorm:"index" json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	Wallet   *Wallet   `gorm:"foreignKey:WalletID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
