// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents a single ledger entry in the Budgetwise system.
// Amount is always strictly positive; direction is carried by Type.
type Transaction struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Title             string
	Amount            decimal.Decimal
	Type              TransactionType
	Category          string
	Date              time.Time
	Description       string
	PaymentMethod     string
	Tags              []string
	IsRecurring       bool
	RecurringInterval string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	title string,
	amount decimal.Decimal,
	transactionType TransactionType,
	category string,
	date time.Time,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Amount:    amount,
		Type:      transactionType,
		Category:  category,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExpense reports whether the transaction is on the expense side of the ledger.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
