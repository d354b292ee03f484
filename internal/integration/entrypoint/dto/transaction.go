package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for recording a
// ledger entry. An omitted date defaults to the time of recording.
type CreateTransactionRequest struct {
	Title             string          `json:"title" binding:"required,min=1,max=100"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Type              string          `json:"type" binding:"required,oneof=expense income"`
	Category          string          `json:"category" binding:"required,min=1,max=50"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description" binding:"max=500"`
	PaymentMethod     string          `json:"payment_method"`
	Tags              []string        `json:"tags"`
	IsRecurring       bool            `json:"is_recurring"`
	RecurringInterval string          `json:"recurring_interval"`
}

// UpdateTransactionRequest represents the request body for updating a
// ledger entry. Absent fields are left unchanged.
type UpdateTransactionRequest struct {
	Title             *string          `json:"title"`
	Amount            *decimal.Decimal `json:"amount"`
	Type              *string          `json:"type"`
	Category          *string          `json:"category"`
	Date              *time.Time       `json:"date"`
	Description       *string          `json:"description"`
	PaymentMethod     *string          `json:"payment_method"`
	Tags              []string         `json:"tags"`
	IsRecurring       *bool            `json:"is_recurring"`
	RecurringInterval *string          `json:"recurring_interval"`
}

// TransactionResponse represents one ledger entry in API responses.
type TransactionResponse struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Amount            decimal.Decimal `json:"amount"`
	Type              string          `json:"type"`
	Category          string          `json:"category"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description,omitempty"`
	PaymentMethod     string          `json:"payment_method,omitempty"`
	Tags              []string        `json:"tags,omitempty"`
	IsRecurring       bool            `json:"is_recurring"`
	RecurringInterval string          `json:"recurring_interval,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TransactionListResponse represents a paginated list of ledger entries.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

// TransactionResponseFromOutput converts a use case output into its API shape.
func TransactionResponseFromOutput(t *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:                t.ID.String(),
		Title:             t.Title,
		Amount:            t.Amount,
		Type:              string(t.Type),
		Category:          t.Category,
		Date:              t.Date,
		Description:       t.Description,
		PaymentMethod:     t.PaymentMethod,
		Tags:              t.Tags,
		IsRecurring:       t.IsRecurring,
		RecurringInterval: t.RecurringInterval,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
