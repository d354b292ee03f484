package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// TransactionOutput represents one ledger entry in use case outputs.
type TransactionOutput struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Title             string
	Amount            decimal.Decimal
	Type              entity.TransactionType
	Category          string
	Date              time.Time
	Description       string
	PaymentMethod     string
	Tags              []string
	IsRecurring       bool
	RecurringInterval string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func toTransactionOutput(t *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:                t.ID,
		UserID:            t.UserID,
		Title:             t.Title,
		Amount:            t.Amount,
		Type:              t.Type,
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
