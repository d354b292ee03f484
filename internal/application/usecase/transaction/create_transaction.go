package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
)

// CreateTransactionInput represents the input for recording a ledger entry.
// A zero Date defaults to the time of recording.
type CreateTransactionInput struct {
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
}

// CreateTransactionOutput represents the output of recording a ledger entry.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase records a new ledger entry. An expense entry also
// raises the owning month's category spend by the entry amount; income never
// touches category spend.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
	summaryCache    adapter.SummaryCache
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	summaryCache adapter.SummaryCache,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		summaryCache:    summaryCache,
	}
}

// Execute performs the ledger write and budget propagation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}
	if err := validateEntry(input.Title, input.Amount, input.Type, input.Category, input.Description, input.Date); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Title,
		input.Amount,
		input.Type,
		input.Category,
		input.Date,
	)
	transaction.Description = input.Description
	transaction.PaymentMethod = input.PaymentMethod
	transaction.Tags = input.Tags
	transaction.IsRecurring = input.IsRecurring
	transaction.RecurringInterval = input.RecurringInterval

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if transaction.IsExpense() {
		month := entity.MonthKey(transaction.Date)
		_, err := uc.budgetRepo.ApplyExpenseDelta(ctx, transaction.UserID, month, transaction.Category, transaction.Amount, adapter.DeltaIncrease)
		if err != nil {
			// The caller is told the write failed, so the ledger entry
			// must not survive either.
			if delErr := uc.transactionRepo.Delete(ctx, transaction.ID); delErr != nil {
				slog.Error("Failed to roll back ledger entry after budget error",
					"transactionID", transaction.ID,
					"error", delErr,
				)
			}
			return nil, fmt.Errorf("failed to propagate expense to budget: %w", err)
		}
	}

	uc.invalidateSummaries(ctx, transaction.UserID)

	return &CreateTransactionOutput{Transaction: toTransactionOutput(transaction)}, nil
}

// invalidateSummaries drops the user's cached reporting results. A cache
// failure must not fail the ledger write; readers fall back to the database.
func (uc *CreateTransactionUseCase) invalidateSummaries(ctx context.Context, userID uuid.UUID) {
	if uc.summaryCache == nil {
		return
	}
	if err := uc.summaryCache.Invalidate(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate summary cache",
			"userID", userID,
			"error", err,
		)
	}
}
