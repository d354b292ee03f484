package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for updating a ledger entry.
// Nil pointer fields are left unchanged.
type UpdateTransactionInput struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Title             *string
	Amount            *decimal.Decimal
	Type              *entity.TransactionType
	Category          *string
	Date              *time.Time
	Description       *string
	PaymentMethod     *string
	Tags              []string
	IsRecurring       *bool
	RecurringInterval *string
}

// UpdateTransactionOutput represents the output of updating a ledger entry.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase updates an existing ledger entry. The budget
// adjustment is modeled as removing the old expense side and adding the new
// one, which covers amount, category, month and type changes uniformly.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
	summaryCache    adapter.SummaryCache
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	summaryCache adapter.SummaryCache,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		summaryCache:    summaryCache,
	}
}

// Execute performs the update and the budget adjustment.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	before := *transaction

	if input.Title != nil {
		transaction.Title = *input.Title
	}
	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Type != nil {
		transaction.Type = *input.Type
	}
	if input.Category != nil {
		transaction.Category = *input.Category
	}
	if input.Date != nil {
		transaction.Date = *input.Date
	}
	if input.Description != nil {
		transaction.Description = *input.Description
	}
	if input.PaymentMethod != nil {
		transaction.PaymentMethod = *input.PaymentMethod
	}
	if input.Tags != nil {
		transaction.Tags = input.Tags
	}
	if input.IsRecurring != nil {
		transaction.IsRecurring = *input.IsRecurring
	}
	if input.RecurringInterval != nil {
		transaction.RecurringInterval = *input.RecurringInterval
	}
	transaction.UpdatedAt = time.Now().UTC()

	if err := validateEntry(transaction.Title, transaction.Amount, transaction.Type, transaction.Category, transaction.Description, transaction.Date); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := uc.adjustBudgets(ctx, &before, transaction); err != nil {
		// The caller is told the update failed, so the ledger must show
		// the entry as it was.
		if restoreErr := uc.transactionRepo.Update(ctx, &before); restoreErr != nil {
			slog.Error("Failed to restore ledger entry after budget error",
				"transactionID", before.ID,
				"error", restoreErr,
			)
		}
		return nil, err
	}

	uc.invalidateSummaries(ctx, transaction.UserID)

	return &UpdateTransactionOutput{Transaction: toTransactionOutput(transaction)}, nil
}

// adjustBudgets removes the old expense side and adds the new one. When the
// add fails after the removal succeeded, the removal is re-applied so the
// budget matches the ledger state the caller will observe.
func (uc *UpdateTransactionUseCase) adjustBudgets(ctx context.Context, before, after *entity.Transaction) error {
	if before.IsExpense() {
		month := entity.MonthKey(before.Date)
		_, err := uc.budgetRepo.ApplyExpenseDelta(ctx, before.UserID, month, before.Category, before.Amount, adapter.DeltaDecrease)
		if err != nil {
			return fmt.Errorf("failed to remove previous expense from budget: %w", err)
		}
	}
	if after.IsExpense() {
		month := entity.MonthKey(after.Date)
		_, err := uc.budgetRepo.ApplyExpenseDelta(ctx, after.UserID, month, after.Category, after.Amount, adapter.DeltaIncrease)
		if err != nil {
			if before.IsExpense() {
				m := entity.MonthKey(before.Date)
				if _, compErr := uc.budgetRepo.ApplyExpenseDelta(ctx, before.UserID, m, before.Category, before.Amount, adapter.DeltaIncrease); compErr != nil {
					slog.Error("Failed to restore budget spend after budget error",
						"transactionID", before.ID,
						"error", compErr,
					)
				}
			}
			return fmt.Errorf("failed to propagate updated expense to budget: %w", err)
		}
	}
	return nil
}

func (uc *UpdateTransactionUseCase) invalidateSummaries(ctx context.Context, userID uuid.UUID) {
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
