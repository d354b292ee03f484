package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// DeleteTransactionInput represents the input for deleting a ledger entry.
type DeleteTransactionInput struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// DeleteTransactionUseCase soft-deletes a ledger entry. Deleting an expense
// lowers the owning month's category spend by the entry amount.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
	summaryCache    adapter.SummaryCache
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	summaryCache adapter.SummaryCache,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		summaryCache:    summaryCache,
	}
}

// Execute performs the deletion and the budget adjustment.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.UserID != input.UserID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	// The budget adjustment runs before the ledger delete; a failure on
	// either side leaves both stores as they were.
	if transaction.IsExpense() {
		month := entity.MonthKey(transaction.Date)
		_, err := uc.budgetRepo.ApplyExpenseDelta(ctx, transaction.UserID, month, transaction.Category, transaction.Amount, adapter.DeltaDecrease)
		if err != nil {
			return fmt.Errorf("failed to remove expense from budget: %w", err)
		}
	}

	if err := uc.transactionRepo.Delete(ctx, transaction.ID); err != nil {
		if transaction.IsExpense() {
			month := entity.MonthKey(transaction.Date)
			if _, compErr := uc.budgetRepo.ApplyExpenseDelta(ctx, transaction.UserID, month, transaction.Category, transaction.Amount, adapter.DeltaIncrease); compErr != nil {
				slog.Error("Failed to restore budget spend after ledger error",
					"transactionID", transaction.ID,
					"error", compErr,
				)
			}
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if uc.summaryCache != nil {
		if err := uc.summaryCache.Invalidate(ctx, transaction.UserID); err != nil {
			slog.Warn("Failed to invalidate summary cache",
				"userID", transaction.UserID,
				"error", err,
			)
		}
	}

	return nil
}
