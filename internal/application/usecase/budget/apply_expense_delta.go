package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// ApplyExpenseDeltaInput represents one spend adjustment propagated from the
// expense ledger to the owning month's budget.
type ApplyExpenseDeltaInput struct {
	UserID    uuid.UUID
	Month     string
	Category  string
	Amount    decimal.Decimal
	Direction adapter.DeltaDirection
}

// ApplyExpenseDeltaOutput represents the output of a spend adjustment.
type ApplyExpenseDeltaOutput struct {
	Budget *BudgetOutput
}

// ApplyExpenseDeltaUseCase adjusts one category's recorded spend when an
// expense entry is created, updated or deleted. The repository performs the
// adjustment atomically so concurrent ledger writes for the same month never
// lose an update.
type ApplyExpenseDeltaUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewApplyExpenseDeltaUseCase creates a new ApplyExpenseDeltaUseCase instance.
func NewApplyExpenseDeltaUseCase(budgetRepo adapter.BudgetRepository) *ApplyExpenseDeltaUseCase {
	return &ApplyExpenseDeltaUseCase{budgetRepo: budgetRepo}
}

// Execute validates and applies the spend delta.
func (uc *ApplyExpenseDeltaUseCase) Execute(ctx context.Context, input ApplyExpenseDeltaInput) (*ApplyExpenseDeltaOutput, error) {
	if err := validateMonth(input.Month); err != nil {
		return nil, err
	}
	if input.Category == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidCategoryName,
			"category is required",
			domainerror.ErrInvalidCategoryName,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidDeltaAmount,
			"delta amount must be positive",
			domainerror.ErrInvalidDeltaAmount,
		)
	}

	budget, err := uc.budgetRepo.ApplyExpenseDelta(ctx, input.UserID, input.Month, input.Category, input.Amount, input.Direction)
	if err != nil {
		return nil, fmt.Errorf("failed to apply expense delta: %w", err)
	}

	return &ApplyExpenseDeltaOutput{Budget: toBudgetOutput(budget)}, nil
}
