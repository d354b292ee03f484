package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// MarkAlertReadInput represents the input for acknowledging one alert.
type MarkAlertReadInput struct {
	UserID  uuid.UUID
	Month   string
	AlertID uuid.UUID
}

// MarkAlertReadUseCase marks one alert of a month's budget as read.
// Acknowledging an alert never deletes it; only threshold re-evaluation
// clears alerts.
type MarkAlertReadUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewMarkAlertReadUseCase creates a new MarkAlertReadUseCase instance.
func NewMarkAlertReadUseCase(budgetRepo adapter.BudgetRepository) *MarkAlertReadUseCase {
	return &MarkAlertReadUseCase{budgetRepo: budgetRepo}
}

// Execute marks the alert read.
func (uc *MarkAlertReadUseCase) Execute(ctx context.Context, input MarkAlertReadInput) error {
	if err := validateMonth(input.Month); err != nil {
		return err
	}

	budget, err := uc.budgetRepo.FindByUserAndMonth(ctx, input.UserID, input.Month)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeAlertNotFound,
				"alert not found",
				domainerror.ErrAlertNotFound,
			)
		}
		return fmt.Errorf("failed to find budget: %w", err)
	}

	if err := uc.budgetRepo.MarkAlertRead(ctx, budget.ID, input.AlertID); err != nil {
		if errors.Is(err, domainerror.ErrAlertNotFound) {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeAlertNotFound,
				"alert not found",
				domainerror.ErrAlertNotFound,
			)
		}
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	return nil
}
