package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
)

// SetDefaultsInput represents the input for replacing a user's default
// category-limit template. DefaultSavingsGoal is optional; nil leaves the
// current goal untouched.
type SetDefaultsInput struct {
	UserID             uuid.UUID
	Defaults           []CategoryInput
	DefaultSavingsGoal *decimal.Decimal
}

// SetDefaultsOutput represents the output of replacing the default template.
type SetDefaultsOutput struct {
	Defaults           []DefaultOutput
	DefaultSavingsGoal decimal.Decimal
}

// SetDefaultsUseCase replaces the template new monthly budgets are seeded
// from. Existing budgets are never touched; the template only applies to
// months created afterwards.
type SetDefaultsUseCase struct {
	budgetRepo adapter.BudgetRepository
	userRepo   adapter.UserRepository
}

// NewSetDefaultsUseCase creates a new SetDefaultsUseCase instance.
func NewSetDefaultsUseCase(budgetRepo adapter.BudgetRepository, userRepo adapter.UserRepository) *SetDefaultsUseCase {
	return &SetDefaultsUseCase{budgetRepo: budgetRepo, userRepo: userRepo}
}

// Execute validates and replaces the template.
func (uc *SetDefaultsUseCase) Execute(ctx context.Context, input SetDefaultsInput) (*SetDefaultsOutput, error) {
	if err := validateCategoryInputs(input.Defaults); err != nil {
		return nil, err
	}
	if input.DefaultSavingsGoal != nil {
		if err := validateSavingsGoal(*input.DefaultSavingsGoal); err != nil {
			return nil, err
		}
	}

	defaults := make([]*entity.BudgetDefault, len(input.Defaults))
	for i, in := range input.Defaults {
		defaults[i] = &entity.BudgetDefault{
			ID:       uuid.New(),
			UserID:   input.UserID,
			Name:     in.Name,
			Amount:   in.BudgetAmount,
			Color:    in.Color,
			Position: i,
		}
	}

	if err := uc.budgetRepo.ReplaceDefaults(ctx, input.UserID, defaults); err != nil {
		return nil, fmt.Errorf("failed to replace budget defaults: %w", err)
	}

	if input.DefaultSavingsGoal != nil {
		if err := uc.userRepo.UpdateDefaultSavingsGoal(ctx, input.UserID, *input.DefaultSavingsGoal); err != nil {
			return nil, fmt.Errorf("failed to update default savings goal: %w", err)
		}
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	out := make([]DefaultOutput, len(defaults))
	for i, d := range defaults {
		out[i] = DefaultOutput{
			ID:     d.ID,
			Name:   d.Name,
			Amount: d.Amount,
			Color:  d.Color,
		}
	}

	return &SetDefaultsOutput{
		Defaults:           out,
		DefaultSavingsGoal: user.DefaultSavingsGoal,
	}, nil
}
