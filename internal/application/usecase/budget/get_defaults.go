package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
)

// GetDefaultsInput represents the input for fetching a user's default
// category-limit template.
type GetDefaultsInput struct {
	UserID uuid.UUID
}

// DefaultOutput is one entry of the default template.
type DefaultOutput struct {
	ID     uuid.UUID
	Name   string
	Amount decimal.Decimal
	Color  string
}

// GetDefaultsOutput represents the output of fetching the default template.
type GetDefaultsOutput struct {
	Defaults           []DefaultOutput
	DefaultSavingsGoal decimal.Decimal
}

// GetDefaultsUseCase returns the template new monthly budgets are seeded from.
type GetDefaultsUseCase struct {
	budgetRepo adapter.BudgetRepository
	userRepo   adapter.UserRepository
}

// NewGetDefaultsUseCase creates a new GetDefaultsUseCase instance.
func NewGetDefaultsUseCase(budgetRepo adapter.BudgetRepository, userRepo adapter.UserRepository) *GetDefaultsUseCase {
	return &GetDefaultsUseCase{budgetRepo: budgetRepo, userRepo: userRepo}
}

// Execute fetches the template.
func (uc *GetDefaultsUseCase) Execute(ctx context.Context, input GetDefaultsInput) (*GetDefaultsOutput, error) {
	defaults, err := uc.budgetRepo.FindDefaults(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget defaults: %w", err)
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

	return &GetDefaultsOutput{
		Defaults:           out,
		DefaultSavingsGoal: user.DefaultSavingsGoal,
	}, nil
}
