package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// SetSingleCategoryLimitInput represents the input for adding or updating
// one category's limit without touching the rest of the budget.
type SetSingleCategoryLimitInput struct {
	UserID   uuid.UUID
	Month    string
	Category CategoryInput
}

// SetSingleCategoryLimitOutput represents the output of a single-category update.
type SetSingleCategoryLimitOutput struct {
	Budget *BudgetOutput
}

// SetSingleCategoryLimitUseCase upserts one category limit on a month's
// budget. An existing category keeps its spent amount and position; a new
// one is appended. Only the touched category's alert is re-evaluated.
type SetSingleCategoryLimitUseCase struct {
	budgetRepo adapter.BudgetRepository
	userRepo   adapter.UserRepository
}

// NewSetSingleCategoryLimitUseCase creates a new SetSingleCategoryLimitUseCase instance.
func NewSetSingleCategoryLimitUseCase(
	budgetRepo adapter.BudgetRepository,
	userRepo adapter.UserRepository,
) *SetSingleCategoryLimitUseCase {
	return &SetSingleCategoryLimitUseCase{
		budgetRepo: budgetRepo,
		userRepo:   userRepo,
	}
}

// Execute upserts the category limit and persists the budget.
func (uc *SetSingleCategoryLimitUseCase) Execute(ctx context.Context, input SetSingleCategoryLimitInput) (*SetSingleCategoryLimitOutput, error) {
	if err := validateMonth(input.Month); err != nil {
		return nil, err
	}
	if err := validateCategoryInput(input.Category); err != nil {
		return nil, err
	}

	budget, err := uc.loadOrCreate(ctx, input.UserID, input.Month)
	if err != nil {
		return nil, err
	}

	if existing := budget.Category(input.Category.Name); existing != nil {
		existing.BudgetAmount = input.Category.BudgetAmount
		if input.Category.Color != "" {
			existing.Color = input.Category.Color
		}
	} else {
		budget.Categories = append(budget.Categories, entity.BudgetCategory{
			ID:           uuid.New(),
			Name:         input.Category.Name,
			BudgetAmount: input.Category.BudgetAmount,
			SpentAmount:  decimal.Zero,
			Color:        input.Category.Color,
			Position:     len(budget.Categories),
		})
	}

	budget.RefreshCategoryAlert(input.Category.Name)

	if err := uc.budgetRepo.Replace(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to persist budget: %w", err)
	}

	return &SetSingleCategoryLimitOutput{Budget: toBudgetOutput(budget)}, nil
}

func (uc *SetSingleCategoryLimitUseCase) loadOrCreate(ctx context.Context, userID uuid.UUID, month string) (*entity.Budget, error) {
	budget, err := uc.budgetRepo.FindByUserAndMonth(ctx, userID, month)
	if err == nil {
		return budget, nil
	}
	if !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	budget = entity.NewBudget(userID, month)
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	budget.SavingsGoal = user.DefaultSavingsGoal

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		if errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
			return uc.budgetRepo.FindByUserAndMonth(ctx, userID, month)
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return budget, nil
}
