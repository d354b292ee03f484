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

// SetCategoryLimitsInput represents the input for replacing a month's
// category limits. SavingsGoal is optional; nil leaves the current goal
// untouched.
type SetCategoryLimitsInput struct {
	UserID      uuid.UUID
	Month       string
	Categories  []CategoryInput
	SavingsGoal *decimal.Decimal
}

// SetCategoryLimitsOutput represents the output of replacing category limits.
type SetCategoryLimitsOutput struct {
	Budget *BudgetOutput
}

// SetCategoryLimitsUseCase replaces the full category-limit list of one
// month's budget. Spent amounts of categories that survive the replacement
// are preserved; categories dropped from the list lose their recorded spend
// and their alerts. Every alert is re-evaluated against the new limits.
type SetCategoryLimitsUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	userRepo        adapter.UserRepository
}

// NewSetCategoryLimitsUseCase creates a new SetCategoryLimitsUseCase instance.
func NewSetCategoryLimitsUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	userRepo adapter.UserRepository,
) *SetCategoryLimitsUseCase {
	return &SetCategoryLimitsUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

// Execute validates and applies the new category-limit list.
func (uc *SetCategoryLimitsUseCase) Execute(ctx context.Context, input SetCategoryLimitsInput) (*SetCategoryLimitsOutput, error) {
	if err := validateMonth(input.Month); err != nil {
		return nil, err
	}
	if err := validateCategoryInputs(input.Categories); err != nil {
		return nil, err
	}
	if input.SavingsGoal != nil {
		if err := validateSavingsGoal(*input.SavingsGoal); err != nil {
			return nil, err
		}
	}

	budget, err := uc.loadOrCreate(ctx, input.UserID, input.Month)
	if err != nil {
		return nil, err
	}

	previous := make(map[string]decimal.Decimal, len(budget.Categories))
	for _, c := range budget.Categories {
		previous[c.Name] = c.SpentAmount
	}

	categories := make([]entity.BudgetCategory, len(input.Categories))
	for i, in := range input.Categories {
		spent := decimal.Zero
		if prev, ok := previous[in.Name]; ok {
			spent = prev
		}
		categories[i] = entity.BudgetCategory{
			ID:           uuid.New(),
			Name:         in.Name,
			BudgetAmount: in.BudgetAmount,
			SpentAmount:  spent,
			Color:        in.Color,
			Position:     i,
		}
	}
	budget.Categories = categories

	if input.SavingsGoal != nil {
		budget.SavingsGoal = *input.SavingsGoal
	}

	// Alerts for categories that no longer exist must not linger.
	var stale []string
	for _, a := range budget.Alerts {
		if a.Category == entity.SavingsAlertCategory {
			continue
		}
		if budget.Category(a.Category) == nil {
			stale = append(stale, a.Category)
		}
	}
	for _, name := range stale {
		budget.ClearAlert(name)
	}
	budget.RefreshAllAlerts()

	if err := uc.refreshSavings(ctx, budget); err != nil {
		return nil, err
	}

	if err := uc.budgetRepo.Replace(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to persist budget: %w", err)
	}

	return &SetCategoryLimitsOutput{Budget: toBudgetOutput(budget)}, nil
}

func (uc *SetCategoryLimitsUseCase) loadOrCreate(ctx context.Context, userID uuid.UUID, month string) (*entity.Budget, error) {
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

func (uc *SetCategoryLimitsUseCase) refreshSavings(ctx context.Context, budget *entity.Budget) error {
	start, end := entity.MonthBounds(budget.Month)
	totals, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:    budget.UserID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return fmt.Errorf("failed to compute month totals: %w", err)
	}
	budget.RefreshSavingsAlert(totals.NetTotal)
	return nil
}
