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

// GetOrCreateBudgetInput represents the input for fetching a month's budget.
type GetOrCreateBudgetInput struct {
	UserID uuid.UUID
	Month  string
}

// GetOrCreateBudgetOutput represents the output of fetching a month's budget.
type GetOrCreateBudgetOutput struct {
	Budget *BudgetOutput
}

// GetOrCreateBudgetUseCase returns the budget for a (user, month) pair,
// lazily creating it from the user's default category template on first
// access and reconciling per-category spend against the expense ledger
// before returning.
type GetOrCreateBudgetUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	userRepo        adapter.UserRepository
}

// NewGetOrCreateBudgetUseCase creates a new GetOrCreateBudgetUseCase instance.
func NewGetOrCreateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	userRepo adapter.UserRepository,
) *GetOrCreateBudgetUseCase {
	return &GetOrCreateBudgetUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

// Execute fetches or creates the budget and reconciles it with the ledger.
func (uc *GetOrCreateBudgetUseCase) Execute(ctx context.Context, input GetOrCreateBudgetInput) (*GetOrCreateBudgetOutput, error) {
	if err := validateMonth(input.Month); err != nil {
		return nil, err
	}

	budget, err := uc.findOrCreate(ctx, input.UserID, input.Month)
	if err != nil {
		return nil, err
	}

	if err := uc.reconcile(ctx, budget); err != nil {
		return nil, err
	}

	if err := uc.budgetRepo.Replace(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to persist reconciled budget: %w", err)
	}

	return &GetOrCreateBudgetOutput{Budget: toBudgetOutput(budget)}, nil
}

// findOrCreate loads the budget, building it from the user's defaults when
// it does not exist yet. A unique-key race with a concurrent creator falls
// back to re-fetching, keeping the operation idempotent by (user, month).
func (uc *GetOrCreateBudgetUseCase) findOrCreate(ctx context.Context, userID uuid.UUID, month string) (*entity.Budget, error) {
	budget, err := uc.budgetRepo.FindByUserAndMonth(ctx, userID, month)
	if err == nil {
		return budget, nil
	}
	if !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	budget, err = uc.buildFromDefaults(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		if errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
			return uc.budgetRepo.FindByUserAndMonth(ctx, userID, month)
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return budget, nil
}

// buildFromDefaults seeds a fresh budget from the user's stored default
// category limits and default monthly savings goal.
func (uc *GetOrCreateBudgetUseCase) buildFromDefaults(ctx context.Context, userID uuid.UUID, month string) (*entity.Budget, error) {
	budget := entity.NewBudget(userID, month)

	defaults, err := uc.budgetRepo.FindDefaults(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget defaults: %w", err)
	}

	for i, d := range defaults {
		budget.Categories = append(budget.Categories, entity.BudgetCategory{
			ID:           uuid.New(),
			Name:         d.Name,
			BudgetAmount: d.Amount,
			SpentAmount:  decimal.Zero,
			Color:        d.Color,
			Position:     i,
		})
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	budget.SavingsGoal = user.DefaultSavingsGoal

	return budget, nil
}

// reconcile refreshes every category's spent amount from the expense ledger
// for the budget's month, materializes spend recorded in unconfigured
// categories with a zero limit, and re-evaluates all alerts.
func (uc *GetOrCreateBudgetUseCase) reconcile(ctx context.Context, budget *entity.Budget) error {
	start, end := entity.MonthBounds(budget.Month)

	sums, err := uc.transactionRepo.SumExpensesByCategory(ctx, budget.UserID, start, end)
	if err != nil {
		return fmt.Errorf("failed to sum ledger expenses: %w", err)
	}

	for i := range budget.Categories {
		name := budget.Categories[i].Name
		if spent, ok := sums[name]; ok {
			budget.Categories[i].SpentAmount = spent
			delete(sums, name)
		} else {
			budget.Categories[i].SpentAmount = decimal.Zero
		}
	}

	// Spend recorded against categories without a configured limit is still
	// tracked; a zero limit keeps utilization at 0% so it never alerts.
	position := len(budget.Categories)
	for name, spent := range sums {
		budget.Categories = append(budget.Categories, entity.BudgetCategory{
			ID:           uuid.New(),
			Name:         name,
			BudgetAmount: decimal.Zero,
			SpentAmount:  spent,
			Color:        "",
			Position:     position,
		})
		position++
	}
	budget.SortCategories()

	budget.RefreshAllAlerts()

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
