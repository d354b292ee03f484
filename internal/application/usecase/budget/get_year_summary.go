package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
)

// GetYearSummaryInput represents the input for a calendar-year budget overview.
type GetYearSummaryInput struct {
	UserID uuid.UUID
	Year   int
}

// MonthSummary is one month's derived budget figures within a year overview.
type MonthSummary struct {
	Month                 string
	TotalBudget           decimal.Decimal
	TotalSpent            decimal.Decimal
	RemainingBudget       decimal.Decimal
	UtilizationPercentage float64
	SavingsGoal           decimal.Decimal
	CategoryCount         int
	UnreadAlertCount      int
}

// GetYearSummaryOutput represents the output of a calendar-year overview.
// Months without a budget are absent from the list.
type GetYearSummaryOutput struct {
	Year        int
	Months      []MonthSummary
	TotalBudget decimal.Decimal
	TotalSpent  decimal.Decimal
}

// GetYearSummaryUseCase returns per-month derived figures for every budget a
// user holds within one calendar year, plus year totals.
type GetYearSummaryUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewGetYearSummaryUseCase creates a new GetYearSummaryUseCase instance.
func NewGetYearSummaryUseCase(budgetRepo adapter.BudgetRepository) *GetYearSummaryUseCase {
	return &GetYearSummaryUseCase{budgetRepo: budgetRepo}
}

// Execute builds the year overview.
func (uc *GetYearSummaryUseCase) Execute(ctx context.Context, input GetYearSummaryInput) (*GetYearSummaryOutput, error) {
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	budgets, err := uc.budgetRepo.FindByUserAndYear(ctx, input.UserID, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to find budgets: %w", err)
	}

	out := &GetYearSummaryOutput{
		Year:        input.Year,
		Months:      make([]MonthSummary, 0, len(budgets)),
		TotalBudget: decimal.Zero,
		TotalSpent:  decimal.Zero,
	}

	for _, b := range budgets {
		totalBudget := b.TotalBudget()
		totalSpent := b.TotalSpent()

		out.Months = append(out.Months, MonthSummary{
			Month:                 b.Month,
			TotalBudget:           totalBudget,
			TotalSpent:            totalSpent,
			RemainingBudget:       b.RemainingBudget(),
			UtilizationPercentage: b.UtilizationPercentage(),
			SavingsGoal:           b.SavingsGoal,
			CategoryCount:         len(b.Categories),
			UnreadAlertCount:      len(b.UnreadAlerts()),
		})

		out.TotalBudget = out.TotalBudget.Add(totalBudget)
		out.TotalSpent = out.TotalSpent.Add(totalSpent)
	}

	return out, nil
}
