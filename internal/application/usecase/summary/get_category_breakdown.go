package summary

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// GetCategoryBreakdownInput represents the input for the per-category
// breakdown query. Type defaults to expense when empty.
type GetCategoryBreakdownInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      entity.TransactionType
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       float64         `json:"percentage"`
	TransactionCount int             `json:"transaction_count"`
	AverageAmount    decimal.Decimal `json:"average_amount"`
}

// GetCategoryBreakdownOutput represents the output of the breakdown query.
type GetCategoryBreakdownOutput struct {
	StartDate  time.Time               `json:"start_date"`
	EndDate    time.Time               `json:"end_date"`
	Type       entity.TransactionType  `json:"type"`
	Total      decimal.Decimal         `json:"total"`
	Categories []CategoryBreakdownItem `json:"categories"`
}

// GetCategoryBreakdownUseCase computes per-category totals for one side of
// the ledger, ordered by amount descending with category name as tie-break.
type GetCategoryBreakdownUseCase struct {
	summaryRepo SummaryRepository
	cache       adapter.SummaryCache
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(summaryRepo SummaryRepository, cache adapter.SummaryCache) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{summaryRepo: summaryRepo, cache: cache}
}

// Execute computes the breakdown.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, input GetCategoryBreakdownInput) (*GetCategoryBreakdownOutput, error) {
	if input.Type == "" {
		input.Type = entity.TransactionTypeExpense
	}
	if input.Type != entity.TransactionTypeExpense && input.Type != entity.TransactionTypeIncome {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeInvalidSummaryType,
			"summary type must be 'expense' or 'income'",
			domainerror.ErrInvalidSummaryType,
		)
	}

	start, end := defaultPeriod(time.Now().UTC())
	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil {
		end = *input.EndDate
	}
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("breakdown:%s:%s:%s",
		input.Type, start.Format(time.RFC3339), end.Format(time.RFC3339))
	var cached GetCategoryBreakdownOutput
	if cacheGet(ctx, uc.cache, input.UserID, cacheKey, &cached) {
		return &cached, nil
	}

	rows, err := uc.summaryRepo.GetCategoryBreakdown(ctx, input.UserID, start, end, input.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}

	categories := make([]CategoryBreakdownItem, 0, len(rows))
	for _, row := range rows {
		var percentage float64
		if !total.IsZero() {
			percentage, _ = row.Amount.Mul(decimal.NewFromInt(100)).Div(total).Round(2).Float64()
		}

		average := decimal.Zero
		if row.TransactionCount > 0 {
			average = row.Amount.Div(decimal.NewFromInt(int64(row.TransactionCount))).Round(2)
		}

		categories = append(categories, CategoryBreakdownItem{
			Category:         row.Category,
			Amount:           row.Amount,
			Percentage:       percentage,
			TransactionCount: row.TransactionCount,
			AverageAmount:    average,
		})
	}

	sort.SliceStable(categories, func(i, j int) bool {
		if !categories[i].Amount.Equal(categories[j].Amount) {
			return categories[i].Amount.GreaterThan(categories[j].Amount)
		}
		return categories[i].Category < categories[j].Category
	})

	out := &GetCategoryBreakdownOutput{
		StartDate:  start,
		EndDate:    end,
		Type:       input.Type,
		Total:      total,
		Categories: categories,
	}
	cacheSet(ctx, uc.cache, input.UserID, cacheKey, out)
	return out, nil
}
