package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
)

const cacheTTL = 5 * time.Minute

// GetUserSummaryInput represents the input for the period summary query.
// A nil date leaves that boundary open; omitting both defaults to the
// current calendar month.
type GetUserSummaryInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// GetUserSummaryOutput represents the period summary totals.
type GetUserSummaryOutput struct {
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetSavings       decimal.Decimal `json:"net_savings"`
	TransactionCount int             `json:"transaction_count"`
	IncomeCount      int             `json:"income_count"`
	ExpenseCount     int             `json:"expense_count"`
}

// GetUserSummaryUseCase computes income/expense totals for a period, always
// from the ledger. Results are cached per user and dropped on every ledger
// write.
type GetUserSummaryUseCase struct {
	summaryRepo SummaryRepository
	cache       adapter.SummaryCache
}

// NewGetUserSummaryUseCase creates a new GetUserSummaryUseCase instance.
func NewGetUserSummaryUseCase(summaryRepo SummaryRepository, cache adapter.SummaryCache) *GetUserSummaryUseCase {
	return &GetUserSummaryUseCase{summaryRepo: summaryRepo, cache: cache}
}

// Execute computes the summary.
func (uc *GetUserSummaryUseCase) Execute(ctx context.Context, input GetUserSummaryInput) (*GetUserSummaryOutput, error) {
	start, end := uc.resolvePeriod(input)
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("summary:%s:%s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	var cached GetUserSummaryOutput
	if cacheGet(ctx, uc.cache, input.UserID, cacheKey, &cached) {
		return &cached, nil
	}

	totals, err := uc.summaryRepo.GetPeriodTotals(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get period totals: %w", err)
	}

	out := &GetUserSummaryOutput{
		StartDate:        start,
		EndDate:          end,
		TotalIncome:      totals.TotalIncome,
		TotalExpenses:    totals.TotalExpenses,
		NetSavings:       totals.NetSavings,
		TransactionCount: totals.TransactionCount,
		IncomeCount:      totals.IncomeCount,
		ExpenseCount:     totals.ExpenseCount,
	}

	cacheSet(ctx, uc.cache, input.UserID, cacheKey, out)
	return out, nil
}

func (uc *GetUserSummaryUseCase) resolvePeriod(input GetUserSummaryInput) (time.Time, time.Time) {
	if input.StartDate == nil && input.EndDate == nil {
		return defaultPeriod(time.Now().UTC())
	}
	start, end := defaultPeriod(time.Now().UTC())
	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil {
		end = *input.EndDate
	}
	return start, end
}

// cacheGet and cacheSet are shared by every reporting query. Cache failures
// never fail the query.
func cacheGet(ctx context.Context, c adapter.SummaryCache, userID uuid.UUID, key string, dest any) bool {
	if c == nil {
		return false
	}
	hit, err := c.Get(ctx, userID, key, dest)
	if err != nil {
		slog.Debug("Summary cache read failed", "userID", userID, "key", key, "error", err)
		return false
	}
	return hit
}

func cacheSet(ctx context.Context, c adapter.SummaryCache, userID uuid.UUID, key string, value any) {
	if c == nil {
		return
	}
	if err := c.Set(ctx, userID, key, value, cacheTTL); err != nil {
		slog.Debug("Summary cache write failed", "userID", userID, "key", key, "error", err)
	}
}
