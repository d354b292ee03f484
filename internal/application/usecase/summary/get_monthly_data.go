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

// GetMonthlyDataInput represents the input for the monthly trend query.
// MonthsBack counts backwards from the current month inclusive; zero uses
// the default window.
type GetMonthlyDataInput struct {
	UserID     uuid.UUID
	MonthsBack int
}

// MonthlyDataPoint is one month's income/expense totals.
type MonthlyDataPoint struct {
	Month            string          `json:"month"`
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	Savings          decimal.Decimal `json:"savings"`
	TransactionCount int             `json:"transaction_count"`
}

// GetMonthlyDataOutput represents the output of the monthly trend query.
// The series is sparse: months without a single ledger entry are absent,
// so callers must not assume a dense window.
type GetMonthlyDataOutput struct {
	Months []MonthlyDataPoint `json:"months"`
}

// GetMonthlyDataUseCase buckets ledger entries into calendar months. The
// bucketing happens in Go so the underlying query stays portable between
// postgres and the sqlite driver used in tests.
type GetMonthlyDataUseCase struct {
	summaryRepo SummaryRepository
	cache       adapter.SummaryCache
}

// NewGetMonthlyDataUseCase creates a new GetMonthlyDataUseCase instance.
func NewGetMonthlyDataUseCase(summaryRepo SummaryRepository, cache adapter.SummaryCache) *GetMonthlyDataUseCase {
	return &GetMonthlyDataUseCase{summaryRepo: summaryRepo, cache: cache}
}

// Execute computes the monthly series.
func (uc *GetMonthlyDataUseCase) Execute(ctx context.Context, input GetMonthlyDataInput) (*GetMonthlyDataOutput, error) {
	monthsBack := input.MonthsBack
	if monthsBack == 0 {
		monthsBack = DefaultMonthsBack
	}
	if monthsBack < MinMonthsBack || monthsBack > MaxMonthsBack {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeInvalidMonthsBack,
			fmt.Sprintf("monthsBack must be between %d and %d", MinMonthsBack, MaxMonthsBack),
			domainerror.ErrInvalidMonthsBack,
		)
	}

	now := time.Now().UTC()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := currentMonth.AddDate(0, -(monthsBack - 1), 0)
	end := currentMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)

	cacheKey := fmt.Sprintf("monthly:%s:%d", entity.MonthKey(currentMonth), monthsBack)
	var cached GetMonthlyDataOutput
	if cacheGet(ctx, uc.cache, input.UserID, cacheKey, &cached) {
		return &cached, nil
	}

	entries, err := uc.summaryRepo.GetEntriesByPeriod(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	// Only months with at least one entry appear in the series.
	buckets := make(map[string]*MonthlyDataPoint)
	for _, e := range entries {
		key := entity.MonthKey(e.Date)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &MonthlyDataPoint{
				Month:    key,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			}
			buckets[key] = bucket
		}
		if e.Type == entity.TransactionTypeExpense {
			bucket.Expenses = bucket.Expenses.Add(e.Amount)
		} else {
			bucket.Income = bucket.Income.Add(e.Amount)
		}
		bucket.TransactionCount++
	}

	months := make([]MonthlyDataPoint, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.Savings = bucket.Income.Sub(bucket.Expenses)
		months = append(months, *bucket)
	}
	// Month keys sort chronologically as strings.
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })

	out := &GetMonthlyDataOutput{Months: months}
	cacheSet(ctx, uc.cache, input.UserID, cacheKey, out)
	return out, nil
}
