// Package summary contains reporting-related use cases.
package summary

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// SummaryRepository defines the interface for reporting data operations.
// All queries read the ledger only; budget documents are never consulted.
type SummaryRepository interface {
	// GetPeriodTotals returns income/expense totals for a period.
	GetPeriodTotals(
		ctx context.Context,
		userID uuid.UUID,
		startDate, endDate time.Time,
	) (*PeriodTotals, error)

	// GetCategoryBreakdown returns per-category totals for one side of the
	// ledger within a period, unordered.
	GetCategoryBreakdown(
		ctx context.Context,
		userID uuid.UUID,
		startDate, endDate time.Time,
		transactionType entity.TransactionType,
	) ([]RawCategoryRow, error)

	// GetEntriesByPeriod returns the date, amount and type of every ledger
	// entry within a period. Month bucketing happens in the use case so the
	// query stays portable across database engines.
	GetEntriesByPeriod(
		ctx context.Context,
		userID uuid.UUID,
		startDate, endDate time.Time,
	) ([]RawEntry, error)
}

// PeriodTotals represents summary totals for a period.
type PeriodTotals struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetSavings       decimal.Decimal
	TransactionCount int
	IncomeCount      int
	ExpenseCount     int
}

// RawCategoryRow represents one category's aggregate row from the database.
type RawCategoryRow struct {
	Category         string
	Amount           decimal.Decimal
	TransactionCount int
}

// RawEntry is the minimal projection of a ledger entry used for bucketing.
type RawEntry struct {
	Date   time.Time
	Amount decimal.Decimal
	Type   entity.TransactionType
}
