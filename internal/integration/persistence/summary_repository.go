package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budgetwise/backend/internal/application/usecase/summary"
	"github.com/budgetwise/backend/internal/domain/entity"
	"github.com/budgetwise/backend/internal/integration/persistence/model"
)

// summaryRepository implements the summary.SummaryRepository interface.
// Every query reads the transactions table only.
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository instance.
func NewSummaryRepository(db *gorm.DB) summary.SummaryRepository {
	return &summaryRepository{db: db}
}

// GetPeriodTotals returns income/expense totals for a period.
func (r *summaryRepository) GetPeriodTotals(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*summary.PeriodTotals, error) {
	type row struct {
		Type  string
		Total decimal.Decimal
		Count int
	}

	var rows []row
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("type, COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, startDate, endDate).
		Group("type").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := &summary.PeriodTotals{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		NetSavings:    decimal.Zero,
	}
	for _, row := range rows {
		switch entity.TransactionType(row.Type) {
		case entity.TransactionTypeIncome:
			totals.TotalIncome = row.Total
			totals.IncomeCount = row.Count
		case entity.TransactionTypeExpense:
			totals.TotalExpenses = row.Total
			totals.ExpenseCount = row.Count
		}
		totals.TransactionCount += row.Count
	}
	totals.NetSavings = totals.TotalIncome.Sub(totals.TotalExpenses)
	return totals, nil
}

// GetCategoryBreakdown returns per-category totals for one side of the ledger.
func (r *summaryRepository) GetCategoryBreakdown(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time, transactionType entity.TransactionType) ([]summary.RawCategoryRow, error) {
	type row struct {
		Category string
		Total    decimal.Decimal
		Count    int
	}

	var rows []row
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("category, COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?",
			userID, string(transactionType), startDate, endDate).
		Group("category").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]summary.RawCategoryRow, len(rows))
	for i, row := range rows {
		out[i] = summary.RawCategoryRow{
			Category:         row.Category,
			Amount:           row.Total,
			TransactionCount: row.Count,
		}
	}
	return out, nil
}

// GetEntriesByPeriod returns the date, amount and type of every ledger entry
// within a period.
func (r *summaryRepository) GetEntriesByPeriod(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) ([]summary.RawEntry, error) {
	type row struct {
		Date   time.Time
		Amount decimal.Decimal
		Type   string
	}

	var rows []row
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("date, amount, type").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, startDate, endDate).
		Order("date ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]summary.RawEntry, len(rows))
	for i, row := range rows {
		out[i] = summary.RawEntry{
			Date:   row.Date,
			Amount: row.Amount,
			Type:   entity.TransactionType(row.Type),
		}
	}
	return out, nil
}
