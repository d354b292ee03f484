package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// fakeTransactionRepository is an in-memory ledger used by the tests in this
// package. failDelete aborts deletions to exercise the rollback paths.
type fakeTransactionRepository struct {
	transactions []*entity.Transaction
	failDelete   error
}

func (r *fakeTransactionRepository) Create(_ context.Context, tx *entity.Transaction) error {
	clone := *tx
	r.transactions = append(r.transactions, &clone)
	return nil
}

func (r *fakeTransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.ID == id {
			clone := *tx
			return &clone, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepository) FindByFilter(_ context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	var matched []*entity.Transaction
	for _, tx := range r.transactions {
		if tx.UserID != filter.UserID {
			continue
		}
		if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
			continue
		}
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		if len(filter.Categories) > 0 {
			found := false
			for _, c := range filter.Categories {
				if tx.Category == c {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(tx.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, tx)
	}

	total := int64(len(matched))
	start := (pagination.Page - 1) * pagination.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pagination.Limit
	if end > len(matched) {
		end = len(matched)
	}
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &entity.TransactionListResult{
		Transactions: matched[start:end],
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

func (r *fakeTransactionRepository) Update(_ context.Context, tx *entity.Transaction) error {
	for i := range r.transactions {
		if r.transactions[i].ID == tx.ID {
			clone := *tx
			r.transactions[i] = &clone
			return nil
		}
	}
	return domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepository) Delete(_ context.Context, id uuid.UUID) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	for i := range r.transactions {
		if r.transactions[i].ID == id {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepository) GetTotals(_ context.Context, filter adapter.TransactionFilter) (*adapter.TransactionTotals, error) {
	totals := &adapter.TransactionTotals{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
		NetTotal:     decimal.Zero,
	}
	for _, tx := range r.transactions {
		if tx.UserID != filter.UserID {
			continue
		}
		if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
			continue
		}
		if tx.IsExpense() {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(tx.Amount)
		} else {
			totals.IncomeTotal = totals.IncomeTotal.Add(tx.Amount)
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}

func (r *fakeTransactionRepository) SumExpensesByCategory(_ context.Context, userID uuid.UUID, startDate, endDate time.Time) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range r.transactions {
		if tx.UserID != userID || !tx.IsExpense() {
			continue
		}
		if tx.Date.Before(startDate) || tx.Date.After(endDate) {
			continue
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}
	return sums, nil
}

// fakeBudgetRepository records expense deltas the way the real repository
// applies them, so tests can assert ledger-to-budget propagation. The fail
// fields abort the next delta in that direction (consumed on use), which
// lets rollback tests fail one call and let the compensation through.
type fakeBudgetRepository struct {
	budgets      map[string]*entity.Budget
	failIncrease error
	failDecrease error
}

func newFakeBudgetRepository() *fakeBudgetRepository {
	return &fakeBudgetRepository{budgets: make(map[string]*entity.Budget)}
}

func budgetKey(userID uuid.UUID, month string) string {
	return userID.String() + "|" + month
}

func (r *fakeBudgetRepository) Create(_ context.Context, budget *entity.Budget) error {
	key := budgetKey(budget.UserID, budget.Month)
	if _, exists := r.budgets[key]; exists {
		return domainerror.ErrBudgetAlreadyExists
	}
	r.budgets[key] = budget
	return nil
}

func (r *fakeBudgetRepository) FindByUserAndMonth(_ context.Context, userID uuid.UUID, month string) (*entity.Budget, error) {
	b, ok := r.budgets[budgetKey(userID, month)]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return b, nil
}

func (r *fakeBudgetRepository) FindByUserAndYear(_ context.Context, _ uuid.UUID, _ int) ([]*entity.Budget, error) {
	return nil, nil
}

func (r *fakeBudgetRepository) Replace(_ context.Context, budget *entity.Budget) error {
	r.budgets[budgetKey(budget.UserID, budget.Month)] = budget
	return nil
}

func (r *fakeBudgetRepository) ApplyExpenseDelta(_ context.Context, userID uuid.UUID, month, category string, amount decimal.Decimal, direction adapter.DeltaDirection) (*entity.Budget, error) {
	if direction == adapter.DeltaIncrease && r.failIncrease != nil {
		err := r.failIncrease
		r.failIncrease = nil
		return nil, err
	}
	if direction == adapter.DeltaDecrease && r.failDecrease != nil {
		err := r.failDecrease
		r.failDecrease = nil
		return nil, err
	}

	key := budgetKey(userID, month)
	b, ok := r.budgets[key]
	if !ok {
		b = entity.NewBudget(userID, month)
		r.budgets[key] = b
	}

	c := b.Category(category)
	if c == nil {
		b.Categories = append(b.Categories, entity.BudgetCategory{
			ID:          uuid.New(),
			Name:        category,
			SpentAmount: decimal.Zero,
			Position:    len(b.Categories),
		})
		c = b.Category(category)
	}

	if direction == adapter.DeltaDecrease {
		c.SpentAmount = c.SpentAmount.Sub(amount)
		if c.SpentAmount.IsNegative() {
			c.SpentAmount = decimal.Zero
		}
	} else {
		c.SpentAmount = c.SpentAmount.Add(amount)
	}

	b.RefreshCategoryAlert(category)
	return b, nil
}

func (r *fakeBudgetRepository) MarkAlertRead(_ context.Context, _, _ uuid.UUID) error {
	return domainerror.ErrAlertNotFound
}

func (r *fakeBudgetRepository) FindDefaults(_ context.Context, _ uuid.UUID) ([]*entity.BudgetDefault, error) {
	return nil, nil
}

func (r *fakeBudgetRepository) ReplaceDefaults(_ context.Context, _ uuid.UUID, _ []*entity.BudgetDefault) error {
	return nil
}

func (r *fakeBudgetRepository) spent(userID uuid.UUID, month, category string) decimal.Decimal {
	b, ok := r.budgets[budgetKey(userID, month)]
	if !ok {
		return decimal.Zero
	}
	c := b.Category(category)
	if c == nil {
		return decimal.Zero
	}
	return c.SpentAmount
}

// fakeSummaryCache counts invalidations.
type fakeSummaryCache struct {
	invalidations map[uuid.UUID]int
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{invalidations: make(map[uuid.UUID]int)}
}

func (c *fakeSummaryCache) Get(_ context.Context, _ uuid.UUID, _ string, _ any) (bool, error) {
	return false, nil
}

func (c *fakeSummaryCache) Set(_ context.Context, _ uuid.UUID, _ string, _ any, _ time.Duration) error {
	return nil
}

func (c *fakeSummaryCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.invalidations[userID]++
	return nil
}
