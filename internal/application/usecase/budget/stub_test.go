package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// fakeBudgetRepository is an in-memory BudgetRepository used by the tests in
// this package. ApplyExpenseDelta mirrors the real implementation's
// semantics: lazy creation from defaults, zero-limit materialization,
// clamping and alert re-evaluation in one step.
type fakeBudgetRepository struct {
	budgets  map[string]*entity.Budget // keyed by userID|month
	defaults map[uuid.UUID][]*entity.BudgetDefault
	users    *fakeUserRepository
}

func newFakeBudgetRepository(users *fakeUserRepository) *fakeBudgetRepository {
	return &fakeBudgetRepository{
		budgets:  make(map[string]*entity.Budget),
		defaults: make(map[uuid.UUID][]*entity.BudgetDefault),
		users:    users,
	}
}

func budgetKey(userID uuid.UUID, month string) string {
	return userID.String() + "|" + month
}

func cloneBudget(b *entity.Budget) *entity.Budget {
	c := *b
	c.Categories = append([]entity.BudgetCategory(nil), b.Categories...)
	c.Alerts = append([]entity.BudgetAlert(nil), b.Alerts...)
	return &c
}

func (r *fakeBudgetRepository) Create(_ context.Context, budget *entity.Budget) error {
	key := budgetKey(budget.UserID, budget.Month)
	if _, exists := r.budgets[key]; exists {
		return domainerror.ErrBudgetAlreadyExists
	}
	r.budgets[key] = cloneBudget(budget)
	return nil
}

func (r *fakeBudgetRepository) FindByUserAndMonth(_ context.Context, userID uuid.UUID, month string) (*entity.Budget, error) {
	b, ok := r.budgets[budgetKey(userID, month)]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return cloneBudget(b), nil
}

func (r *fakeBudgetRepository) FindByUserAndYear(_ context.Context, userID uuid.UUID, year int) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for month := 1; month <= 12; month++ {
		key := budgetKey(userID, time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01"))
		if b, ok := r.budgets[key]; ok {
			out = append(out, cloneBudget(b))
		}
	}
	return out, nil
}

func (r *fakeBudgetRepository) Replace(_ context.Context, budget *entity.Budget) error {
	r.budgets[budgetKey(budget.UserID, budget.Month)] = cloneBudget(budget)
	return nil
}

func (r *fakeBudgetRepository) ApplyExpenseDelta(ctx context.Context, userID uuid.UUID, month, category string, amount decimal.Decimal, direction adapter.DeltaDirection) (*entity.Budget, error) {
	key := budgetKey(userID, month)
	b, ok := r.budgets[key]
	if !ok {
		b = entity.NewBudget(userID, month)
		for i, d := range r.defaults[userID] {
			b.Categories = append(b.Categories, entity.BudgetCategory{
				ID:           uuid.New(),
				Name:         d.Name,
				BudgetAmount: d.Amount,
				SpentAmount:  decimal.Zero,
				Color:        d.Color,
				Position:     i,
			})
		}
		if r.users != nil {
			if user, err := r.users.FindByID(ctx, userID); err == nil {
				b.SavingsGoal = user.DefaultSavingsGoal
			}
		}
		r.budgets[key] = b
	}

	c := b.Category(category)
	if c == nil {
		b.Categories = append(b.Categories, entity.BudgetCategory{
			ID:           uuid.New(),
			Name:         category,
			BudgetAmount: decimal.Zero,
			SpentAmount:  decimal.Zero,
			Position:     len(b.Categories),
		})
		c = b.Category(category)
	}

	switch direction {
	case adapter.DeltaDecrease:
		c.SpentAmount = c.SpentAmount.Sub(amount)
		if c.SpentAmount.IsNegative() {
			c.SpentAmount = decimal.Zero
		}
	default:
		c.SpentAmount = c.SpentAmount.Add(amount)
	}

	b.RefreshCategoryAlert(category)
	return cloneBudget(b), nil
}

func (r *fakeBudgetRepository) MarkAlertRead(_ context.Context, budgetID, alertID uuid.UUID) error {
	for _, b := range r.budgets {
		if b.ID != budgetID {
			continue
		}
		for i := range b.Alerts {
			if b.Alerts[i].ID == alertID {
				b.Alerts[i].IsRead = true
				return nil
			}
		}
	}
	return domainerror.ErrAlertNotFound
}

func (r *fakeBudgetRepository) FindDefaults(_ context.Context, userID uuid.UUID) ([]*entity.BudgetDefault, error) {
	return r.defaults[userID], nil
}

func (r *fakeBudgetRepository) ReplaceDefaults(_ context.Context, userID uuid.UUID, defaults []*entity.BudgetDefault) error {
	r.defaults[userID] = defaults
	return nil
}

// fakeTransactionRepository serves the aggregation queries the budget use
// cases depend on from a fixed ledger slice.
type fakeTransactionRepository struct {
	transactions []*entity.Transaction
}

func (r *fakeTransactionRepository) Create(_ context.Context, tx *entity.Transaction) error {
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *fakeTransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepository) FindByFilter(_ context.Context, filter adapter.TransactionFilter, _ adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	matched := r.match(filter)
	return &entity.TransactionListResult{
		Transactions: matched,
		Total:        int64(len(matched)),
		Page:         1,
		Limit:        len(matched),
		TotalPages:   1,
	}, nil
}

func (r *fakeTransactionRepository) Update(_ context.Context, tx *entity.Transaction) error {
	for i := range r.transactions {
		if r.transactions[i].ID == tx.ID {
			r.transactions[i] = tx
			return nil
		}
	}
	return domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepository) Delete(_ context.Context, id uuid.UUID) error {
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
	for _, tx := range r.match(filter) {
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

func (r *fakeTransactionRepository) match(filter adapter.TransactionFilter) []*entity.Transaction {
	var out []*entity.Transaction
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
		out = append(out, tx)
	}
	return out
}

// fakeUserRepository is an in-memory UserRepository.
type fakeUserRepository struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepository(users ...*entity.User) *fakeUserRepository {
	r := &fakeUserRepository{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepository) UpdateDefaultSavingsGoal(_ context.Context, id uuid.UUID, goal decimal.Decimal) error {
	u, ok := r.users[id]
	if !ok {
		return domainerror.ErrUserNotFound
	}
	u.DefaultSavingsGoal = goal
	return nil
}
