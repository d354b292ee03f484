// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// DeltaDirection indicates whether an expense delta raises or lowers a
// category's recorded spend.
type DeltaDirection string

const (
	DeltaIncrease DeltaDirection = "increase"
	DeltaDecrease DeltaDirection = "decrease"
)

// BudgetRepository defines the interface for budget persistence operations.
//
// ApplyExpenseDelta and MarkAlertRead must be implemented as an atomic
// read-modify-write on the budget row so that concurrent ledger writes for
// the same (user, month) never lose an update.
type BudgetRepository interface {
	// Create persists a new budget with its categories and alerts.
	// Returns ErrBudgetAlreadyExists when a budget for the (user, month)
	// pair already exists.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByUserAndMonth retrieves the budget for a user and month key.
	// Returns ErrBudgetNotFound when absent.
	FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month string) (*entity.Budget, error)

	// FindByUserAndYear retrieves all budgets of a user within one calendar
	// year, ordered by month ascending.
	FindByUserAndYear(ctx context.Context, userID uuid.UUID, year int) ([]*entity.Budget, error)

	// Replace persists the full current state of the budget: category list,
	// savings goal and alerts. Derived totals are never stored; callers are
	// expected to have recomputed category state from the just-read document.
	Replace(ctx context.Context, budget *entity.Budget) error

	// ApplyExpenseDelta atomically adjusts one category's spent amount by
	// ±amount for the budget owning (user, month), creating the budget from
	// the user's defaults when absent and materializing the category with a
	// zero limit when it is not configured. Decreases clamp at zero. The
	// category's alert is re-evaluated in the same write.
	ApplyExpenseDelta(ctx context.Context, userID uuid.UUID, month, category string, amount decimal.Decimal, direction DeltaDirection) (*entity.Budget, error)

	// MarkAlertRead marks one alert read. Returns ErrAlertNotFound when the
	// alert does not exist on that budget.
	MarkAlertRead(ctx context.Context, budgetID, alertID uuid.UUID) error

	// FindDefaults returns the user's default category-limit template,
	// ordered by position.
	FindDefaults(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetDefault, error)

	// ReplaceDefaults replaces the user's default category-limit template.
	ReplaceDefaults(ctx context.Context, userID uuid.UUID, defaults []*entity.BudgetDefault) error
}
