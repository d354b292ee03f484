// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertType represents the kind of budget alert raised for a category.
type AlertType string

const (
	AlertTypeWarning     AlertType = "warning"
	AlertTypeExceeded    AlertType = "exceeded"
	AlertTypeGoalReached AlertType = "goal_reached"
)

const (
	// WarningThreshold is the utilization percentage at which a warning alert is raised.
	WarningThreshold = 80.0
	// ExceededThreshold is the utilization percentage at which an exceeded alert is raised.
	ExceededThreshold = 100.0

	// SavingsAlertCategory is the reserved category name under which
	// savings-goal alerts are keyed.
	SavingsAlertCategory = "savings"
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Budget holds one user's spending plan for a single calendar month:
// category limits, recorded spend per category, the month's savings goal
// and any active alerts. There is at most one Budget per (user, month).
type Budget struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Month       string // "YYYY-MM"
	SavingsGoal decimal.Decimal
	Categories  []BudgetCategory
	Alerts      []BudgetAlert
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BudgetCategory is one category's limit and recorded spend within a Budget.
// SpentAmount is a derived cache of the expense ledger; the ledger remains
// the source of truth.
type BudgetCategory struct {
	ID           uuid.UUID
	Name         string
	BudgetAmount decimal.Decimal
	SpentAmount  decimal.Decimal
	Color        string
	Position     int
}

// BudgetAlert is a threshold-crossing signal for one category. A Budget
// carries at most one alert per category at any time.
type BudgetAlert struct {
	ID        uuid.UUID
	Category  string
	Type      AlertType
	Message   string
	Threshold float64
	IsRead    bool
	CreatedAt time.Time
}

// BudgetDefault is one entry of a user's default category-limit template,
// consulted only when a Budget is lazily created for a new month.
type BudgetDefault struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Amount   decimal.Decimal
	Color    string
	Position int
}

// NewBudget creates an empty Budget for the given user and month.
func NewBudget(userID uuid.UUID, month string) *Budget {
	now := time.Now().UTC()
	return &Budget{
		ID:          uuid.New(),
		UserID:      userID,
		Month:       month,
		SavingsGoal: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TotalBudget returns the sum of all category limits. It is always derived,
// never stored, so it cannot drift from the category list.
func (b *Budget) TotalBudget() decimal.Decimal {
	total := decimal.Zero
	for _, c := range b.Categories {
		total = total.Add(c.BudgetAmount)
	}
	return total
}

// TotalSpent returns the sum of all category spent amounts.
func (b *Budget) TotalSpent() decimal.Decimal {
	total := decimal.Zero
	for _, c := range b.Categories {
		total = total.Add(c.SpentAmount)
	}
	return total
}

// RemainingBudget returns the unspent portion of the total budget, floored at zero.
func (b *Budget) RemainingBudget() decimal.Decimal {
	remaining := b.TotalBudget().Sub(b.TotalSpent())
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// UtilizationPercentage returns totalSpent/totalBudget as a percentage,
// or 0 when no budget is configured.
func (b *Budget) UtilizationPercentage() float64 {
	totalBudget := b.TotalBudget()
	if totalBudget.IsZero() {
		return 0
	}
	pct, _ := b.TotalSpent().Mul(decimal.NewFromInt(100)).Div(totalBudget).Round(2).Float64()
	return pct
}

// Category returns a pointer to the named category, or nil when absent.
func (b *Budget) Category(name string) *BudgetCategory {
	for i := range b.Categories {
		if b.Categories[i].Name == name {
			return &b.Categories[i]
		}
	}
	return nil
}

// SetAlert replaces any existing alert for the same category with the given
// one, so a category never accumulates stale alerts.
func (b *Budget) SetAlert(alert BudgetAlert) {
	b.ClearAlert(alert.Category)
	b.Alerts = append(b.Alerts, alert)
}

// ClearAlert removes the alert for the given category, if present.
func (b *Budget) ClearAlert(category string) {
	for i := range b.Alerts {
		if b.Alerts[i].Category == category {
			b.Alerts = append(b.Alerts[:i], b.Alerts[i+1:]...)
			return
		}
	}
}

// Alert returns the active alert for the given category, or nil.
func (b *Budget) Alert(category string) *BudgetAlert {
	for i := range b.Alerts {
		if b.Alerts[i].Category == category {
			return &b.Alerts[i]
		}
	}
	return nil
}

// UnreadAlerts returns the alerts not yet marked read.
func (b *Budget) UnreadAlerts() []BudgetAlert {
	unread := make([]BudgetAlert, 0, len(b.Alerts))
	for _, a := range b.Alerts {
		if !a.IsRead {
			unread = append(unread, a)
		}
	}
	return unread
}

// SortCategories orders the category list by stored position.
func (b *Budget) SortCategories() {
	sort.SliceStable(b.Categories, func(i, j int) bool {
		return b.Categories[i].Position < b.Categories[j].Position
	})
}

// Utilization returns spent/budget as a percentage. A zero budget amount
// yields 0 to avoid division by zero, so unlimited categories never alert.
func (c *BudgetCategory) Utilization() float64 {
	if c.BudgetAmount.IsZero() {
		return 0
	}
	pct, _ := c.SpentAmount.Mul(decimal.NewFromInt(100)).Div(c.BudgetAmount).Round(2).Float64()
	return pct
}

// EvaluateCategoryAlert applies the threshold policy to one category and
// returns the alert it should currently carry, or nil when utilization is
// below the warning threshold.
func EvaluateCategoryAlert(c BudgetCategory) *BudgetAlert {
	utilization := c.Utilization()

	switch {
	case utilization >= ExceededThreshold:
		overspend := c.SpentAmount.Sub(c.BudgetAmount)
		return &BudgetAlert{
			ID:       uuid.New(),
			Category: c.Name,
			Type:     AlertTypeExceeded,
			Message: fmt.Sprintf("You have exceeded your %s budget by %s",
				c.Name, overspend.StringFixed(2)),
			Threshold: ExceededThreshold,
			CreatedAt: time.Now().UTC(),
		}
	case utilization >= WarningThreshold:
		return &BudgetAlert{
			ID:       uuid.New(),
			Category: c.Name,
			Type:     AlertTypeWarning,
			Message: fmt.Sprintf("You have used %.1f%% of your %s budget",
				utilization, c.Name),
			Threshold: WarningThreshold,
			CreatedAt: time.Now().UTC(),
		}
	default:
		return nil
	}
}

// RefreshCategoryAlert re-evaluates the alert for one category against the
// threshold policy. An existing alert of the same type keeps its identity
// and read state but its message tracks current utilization; a type change
// replaces it; dropping below the warning threshold clears it.
func (b *Budget) RefreshCategoryAlert(name string) {
	c := b.Category(name)
	if c == nil {
		b.ClearAlert(name)
		return
	}

	desired := EvaluateCategoryAlert(*c)
	if desired == nil {
		b.ClearAlert(name)
		return
	}

	if existing := b.Alert(name); existing != nil && existing.Type == desired.Type {
		existing.Message = desired.Message
		return
	}
	b.SetAlert(*desired)
}

// RefreshAllAlerts re-evaluates every category's alert.
func (b *Budget) RefreshAllAlerts() {
	for _, c := range b.Categories {
		b.RefreshCategoryAlert(c.Name)
	}
}

// RefreshSavingsAlert raises or clears the goal_reached alert depending on
// whether the month's net savings reach the configured goal.
func (b *Budget) RefreshSavingsAlert(netSavings decimal.Decimal) {
	if b.SavingsGoal.IsPositive() && netSavings.GreaterThanOrEqual(b.SavingsGoal) {
		if existing := b.Alert(SavingsAlertCategory); existing != nil && existing.Type == AlertTypeGoalReached {
			return
		}
		b.SetAlert(NewGoalReachedAlert(b.SavingsGoal))
		return
	}
	b.ClearAlert(SavingsAlertCategory)
}

// NewGoalReachedAlert builds the alert raised when a month's net savings
// reach the configured savings goal.
func NewGoalReachedAlert(savingsGoal decimal.Decimal) BudgetAlert {
	return BudgetAlert{
		ID:       uuid.New(),
		Category: SavingsAlertCategory,
		Type:     AlertTypeGoalReached,
		Message: fmt.Sprintf("Congratulations! You have reached your savings goal of %s",
			savingsGoal.StringFixed(2)),
		Threshold: ExceededThreshold,
		CreatedAt: time.Now().UTC(),
	}
}

// MonthKey formats a date as its owning "YYYY-MM" budget month.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ValidMonthKey reports whether s is a well-formed "YYYY-MM" month key.
func ValidMonthKey(s string) bool {
	return monthKeyPattern.MatchString(s)
}

// MonthBounds returns the first and last instant of the given month key.
// The month key must already be validated.
func MonthBounds(month string) (start, end time.Time) {
	t, _ := time.Parse("2006-01", month)
	start = t
	end = t.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
