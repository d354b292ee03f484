package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// CategoryOutput represents one category in a budget output.
type CategoryOutput struct {
	ID           uuid.UUID
	Name         string
	BudgetAmount decimal.Decimal
	SpentAmount  decimal.Decimal
	Color        string
	Utilization  float64
}

// AlertOutput represents one alert in a budget output.
type AlertOutput struct {
	ID        uuid.UUID
	Category  string
	Type      entity.AlertType
	Message   string
	Threshold float64
	IsRead    bool
	CreatedAt time.Time
}

// BudgetOutput represents a budget with its derived totals.
type BudgetOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Month       string
	Categories  []CategoryOutput
	Alerts      []AlertOutput
	TotalBudget decimal.Decimal
	TotalSpent  decimal.Decimal
	SavingsGoal decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// toBudgetOutput converts a Budget entity into the use case output shape.
// Totals are recomputed from the category list at conversion time.
func toBudgetOutput(b *entity.Budget) *BudgetOutput {
	categories := make([]CategoryOutput, len(b.Categories))
	for i, c := range b.Categories {
		categories[i] = CategoryOutput{
			ID:           c.ID,
			Name:         c.Name,
			BudgetAmount: c.BudgetAmount,
			SpentAmount:  c.SpentAmount,
			Color:        c.Color,
			Utilization:  c.Utilization(),
		}
	}

	alerts := make([]AlertOutput, len(b.Alerts))
	for i, a := range b.Alerts {
		alerts[i] = AlertOutput{
			ID:        a.ID,
			Category:  a.Category,
			Type:      a.Type,
			Message:   a.Message,
			Threshold: a.Threshold,
			IsRead:    a.IsRead,
			CreatedAt: a.CreatedAt,
		}
	}

	return &BudgetOutput{
		ID:          b.ID,
		UserID:      b.UserID,
		Month:       b.Month,
		Categories:  categories,
		Alerts:      alerts,
		TotalBudget: b.TotalBudget(),
		TotalSpent:  b.TotalSpent(),
		SavingsGoal: b.SavingsGoal,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
