package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/usecase/budget"
)

// CategoryLimitRequest is one category limit in a budget request.
type CategoryLimitRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=50"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	Color        string          `json:"color"`
}

// SetCategoryLimitsRequest represents the request body for replacing a
// month's category limits. The target month travels in the body.
type SetCategoryLimitsRequest struct {
	Month       string                 `json:"month" binding:"required"`
	Categories  []CategoryLimitRequest `json:"categories" binding:"required"`
	SavingsGoal *decimal.Decimal       `json:"savings_goal"`
}

// SetSingleCategoryLimitRequest represents the request body for upserting
// one category limit.
type SetSingleCategoryLimitRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=50"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	Color        string          `json:"color"`
}

// SetDefaultsRequest represents the request body for replacing the default
// category template.
type SetDefaultsRequest struct {
	Defaults           []CategoryLimitRequest `json:"defaults" binding:"required"`
	DefaultSavingsGoal *decimal.Decimal       `json:"default_savings_goal"`
}

// BudgetCategoryResponse represents one category in a budget response.
type BudgetCategoryResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	SpentAmount  decimal.Decimal `json:"spent_amount"`
	Color        string          `json:"color,omitempty"`
	Utilization  float64         `json:"utilization"`
}

// BudgetAlertResponse represents one alert in a budget response.
type BudgetAlertResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Threshold float64   `json:"threshold"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// BudgetResponse represents a month's budget in API responses.
type BudgetResponse struct {
	ID          string                   `json:"id"`
	Month       string                   `json:"month"`
	Categories  []BudgetCategoryResponse `json:"categories"`
	Alerts      []BudgetAlertResponse    `json:"alerts"`
	TotalBudget decimal.Decimal          `json:"total_budget"`
	TotalSpent  decimal.Decimal          `json:"total_spent"`
	SavingsGoal decimal.Decimal          `json:"savings_goal"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// AlertListResponse represents the alerts of one month's budget.
type AlertListResponse struct {
	Alerts []BudgetAlertResponse `json:"alerts"`
}

// MonthSummaryResponse is one month's derived figures in a year overview.
type MonthSummaryResponse struct {
	Month                 string          `json:"month"`
	TotalBudget           decimal.Decimal `json:"total_budget"`
	TotalSpent            decimal.Decimal `json:"total_spent"`
	RemainingBudget       decimal.Decimal `json:"remaining_budget"`
	UtilizationPercentage float64         `json:"utilization_percentage"`
	SavingsGoal           decimal.Decimal `json:"savings_goal"`
	CategoryCount         int             `json:"category_count"`
	UnreadAlertCount      int             `json:"unread_alert_count"`
}

// YearSummaryResponse represents a calendar-year budget overview.
type YearSummaryResponse struct {
	Year        int                    `json:"year"`
	Months      []MonthSummaryResponse `json:"months"`
	TotalBudget decimal.Decimal        `json:"total_budget"`
	TotalSpent  decimal.Decimal        `json:"total_spent"`
}

// BudgetDefaultResponse is one entry of the default category template.
type BudgetDefaultResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Color  string          `json:"color,omitempty"`
}

// DefaultsResponse represents the default category template.
type DefaultsResponse struct {
	Defaults           []BudgetDefaultResponse `json:"defaults"`
	DefaultSavingsGoal decimal.Decimal         `json:"default_savings_goal"`
}

// BudgetResponseFromOutput converts a use case output into its API shape.
func BudgetResponseFromOutput(b *budget.BudgetOutput) BudgetResponse {
	categories := make([]BudgetCategoryResponse, len(b.Categories))
	for i, c := range b.Categories {
		categories[i] = BudgetCategoryResponse{
			ID:           c.ID.String(),
			Name:         c.Name,
			BudgetAmount: c.BudgetAmount,
			SpentAmount:  c.SpentAmount,
			Color:        c.Color,
			Utilization:  c.Utilization,
		}
	}

	return BudgetResponse{
		ID:          b.ID.String(),
		Month:       b.Month,
		Categories:  categories,
		Alerts:      AlertResponsesFromOutputs(b.Alerts),
		TotalBudget: b.TotalBudget,
		TotalSpent:  b.TotalSpent,
		SavingsGoal: b.SavingsGoal,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// AlertResponsesFromOutputs converts alert outputs into their API shape.
func AlertResponsesFromOutputs(alerts []budget.AlertOutput) []BudgetAlertResponse {
	out := make([]BudgetAlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = BudgetAlertResponse{
			ID:        a.ID.String(),
			Category:  a.Category,
			Type:      string(a.Type),
			Message:   a.Message,
			Threshold: a.Threshold,
			IsRead:    a.IsRead,
			CreatedAt: a.CreatedAt,
		}
	}
	return out
}
