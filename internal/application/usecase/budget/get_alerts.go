package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// GetAlertsInput represents the input for listing a month's budget alerts.
type GetAlertsInput struct {
	UserID     uuid.UUID
	Month      string
	UnreadOnly bool
}

// GetAlertsOutput represents the output of listing budget alerts.
type GetAlertsOutput struct {
	BudgetID uuid.UUID
	Alerts   []AlertOutput
}

// GetAlertsUseCase lists the active alerts of one month's budget. A month
// with no budget yet simply has no alerts.
type GetAlertsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewGetAlertsUseCase creates a new GetAlertsUseCase instance.
func NewGetAlertsUseCase(budgetRepo adapter.BudgetRepository) *GetAlertsUseCase {
	return &GetAlertsUseCase{budgetRepo: budgetRepo}
}

// Execute lists the month's alerts.
func (uc *GetAlertsUseCase) Execute(ctx context.Context, input GetAlertsInput) (*GetAlertsOutput, error) {
	if err := validateMonth(input.Month); err != nil {
		return nil, err
	}

	budget, err := uc.budgetRepo.FindByUserAndMonth(ctx, input.UserID, input.Month)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return &GetAlertsOutput{Alerts: []AlertOutput{}}, nil
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	alerts := budget.Alerts
	if input.UnreadOnly {
		alerts = budget.UnreadAlerts()
	}

	out := make([]AlertOutput, len(alerts))
	for i, a := range alerts {
		out[i] = AlertOutput{
			ID:        a.ID,
			Category:  a.Category,
			Type:      a.Type,
			Message:   a.Message,
			Threshold: a.Threshold,
			IsRead:    a.IsRead,
			CreatedAt: a.CreatedAt,
		}
	}

	return &GetAlertsOutput{BudgetID: budget.ID, Alerts: out}, nil
}
