package entity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestBudgetCategory_Utilization(t *testing.T) {
	tests := []struct {
		name     string
		budget   string
		spent    string
		expected float64
	}{
		{"zero budget yields zero", "0", "150", 0},
		{"below warning", "500", "200", 40},
		{"exactly warning threshold", "500", "400", 80},
		{"exactly exceeded threshold", "500", "500", 100},
		{"over budget", "500", "600", 120},
		{"fractional result rounds", "300", "100", 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := BudgetCategory{
				Name:         "groceries",
				BudgetAmount: dec(tt.budget),
				SpentAmount:  dec(tt.spent),
			}
			if got := c.Utilization(); got != tt.expected {
				t.Errorf("expected utilization %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEvaluateCategoryAlert(t *testing.T) {
	tests := []struct {
		name         string
		budget       string
		spent        string
		expectedType AlertType
		expectNil    bool
	}{
		{"below warning threshold raises nothing", "500", "399.99", "", true},
		{"at 80 percent raises warning", "500", "400", AlertTypeWarning, false},
		{"just under 100 percent stays warning", "500", "499.99", AlertTypeWarning, false},
		{"at 100 percent raises exceeded", "500", "500", AlertTypeExceeded, false},
		{"over 100 percent raises exceeded", "500", "650", AlertTypeExceeded, false},
		{"zero budget never alerts", "0", "10000", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alert := EvaluateCategoryAlert(BudgetCategory{
				Name:         "dining",
				BudgetAmount: dec(tt.budget),
				SpentAmount:  dec(tt.spent),
			})

			if tt.expectNil {
				if alert != nil {
					t.Fatalf("expected no alert, got %+v", alert)
				}
				return
			}
			if alert == nil {
				t.Fatal("expected an alert, got nil")
			}
			if alert.Type != tt.expectedType {
				t.Errorf("expected alert type %s, got %s", tt.expectedType, alert.Type)
			}
			if alert.Category != "dining" {
				t.Errorf("expected category dining, got %s", alert.Category)
			}
			if alert.IsRead {
				t.Error("new alert must start unread")
			}
		})
	}
}

func TestEvaluateCategoryAlert_Messages(t *testing.T) {
	exceeded := EvaluateCategoryAlert(BudgetCategory{
		Name:         "dining",
		BudgetAmount: dec("500"),
		SpentAmount:  dec("650.50"),
	})
	if exceeded == nil {
		t.Fatal("expected an exceeded alert")
	}
	if !strings.Contains(exceeded.Message, "150.50") {
		t.Errorf("exceeded message should include the overspend, got %q", exceeded.Message)
	}

	warning := EvaluateCategoryAlert(BudgetCategory{
		Name:         "dining",
		BudgetAmount: dec("500"),
		SpentAmount:  dec("425"),
	})
	if warning == nil {
		t.Fatal("expected a warning alert")
	}
	if !strings.Contains(warning.Message, "85.0%") {
		t.Errorf("warning message should include the utilization, got %q", warning.Message)
	}
}

func TestBudget_RefreshCategoryAlert(t *testing.T) {
	newBudget := func(budget, spent string) *Budget {
		b := NewBudget(uuid.New(), "2026-08")
		b.Categories = []BudgetCategory{{
			ID:           uuid.New(),
			Name:         "groceries",
			BudgetAmount: dec(budget),
			SpentAmount:  dec(spent),
		}}
		return b
	}

	t.Run("raises warning when crossing 80 percent", func(t *testing.T) {
		b := newBudget("500", "400")
		b.RefreshCategoryAlert("groceries")

		alert := b.Alert("groceries")
		if alert == nil {
			t.Fatal("expected a warning alert")
		}
		if alert.Type != AlertTypeWarning {
			t.Errorf("expected warning, got %s", alert.Type)
		}
	})

	t.Run("escalation replaces warning with exceeded", func(t *testing.T) {
		b := newBudget("500", "400")
		b.RefreshCategoryAlert("groceries")
		b.Categories[0].SpentAmount = dec("520")
		b.RefreshCategoryAlert("groceries")

		if len(b.Alerts) != 1 {
			t.Fatalf("expected exactly one alert, got %d", len(b.Alerts))
		}
		if b.Alerts[0].Type != AlertTypeExceeded {
			t.Errorf("expected exceeded, got %s", b.Alerts[0].Type)
		}
	})

	t.Run("same type keeps existing alert and read state", func(t *testing.T) {
		b := newBudget("500", "400")
		b.RefreshCategoryAlert("groceries")
		b.Alerts[0].IsRead = true
		originalID := b.Alerts[0].ID

		b.Categories[0].SpentAmount = dec("450")
		b.RefreshCategoryAlert("groceries")

		if len(b.Alerts) != 1 {
			t.Fatalf("expected exactly one alert, got %d", len(b.Alerts))
		}
		if b.Alerts[0].ID != originalID {
			t.Error("same-type refresh must keep the existing alert")
		}
		if !b.Alerts[0].IsRead {
			t.Error("read state must survive a same-type refresh")
		}
	})

	t.Run("same type refreshes the message to current utilization", func(t *testing.T) {
		b := newBudget("500", "420")
		b.RefreshCategoryAlert("groceries")
		if !strings.Contains(b.Alerts[0].Message, "84.0%") {
			t.Fatalf("expected message at 84.0%%, got %q", b.Alerts[0].Message)
		}

		b.Categories[0].SpentAmount = dec("475")
		b.RefreshCategoryAlert("groceries")

		if !strings.Contains(b.Alerts[0].Message, "95.0%") {
			t.Errorf("expected message updated to 95.0%%, got %q", b.Alerts[0].Message)
		}
	})

	t.Run("falling back from exceeded to warning replaces the alert", func(t *testing.T) {
		b := newBudget("500", "520")
		b.RefreshCategoryAlert("groceries")
		exceededID := b.Alerts[0].ID

		b.Categories[0].SpentAmount = dec("400")
		b.RefreshCategoryAlert("groceries")

		if len(b.Alerts) != 1 {
			t.Fatalf("expected exactly one alert, got %d", len(b.Alerts))
		}
		if b.Alerts[0].Type != AlertTypeWarning {
			t.Errorf("expected warning, got %s", b.Alerts[0].Type)
		}
		if b.Alerts[0].ID == exceededID {
			t.Error("a type change must replace the alert")
		}
	})

	t.Run("dropping below threshold clears the alert", func(t *testing.T) {
		b := newBudget("500", "500")
		b.RefreshCategoryAlert("groceries")
		b.Categories[0].SpentAmount = dec("100")
		b.RefreshCategoryAlert("groceries")

		if len(b.Alerts) != 0 {
			t.Fatalf("expected no alerts, got %d", len(b.Alerts))
		}
	})

	t.Run("removed category clears its alert", func(t *testing.T) {
		b := newBudget("500", "500")
		b.RefreshCategoryAlert("groceries")
		b.Categories = nil
		b.RefreshCategoryAlert("groceries")

		if len(b.Alerts) != 0 {
			t.Fatalf("expected no alerts, got %d", len(b.Alerts))
		}
	})

	t.Run("at most one alert per category", func(t *testing.T) {
		b := newBudget("500", "600")
		b.RefreshCategoryAlert("groceries")
		b.RefreshCategoryAlert("groceries")
		b.RefreshCategoryAlert("groceries")

		if len(b.Alerts) != 1 {
			t.Fatalf("expected exactly one alert, got %d", len(b.Alerts))
		}
	})
}

func TestBudget_RefreshSavingsAlert(t *testing.T) {
	t.Run("raises goal_reached when net savings meet the goal", func(t *testing.T) {
		b := NewBudget(uuid.New(), "2026-08")
		b.SavingsGoal = dec("1000")
		b.RefreshSavingsAlert(dec("1200"))

		alert := b.Alert(SavingsAlertCategory)
		if alert == nil {
			t.Fatal("expected a goal_reached alert")
		}
		if alert.Type != AlertTypeGoalReached {
			t.Errorf("expected goal_reached, got %s", alert.Type)
		}
	})

	t.Run("clears when net savings fall below the goal", func(t *testing.T) {
		b := NewBudget(uuid.New(), "2026-08")
		b.SavingsGoal = dec("1000")
		b.RefreshSavingsAlert(dec("1200"))
		b.RefreshSavingsAlert(dec("800"))

		if b.Alert(SavingsAlertCategory) != nil {
			t.Error("expected the savings alert to be cleared")
		}
	})

	t.Run("zero goal never alerts", func(t *testing.T) {
		b := NewBudget(uuid.New(), "2026-08")
		b.RefreshSavingsAlert(dec("5000"))

		if len(b.Alerts) != 0 {
			t.Error("expected no alert without a configured goal")
		}
	})
}

func TestBudget_DerivedTotals(t *testing.T) {
	b := NewBudget(uuid.New(), "2026-08")
	b.Categories = []BudgetCategory{
		{Name: "groceries", BudgetAmount: dec("500"), SpentAmount: dec("200")},
		{Name: "dining", BudgetAmount: dec("300"), SpentAmount: dec("350")},
	}

	if got := b.TotalBudget(); !got.Equal(dec("800")) {
		t.Errorf("expected total budget 800, got %s", got)
	}
	if got := b.TotalSpent(); !got.Equal(dec("550")) {
		t.Errorf("expected total spent 550, got %s", got)
	}
	if got := b.RemainingBudget(); !got.Equal(dec("250")) {
		t.Errorf("expected remaining 250, got %s", got)
	}
	if got := b.UtilizationPercentage(); got != 68.75 {
		t.Errorf("expected utilization 68.75, got %v", got)
	}
}

func TestBudget_RemainingBudgetFloorsAtZero(t *testing.T) {
	b := NewBudget(uuid.New(), "2026-08")
	b.Categories = []BudgetCategory{
		{Name: "dining", BudgetAmount: dec("300"), SpentAmount: dec("450")},
	}

	if got := b.RemainingBudget(); !got.Equal(decimal.Zero) {
		t.Errorf("expected remaining 0, got %s", got)
	}
}

func TestValidMonthKey(t *testing.T) {
	valid := []string{"2026-01", "2026-12", "1999-06"}
	for _, m := range valid {
		if !ValidMonthKey(m) {
			t.Errorf("expected %q to be valid", m)
		}
	}

	invalid := []string{"", "2026-13", "2026-00", "2026-1", "26-01", "2026/01", "2026-01-15"}
	for _, m := range invalid {
		if ValidMonthKey(m) {
			t.Errorf("expected %q to be invalid", m)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds("2026-02")

	if start.Year() != 2026 || start.Month() != 2 || start.Day() != 1 {
		t.Errorf("unexpected start %s", start)
	}
	if end.Year() != 2026 || end.Month() != 2 || end.Day() != 28 {
		t.Errorf("unexpected end %s", end)
	}
	if !end.Before(start.AddDate(0, 1, 0)) {
		t.Error("end must fall inside the month")
	}
}

func TestMonthKey(t *testing.T) {
	start, _ := MonthBounds("2026-08")
	if got := MonthKey(start.AddDate(0, 0, 14)); got != "2026-08" {
		t.Errorf("expected 2026-08, got %s", got)
	}
}
