package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

func TestSetCategoryLimits(t *testing.T) {
	ctx := context.Background()

	setup := func() (*SetCategoryLimitsUseCase, *fakeBudgetRepository, *fakeTransactionRepository, *entity.User) {
		user := entity.NewUser("ana@example.com", "Ana", "hash")
		users := newFakeUserRepository(user)
		budgets := newFakeBudgetRepository(users)
		transactions := &fakeTransactionRepository{}
		uc := NewSetCategoryLimitsUseCase(budgets, transactions, users)
		return uc, budgets, transactions, user
	}

	t.Run("replaces the category list", func(t *testing.T) {
		uc, _, _, user := setup()

		out, err := uc.Execute(ctx, SetCategoryLimitsInput{
			UserID: user.ID,
			Month:  "2026-08",
			Categories: []CategoryInput{
				{Name: "groceries", BudgetAmount: dec("500"), Color: "#11AA22"},
				{Name: "dining", BudgetAmount: dec("300")},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(out.Budget.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(out.Budget.Categories))
		}
		if !out.Budget.TotalBudget.Equal(dec("800")) {
			t.Errorf("expected total budget 800, got %s", out.Budget.TotalBudget)
		}
	})

	t.Run("preserves spent amounts of surviving categories", func(t *testing.T) {
		uc, budgets, _, user := setup()

		b := entity.NewBudget(user.ID, "2026-08")
		b.Categories = []entity.BudgetCategory{
			{Name: "groceries", BudgetAmount: dec("500"), SpentAmount: dec("220")},
			{Name: "dining", BudgetAmount: dec("300"), SpentAmount: dec("90")},
		}
		if err := budgets.Create(ctx, b); err != nil {
			t.Fatal(err)
		}

		out, err := uc.Execute(ctx, SetCategoryLimitsInput{
			UserID: user.ID,
			Month:  "2026-08",
			Categories: []CategoryInput{
				{Name: "groceries", BudgetAmount: dec("600")},
				{Name: "travel", BudgetAmount: dec("400")},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		byName := map[string]CategoryOutput{}
		for _, c := range out.Budget.Categories {
			byName[c.Name] = c
		}
		if got := byName["groceries"].SpentAmount; !got.Equal(dec("220")) {
			t.Errorf("surviving category must keep its spend, got %s", got)
		}
		if got := byName["travel"].SpentAmount; !got.IsZero() {
			t.Errorf("new category must start at zero spend, got %s", got)
		}
		if _, ok := byName["dining"]; ok {
			t.Error("dropped category must be removed")
		}
	})

	t.Run("re-evaluates alerts against new limits", func(t *testing.T) {
		uc, budgets, _, user := setup()

		b := entity.NewBudget(user.ID, "2026-08")
		b.Categories = []entity.BudgetCategory{
			{Name: "dining", BudgetAmount: dec("1000"), SpentAmount: dec("450")},
		}
		if err := budgets.Create(ctx, b); err != nil {
			t.Fatal(err)
		}

		// Lowering the limit below current spend must raise exceeded.
		out, err := uc.Execute(ctx, SetCategoryLimitsInput{
			UserID: user.ID,
			Month:  "2026-08",
			Categories: []CategoryInput{
				{Name: "dining", BudgetAmount: dec("400")},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(out.Budget.Alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(out.Budget.Alerts))
		}
		if out.Budget.Alerts[0].Type != entity.AlertTypeExceeded {
			t.Errorf("expected exceeded alert, got %s", out.Budget.Alerts[0].Type)
		}
	})

	t.Run("drops alerts of removed categories", func(t *testing.T) {
		uc, budgets, _, user := setup()

		b := entity.NewBudget(user.ID, "2026-08")
		b.Categories = []entity.BudgetCategory{
			{Name: "dining", BudgetAmount: dec("300"), SpentAmount: dec("350")},
		}
		b.RefreshAllAlerts()
		if err := budgets.Create(ctx, b); err != nil {
			t.Fatal(err)
		}

		out, err := uc.Execute(ctx, SetCategoryLimitsInput{
			UserID: user.ID,
			Month:  "2026-08",
			Categories: []CategoryInput{
				{Name: "groceries", BudgetAmount: dec("500")},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(out.Budget.Alerts) != 0 {
			t.Errorf("expected no alerts after removing the alerted category, got %d", len(out.Budget.Alerts))
		}
	})

	t.Run("updates the savings goal when provided", func(t *testing.T) {
		uc, _, _, user := setup()
		goal := dec("750")

		out, err := uc.Execute(ctx, SetCategoryLimitsInput{
			UserID:      user.ID,
			Month:       "2026-08",
			Categories:  []CategoryInput{{Name: "groceries", BudgetAmount: dec("500")}},
			SavingsGoal: &goal,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Budget.SavingsGoal.Equal(goal) {
			t.Errorf("expected savings goal 750, got %s", out.Budget.SavingsGoal)
		}
	})

	t.Run("rejects duplicate category names", func(t *testing.T) {
		uc, _, _, user := setup()

		_, err := uc.Execute(ctx, SetCategoryLimitsInput{
			UserID: user.ID,
			Month:  "2026-08",
			Categories: []CategoryInput{
				{Name: "groceries", BudgetAmount: dec("500")},
				{Name: "groceries", BudgetAmount: dec("300")},
			},
		})
		if !errors.Is(err, domainerror.ErrDuplicateCategory) {
			t.Errorf("expected ErrDuplicateCategory, got %v", err)
		}
	})

	t.Run("rejects negative limits", func(t *testing.T) {
		uc, _, _, user := setup()

		_, err := uc.Execute(ctx, SetCategoryLimitsInput{
			UserID:     user.ID,
			Month:      "2026-08",
			Categories: []CategoryInput{{Name: "groceries", BudgetAmount: dec("-1")}},
		})
		if !errors.Is(err, domainerror.ErrNegativeBudgetAmount) {
			t.Errorf("expected ErrNegativeBudgetAmount, got %v", err)
		}
	})

	t.Run("rejects malformed colors", func(t *testing.T) {
		uc, _, _, user := setup()

		_, err := uc.Execute(ctx, SetCategoryLimitsInput{
			UserID:     user.ID,
			Month:      "2026-08",
			Categories: []CategoryInput{{Name: "groceries", BudgetAmount: dec("500"), Color: "red"}},
		})
		if !errors.Is(err, domainerror.ErrInvalidColor) {
			t.Errorf("expected ErrInvalidColor, got %v", err)
		}
	})

	t.Run("zero limit is allowed and never alerts", func(t *testing.T) {
		uc, budgets, _, user := setup()

		b := entity.NewBudget(user.ID, "2026-08")
		b.Categories = []entity.BudgetCategory{
			{Name: "misc", BudgetAmount: dec("100"), SpentAmount: dec("500")},
		}
		b.RefreshAllAlerts()
		if err := budgets.Create(ctx, b); err != nil {
			t.Fatal(err)
		}

		out, err := uc.Execute(ctx, SetCategoryLimitsInput{
			UserID:     user.ID,
			Month:      "2026-08",
			Categories: []CategoryInput{{Name: "misc", BudgetAmount: decimal.Zero}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Budget.Alerts) != 0 {
			t.Errorf("zero-limit category must clear its alert, got %d", len(out.Budget.Alerts))
		}
	})
}
