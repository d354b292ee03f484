package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	date := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	setup := func() (*CreateTransactionUseCase, *fakeTransactionRepository, *fakeBudgetRepository, *fakeSummaryCache) {
		ledger := &fakeTransactionRepository{}
		budgets := newFakeBudgetRepository()
		cache := newFakeSummaryCache()
		return NewCreateTransactionUseCase(ledger, budgets, cache), ledger, budgets, cache
	}

	valid := func() CreateTransactionInput {
		return CreateTransactionInput{
			UserID:   userID,
			Title:    "Weekly groceries",
			Amount:   dec("120.50"),
			Type:     entity.TransactionTypeExpense,
			Category: "groceries",
			Date:     date,
		}
	}

	t.Run("records the entry and raises budget spend", func(t *testing.T) {
		uc, ledger, budgets, cache := setup()

		out, err := uc.Execute(ctx, valid())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(ledger.transactions) != 1 {
			t.Fatalf("expected 1 ledger entry, got %d", len(ledger.transactions))
		}
		if out.Transaction.Title != "Weekly groceries" {
			t.Errorf("unexpected title %q", out.Transaction.Title)
		}
		if got := budgets.spent(userID, "2026-08", "groceries"); !got.Equal(dec("120.50")) {
			t.Errorf("expected budget spend 120.50, got %s", got)
		}
		if cache.invalidations[userID] != 1 {
			t.Errorf("expected 1 cache invalidation, got %d", cache.invalidations[userID])
		}
	})

	t.Run("income never touches category spend", func(t *testing.T) {
		uc, _, budgets, _ := setup()

		in := valid()
		in.Type = entity.TransactionTypeIncome
		in.Category = "salary"
		if _, err := uc.Execute(ctx, in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(budgets.budgets) != 0 {
			t.Errorf("income must not create or touch budgets, got %d", len(budgets.budgets))
		}
	})

	t.Run("expense lands in the month of its entry date", func(t *testing.T) {
		uc, _, budgets, _ := setup()

		in := valid()
		in.Date = time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
		if _, err := uc.Execute(ctx, in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := budgets.spent(userID, "2026-01", "groceries"); !got.Equal(dec("120.50")) {
			t.Errorf("expected spend in 2026-01, got %s", got)
		}
		if got := budgets.spent(userID, "2026-08", "groceries"); !got.IsZero() {
			t.Errorf("expected no spend in 2026-08, got %s", got)
		}
	})

	t.Run("omitted date defaults to now and lands in the current month", func(t *testing.T) {
		uc, _, budgets, _ := setup()

		in := valid()
		in.Date = time.Time{}
		out, err := uc.Execute(ctx, in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Transaction.Date.IsZero() {
			t.Error("expected the date to be defaulted")
		}
		month := entity.MonthKey(time.Now().UTC())
		if got := budgets.spent(userID, month, "groceries"); !got.Equal(dec("120.50")) {
			t.Errorf("expected spend in %s, got %s", month, got)
		}
	})

	t.Run("failed budget propagation rolls the ledger write back", func(t *testing.T) {
		uc, ledger, budgets, cache := setup()
		budgets.failIncrease = errors.New("store unavailable")

		_, err := uc.Execute(ctx, valid())
		if err == nil {
			t.Fatal("expected an error")
		}

		if len(ledger.transactions) != 0 {
			t.Errorf("expected the ledger entry rolled back, got %d entries", len(ledger.transactions))
		}
		if cache.invalidations[userID] != 0 {
			t.Errorf("expected no cache invalidation, got %d", cache.invalidations[userID])
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		uc, ledger, _, _ := setup()

		tests := []struct {
			name     string
			mutate   func(*CreateTransactionInput)
			expected error
		}{
			{"empty title", func(in *CreateTransactionInput) { in.Title = "" }, domainerror.ErrInvalidTransactionTitle},
			{"title too long", func(in *CreateTransactionInput) { in.Title = strings.Repeat("x", MaxTitleLength+1) }, domainerror.ErrInvalidTransactionTitle},
			{"zero amount", func(in *CreateTransactionInput) { in.Amount = dec("0") }, domainerror.ErrInvalidTransactionAmount},
			{"negative amount", func(in *CreateTransactionInput) { in.Amount = dec("-10") }, domainerror.ErrInvalidTransactionAmount},
			{"bad type", func(in *CreateTransactionInput) { in.Type = "transfer" }, domainerror.ErrInvalidTransactionType},
			{"missing category", func(in *CreateTransactionInput) { in.Category = "" }, domainerror.ErrTransactionCategoryRequired},
			{"description too long", func(in *CreateTransactionInput) { in.Description = strings.Repeat("x", MaxDescriptionLength+1) }, domainerror.ErrDescriptionTooLong},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := valid()
				tt.mutate(&in)

				_, err := uc.Execute(ctx, in)
				if !errors.Is(err, tt.expected) {
					t.Errorf("expected %v, got %v", tt.expected, err)
				}
			})
		}

		if len(ledger.transactions) != 0 {
			t.Errorf("rejected input must not reach the ledger, got %d entries", len(ledger.transactions))
		}
	})
}
