package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	date := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	seed := func() (*DeleteTransactionUseCase, *fakeTransactionRepository, *fakeBudgetRepository, *entity.Transaction) {
		ledger := &fakeTransactionRepository{}
		budgets := newFakeBudgetRepository()
		create := NewCreateTransactionUseCase(ledger, budgets, nil)

		out, err := create.Execute(ctx, CreateTransactionInput{
			UserID:   userID,
			Title:    "Weekly groceries",
			Amount:   dec("100"),
			Type:     entity.TransactionTypeExpense,
			Category: "groceries",
			Date:     date,
		})
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		stored, err := ledger.FindByID(ctx, out.Transaction.ID)
		if err != nil {
			t.Fatal(err)
		}
		return NewDeleteTransactionUseCase(ledger, budgets, nil), ledger, budgets, stored
	}

	t.Run("removes the entry and lowers budget spend", func(t *testing.T) {
		uc, ledger, budgets, tx := seed()

		if err := uc.Execute(ctx, DeleteTransactionInput{ID: tx.ID, UserID: userID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(ledger.transactions) != 0 {
			t.Errorf("expected the ledger entry removed, got %d entries", len(ledger.transactions))
		}
		if got := budgets.spent(userID, "2026-08", "groceries"); !got.IsZero() {
			t.Errorf("expected spend back to zero, got %s", got)
		}
	})

	t.Run("failed budget adjustment keeps the ledger entry", func(t *testing.T) {
		uc, ledger, budgets, tx := seed()
		budgets.failDecrease = errors.New("store unavailable")

		if err := uc.Execute(ctx, DeleteTransactionInput{ID: tx.ID, UserID: userID}); err == nil {
			t.Fatal("expected an error")
		}

		if len(ledger.transactions) != 1 {
			t.Errorf("expected the ledger entry kept, got %d entries", len(ledger.transactions))
		}
		if got := budgets.spent(userID, "2026-08", "groceries"); !got.Equal(dec("100")) {
			t.Errorf("expected spend unchanged at 100, got %s", got)
		}
	})

	t.Run("failed ledger delete restores budget spend", func(t *testing.T) {
		uc, ledger, budgets, tx := seed()
		ledger.failDelete = errors.New("store unavailable")

		if err := uc.Execute(ctx, DeleteTransactionInput{ID: tx.ID, UserID: userID}); err == nil {
			t.Fatal("expected an error")
		}

		if len(ledger.transactions) != 1 {
			t.Errorf("expected the ledger entry kept, got %d entries", len(ledger.transactions))
		}
		if got := budgets.spent(userID, "2026-08", "groceries"); !got.Equal(dec("100")) {
			t.Errorf("expected spend restored to 100, got %s", got)
		}
	})

	t.Run("deleting income leaves budgets untouched", func(t *testing.T) {
		ledger := &fakeTransactionRepository{}
		budgets := newFakeBudgetRepository()
		create := NewCreateTransactionUseCase(ledger, budgets, nil)

		out, err := create.Execute(ctx, CreateTransactionInput{
			UserID:   userID,
			Title:    "Salary",
			Amount:   dec("3000"),
			Type:     entity.TransactionTypeIncome,
			Category: "salary",
			Date:     date,
		})
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		uc := NewDeleteTransactionUseCase(ledger, budgets, nil)
		if err := uc.Execute(ctx, DeleteTransactionInput{ID: out.Transaction.ID, UserID: userID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(budgets.budgets) != 0 {
			t.Errorf("expected no budgets, got %d", len(budgets.budgets))
		}
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		uc, _, _, _ := seed()

		err := uc.Execute(ctx, DeleteTransactionInput{ID: uuid.New(), UserID: userID})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})

	t.Run("another user's entry is not authorized", func(t *testing.T) {
		uc, ledger, budgets, tx := seed()

		err := uc.Execute(ctx, DeleteTransactionInput{ID: tx.ID, UserID: uuid.New()})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction) {
			t.Errorf("expected ErrNotAuthorizedToModifyTransaction, got %v", err)
		}
		if len(ledger.transactions) != 1 {
			t.Errorf("expected the ledger entry kept, got %d entries", len(ledger.transactions))
		}
		if got := budgets.spent(userID, "2026-08", "groceries"); !got.Equal(dec("100")) {
			t.Errorf("expected spend unchanged at 100, got %s", got)
		}
	})
}
