package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	date := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	seed := func() (*UpdateTransactionUseCase, *fakeTransactionRepository, *fakeBudgetRepository, *entity.Transaction) {
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
		return NewUpdateTransactionUseCase(ledger, budgets, nil), ledger, budgets, stored
	}

	t.Run("amount change adjusts spend by the difference", func(t *testing.T) {
		uc, _, budgets, tx := seed()

		amount := dec("160")
		_, err := uc.Execute(ctx, UpdateTransactionInput{ID: tx.ID, UserID: userID, Amount: &amount})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := budgets.spent(userID, "2026-08", "groceries"); !got.Equal(dec("160")) {
			t.Errorf("expected spend 160, got %s", got)
		}
	})

	t.Run("category change moves spend between categories", func(t *testing.T) {
		uc, _, budgets, tx := seed()

		category := "dining"
		_, err := uc.Execute(ctx, UpdateTransactionInput{ID: tx.ID, UserID: userID, Category: &category})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := budgets.spent(userID, "2026-08", "groceries"); !got.IsZero() {
			t.Errorf("old category must drop to zero, got %s", got)
		}
		if got := budgets.spent(userID, "2026-08", "dining"); !got.Equal(dec("100")) {
			t.Errorf("new category must carry the spend, got %s", got)
		}
	})

	t.Run("date change moves spend between months", func(t *testing.T) {
		uc, _, budgets, tx := seed()

		newDate := time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC)
		_, err := uc.Execute(ctx, UpdateTransactionInput{ID: tx.ID, UserID: userID, Date: &newDate})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := budgets.spent(userID, "2026-08", "groceries"); !got.IsZero() {
			t.Errorf("old month must drop to zero, got %s", got)
		}
		if got := budgets.spent(userID, "2026-09", "groceries"); !got.Equal(dec("100")) {
			t.Errorf("new month must carry the spend, got %s", got)
		}
	})

	t.Run("switching expense to income removes spend", func(t *testing.T) {
		uc, _, budgets, tx := seed()

		incomeType := entity.TransactionTypeIncome
		_, err := uc.Execute(ctx, UpdateTransactionInput{ID: tx.ID, UserID: userID, Type: &incomeType})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := budgets.spent(userID, "2026-08", "groceries"); !got.IsZero() {
			t.Errorf("expected spend removed, got %s", got)
		}
	})

	t.Run("rejects updates by another user", func(t *testing.T) {
		uc, _, _, tx := seed()

		amount := dec("5")
		_, err := uc.Execute(ctx, UpdateTransactionInput{ID: tx.ID, UserID: uuid.New(), Amount: &amount})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction) {
			t.Errorf("expected ErrNotAuthorizedToModifyTransaction, got %v", err)
		}
	})

	t.Run("rejects invalid resulting state", func(t *testing.T) {
		uc, _, budgets, tx := seed()

		amount := decimal.Zero
		_, err := uc.Execute(ctx, UpdateTransactionInput{ID: tx.ID, UserID: userID, Amount: &amount})
		if !errors.Is(err, domainerror.ErrInvalidTransactionAmount) {
			t.Errorf("expected ErrInvalidTransactionAmount, got %v", err)
		}
		if got := budgets.spent(userID, "2026-08", "groceries"); !got.Equal(dec("100")) {
			t.Errorf("rejected update must not touch budget spend, got %s", got)
		}
	})

	t.Run("failed budget propagation restores the ledger entry", func(t *testing.T) {
		uc, ledger, budgets, tx := seed()
		budgets.failIncrease = errors.New("store unavailable")

		amount := dec("160")
		_, err := uc.Execute(ctx, UpdateTransactionInput{ID: tx.ID, UserID: userID, Amount: &amount})
		if err == nil {
			t.Fatal("expected an error")
		}

		stored, err := ledger.FindByID(ctx, tx.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !stored.Amount.Equal(dec("100")) {
			t.Errorf("expected the ledger entry restored to 100, got %s", stored.Amount)
		}
		if got := budgets.spent(userID, "2026-08", "groceries"); !got.Equal(dec("100")) {
			t.Errorf("expected spend restored to 100, got %s", got)
		}
	})

	t.Run("unknown transaction yields not found", func(t *testing.T) {
		uc, _, _, _ := seed()

		amount := dec("5")
		_, err := uc.Execute(ctx, UpdateTransactionInput{ID: uuid.New(), UserID: userID, Amount: &amount})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}
