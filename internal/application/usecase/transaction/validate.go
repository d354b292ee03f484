// Package transaction contains ledger-related use cases.
package transaction

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

const (
	// MaxTitleLength is the maximum allowed length for transaction titles.
	MaxTitleLength = 100
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 500
)

func isValidTransactionType(transactionType entity.TransactionType) bool {
	return transactionType == entity.TransactionTypeExpense || transactionType == entity.TransactionTypeIncome
}

// validateEntry checks the writable fields shared by create and update.
func validateEntry(title string, amount decimal.Decimal, transactionType entity.TransactionType, category, description string, date time.Time) error {
	if title == "" || len(title) > MaxTitleLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionTitle,
			fmt.Sprintf("title must be 1-%d characters", MaxTitleLength),
			domainerror.ErrInvalidTransactionTitle,
		)
	}
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be positive",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if !isValidTransactionType(transactionType) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if category == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryRequired,
			"category is required",
			domainerror.ErrTransactionCategoryRequired,
		)
	}
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	if date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}
