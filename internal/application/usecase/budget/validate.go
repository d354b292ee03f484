// Package budget contains budget-related use cases.
package budget

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 50

	// MinYear and MaxYear bound the accepted year range for summaries.
	MinYear = 2000
	MaxYear = 2100
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CategoryInput is one category limit supplied by the caller.
type CategoryInput struct {
	Name         string
	BudgetAmount decimal.Decimal
	Color        string
}

// validateMonth checks the YYYY-MM month key.
func validateMonth(month string) error {
	if !entity.ValidMonthKey(month) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidMonth,
			"month must be in YYYY-MM format",
			domainerror.ErrInvalidMonth,
		)
	}
	return nil
}

// validateYear checks the year is in a plausible range.
func validateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidYear,
			fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear),
			domainerror.ErrInvalidYear,
		)
	}
	return nil
}

// validateCategoryInput checks one category limit entry.
func validateCategoryInput(c CategoryInput) error {
	if c.Name == "" || len(c.Name) > MaxCategoryNameLength {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidCategoryName,
			fmt.Sprintf("category name must be 1-%d characters", MaxCategoryNameLength),
			domainerror.ErrInvalidCategoryName,
		)
	}
	if c.BudgetAmount.IsNegative() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeNegativeBudgetAmount,
			"budget amount must not be negative",
			domainerror.ErrNegativeBudgetAmount,
		)
	}
	if c.Color != "" && !colorPattern.MatchString(c.Color) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidColor,
			"color must be a hex value like #A1B2C3",
			domainerror.ErrInvalidColor,
		)
	}
	return nil
}

// validateCategoryInputs checks a full category list, including name uniqueness.
func validateCategoryInputs(categories []CategoryInput) error {
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if err := validateCategoryInput(c); err != nil {
			return err
		}
		if _, dup := seen[c.Name]; dup {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeDuplicateCategory,
				fmt.Sprintf("category %q appears more than once", c.Name),
				domainerror.ErrDuplicateCategory,
			)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// validateSavingsGoal checks a savings goal is not negative.
func validateSavingsGoal(goal decimal.Decimal) error {
	if goal.IsNegative() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeNegativeBudgetAmount,
			"savings goal must not be negative",
			domainerror.ErrNegativeBudgetAmount,
		)
	}
	return nil
}
