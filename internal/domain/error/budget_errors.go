// Package error defines domain-specific errors for the Budgetwise application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found for a user and month.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when a budget already exists for a user and month.
	ErrBudgetAlreadyExists = errors.New("budget already exists for this month")

	// ErrAlertNotFound is returned when the referenced alert does not exist on the budget.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrInvalidMonth is returned when the month key is not in YYYY-MM format.
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")

	// ErrInvalidYear is returned when the year is outside the supported range.
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidCategoryName is returned when a category name is empty or too long.
	ErrInvalidCategoryName = errors.New("invalid category name")

	// ErrDuplicateCategory is returned when the same category name appears twice in one request.
	ErrDuplicateCategory = errors.New("duplicate category name")

	// ErrNegativeBudgetAmount is returned when a budget amount or savings goal is negative.
	ErrNegativeBudgetAmount = errors.New("budget amount must not be negative")

	// ErrInvalidDeltaAmount is returned when an expense delta amount is not strictly positive.
	ErrInvalidDeltaAmount = errors.New("delta amount must be positive")

	// ErrInvalidColor is returned when a category color is not a hex triplet.
	ErrInvalidColor = errors.New("color must be a hex value like #A1B2C3")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMonth         BudgetErrorCode = "BGT-010001"
	ErrCodeInvalidYear          BudgetErrorCode = "BGT-010002"
	ErrCodeInvalidCategoryName  BudgetErrorCode = "BGT-010003"
	ErrCodeDuplicateCategory    BudgetErrorCode = "BGT-010004"
	ErrCodeNegativeBudgetAmount BudgetErrorCode = "BGT-010005"
	ErrCodeInvalidDeltaAmount   BudgetErrorCode = "BGT-010006"
	ErrCodeInvalidColor         BudgetErrorCode = "BGT-010007"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound BudgetErrorCode = "BGT-020001"
	ErrCodeAlertNotFound  BudgetErrorCode = "BGT-020002"

	// Conflict errors (03XXXX)
	ErrCodeBudgetAlreadyExists BudgetErrorCode = "BGT-030001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
