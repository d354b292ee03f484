// Package error defines domain-specific errors for the Budgetwise application.
package error

import "errors"

// Summary domain errors.
var (
	// ErrInvalidDateRange is returned when endDate is before startDate.
	ErrInvalidDateRange = errors.New("end date must not be before start date")

	// ErrInvalidSummaryType is returned when the requested breakdown type is invalid.
	ErrInvalidSummaryType = errors.New("summary type must be 'expense' or 'income'")

	// ErrInvalidMonthsBack is returned when the monthly data window is out of range.
	ErrInvalidMonthsBack = errors.New("monthsBack must be between 1 and 24")
)

// SummaryErrorCode defines error codes for summary errors.
type SummaryErrorCode string

const (
	ErrCodeInvalidDateRange   SummaryErrorCode = "SUM-010001"
	ErrCodeInvalidSummaryType SummaryErrorCode = "SUM-010002"
	ErrCodeInvalidMonthsBack  SummaryErrorCode = "SUM-010003"
)

// SummaryError represents a summary error with code and message.
type SummaryError struct {
	Code    SummaryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SummaryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SummaryError) Unwrap() error {
	return e.Err
}

// NewSummaryError creates a new SummaryError with the given code and message.
func NewSummaryError(code SummaryErrorCode, message string, err error) *SummaryError {
	return &SummaryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
