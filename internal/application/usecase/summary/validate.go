package summary

import (
	"time"

	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

const (
	// MinMonthsBack and MaxMonthsBack bound the monthly data window.
	MinMonthsBack = 1
	MaxMonthsBack = 24

	// DefaultMonthsBack is the window used when none is requested.
	DefaultMonthsBack = 6
)

// validatePeriod checks an explicit date range.
func validatePeriod(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return domainerror.NewSummaryError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not be before start date",
			domainerror.ErrInvalidDateRange,
		)
	}
	return nil
}

// defaultPeriod returns the current calendar month when the caller supplies
// no range.
func defaultPeriod(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
