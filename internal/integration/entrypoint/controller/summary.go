// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/budgetwise/backend/internal/application/usecase/summary"
	"github.com/budgetwise/backend/internal/domain/entity"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/entrypoint/dto"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
)

// SummaryController handles reporting endpoints. The use case outputs carry
// their own JSON shape because they are also the cached representation, so
// handlers return them directly.
type SummaryController struct {
	getSummaryUseCase   *summary.GetUserSummaryUseCase
	getBreakdownUseCase *summary.GetCategoryBreakdownUseCase
	getMonthlyUseCase   *summary.GetMonthlyDataUseCase
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(
	getSummaryUseCase *summary.GetUserSummaryUseCase,
	getBreakdownUseCase *summary.GetCategoryBreakdownUseCase,
	getMonthlyUseCase *summary.GetMonthlyDataUseCase,
) *SummaryController {
	return &SummaryController{
		getSummaryUseCase:   getSummaryUseCase,
		getBreakdownUseCase: getBreakdownUseCase,
		getMonthlyUseCase:   getMonthlyUseCase,
	}
}

// GetSummary handles GET /summary requests. Without date filters the current
// calendar month is summarized.
func (c *SummaryController) GetSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	input := summary.GetUserSummaryInput{UserID: userID}

	var parseErr error
	if input.StartDate, parseErr = parseDateQuery(ctx.Query("start_date")); parseErr == nil {
		input.EndDate, parseErr = parseDateQuery(ctx.Query("end_date"))
	}
	if parseErr != nil {
		respondInvalidSummaryDate(ctx)
		return
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// GetCategoryBreakdown handles GET /summary/categories requests. The type
// query parameter selects the ledger side and defaults to expense.
func (c *SummaryController) GetCategoryBreakdown(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	input := summary.GetCategoryBreakdownInput{
		UserID: userID,
		Type:   entity.TransactionType(ctx.Query("type")),
	}

	var parseErr error
	if input.StartDate, parseErr = parseDateQuery(ctx.Query("start_date")); parseErr == nil {
		input.EndDate, parseErr = parseDateQuery(ctx.Query("end_date"))
	}
	if parseErr != nil {
		respondInvalidSummaryDate(ctx)
		return
	}

	output, err := c.getBreakdownUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// GetMonthlyData handles GET /summary/monthly requests. months_back selects
// the window size counting back from the current month.
func (c *SummaryController) GetMonthlyData(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	monthsBack := 0
	if raw := ctx.Query("months_back"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid months_back parameter",
				Code:  string(domainerror.ErrCodeInvalidMonthsBack),
			})
			return
		}
		monthsBack = parsed
	}

	output, err := c.getMonthlyUseCase.Execute(ctx.Request.Context(), summary.GetMonthlyDataInput{
		UserID:     userID,
		MonthsBack: monthsBack,
	})
	if err != nil {
		handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

func respondInvalidSummaryDate(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid date filter, expected YYYY-MM-DD or RFC3339",
		Code:  string(domainerror.ErrCodeInvalidDateRange),
	})
}

// handleSummaryError maps summary errors to HTTP responses.
func handleSummaryError(ctx *gin.Context, err error) {
	var summaryErr *domainerror.SummaryError
	if errors.As(err, &summaryErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: summaryErr.Message,
			Code:  string(summaryErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
