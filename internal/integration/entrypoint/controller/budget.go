// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetwise/backend/internal/application/usecase/budget"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
	"github.com/budgetwise/backend/internal/integration/entrypoint/dto"
	"github.com/budgetwise/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles monthly budget endpoints.
type BudgetController struct {
	getOrCreateUseCase       *budget.GetOrCreateBudgetUseCase
	setCategoryLimitsUseCase *budget.SetCategoryLimitsUseCase
	setSingleCategoryUseCase *budget.SetSingleCategoryLimitUseCase
	getAlertsUseCase         *budget.GetAlertsUseCase
	markAlertReadUseCase     *budget.MarkAlertReadUseCase
	getYearSummaryUseCase    *budget.GetYearSummaryUseCase
	getDefaultsUseCase       *budget.GetDefaultsUseCase
	setDefaultsUseCase       *budget.SetDefaultsUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	getOrCreateUseCase *budget.GetOrCreateBudgetUseCase,
	setCategoryLimitsUseCase *budget.SetCategoryLimitsUseCase,
	setSingleCategoryUseCase *budget.SetSingleCategoryLimitUseCase,
	getAlertsUseCase *budget.GetAlertsUseCase,
	markAlertReadUseCase *budget.MarkAlertReadUseCase,
	getYearSummaryUseCase *budget.GetYearSummaryUseCase,
	getDefaultsUseCase *budget.GetDefaultsUseCase,
	setDefaultsUseCase *budget.SetDefaultsUseCase,
) *BudgetController {
	return &BudgetController{
		getOrCreateUseCase:       getOrCreateUseCase,
		setCategoryLimitsUseCase: setCategoryLimitsUseCase,
		setSingleCategoryUseCase: setSingleCategoryUseCase,
		getAlertsUseCase:         getAlertsUseCase,
		markAlertReadUseCase:     markAlertReadUseCase,
		getYearSummaryUseCase:    getYearSummaryUseCase,
		getDefaultsUseCase:       getDefaultsUseCase,
		setDefaultsUseCase:       setDefaultsUseCase,
	}
}

// GetBudget handles GET /budget/:month requests. The budget is created from
// the user's default template on first access.
func (c *BudgetController) GetBudget(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.getOrCreateUseCase.Execute(ctx.Request.Context(), budget.GetOrCreateBudgetInput{
		UserID: userID,
		Month:  ctx.Param("month"),
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetResponseFromOutput(output.Budget))
}

// SetCategoryLimits handles POST /budget requests. The request body names
// the month and replaces its full category-limit list.
func (c *BudgetController) SetCategoryLimits(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.SetCategoryLimitsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBudgetBody(ctx)
		return
	}

	output, err := c.setCategoryLimitsUseCase.Execute(ctx.Request.Context(), budget.SetCategoryLimitsInput{
		UserID:      userID,
		Month:       req.Month,
		Categories:  toCategoryInputs(req.Categories),
		SavingsGoal: req.SavingsGoal,
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetResponseFromOutput(output.Budget))
}

// SetSingleCategoryLimit handles PUT /budget/:month/category requests.
func (c *BudgetController) SetSingleCategoryLimit(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.SetSingleCategoryLimitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBudgetBody(ctx)
		return
	}

	output, err := c.setSingleCategoryUseCase.Execute(ctx.Request.Context(), budget.SetSingleCategoryLimitInput{
		UserID: userID,
		Month:  ctx.Param("month"),
		Category: budget.CategoryInput{
			Name:         req.Name,
			BudgetAmount: req.BudgetAmount,
			Color:        req.Color,
		},
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetResponseFromOutput(output.Budget))
}

// GetAlerts handles GET /budget/:month/alerts requests. Only unread alerts
// are returned unless include_read=true is passed.
func (c *BudgetController) GetAlerts(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.getAlertsUseCase.Execute(ctx.Request.Context(), budget.GetAlertsInput{
		UserID:     userID,
		Month:      ctx.Param("month"),
		UnreadOnly: ctx.Query("include_read") != "true",
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AlertListResponse{
		Alerts: dto.AlertResponsesFromOutputs(output.Alerts),
	})
}

// MarkAlertRead handles PUT /budget/:month/alerts/:alertId/read requests.
func (c *BudgetController) MarkAlertRead(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	alertID, err := uuid.Parse(ctx.Param("alertId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid alert ID",
			Code:  string(domainerror.ErrCodeAlertNotFound),
		})
		return
	}

	if err := c.markAlertReadUseCase.Execute(ctx.Request.Context(), budget.MarkAlertReadInput{
		UserID:  userID,
		Month:   ctx.Param("month"),
		AlertID: alertID,
	}); err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Alert marked as read",
	})
}

// GetYearSummary handles GET /budget/summary/:year requests.
func (c *BudgetController) GetYearSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid year",
			Code:  string(domainerror.ErrCodeInvalidYear),
		})
		return
	}

	output, err := c.getYearSummaryUseCase.Execute(ctx.Request.Context(), budget.GetYearSummaryInput{
		UserID: userID,
		Year:   year,
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	months := make([]dto.MonthSummaryResponse, len(output.Months))
	for i, m := range output.Months {
		months[i] = dto.MonthSummaryResponse{
			Month:                 m.Month,
			TotalBudget:           m.TotalBudget,
			TotalSpent:            m.TotalSpent,
			RemainingBudget:       m.RemainingBudget,
			UtilizationPercentage: m.UtilizationPercentage,
			SavingsGoal:           m.SavingsGoal,
			CategoryCount:         m.CategoryCount,
			UnreadAlertCount:      m.UnreadAlertCount,
		}
	}

	ctx.JSON(http.StatusOK, dto.YearSummaryResponse{
		Year:        output.Year,
		Months:      months,
		TotalBudget: output.TotalBudget,
		TotalSpent:  output.TotalSpent,
	})
}

// GetDefaults handles GET /budget/defaults requests.
func (c *BudgetController) GetDefaults(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	output, err := c.getDefaultsUseCase.Execute(ctx.Request.Context(), budget.GetDefaultsInput{
		UserID: userID,
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toDefaultsResponse(output.Defaults, output.DefaultSavingsGoal))
}

// SetDefaults handles PUT /budget/defaults requests. The request body
// replaces the template new monthly budgets are seeded from.
func (c *BudgetController) SetDefaults(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.SetDefaultsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBudgetBody(ctx)
		return
	}

	output, err := c.setDefaultsUseCase.Execute(ctx.Request.Context(), budget.SetDefaultsInput{
		UserID:             userID,
		Defaults:           toCategoryInputs(req.Defaults),
		DefaultSavingsGoal: req.DefaultSavingsGoal,
	})
	if err != nil {
		handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toDefaultsResponse(output.Defaults, output.DefaultSavingsGoal))
}

func toCategoryInputs(categories []dto.CategoryLimitRequest) []budget.CategoryInput {
	inputs := make([]budget.CategoryInput, len(categories))
	for i, c := range categories {
		inputs[i] = budget.CategoryInput{
			Name:         c.Name,
			BudgetAmount: c.BudgetAmount,
			Color:        c.Color,
		}
	}
	return inputs
}

func toDefaultsResponse(defaults []budget.DefaultOutput, savingsGoal decimal.Decimal) dto.DefaultsResponse {
	entries := make([]dto.BudgetDefaultResponse, len(defaults))
	for i, d := range defaults {
		entries[i] = dto.BudgetDefaultResponse{
			ID:     d.ID.String(),
			Name:   d.Name,
			Amount: d.Amount,
			Color:  d.Color,
		}
	}
	return dto.DefaultsResponse{
		Defaults:           entries,
		DefaultSavingsGoal: savingsGoal,
	}
}

func respondInvalidBudgetBody(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request body",
		Code:  string(domainerror.ErrCodeInvalidCategoryName),
	})
}

// handleBudgetError maps budget errors to HTTP responses.
func handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		ctx.JSON(statusCodeForBudgetError(budgetErr.Code), dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForBudgetError maps budget error codes to HTTP status codes.
func statusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeInvalidYear,
		domainerror.ErrCodeInvalidCategoryName,
		domainerror.ErrCodeDuplicateCategory,
		domainerror.ErrCodeNegativeBudgetAmount,
		domainerror.ErrCodeInvalidDeltaAmount,
		domainerror.ErrCodeInvalidColor:
		return http.StatusBadRequest
	case domainerror.ErrCodeBudgetNotFound,
		domainerror.ErrCodeAlertNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBudgetAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
