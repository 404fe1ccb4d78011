package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	balanceService   portssvc.BalanceSvc
	statementService portssvc.StatementSvc
	groupingService  portssvc.GroupingSvc
}

func newReportingHandler(bs portssvc.BalanceSvc, ss portssvc.StatementSvc, gs portssvc.GroupingSvc) *reportingHandler {
	return &reportingHandler{
		balanceService:   bs,
		statementService: ss,
		groupingService:  gs,
	}
}

// registerReportingRoutes registers routes related to financial reports.
func registerReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvc, statementService portssvc.StatementSvc, groupingService portssvc.GroupingSvc) {
	h := newReportingHandler(balanceService, statementService, groupingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/groupings", h.getGroupings)
		reports.GET("/balance", h.getBalance)
		reports.GET("/period-balances", h.getPeriodBalances)
	}
}

// getBalanceSheet godoc
// @Summary Generate a balance sheet
// @Description Generates the three-section balance sheet as of a date and checks the accounting equation
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := identityFromContext(c)
	if !ok {
		return
	}

	asOf, ok := dateQueryParam(c, "asOf", time.Now())
	if !ok {
		return
	}

	logger = logger.With(slog.Time("as_of", asOf))
	logger.Info("Received request to generate balance sheet")

	sheet, err := h.statementService.GenerateBalanceSheet(c.Request.Context(), tenantID, asOf)
	if err != nil {
		logger.Error("Failed to generate balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate balance sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(sheet))
}

// getIncomeStatement godoc
// @Summary Generate an income statement
// @Description Summarizes revenue and expenses over a period with per-category breakdowns
// @Tags reports
// @Produce json
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Invalid or missing dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := identityFromContext(c)
	if !ok {
		return
	}

	from, to, ok := periodQueryParams(c)
	if !ok {
		return
	}

	logger = logger.With(slog.Time("from", from), slog.Time("to", to))
	logger.Info("Received request to generate income statement")

	stmt, err := h.statementService.GenerateIncomeStatement(c.Request.Context(), tenantID, from, to)
	if err != nil {
		logger.Error("Failed to generate income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate income statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(stmt))
}

// getGroupings godoc
// @Summary Group transactions along reporting dimensions
// @Description Aggregates approved transactions by category, department, fund, type and month
// @Tags reports
// @Produce json
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.FinancialGroupingResponse
// @Failure 400 {object} map[string]string "Invalid or missing dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to group transactions"
// @Security BearerAuth
// @Router /reports/groupings [get]
func (h *reportingHandler) getGroupings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := identityFromContext(c)
	if !ok {
		return
	}

	from, to, ok := periodQueryParams(c)
	if !ok {
		return
	}

	logger = logger.With(slog.Time("from", from), slog.Time("to", to))
	logger.Info("Received request to group transactions")

	grouping, err := h.groupingService.GroupTransactions(c.Request.Context(), tenantID, from, to)
	if err != nil {
		logger.Error("Failed to group transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to group transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialGroupingResponse(grouping))
}

// getBalance godoc
// @Summary Compute a signed balance
// @Description Sums signed amounts of approved transactions over [from, to], optionally narrowed to a category. Omitting from sums from the tenant's books start.
// @Tags reports
// @Produce json
// @Param from query string false "Period start (YYYY-MM-DD); omit for cumulative"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Param categoryID query string false "Narrow to one category"
// @Success 200 {object} dto.MoneyResponse
// @Failure 400 {object} map[string]string "Invalid dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/balance [get]
func (h *reportingHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := identityFromContext(c)
	if !ok {
		return
	}

	to, ok := dateQueryParam(c, "to", time.Now())
	if !ok {
		return
	}

	var categoryID *string
	if id := c.Query("categoryID"); id != "" {
		categoryID = &id
	}

	var money domain.Money
	var err error
	if fromStr := c.Query("from"); fromStr != "" {
		from, parseErr := time.Parse("2006-01-02", fromStr)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date. Use YYYY-MM-DD"})
			return
		}
		money, err = h.balanceService.BalanceForPeriod(c.Request.Context(), tenantID, categoryID, from, to)
	} else {
		money, err = h.balanceService.BalanceUpToDate(c.Request.Context(), tenantID, categoryID, to)
	}
	if err != nil {
		logger.Error("Failed to compute balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMoneyResponse(money))
}

// getPeriodBalances godoc
// @Summary Compute the three canonical period balances
// @Description Returns current month to date, full previous month, and cumulative through prior year end, all derived from asOf
// @Tags reports
// @Produce json
// @Param asOf query string false "Reference date (YYYY-MM-DD)" default(current date)
// @Param categoryID query string false "Narrow to one category"
// @Success 200 {object} dto.PeriodBalancesResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/period-balances [get]
func (h *reportingHandler) getPeriodBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := identityFromContext(c)
	if !ok {
		return
	}

	asOf, ok := dateQueryParam(c, "asOf", time.Now())
	if !ok {
		return
	}

	var categoryID *string
	if id := c.Query("categoryID"); id != "" {
		categoryID = &id
	}

	balances, err := h.balanceService.PeriodBalances(c.Request.Context(), tenantID, categoryID, asOf)
	if err != nil {
		logger.Error("Failed to compute period balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute period balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodBalancesResponse(balances))
}

// dateQueryParam parses a YYYY-MM-DD query parameter, falling back to def
// when absent. On a malformed value it writes a 400 and returns ok=false.
func dateQueryParam(c *gin.Context, name string, def time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return parsed, true
}

// periodQueryParams parses the required from and to parameters and rejects
// inverted ranges.
func periodQueryParams(c *gin.Context) (time.Time, time.Time, bool) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both from and to dates are required (YYYY-MM-DD)"})
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to date must not precede from date"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
