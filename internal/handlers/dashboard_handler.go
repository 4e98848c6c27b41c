package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// DashboardHandler handles dashboard aggregation requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// parseMonthYear reads month/year query parameters, defaulting to the
// current month. Range validation happens in the service.
func parseMonthYear(c *gin.Context) (int, int, error) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()

	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month")
		}
		month = parsed
	}
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year")
		}
		year = parsed
	}
	return month, year, nil
}

// GetDashboard handles the retrieval of the monthly dashboard
// @Summary     Get the monthly dashboard
// @Description Get income, expense, category, and goal aggregates for a month
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12), defaults to the current month"
// @Param       year query int false "Year, defaults to the current year"
// @Success     200 {object} services.DashboardData "Dashboard aggregates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parseMonthYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.dashboardService.GetDashboard(caller, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetBalance handles the retrieval of the current month's balance
// @Summary     Get the current balance
// @Description Get the current month's income, expenses, and balance
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.BalanceData "Current month balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/balance [get]
func (h *DashboardHandler) GetBalance(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.dashboardService.GetBalance(caller)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// ComparePeriods handles comparing two months
// @Summary     Compare two periods
// @Description Compare one month's totals against another, with percentage deltas against the second
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "First month (1-12), defaults to the current month"
// @Param       year query int false "First year, defaults to the current year"
// @Param       month2 query int false "Baseline month (1-12), defaults to the month before the first period"
// @Param       year2 query int false "Baseline year"
// @Success     200 {object} services.PeriodComparison "Period comparison"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/comparison [get]
func (h *DashboardHandler) ComparePeriods(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parseMonthYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// The baseline defaults to the month immediately before the first period.
	month2, year2 := month-1, year
	if month2 == 0 {
		month2, year2 = 12, year-1
	}
	if v := c.Query("month2"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month2"))
			return
		}
		month2 = parsed
	}
	if v := c.Query("year2"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year2"))
			return
		}
		year2 = parsed
	}

	data, err := h.dashboardService.ComparePeriods(caller, month, year, month2, year2)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetEvolution handles the retrieval of the monthly evolution series
// @Summary     Get the balance evolution
// @Description Get a month-by-month income/expense series ending at the current month
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       months query int false "Number of months (1-24)" default(6)
// @Success     200 {object} []services.EvolutionPoint "Evolution series, oldest first"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/evolution [get]
func (h *DashboardHandler) GetEvolution(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := 6
	if v := c.Query("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid months"))
			return
		}
		months = parsed
	}

	points, err := h.dashboardService.GetEvolution(caller, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"evolution": points})
}

// GetTopCategories handles the retrieval of the biggest expense categories
// @Summary     Get top categories
// @Description Get the month's biggest expense categories by total amount
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12), defaults to the current month"
// @Param       year query int false "Year, defaults to the current year"
// @Param       limit query int false "Number of categories (1-20)" default(5)
// @Success     200 {object} []services.CategorySummary "Top categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/top-categories [get]
func (h *DashboardHandler) GetTopCategories(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parseMonthYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	limit := 5
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid limit"))
			return
		}
		limit = parsed
	}

	categories, err := h.dashboardService.GetTopCategories(caller, month, year, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetIndicators handles the retrieval of the financial health indicators
// @Summary     Get financial health indicators
// @Description Get savings rate, debt ratio, payment capacity, and the composite health score for a month
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int false "Month (1-12), defaults to the current month"
// @Param       year query int false "Year, defaults to the current year"
// @Success     200 {object} services.Indicators "Health indicators"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/indicators [get]
func (h *DashboardHandler) GetIndicators(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parseMonthYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	indicators, err := h.dashboardService.GetIndicators(caller, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, indicators)
}
