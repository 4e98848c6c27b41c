package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// IncomeHandler handles income period requests.
type IncomeHandler struct {
	incomeService services.IncomeServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// CreateIncomeRequest represents the request payload for creating an income period
type CreateIncomeRequest struct {
	PeriodStart   string           `json:"period_start" binding:"required"`
	PeriodEnd     string           `json:"period_end" binding:"required"`
	WorkingDays   *int             `json:"working_days" binding:"omitempty,min=0,max=31"`
	Salary        decimal.Decimal  `json:"salary"`
	Allowances    *decimal.Decimal `json:"allowances"`
	ExtraServices *decimal.Decimal `json:"extra_services"`
	Notes         string           `json:"notes" binding:"max=1000"`
}

// UpdateIncomeRequest represents the request payload for updating an income period
type UpdateIncomeRequest struct {
	PeriodStart   *string          `json:"period_start"`
	PeriodEnd     *string          `json:"period_end"`
	WorkingDays   *int             `json:"working_days" binding:"omitempty,min=0,max=31"`
	Salary        *decimal.Decimal `json:"salary"`
	Allowances    *decimal.Decimal `json:"allowances"`
	ExtraServices *decimal.Decimal `json:"extra_services"`
	Notes         *string          `json:"notes" binding:"omitempty,max=1000"`
}

func optionalAmount(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

// CreateIncome handles the creation of a new income period
// @Summary     Create an income period
// @Description Create a new income record covering a date range; periods may not overlap
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateIncomeRequest true "Income details"
// @Success     201 {object} models.Income "Income created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Period overlaps an existing income"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	periodStart, err := parseFlexibleTime(req.PeriodStart)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	periodEnd, err := parseFlexibleTime(req.PeriodEnd)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.CreateIncome(caller, periodStart, periodEnd, req.WorkingDays,
		req.Salary, optionalAmount(req.Allowances), optionalAmount(req.ExtraServices), req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"income": income})
}

// GetIncome handles the retrieval of a single income period
// @Summary     Get an income period
// @Description Get an income by ID with its linked expenses
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income ID"
// @Success     200 {object} models.Income "Income details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/{id} [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	income, err := h.incomeService.GetIncomeByID(caller, incomeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// ListIncomes handles the retrieval of the caller's income periods
// @Summary     List income periods
// @Description Get a paginated list of the caller's incomes, newest period first
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Success     200 {object} pagination.PageResponse[models.Income] "Paginated incomes"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes [get]
func (h *IncomeHandler) ListIncomes(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.incomeService.ListIncomes(caller, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindIncomeByDate handles looking up the income period covering a date
// @Summary     Find income by date
// @Description Find the income period whose date range covers the given date
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       date query string true "Date to look up (YYYY-MM-DD)"
// @Success     200 {object} models.Income "Covering income"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No income covers the date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/by-date [get]
func (h *IncomeHandler) FindIncomeByDate(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required"))
		return
	}
	lookupDate, err := parseFlexibleTime(dateStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.FindByDate(caller, lookupDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// UpdateIncome handles updating an income period's editable fields
// @Summary     Update an income period
// @Description Update an income's period, working days, amounts, or notes
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income ID"
// @Param       request body UpdateIncomeRequest true "Fields to update"
// @Success     200 {object} models.Income "Updated income"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     409 {object} ErrorResponse "Period overlaps an existing income"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/{id} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var periodStart, periodEnd *time.Time
	if req.PeriodStart != nil && *req.PeriodStart != "" {
		parsed, parseErr := parseFlexibleTime(*req.PeriodStart)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		periodStart = &parsed
	}
	if req.PeriodEnd != nil && *req.PeriodEnd != "" {
		parsed, parseErr := parseFlexibleTime(*req.PeriodEnd)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		periodEnd = &parsed
	}

	income, err := h.incomeService.UpdateIncome(caller, incomeID, periodStart, periodEnd,
		req.WorkingDays, req.Salary, req.Allowances, req.ExtraServices, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income})
}

// DeleteIncome handles the deletion of an income period
// @Summary     Delete an income period
// @Description Delete an income; linked expenses are kept with their link cleared
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income ID"
// @Success     200 {object} MessageResponse "Income deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /incomes/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncome(caller, incomeID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Income deleted successfully"})
}
