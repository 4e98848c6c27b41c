package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the request payload for creating a goal
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	Description  string          `json:"description" binding:"max=500"`
	Type         models.GoalType `json:"type" binding:"omitempty,goal_type"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	Deadline     *string         `json:"deadline"`
	Notes        string          `json:"notes" binding:"max=1000"`
}

// UpdateGoalRequest represents the request payload for updating a goal
type UpdateGoalRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=100"`
	Description  *string          `json:"description" binding:"omitempty,max=500"`
	Type         *models.GoalType `json:"type" binding:"omitempty,goal_type"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	Deadline     *string          `json:"deadline"`
	Notes        *string          `json:"notes" binding:"omitempty,max=1000"`
}

// GoalTransactionRequest represents the request payload for a contribution
// or withdrawal against a goal
type GoalTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        *string         `json:"date"`
	Description string          `json:"description" binding:"max=500"`
}

func parseOptionalDeadline(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := parseFlexibleTime(*raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return &parsed, nil
}

// CreateGoal handles the creation of a new savings goal
// @Summary     Create a goal
// @Description Create a new savings goal with a target amount and optional deadline
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deadline, err := parseOptionalDeadline(req.Deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.CreateGoal(caller, req.Name, req.Description, req.Type, req.TargetAmount, deadline, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoal handles the retrieval of a single goal
// @Summary     Get a goal
// @Description Get a goal by ID, optionally including its transaction ledger
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       include_transactions query bool false "Include the transaction ledger"
// @Success     200 {object} models.Goal "Goal details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	withTransactions := c.Query("include_transactions") == "true"

	goal, err := h.goalService.GetGoalByID(caller, goalID, withTransactions)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// ListGoals handles the retrieval of the caller's goals
// @Summary     List goals
// @Description Get a paginated list of the caller's goals with optional status/type filters
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Param       status query string false "Filter by status" Enums(in_progress, completed, paused, cancelled)
// @Param       type query string false "Filter by goal type" Enums(savings, investment, purchase)
// @Success     200 {object} pagination.PageResponse[models.Goal] "Paginated goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
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

	var filter services.GoalFilter
	if v := c.Query("status"); v != "" {
		status := models.GoalStatus(v)
		filter.Status = &status
	}
	if v := c.Query("type"); v != "" {
		goalType := models.GoalType(v)
		filter.Type = &goalType
	}

	result, err := h.goalService.ListGoals(caller, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateGoal handles updating a goal's editable fields
// @Summary     Update a goal
// @Description Update a goal's name, description, type, target amount, deadline, or notes
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to update"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Concurrent modification"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deadline, err := parseOptionalDeadline(req.Deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(caller, goalID, req.Name, req.Description, req.Type, req.TargetAmount, deadline, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles the deletion of a goal and its ledger
// @Summary     Delete a goal
// @Description Delete a goal and all of its transactions
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(caller, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

func (h *GoalHandler) ledgerOperation(c *gin.Context, op func(services.Caller, uint, decimal.Decimal, time.Time, string) (*models.Goal, error)) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoalTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactionDate := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		transactionDate = parsed
	}

	goal, err := op(caller, goalID, req.Amount, transactionDate, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// Contribute handles adding funds to a goal
// @Summary     Contribute to a goal
// @Description Record a contribution, updating the goal's balance and progress
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body GoalTransactionRequest true "Contribution details"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal closed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Concurrent modification"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/contribute [post]
func (h *GoalHandler) Contribute(c *gin.Context) {
	h.ledgerOperation(c, h.goalService.Contribute)
}

// Withdraw handles taking funds out of a goal
// @Summary     Withdraw from a goal
// @Description Record a withdrawal, reducing the goal's balance
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body GoalTransactionRequest true "Withdrawal details"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Concurrent modification"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/withdraw [post]
func (h *GoalHandler) Withdraw(c *gin.Context) {
	h.ledgerOperation(c, h.goalService.Withdraw)
}

func (h *GoalHandler) statusOperation(c *gin.Context, op func(services.Caller, uint) (*models.Goal, error)) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := op(caller, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// CancelGoal handles cancelling a goal
// @Summary     Cancel a goal
// @Description Cancel an in-progress or paused goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} models.Goal "Cancelled goal"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Transition not allowed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/cancel [post]
func (h *GoalHandler) CancelGoal(c *gin.Context) {
	h.statusOperation(c, h.goalService.CancelGoal)
}

// PauseGoal handles pausing a goal
// @Summary     Pause a goal
// @Description Pause an in-progress goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} models.Goal "Paused goal"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Transition not allowed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/pause [post]
func (h *GoalHandler) PauseGoal(c *gin.Context) {
	h.statusOperation(c, h.goalService.PauseGoal)
}

// ResumeGoal handles resuming a paused goal
// @Summary     Resume a goal
// @Description Resume a paused goal; a goal that already reached its target completes immediately
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} models.Goal "Resumed goal"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     409 {object} ErrorResponse "Transition not allowed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/resume [post]
func (h *GoalHandler) ResumeGoal(c *gin.Context) {
	h.statusOperation(c, h.goalService.ResumeGoal)
}

// ListGoalTransactions handles the retrieval of a goal's ledger
// @Summary     List goal transactions
// @Description Get a paginated list of a goal's contributions and withdrawals, newest first
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Success     200 {object} pagination.PageResponse[models.GoalTransaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/transactions [get]
func (h *GoalHandler) ListGoalTransactions(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.goalService.ListGoalTransactions(caller, goalID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoalTransactionStats handles the retrieval of a goal's ledger statistics
// @Summary     Get goal transaction statistics
// @Description Get per-kind totals and counts for a goal's ledger, with average, largest, and smallest contribution
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} services.GoalTransactionStats "Ledger statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/transactions/stats [get]
func (h *GoalHandler) GetGoalTransactionStats(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.goalService.GetTransactionStats(caller, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetSummary handles the retrieval of the caller's goal summary
// @Summary     Get goal summary
// @Description Get aggregate totals and counts across the caller's goals
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.GoalSummary "Goal summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/summary [get]
func (h *GoalHandler) GetSummary(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.goalService.GetSummary(caller)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}
