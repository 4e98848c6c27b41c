package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// ParameterHandler handles user preference parameter requests.
type ParameterHandler struct {
	parameterService services.ParameterServicer
}

// NewParameterHandler creates a new ParameterHandler.
func NewParameterHandler(parameterService services.ParameterServicer) *ParameterHandler {
	return &ParameterHandler{parameterService: parameterService}
}

// CreateParameterRequest represents the request payload for creating a parameter
type CreateParameterRequest struct {
	Key         string               `json:"key" binding:"required,min=2,max=100"`
	Description string               `json:"description" binding:"max=255"`
	Value       string               `json:"value" binding:"required,max=500"`
	Type        models.ParameterType `json:"type" binding:"omitempty,parameter_type"`
}

// UpdateParameterRequest represents the request payload for updating a parameter
type UpdateParameterRequest struct {
	Description *string               `json:"description" binding:"omitempty,max=255"`
	Value       *string               `json:"value" binding:"omitempty,max=500"`
	Type        *models.ParameterType `json:"type" binding:"omitempty,parameter_type"`
}

// CreateParameter handles the creation of a new parameter
// @Summary     Create a parameter
// @Description Create a typed key/value preference; keys are unique per user
// @Tags        parameters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateParameterRequest true "Parameter details"
// @Success     201 {object} models.Parameter "Parameter created"
// @Failure     400 {object} ErrorResponse "Invalid input or value does not match type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Key already in use"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parameters [post]
func (h *ParameterHandler) CreateParameter(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	parameter, err := h.parameterService.CreateParameter(caller, req.Key, req.Description, req.Value, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"parameter": parameter})
}

// GetParameter handles the retrieval of a single parameter by ID
// @Summary     Get a parameter
// @Description Get a parameter by ID
// @Tags        parameters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Parameter ID"
// @Success     200 {object} models.Parameter "Parameter details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Parameter not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parameters/{id} [get]
func (h *ParameterHandler) GetParameter(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	parameterID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	parameter, err := h.parameterService.GetParameterByID(caller, parameterID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"parameter": parameter})
}

// GetParameterByKey handles the retrieval of a parameter by its key
// @Summary     Get a parameter by key
// @Description Look up one of the caller's parameters by key
// @Tags        parameters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       key path string true "Parameter key"
// @Success     200 {object} models.Parameter "Parameter details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Parameter not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parameters/key/{key} [get]
func (h *ParameterHandler) GetParameterByKey(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	key := c.Param("key")
	if key == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "key is required"))
		return
	}

	parameter, err := h.parameterService.GetParameterByKey(caller, key)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"parameter": parameter})
}

// ListParameters handles the retrieval of the caller's parameters
// @Summary     List parameters
// @Description Get a paginated list of the caller's parameters sorted by key
// @Tags        parameters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Param       type query string false "Filter by value type" Enums(string, number, boolean, json)
// @Success     200 {object} pagination.PageResponse[models.Parameter] "Paginated parameters"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parameters [get]
func (h *ParameterHandler) ListParameters(c *gin.Context) {
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

	var filter services.ParameterFilter
	if v := c.Query("type"); v != "" {
		parameterType := models.ParameterType(v)
		filter.Type = &parameterType
	}

	result, err := h.parameterService.ListParameters(caller, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateParameter handles updating a parameter's value, type, or description
// @Summary     Update a parameter
// @Description Update a parameter; the key is immutable and the value must match the type
// @Tags        parameters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Parameter ID"
// @Param       request body UpdateParameterRequest true "Fields to update"
// @Success     200 {object} models.Parameter "Updated parameter"
// @Failure     400 {object} ErrorResponse "Invalid input or value does not match type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Parameter not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parameters/{id} [put]
func (h *ParameterHandler) UpdateParameter(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	parameterID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	parameter, err := h.parameterService.UpdateParameter(caller, parameterID, req.Description, req.Value, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"parameter": parameter})
}

// DeleteParameter handles the deletion of a parameter
// @Summary     Delete a parameter
// @Description Delete a parameter by ID
// @Tags        parameters
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Parameter ID"
// @Success     200 {object} MessageResponse "Parameter deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Access denied"
// @Failure     404 {object} ErrorResponse "Parameter not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /parameters/{id} [delete]
func (h *ParameterHandler) DeleteParameter(c *gin.Context) {
	caller, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	parameterID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.parameterService.DeleteParameter(caller, parameterID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Parameter deleted successfully"})
}
