package services

import (
	"encoding/json"
	"errors"
	"strconv"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// parameterService handles typed per-user settings.
type parameterService struct {
	db *gorm.DB
}

// NewParameterService creates a new ParameterServicer.
func NewParameterService(db *gorm.DB) ParameterServicer {
	return &parameterService{db: db}
}

// findParameter loads a parameter by ID and enforces owner-or-admin access.
func (s *parameterService) findParameter(caller Caller, parameterID uint) (*models.Parameter, error) {
	var param models.Parameter
	if err := s.db.First(&param, parameterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrParameterNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if param.UserID != caller.UserID && !caller.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return &param, nil
}

// validateTypedValue checks that the value parses as the declared type.
func validateTypedValue(value string, paramType models.ParameterType) error {
	switch paramType {
	case models.ParameterTypeString:
		return nil
	case models.ParameterTypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "value is not a valid number")
		}
	case models.ParameterTypeBoolean:
		if value != "true" && value != "false" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "value must be true or false")
		}
	case models.ParameterTypeJSON:
		if !json.Valid([]byte(value)) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "value is not valid JSON")
		}
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown parameter type")
	}
	return nil
}

// CreateParameter creates a new parameter with a per-user unique key.
func (s *parameterService) CreateParameter(caller Caller, key, description, value string, paramType models.ParameterType) (*models.Parameter, error) {
	if len(key) < 2 || len(key) > 100 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "key must be between 2 and 100 characters")
	}
	if paramType == "" {
		paramType = models.ParameterTypeString
	}
	if err := validateTypedValue(value, paramType); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Parameter{}).
		Where("user_id = ? AND key = ?", caller.UserID, key).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateParameterKey
	}

	param := &models.Parameter{
		UserID:      caller.UserID,
		Key:         key,
		Description: description,
		Value:       value,
		Type:        paramType,
	}

	if err := s.db.Create(param).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return param, nil
}

// GetParameterByID retrieves a parameter by ID.
func (s *parameterService) GetParameterByID(caller Caller, parameterID uint) (*models.Parameter, error) {
	return s.findParameter(caller, parameterID)
}

// GetParameterByKey retrieves one of the caller's parameters by key.
func (s *parameterService) GetParameterByKey(caller Caller, key string) (*models.Parameter, error) {
	var param models.Parameter
	if err := s.db.Where("user_id = ? AND key = ?", caller.UserID, key).First(&param).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrParameterNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &param, nil
}

// ListParameters retrieves a paginated, filtered list of the caller's parameters.
func (s *parameterService) ListParameters(caller Caller, page pagination.PageRequest, filter ParameterFilter) (*pagination.PageResponse[models.Parameter], error) {
	page.Defaults()

	base := s.db.Model(&models.Parameter{}).Where("user_id = ?", caller.UserID)
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var params []models.Parameter
	if err := base.Scopes(pagination.Paginate(page)).
		Order("key ASC").
		Find(&params).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(params, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateParameter updates a parameter's description, value, or type. The key
// is immutable. Value and type are validated together.
func (s *parameterService) UpdateParameter(caller Caller, parameterID uint, description, value *string, paramType *models.ParameterType) (*models.Parameter, error) {
	param, err := s.findParameter(caller, parameterID)
	if err != nil {
		return nil, err
	}

	if description != nil {
		param.Description = *description
	}
	if value != nil {
		param.Value = *value
	}
	if paramType != nil {
		param.Type = *paramType
	}

	if err := validateTypedValue(param.Value, param.Type); err != nil {
		return nil, err
	}

	if err := s.db.Save(param).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return param, nil
}

// DeleteParameter removes a parameter.
func (s *parameterService) DeleteParameter(caller Caller, parameterID uint) error {
	param, err := s.findParameter(caller, parameterID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(param).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetString returns the value of a string parameter.
func (s *parameterService) GetString(caller Caller, key string) (string, error) {
	param, err := s.GetParameterByKey(caller, key)
	if err != nil {
		return "", err
	}
	return param.Value, nil
}

// GetInt returns the value of a number parameter as an integer.
func (s *parameterService) GetInt(caller Caller, key string) (int, error) {
	param, err := s.GetParameterByKey(caller, key)
	if err != nil {
		return 0, err
	}
	v, ok := param.IntValue()
	if !ok {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "parameter is not an integer number")
	}
	return v, nil
}

// GetFloat returns the value of a number parameter as a float.
func (s *parameterService) GetFloat(caller Caller, key string) (float64, error) {
	param, err := s.GetParameterByKey(caller, key)
	if err != nil {
		return 0, err
	}
	v, ok := param.FloatValue()
	if !ok {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "parameter is not a number")
	}
	return v, nil
}

// GetBool returns the value of a boolean parameter.
func (s *parameterService) GetBool(caller Caller, key string) (bool, error) {
	param, err := s.GetParameterByKey(caller, key)
	if err != nil {
		return false, err
	}
	v, ok := param.BoolValue()
	if !ok {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "parameter is not a boolean")
	}
	return v, nil
}
