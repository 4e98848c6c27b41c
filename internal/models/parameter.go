package models

import "strconv"

// ParameterType represents the value type of a parameter
type ParameterType string

const (
	ParameterTypeString  ParameterType = "string"
	ParameterTypeNumber  ParameterType = "number"
	ParameterTypeBoolean ParameterType = "boolean"
	ParameterTypeJSON    ParameterType = "json"
)

// Parameter is a typed per-user key-value setting. Keys are unique per user.
type Parameter struct {
	Base
	UserID      uint          `gorm:"not null;uniqueIndex:uk_parameters_user_key" json:"user_id"`
	Key         string        `gorm:"size:100;not null;uniqueIndex:uk_parameters_user_key" json:"key"`
	Description string        `gorm:"size:255" json:"description"`
	Value       string        `gorm:"size:500" json:"value"`
	Type        ParameterType `gorm:"size:20;not null;default:string" json:"type"`
}

// StringValue returns the raw string value.
func (p *Parameter) StringValue() string {
	return p.Value
}

// IntValue parses the value as an integer for number parameters.
func (p *Parameter) IntValue() (int, bool) {
	if p.Type != ParameterTypeNumber {
		return 0, false
	}
	v, err := strconv.Atoi(p.Value)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FloatValue parses the value as a float for number parameters.
func (p *Parameter) FloatValue() (float64, bool) {
	if p.Type != ParameterTypeNumber {
		return 0, false
	}
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// BoolValue parses the value for boolean parameters.
func (p *Parameter) BoolValue() (bool, bool) {
	if p.Type != ParameterTypeBoolean {
		return false, false
	}
	v, err := strconv.ParseBool(p.Value)
	if err != nil {
		return false, false
	}
	return v, true
}
