// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("goal_type", validateGoalType)
		_ = v.RegisterValidation("goal_status", validateGoalStatus)
		_ = v.RegisterValidation("payment_status", validatePaymentStatus)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("parameter_type", validateParameterType)
	}
}

func validateGoalType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "savings", "investment", "purchase":
		return true
	}
	return false
}

func validateGoalStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "in_progress", "completed", "cancelled", "paused":
		return true
	}
	return false
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "paid", "overdue":
		return true
	}
	return false
}

func validateCategoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateParameterType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "string", "number", "boolean", "json":
		return true
	}
	return false
}
