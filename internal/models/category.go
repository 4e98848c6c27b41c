package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents an expense/income category. Names are unique per user.
// Categories referenced by expenses cannot be deleted, only deactivated.
type Category struct {
	Base
	UserID   uint         `gorm:"not null;uniqueIndex:uk_categories_user_name" json:"user_id"`
	Name     string       `gorm:"size:100;not null;uniqueIndex:uk_categories_user_name" json:"name"`
	Type     CategoryType `gorm:"size:20;not null" json:"type"`
	IsActive bool         `gorm:"not null;default:true" json:"is_active"`

	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
}
