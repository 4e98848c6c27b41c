package models

import "time"

// UserRole represents the access level of a user
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User represents the user model in the database
type User struct {
	Base
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	Name             string     `gorm:"size:100;not null" json:"name"`
	Role             UserRole   `gorm:"size:20;not null;default:user" json:"role"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Goals      []Goal      `gorm:"foreignKey:UserID" json:"goals,omitempty"`
	Expenses   []Expense   `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Incomes    []Income    `gorm:"foreignKey:UserID" json:"incomes,omitempty"`
	Categories []Category  `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Parameters []Parameter `gorm:"foreignKey:UserID" json:"parameters,omitempty"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
