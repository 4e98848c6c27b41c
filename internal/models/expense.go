package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment state of an expense
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// Expense represents one expense record, optionally split into monthly
// installments and optionally linked to an income period and a category.
type Expense struct {
	Base
	UserID               uint            `gorm:"not null;index:idx_expenses_user_date" json:"user_id"`
	IncomeID             *uint           `gorm:"index" json:"income_id,omitempty"`
	CategoryID           *uint           `gorm:"index" json:"category_id,omitempty"`
	Date                 time.Time       `gorm:"not null;index:idx_expenses_user_date" json:"date"`
	Description          string          `gorm:"size:255;not null" json:"description"`
	Amount               decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status               PaymentStatus   `gorm:"size:20;not null;default:pending;index" json:"status"`
	InstallmentNumber    int             `gorm:"not null;default:1" json:"installment_number"`
	InstallmentTotal     int             `gorm:"not null;default:1" json:"installment_total"`
	FinalInstallmentDate *time.Time      `json:"final_installment_date,omitempty"`
	Notes                string          `gorm:"size:1000" json:"notes"`

	Income   *Income   `gorm:"foreignKey:IncomeID" json:"income,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// IsInstallment reports whether the expense is split into installments.
func (e *Expense) IsInstallment() bool {
	return e.InstallmentTotal > 1
}

// IsOverdue reports whether the expense is pending past its date.
func (e *Expense) IsOverdue() bool {
	return e.Status == PaymentStatusPending && e.Date.Before(today())
}

// InstallmentLabel returns "3/12" style progress, or "single" for
// non-installment expenses.
func (e *Expense) InstallmentLabel() string {
	if !e.IsInstallment() {
		return "single"
	}
	return fmt.Sprintf("%d/%d", e.InstallmentNumber, e.InstallmentTotal)
}
