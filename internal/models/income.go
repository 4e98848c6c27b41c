package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income represents the earnings of one pay period. Periods of the same
// user must not overlap.
type Income struct {
	Base
	UserID        uint            `gorm:"not null;index:idx_incomes_user_period" json:"user_id"`
	PeriodStart   time.Time       `gorm:"not null;index:idx_incomes_user_period" json:"period_start"`
	PeriodEnd     time.Time       `gorm:"not null" json:"period_end"`
	WorkingDays   *int            `json:"working_days,omitempty"`
	Salary        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"salary"`
	Allowances    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"allowances"`
	ExtraServices decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"extra_services"`
	Notes         string          `gorm:"size:1000" json:"notes"`

	Expenses []Expense `gorm:"foreignKey:IncomeID" json:"expenses,omitempty"`
}

// TotalIncome returns salary plus allowances plus extra services.
func (i *Income) TotalIncome() decimal.Decimal {
	return i.Salary.Add(i.Allowances).Add(i.ExtraServices)
}

// TotalLinkedExpenses sums the amounts of the expenses linked to this period.
// Only meaningful when the Expenses association is loaded.
func (i *Income) TotalLinkedExpenses() decimal.Decimal {
	total := decimal.Zero
	for idx := range i.Expenses {
		total = total.Add(i.Expenses[idx].Amount)
	}
	return total
}

// Balance returns total income minus linked expenses.
func (i *Income) Balance() decimal.Decimal {
	return i.TotalIncome().Sub(i.TotalLinkedExpenses())
}

// Covers reports whether the given date falls inside the period.
func (i *Income) Covers(date time.Time) bool {
	return !date.Before(i.PeriodStart) && !date.After(i.PeriodEnd)
}
