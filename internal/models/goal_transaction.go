package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalTransactionType distinguishes contributions from withdrawals
type GoalTransactionType string

const (
	GoalTransactionContribution GoalTransactionType = "contribution"
	GoalTransactionWithdrawal   GoalTransactionType = "withdrawal"
)

// GoalTransaction is one immutable ledger entry against a goal's balance.
// The amount is always positive; the direction is carried by Type.
type GoalTransaction struct {
	Base
	GoalID      uint                `gorm:"not null;index:idx_goal_transactions_goal_date" json:"goal_id"`
	Amount      decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        time.Time           `gorm:"not null;index:idx_goal_transactions_goal_date" json:"date"`
	Description string              `gorm:"size:255" json:"description"`
	Type        GoalTransactionType `gorm:"size:20;not null" json:"type"`
}

// IsContribution reports whether this entry increases the goal balance.
func (t *GoalTransaction) IsContribution() bool {
	return t.Type == GoalTransactionContribution
}

// SignedAmount returns the amount with the sign implied by the entry type.
func (t *GoalTransaction) SignedAmount() decimal.Decimal {
	if t.IsContribution() {
		return t.Amount
	}
	return t.Amount.Neg()
}
