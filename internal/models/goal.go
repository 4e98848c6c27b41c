package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalType represents what a goal is saving towards
type GoalType string

const (
	GoalTypeSavings    GoalType = "savings"
	GoalTypeInvestment GoalType = "investment"
	GoalTypePurchase   GoalType = "purchase"
)

// GoalStatus represents the lifecycle state of a goal
type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusCancelled  GoalStatus = "cancelled"
	GoalStatusPaused     GoalStatus = "paused"
)

var oneHundred = decimal.NewFromInt(100)

// Goal represents a savings/investment/purchase target tracked per user.
// CurrentAmount is the balance of the goal's transaction ledger; Progress
// and Status are derived from it via Recompute.
type Goal struct {
	Base
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	Description   string          `gorm:"size:500" json:"description"`
	Type          GoalType        `gorm:"size:20;not null;default:savings" json:"type"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"current_amount"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	Status        GoalStatus      `gorm:"size:20;not null;default:in_progress" json:"status"`
	Progress      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"progress"`
	Notes         string          `gorm:"size:1000" json:"notes"`
	Version       int64           `gorm:"not null;default:0" json:"-"`

	Transactions []GoalTransaction `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}

// RemainingAmount returns how much is still missing to reach the target.
func (g *Goal) RemainingAmount() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}

// IsAchieved reports whether the current balance covers the target.
func (g *Goal) IsAchieved() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// IsOverdue reports whether the deadline has passed while the goal is still
// in progress and unfinished.
func (g *Goal) IsOverdue() bool {
	return g.Deadline != nil &&
		g.Deadline.Before(today()) &&
		g.Status == GoalStatusInProgress &&
		!g.IsAchieved()
}

// RecalculateProgress derives the progress percentage from the current and
// target amounts. Two decimal places, rounded half-up, capped at 100.
func (g *Goal) RecalculateProgress() {
	if g.TargetAmount.IsZero() {
		g.Progress = decimal.Zero
		return
	}
	pct := g.CurrentAmount.Mul(oneHundred).DivRound(g.TargetAmount, 2)
	g.Progress = decimal.Min(pct, oneHundred)
}

// RefreshStatus promotes the goal to completed once the target is reached.
// Cancelled goals stay cancelled; a completed goal whose balance later drops
// below the target keeps its completed status.
func (g *Goal) RefreshStatus() {
	if g.IsAchieved() && g.Status != GoalStatusCancelled {
		g.Status = GoalStatusCompleted
	}
}

// Recompute recalculates progress and then applies the automatic completion
// check. Services call this after every balance or field mutation.
func (g *Goal) Recompute() {
	g.RecalculateProgress()
	g.RefreshStatus()
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
