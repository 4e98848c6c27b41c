package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// goalService handles goal-related business logic. Balance mutations use
// optimistic versioning: the goal row is updated with a compare-and-swap on
// its version column inside the same transaction as the ledger entry, so a
// lost race rolls back both.
type goalService struct {
	db        *gorm.DB
	dashboard DashboardServicer
}

// NewGoalService creates a new GoalServicer. The dashboard service may be nil
// when cache invalidation is not needed.
func NewGoalService(db *gorm.DB, dashboard DashboardServicer) GoalServicer {
	return &goalService{db: db, dashboard: dashboard}
}

func (s *goalService) invalidate(userID uint) {
	if s.dashboard != nil {
		s.dashboard.InvalidateUser(userID)
	}
}

// findGoal loads a goal by ID and enforces owner-or-admin access.
func (s *goalService) findGoal(caller Caller, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if goal.UserID != caller.UserID && !caller.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return &goal, nil
}

// CreateGoal creates a new goal for the caller
func (s *goalService) CreateGoal(caller Caller, name, description string, goalType models.GoalType, targetAmount decimal.Decimal, deadline *time.Time, notes string) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !targetAmount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if goalType == "" {
		goalType = models.GoalTypeSavings
	}

	goal := &models.Goal{
		UserID:        caller.UserID,
		Name:          name,
		Description:   description,
		Type:          goalType,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      deadline,
		Status:        models.GoalStatusInProgress,
		Notes:         notes,
	}
	goal.Recompute()

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(caller.UserID)
	return goal, nil
}

// GetGoalByID retrieves a goal, optionally preloading its transaction ledger.
func (s *goalService) GetGoalByID(caller Caller, goalID uint, withTransactions bool) (*models.Goal, error) {
	goal, err := s.findGoal(caller, goalID)
	if err != nil {
		return nil, err
	}

	if withTransactions {
		if err := s.db.Where("goal_id = ?", goal.ID).
			Order("date DESC, id DESC").
			Find(&goal.Transactions).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return goal, nil
}

// ListGoals retrieves a paginated, filtered list of the caller's goals.
func (s *goalService) ListGoals(caller Caller, page pagination.PageRequest, filter GoalFilter) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Where("user_id = ?", caller.UserID)
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateGoal updates the editable fields of a goal. Balance and status are
// never set directly; progress and status are recomputed when the target
// changes.
func (s *goalService) UpdateGoal(caller Caller, goalID uint, name, description *string, goalType *models.GoalType, targetAmount *decimal.Decimal, deadline *time.Time, notes *string) (*models.Goal, error) {
	goal, err := s.findGoal(caller, goalID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name cannot be empty")
		}
		goal.Name = *name
	}
	if description != nil {
		goal.Description = *description
	}
	if goalType != nil {
		goal.Type = *goalType
	}
	if targetAmount != nil {
		if !targetAmount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		goal.TargetAmount = *targetAmount
	}
	if deadline != nil {
		goal.Deadline = deadline
	}
	if notes != nil {
		goal.Notes = *notes
	}
	goal.Recompute()

	if err := s.saveGoal(s.db, goal); err != nil {
		return nil, err
	}

	s.invalidate(goal.UserID)
	return goal, nil
}

// DeleteGoal removes a goal and its transaction ledger.
func (s *goalService) DeleteGoal(caller Caller, goalID uint) error {
	goal, err := s.findGoal(caller, goalID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.GoalTransaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(goal.UserID)
	return nil
}

// Contribute records a contribution and increases the goal balance. Reaching
// the target promotes the goal to completed. Completed and cancelled goals do
// not accept contributions.
func (s *goalService) Contribute(caller Caller, goalID uint, amount decimal.Decimal, date time.Time, description string) (*models.Goal, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	goal, err := s.findGoal(caller, goalID)
	if err != nil {
		return nil, err
	}

	if goal.Status == models.GoalStatusCompleted || goal.Status == models.GoalStatusCancelled {
		return nil, apperrors.ErrGoalClosed
	}

	if date.IsZero() {
		date = time.Now()
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	goal.Recompute()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		entry := &models.GoalTransaction{
			GoalID:      goal.ID,
			Amount:      amount,
			Date:        date,
			Description: description,
			Type:        models.GoalTransactionContribution,
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.saveGoal(tx, goal)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(goal.UserID)
	return goal, nil
}

// Withdraw records a withdrawal and decreases the goal balance. Any status
// allows withdrawal, but the balance must cover the amount. A completed goal
// whose balance drops below the target keeps its completed status.
func (s *goalService) Withdraw(caller Caller, goalID uint, amount decimal.Decimal, date time.Time, description string) (*models.Goal, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	goal, err := s.findGoal(caller, goalID)
	if err != nil {
		return nil, err
	}

	if goal.CurrentAmount.LessThan(amount) {
		return nil, apperrors.WithMessage(apperrors.ErrInsufficientBalance,
			fmt.Sprintf("current balance is %s", goal.CurrentAmount.StringFixed(2)))
	}

	if date.IsZero() {
		date = time.Now()
	}

	goal.CurrentAmount = goal.CurrentAmount.Sub(amount)
	goal.Recompute()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		entry := &models.GoalTransaction{
			GoalID:      goal.ID,
			Amount:      amount,
			Date:        date,
			Description: description,
			Type:        models.GoalTransactionWithdrawal,
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.saveGoal(tx, goal)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(goal.UserID)
	return goal, nil
}

// CancelGoal cancels an in-progress or paused goal.
func (s *goalService) CancelGoal(caller Caller, goalID uint) (*models.Goal, error) {
	return s.transition(caller, goalID, models.GoalStatusCancelled,
		models.GoalStatusInProgress, models.GoalStatusPaused)
}

// PauseGoal pauses an in-progress goal.
func (s *goalService) PauseGoal(caller Caller, goalID uint) (*models.Goal, error) {
	return s.transition(caller, goalID, models.GoalStatusPaused,
		models.GoalStatusInProgress)
}

// ResumeGoal resumes a paused goal. A resumed goal whose balance already
// covers the target completes immediately.
func (s *goalService) ResumeGoal(caller Caller, goalID uint) (*models.Goal, error) {
	goal, err := s.transition(caller, goalID, models.GoalStatusInProgress,
		models.GoalStatusPaused)
	if err != nil {
		return nil, err
	}

	if goal.IsAchieved() {
		goal.RefreshStatus()
		if err := s.saveGoal(s.db, goal); err != nil {
			return nil, err
		}
	}
	return goal, nil
}

// transition moves a goal to the target status if its current status is one
// of the allowed source states.
func (s *goalService) transition(caller Caller, goalID uint, to models.GoalStatus, from ...models.GoalStatus) (*models.Goal, error) {
	goal, err := s.findGoal(caller, goalID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, status := range from {
		if goal.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidStateTransition,
			fmt.Sprintf("cannot move goal from %s to %s", goal.Status, to))
	}

	goal.Status = to
	if err := s.saveGoal(s.db, goal); err != nil {
		return nil, err
	}

	s.invalidate(goal.UserID)
	return goal, nil
}

// saveGoal writes the goal's mutable columns with a compare-and-swap on the
// version column. Zero rows affected means another writer got there first.
func (s *goalService) saveGoal(tx *gorm.DB, goal *models.Goal) error {
	currentVersion := goal.Version
	goal.Version++

	result := tx.Model(&models.Goal{}).
		Where("id = ? AND version = ?", goal.ID, currentVersion).
		Updates(map[string]interface{}{
			"name":           goal.Name,
			"description":    goal.Description,
			"type":           goal.Type,
			"target_amount":  goal.TargetAmount,
			"current_amount": goal.CurrentAmount,
			"deadline":       goal.Deadline,
			"status":         goal.Status,
			"progress":       goal.Progress,
			"notes":          goal.Notes,
			"version":        goal.Version,
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrConcurrencyConflict
	}
	return nil
}

// ListGoalTransactions retrieves the paginated ledger of a goal, newest first.
func (s *goalService) ListGoalTransactions(caller Caller, goalID uint, page pagination.PageRequest) (*pagination.PageResponse[models.GoalTransaction], error) {
	goal, err := s.findGoal(caller, goalID)
	if err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.GoalTransaction{}).Where("goal_id = ?", goal.ID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.GoalTransaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionStats aggregates a goal's ledger per entry kind: counts and
// totals for both kinds plus average, largest, and smallest contribution.
func (s *goalService) GetTransactionStats(caller Caller, goalID uint) (*GoalTransactionStats, error) {
	goal, err := s.findGoal(caller, goalID)
	if err != nil {
		return nil, err
	}

	var entries []models.GoalTransaction
	if err := s.db.Where("goal_id = ?", goal.ID).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats := &GoalTransactionStats{
		TotalContributed:     decimal.Zero,
		TotalWithdrawn:       decimal.Zero,
		AverageContribution:  decimal.Zero,
		LargestContribution:  decimal.Zero,
		SmallestContribution: decimal.Zero,
	}

	for i := range entries {
		entry := &entries[i]
		if entry.Type == models.GoalTransactionWithdrawal {
			stats.WithdrawalCount++
			stats.TotalWithdrawn = stats.TotalWithdrawn.Add(entry.Amount)
			continue
		}
		stats.ContributionCount++
		stats.TotalContributed = stats.TotalContributed.Add(entry.Amount)
		if stats.ContributionCount == 1 {
			stats.LargestContribution = entry.Amount
			stats.SmallestContribution = entry.Amount
			continue
		}
		if entry.Amount.GreaterThan(stats.LargestContribution) {
			stats.LargestContribution = entry.Amount
		}
		if entry.Amount.LessThan(stats.SmallestContribution) {
			stats.SmallestContribution = entry.Amount
		}
	}
	if stats.ContributionCount > 0 {
		stats.AverageContribution = stats.TotalContributed.DivRound(decimal.NewFromInt(stats.ContributionCount), 2)
	}

	return stats, nil
}

// GetSummary aggregates the caller's goals: totals for in-progress goals,
// the amount held by completed ones, mean progress, and counts per status.
func (s *goalService) GetSummary(caller Caller) (*GoalSummary, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", caller.UserID).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return summarizeGoals(goals), nil
}

// summarizeGoals folds a set of goals into a GoalSummary. Shared with the
// dashboard's goal section.
func summarizeGoals(goals []models.Goal) *GoalSummary {
	summary := &GoalSummary{
		TotalTarget:     decimal.Zero,
		TotalSaved:      decimal.Zero,
		TotalCompleted:  decimal.Zero,
		RemainingAmount: decimal.Zero,
		AverageProgress: decimal.Zero,
		CountsByStatus:  make(map[models.GoalStatus]int64),
	}

	progressSum := decimal.Zero
	var inProgress int64

	for i := range goals {
		goal := &goals[i]
		summary.CountsByStatus[goal.Status]++

		switch goal.Status {
		case models.GoalStatusInProgress:
			inProgress++
			summary.TotalTarget = summary.TotalTarget.Add(goal.TargetAmount)
			summary.TotalSaved = summary.TotalSaved.Add(goal.CurrentAmount)
			progressSum = progressSum.Add(goal.Progress)
		case models.GoalStatusCompleted:
			summary.TotalCompleted = summary.TotalCompleted.Add(goal.CurrentAmount)
		}

		if goal.IsOverdue() {
			summary.OverdueCount++
		}
	}

	summary.RemainingAmount = summary.TotalTarget.Sub(summary.TotalSaved)
	if summary.RemainingAmount.IsNegative() {
		summary.RemainingAmount = decimal.Zero
	}
	if inProgress > 0 {
		summary.AverageProgress = progressSum.DivRound(decimal.NewFromInt(inProgress), 2)
	}

	return summary
}
