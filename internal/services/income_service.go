package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// incomeService handles income-period business logic.
type incomeService struct {
	db        *gorm.DB
	dashboard DashboardServicer
}

// NewIncomeService creates a new IncomeServicer. The dashboard service may be
// nil when cache invalidation is not needed.
func NewIncomeService(db *gorm.DB, dashboard DashboardServicer) IncomeServicer {
	return &incomeService{db: db, dashboard: dashboard}
}

func (s *incomeService) invalidate(userID uint) {
	if s.dashboard != nil {
		s.dashboard.InvalidateUser(userID)
	}
}

// findIncome loads an income by ID and enforces owner-or-admin access.
func (s *incomeService) findIncome(caller Caller, incomeID uint) (*models.Income, error) {
	var income models.Income
	if err := s.db.First(&income, incomeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if income.UserID != caller.UserID && !caller.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return &income, nil
}

// hasOverlap reports whether the user already has an income period that
// intersects [start, end], optionally excluding one record.
func (s *incomeService) hasOverlap(userID uint, start, end time.Time, excludeID uint) (bool, error) {
	q := s.db.Model(&models.Income{}).
		Where("user_id = ? AND period_start <= ? AND period_end >= ?", userID, end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

func validateIncomeFields(start, end time.Time, workingDays *int, salary, allowances, extraServices decimal.Decimal) error {
	if start.IsZero() || end.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "period start and end are required")
	}
	if end.Before(start) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "period end cannot precede period start")
	}
	if workingDays != nil && (*workingDays < 0 || *workingDays > 31) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "working days must be between 0 and 31")
	}
	if salary.IsNegative() || allowances.IsNegative() || extraServices.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "income amounts cannot be negative")
	}
	return nil
}

// CreateIncome creates a new income period. Periods of the same user must
// not overlap.
func (s *incomeService) CreateIncome(caller Caller, periodStart, periodEnd time.Time, workingDays *int, salary, allowances, extraServices decimal.Decimal, notes string) (*models.Income, error) {
	if err := validateIncomeFields(periodStart, periodEnd, workingDays, salary, allowances, extraServices); err != nil {
		return nil, err
	}

	overlap, err := s.hasOverlap(caller.UserID, periodStart, periodEnd, 0)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, apperrors.ErrIncomePeriodOverlap
	}

	income := &models.Income{
		UserID:        caller.UserID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		WorkingDays:   workingDays,
		Salary:        salary,
		Allowances:    allowances,
		ExtraServices: extraServices,
		Notes:         notes,
	}

	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(caller.UserID)
	return income, nil
}

// GetIncomeByID retrieves an income period with its linked expenses loaded so
// the derived totals are meaningful.
func (s *incomeService) GetIncomeByID(caller Caller, incomeID uint) (*models.Income, error) {
	income, err := s.findIncome(caller, incomeID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("income_id = ?", income.ID).
		Order("date ASC").
		Find(&income.Expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// ListIncomes retrieves the caller's income periods, newest period first.
func (s *incomeService) ListIncomes(caller Caller, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	page.Defaults()

	base := s.db.Model(&models.Income{}).Where("user_id = ?", caller.UserID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomes []models.Income
	if err := base.Scopes(pagination.Paginate(page)).
		Order("period_start DESC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateIncome updates an income period, re-checking the overlap invariant
// against every other period of the user.
func (s *incomeService) UpdateIncome(caller Caller, incomeID uint, periodStart, periodEnd *time.Time, workingDays *int, salary, allowances, extraServices *decimal.Decimal, notes *string) (*models.Income, error) {
	income, err := s.findIncome(caller, incomeID)
	if err != nil {
		return nil, err
	}

	if periodStart != nil {
		income.PeriodStart = *periodStart
	}
	if periodEnd != nil {
		income.PeriodEnd = *periodEnd
	}
	if workingDays != nil {
		income.WorkingDays = workingDays
	}
	if salary != nil {
		income.Salary = *salary
	}
	if allowances != nil {
		income.Allowances = *allowances
	}
	if extraServices != nil {
		income.ExtraServices = *extraServices
	}
	if notes != nil {
		income.Notes = *notes
	}

	if err := validateIncomeFields(income.PeriodStart, income.PeriodEnd, income.WorkingDays, income.Salary, income.Allowances, income.ExtraServices); err != nil {
		return nil, err
	}

	overlap, err := s.hasOverlap(income.UserID, income.PeriodStart, income.PeriodEnd, income.ID)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, apperrors.ErrIncomePeriodOverlap
	}

	if err := s.db.Save(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(income.UserID)
	return income, nil
}

// DeleteIncome removes an income period. Linked expenses are kept but
// detached from the period.
func (s *incomeService) DeleteIncome(caller Caller, incomeID uint) error {
	income, err := s.findIncome(caller, incomeID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Expense{}).
			Where("income_id = ?", income.ID).
			Update("income_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(income).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(income.UserID)
	return nil
}

// FindByDate returns the caller's income period covering the given date.
func (s *incomeService) FindByDate(caller Caller, date time.Time) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("user_id = ? AND period_start <= ? AND period_end >= ?", caller.UserID, date, date).
		First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}
