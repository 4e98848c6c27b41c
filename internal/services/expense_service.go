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

// expenseService handles expense-related business logic.
type expenseService struct {
	db        *gorm.DB
	dashboard DashboardServicer
}

// NewExpenseService creates a new ExpenseServicer. The dashboard service may
// be nil when cache invalidation is not needed.
func NewExpenseService(db *gorm.DB, dashboard DashboardServicer) ExpenseServicer {
	return &expenseService{db: db, dashboard: dashboard}
}

func (s *expenseService) invalidate(userID uint) {
	if s.dashboard != nil {
		s.dashboard.InvalidateUser(userID)
	}
}

// findExpense loads an expense by ID and enforces owner-or-admin access.
func (s *expenseService) findExpense(caller Caller, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expense.UserID != caller.UserID && !caller.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return &expense, nil
}

// checkCategoryLink verifies the category belongs to the caller and is active.
func (s *expenseService) checkCategoryLink(caller Caller, categoryID uint) error {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, caller.UserID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !category.IsActive {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is not active")
	}
	return nil
}

// checkIncomeLink verifies the income period belongs to the caller.
func (s *expenseService) checkIncomeLink(caller Caller, incomeID uint) error {
	var count int64
	if err := s.db.Model(&models.Income{}).
		Where("id = ? AND user_id = ?", incomeID, caller.UserID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrIncomeNotFound
	}
	return nil
}

// finalInstallmentDate returns the date of the last monthly installment.
func finalInstallmentDate(date time.Time, total int) *time.Time {
	if total <= 1 {
		return nil
	}
	final := date.AddDate(0, total-1, 0)
	return &final
}

// validateInstallments enforces 1 <= number <= total.
func validateInstallments(number, total int) error {
	if total < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "installment total must be at least 1")
	}
	if number < 1 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "installment number must be at least 1")
	}
	if number > total {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "installment number cannot exceed the installment total")
	}
	return nil
}

// CreateExpense creates a new expense for the caller. Installments are
// monthly; the final installment date is derived from the expense date and
// the installment count.
func (s *expenseService) CreateExpense(caller Caller, date time.Time, description string, amount decimal.Decimal, installmentNumber, installmentTotal int, categoryID, incomeID *uint, notes string) (*models.Expense, error) {
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if err := validateInstallments(installmentNumber, installmentTotal); err != nil {
		return nil, err
	}

	if categoryID != nil {
		if err := s.checkCategoryLink(caller, *categoryID); err != nil {
			return nil, err
		}
	}
	if incomeID != nil {
		if err := s.checkIncomeLink(caller, *incomeID); err != nil {
			return nil, err
		}
	}

	expense := &models.Expense{
		UserID:               caller.UserID,
		IncomeID:             incomeID,
		CategoryID:           categoryID,
		Date:                 date,
		Description:          description,
		Amount:               amount,
		Status:               models.PaymentStatusPending,
		InstallmentNumber:    installmentNumber,
		InstallmentTotal:     installmentTotal,
		FinalInstallmentDate: finalInstallmentDate(date, installmentTotal),
		Notes:                notes,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(caller.UserID)
	return expense, nil
}

// GetExpenseByID retrieves an expense with its category and income preloaded.
func (s *expenseService) GetExpenseByID(caller Caller, expenseID uint) (*models.Expense, error) {
	expense, err := s.findExpense(caller, expenseID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Category").Preload("Income").First(expense, expense.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// ListExpenses retrieves a paginated, filtered list of the caller's expenses.
func (s *expenseService) ListExpenses(caller Caller, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", caller.UserID)
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Status != nil {
		base = base.Where("status = ?", *filter.Status)
	}
	if filter.CategoryID != nil {
		base = base.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IncomeID != nil {
		base = base.Where("income_id = ?", *filter.IncomeID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateExpense updates the editable fields of an expense. The final
// installment date is re-derived when the date or installment count changes.
func (s *expenseService) UpdateExpense(caller Caller, expenseID uint, date *time.Time, description *string, amount *decimal.Decimal, installmentNumber, installmentTotal *int, categoryID, incomeID *uint, notes *string) (*models.Expense, error) {
	expense, err := s.findExpense(caller, expenseID)
	if err != nil {
		return nil, err
	}

	if date != nil {
		if date.IsZero() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date cannot be empty")
		}
		expense.Date = *date
	}
	if description != nil {
		if *description == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description cannot be empty")
		}
		expense.Description = *description
	}
	if amount != nil {
		if !amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		expense.Amount = *amount
	}
	if installmentNumber != nil {
		expense.InstallmentNumber = *installmentNumber
	}
	if installmentTotal != nil {
		expense.InstallmentTotal = *installmentTotal
	}
	if installmentNumber != nil || installmentTotal != nil {
		if err := validateInstallments(expense.InstallmentNumber, expense.InstallmentTotal); err != nil {
			return nil, err
		}
	}
	if categoryID != nil {
		if err := s.checkCategoryLink(caller, *categoryID); err != nil {
			return nil, err
		}
		expense.CategoryID = categoryID
	}
	if incomeID != nil {
		if err := s.checkIncomeLink(caller, *incomeID); err != nil {
			return nil, err
		}
		expense.IncomeID = incomeID
	}
	if notes != nil {
		expense.Notes = *notes
	}

	expense.FinalInstallmentDate = finalInstallmentDate(expense.Date, expense.InstallmentTotal)

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(expense.UserID)
	return expense, nil
}

// MarkPaid marks a pending or overdue expense as paid.
func (s *expenseService) MarkPaid(caller Caller, expenseID uint) (*models.Expense, error) {
	expense, err := s.findExpense(caller, expenseID)
	if err != nil {
		return nil, err
	}

	if expense.Status == models.PaymentStatusPaid {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense is already paid")
	}

	expense.Status = models.PaymentStatusPaid
	if err := s.db.Model(expense).Update("status", models.PaymentStatusPaid).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(expense.UserID)
	return expense, nil
}

// DeleteExpense removes an expense.
func (s *expenseService) DeleteExpense(caller Caller, expenseID uint) error {
	expense, err := s.findExpense(caller, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(expense.UserID)
	return nil
}
