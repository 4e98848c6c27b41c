package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db        *gorm.DB
	dashboard DashboardServicer
}

// NewCategoryService creates a new CategoryServicer. The dashboard service
// may be nil when cache invalidation is not needed.
func NewCategoryService(db *gorm.DB, dashboard DashboardServicer) CategoryServicer {
	return &categoryService{db: db, dashboard: dashboard}
}

func (s *categoryService) invalidate(userID uint) {
	if s.dashboard != nil {
		s.dashboard.InvalidateUser(userID)
	}
}

// findCategory loads a category by ID and enforces owner-or-admin access.
func (s *categoryService) findCategory(caller Caller, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.UserID != caller.UserID && !caller.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return &category, nil
}

func validateCategoryName(name string) error {
	if len(name) < 2 || len(name) > 100 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name must be between 2 and 100 characters")
	}
	return nil
}

// nameTaken reports whether the user already has a category with the given
// name, compared case-insensitively, optionally excluding one record.
func (s *categoryService) nameTaken(userID uint, name string, excludeID uint) (bool, error) {
	q := s.db.Model(&models.Category{}).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(name))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// CreateCategory creates a new active category for the caller.
func (s *categoryService) CreateCategory(caller Caller, name string, categoryType models.CategoryType) (*models.Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if categoryType != models.CategoryTypeIncome && categoryType != models.CategoryTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}

	taken, err := s.nameTaken(caller.UserID, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID:   caller.UserID,
		Name:     name,
		Type:     categoryType,
		IsActive: true,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(caller.UserID)
	return category, nil
}

// GetCategoryByID retrieves a category by ID.
func (s *categoryService) GetCategoryByID(caller Caller, categoryID uint) (*models.Category, error) {
	return s.findCategory(caller, categoryID)
}

// ListCategories retrieves a paginated, filtered list of the caller's categories.
func (s *categoryService) ListCategories(caller Caller, page pagination.PageRequest, filter CategoryFilter) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{}).Where("user_id = ?", caller.UserID)
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.IsActive != nil {
		base = base.Where("is_active = ?", *filter.IsActive)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateCategory renames a category, keeping names unique per user.
func (s *categoryService) UpdateCategory(caller Caller, categoryID uint, name string) (*models.Category, error) {
	category, err := s.findCategory(caller, categoryID)
	if err != nil {
		return nil, err
	}

	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	taken, err := s.nameTaken(category.UserID, name, category.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateCategory
	}

	category.Name = name
	if err := s.db.Model(category).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(category.UserID)
	return category, nil
}

// ActivateCategory marks a category as active.
func (s *categoryService) ActivateCategory(caller Caller, categoryID uint) (*models.Category, error) {
	return s.setActive(caller, categoryID, true)
}

// DeactivateCategory marks a category as inactive. Existing expenses keep
// their link; new expenses cannot use it.
func (s *categoryService) DeactivateCategory(caller Caller, categoryID uint) (*models.Category, error) {
	return s.setActive(caller, categoryID, false)
}

func (s *categoryService) setActive(caller Caller, categoryID uint, active bool) (*models.Category, error) {
	category, err := s.findCategory(caller, categoryID)
	if err != nil {
		return nil, err
	}

	category.IsActive = active
	if err := s.db.Model(category).Update("is_active", active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(category.UserID)
	return category, nil
}

// DeleteCategory removes a category. Deletion is blocked while expenses
// reference it; those categories can only be deactivated.
func (s *categoryService) DeleteCategory(caller Caller, categoryID uint) error {
	category, err := s.findCategory(caller, categoryID)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Expense{}).
		Where("category_id = ?", category.ID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.WithMessage(apperrors.ErrCategoryInUse,
			"category has linked expenses, deactivate it instead")
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(category.UserID)
	return nil
}
