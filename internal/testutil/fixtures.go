package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Role:     models.UserRoleUser,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates a user with the admin role.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	user.Role = models.UserRoleAdmin
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("failed to promote test user to admin: %v", err)
	}
	return user
}

// CreateTestGoal creates an in-progress goal with the given target amount.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, target string) *models.Goal {
	t.Helper()
	return CreateTestGoalWithBalance(t, db, userID, target, "0")
}

// CreateTestGoalWithBalance creates a goal with the given target and current balance.
func CreateTestGoalWithBalance(t *testing.T, db *gorm.DB, userID uint, target, current string) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		Type:          models.GoalTypeSavings,
		TargetAmount:  mustDecimal(t, target),
		CurrentAmount: mustDecimal(t, current),
		Status:        models.GoalStatusInProgress,
	}
	goal.Recompute()
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestCategory creates an active category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Category %d", nextID()),
		Type:     categoryType,
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates a pending expense dated today with the given amount.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, amount string) *models.Expense {
	t.Helper()
	return CreateTestExpenseOn(t, db, userID, amount, time.Now())
}

// CreateTestExpenseOn creates a pending expense with the given amount and date.
func CreateTestExpenseOn(t *testing.T, db *gorm.DB, userID uint, amount string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:            userID,
		Date:              date,
		Description:       fmt.Sprintf("Test Expense %d", nextID()),
		Amount:            mustDecimal(t, amount),
		Status:            models.PaymentStatusPending,
		InstallmentNumber: 1,
		InstallmentTotal:  1,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestIncome creates an income period covering the given dates.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID uint, start, end time.Time, salary string) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID:        userID,
		PeriodStart:   start,
		PeriodEnd:     end,
		Salary:        mustDecimal(t, salary),
		Allowances:    decimal.Zero,
		ExtraServices: decimal.Zero,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestParameter creates a string parameter with a unique key.
func CreateTestParameter(t *testing.T, db *gorm.DB, userID uint, value string) *models.Parameter {
	t.Helper()

	param := &models.Parameter{
		UserID: userID,
		Key:    fmt.Sprintf("test.key.%d", nextID()),
		Value:  value,
		Type:   models.ParameterTypeString,
	}
	if err := db.Create(param).Error; err != nil {
		t.Fatalf("failed to create test parameter: %v", err)
	}
	return param
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}
