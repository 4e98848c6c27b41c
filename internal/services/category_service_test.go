package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(asCaller(user), "Groceries", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		if !cat.IsActive {
			t.Error("expected category to be active")
		}
	})

	t.Run("duplicate_name_case_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(asCaller(user), "Groceries", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(asCaller(user), "GROCERIES", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same_name_different_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(asCaller(user1), "Groceries", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(asCaller(user2), "Groceries", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
	})

	t.Run("invalid_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(asCaller(user), "X", models.CategoryTypeExpense)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateCategory(asCaller(user), "Valid", "other")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename_keeps_uniqueness", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(asCaller(user), "Groceries", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		other, err := svc.CreateCategory(asCaller(user), "Transport", models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateCategory(asCaller(user), other.ID, "groceries")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")

		// Renaming to itself with different casing is allowed.
		renamed, err := svc.UpdateCategory(asCaller(user), other.ID, "TRANSPORT")
		testutil.AssertNoError(t, err)
		if renamed.Name != "TRANSPORT" {
			t.Errorf("expected TRANSPORT, got %s", renamed.Name)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("unused_category_deleted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.AssertNoError(t, svc.DeleteCategory(asCaller(user), cat.ID))
		_, err := svc.GetCategoryByID(asCaller(user), cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("blocked_while_expenses_reference_it", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db, nil)
		expenseSvc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := expenseSvc.CreateExpense(asCaller(user), date(2024, 6, 10), "Rent", d(t, "1500"), 1, 1, &cat.ID, nil, "")
		testutil.AssertNoError(t, err)

		err = svc.DeleteCategory(asCaller(user), cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")

		// Deactivation is the supported alternative.
		deactivated, err := svc.DeactivateCategory(asCaller(user), cat.ID)
		testutil.AssertNoError(t, err)
		if deactivated.IsActive {
			t.Error("expected category to be inactive")
		}
	})
}

func TestActivateDeactivateCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db, nil)
	user := testutil.CreateTestUser(t, db)
	cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

	deactivated, err := svc.DeactivateCategory(asCaller(user), cat.ID)
	testutil.AssertNoError(t, err)
	if deactivated.IsActive {
		t.Error("expected inactive")
	}

	activated, err := svc.ActivateCategory(asCaller(user), cat.ID)
	testutil.AssertNoError(t, err)
	if !activated.IsActive {
		t.Error("expected active")
	}
}

func TestListCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db, nil)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
	testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
	income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
	_, err := svc.DeactivateCategory(asCaller(user), income.ID)
	testutil.AssertNoError(t, err)

	page := pagination.PageRequest{Page: 1, PageSize: 20}

	expenseType := models.CategoryTypeExpense
	result, err := svc.ListCategories(asCaller(user), page, CategoryFilter{Type: &expenseType})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 2 {
		t.Errorf("expected 2 expense categories, got %d", result.TotalItems)
	}

	active := true
	result, err = svc.ListCategories(asCaller(user), page, CategoryFilter{IsActive: &active})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 2 {
		t.Errorf("expected 2 active categories, got %d", result.TotalItems)
	}
}
