package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateExpense(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.CreateExpense(asCaller(user), date(2024, 6, 10), "Groceries", d(t, "120.50"), 1, 1, nil, nil, "")
		testutil.AssertNoError(t, err)

		if expense.Status != models.PaymentStatusPending {
			t.Errorf("expected pending, got %s", expense.Status)
		}
		if expense.FinalInstallmentDate != nil {
			t.Error("expected no final installment date for single expense")
		}
		if expense.IsInstallment() {
			t.Error("expected non-installment expense")
		}
	})

	t.Run("installments_derive_final_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.CreateExpense(asCaller(user), date(2024, 1, 15), "TV", d(t, "200"), 1, 12, nil, nil, "")
		testutil.AssertNoError(t, err)

		if expense.FinalInstallmentDate == nil {
			t.Fatal("expected final installment date")
		}
		want := date(2024, 12, 15)
		if !expense.FinalInstallmentDate.Equal(want) {
			t.Errorf("expected final date %s, got %s", want, expense.FinalInstallmentDate)
		}
		if expense.InstallmentLabel() != "1/12" {
			t.Errorf("expected label 1/12, got %s", expense.InstallmentLabel())
		}
	})

	t.Run("installment_crossing_year_boundary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.CreateExpense(asCaller(user), date(2024, 11, 5), "Course", d(t, "300"), 1, 4, nil, nil, "")
		testutil.AssertNoError(t, err)

		want := date(2025, 2, 5)
		if !expense.FinalInstallmentDate.Equal(want) {
			t.Errorf("expected final date %s, got %s", want, expense.FinalInstallmentDate)
		}
	})

	t.Run("with_category_and_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		income := testutil.CreateTestIncome(t, db, user.ID, date(2024, 6, 1), date(2024, 6, 30), "5000")

		expense, err := svc.CreateExpense(asCaller(user), date(2024, 6, 10), "Rent", d(t, "1500"), 1, 1, &cat.ID, &income.ID, "")
		testutil.AssertNoError(t, err)

		if expense.CategoryID == nil || *expense.CategoryID != cat.ID {
			t.Error("expected category link")
		}
		if expense.IncomeID == nil || *expense.IncomeID != income.ID {
			t.Error("expected income link")
		}
	})

	t.Run("inactive_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		if err := db.Model(cat).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate category: %v", err)
		}

		_, err := svc.CreateExpense(asCaller(user), date(2024, 6, 10), "Bad", d(t, "10"), 1, 1, &cat.ID, nil, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("foreign_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		_, err := svc.CreateExpense(asCaller(user), date(2024, 6, 10), "Bad", d(t, "10"), 1, 1, &cat.ID, nil, "")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("foreign_income_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		income := testutil.CreateTestIncome(t, db, other.ID, date(2024, 6, 1), date(2024, 6, 30), "5000")

		_, err := svc.CreateExpense(asCaller(user), date(2024, 6, 10), "Bad", d(t, "10"), 1, 1, nil, &income.ID, "")
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
	})

	t.Run("invalid_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateExpense(asCaller(user), time.Time{}, "No date", d(t, "10"), 1, 1, nil, nil, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateExpense(asCaller(user), date(2024, 6, 10), "", d(t, "10"), 1, 1, nil, nil, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateExpense(asCaller(user), date(2024, 6, 10), "Zero", d(t, "0"), 1, 1, nil, nil, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateExpense(asCaller(user), date(2024, 6, 10), "Bad installments", d(t, "10"), 1, 0, nil, nil, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("installment_number_bounds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.CreateExpense(asCaller(user), date(2024, 3, 10), "Fridge", d(t, "250"), 4, 10, nil, nil, "")
		testutil.AssertNoError(t, err)
		if expense.InstallmentLabel() != "4/10" {
			t.Errorf("expected label 4/10, got %s", expense.InstallmentLabel())
		}

		_, err = svc.CreateExpense(asCaller(user), date(2024, 3, 10), "Bad", d(t, "10"), 5, 4, nil, nil, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateExpense(asCaller(user), date(2024, 3, 10), "Bad", d(t, "10"), 0, 4, nil, nil, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListExpenses(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpenseOn(t, db, user.ID, "100", date(2024, 5, 10))
		testutil.CreateTestExpenseOn(t, db, user.ID, "200", date(2024, 6, 10))
		paid := testutil.CreateTestExpenseOn(t, db, user.ID, "300", date(2024, 6, 20))
		if err := db.Model(paid).Update("status", models.PaymentStatusPaid).Error; err != nil {
			t.Fatalf("failed to mark paid: %v", err)
		}

		page := pagination.PageRequest{Page: 1, PageSize: 20}

		from := date(2024, 6, 1)
		result, err := svc.ListExpenses(asCaller(user), page, ExpenseFilter{FromDate: &from})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 expenses from June, got %d", result.TotalItems)
		}

		status := models.PaymentStatusPaid
		result, err = svc.ListExpenses(asCaller(user), page, ExpenseFilter{Status: &status})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 paid expense, got %d", result.TotalItems)
		}
	})

	t.Run("newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpenseOn(t, db, user.ID, "100", date(2024, 6, 1))
		testutil.CreateTestExpenseOn(t, db, user.ID, "200", date(2024, 6, 20))

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.ListExpenses(asCaller(user), page, ExpenseFilter{})
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "200", result.Data[0].Amount)
	})
}

func TestUpdateExpense(t *testing.T) {
	t.Run("changing_installments_rederives_final_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.CreateExpense(asCaller(user), date(2024, 1, 15), "TV", d(t, "200"), 1, 12, nil, nil, "")
		testutil.AssertNoError(t, err)

		six := 6
		updated, err := svc.UpdateExpense(asCaller(user), expense.ID, nil, nil, nil, nil, &six, nil, nil, nil)
		testutil.AssertNoError(t, err)

		want := date(2024, 6, 15)
		if !updated.FinalInstallmentDate.Equal(want) {
			t.Errorf("expected final date %s, got %s", want, updated.FinalInstallmentDate)
		}
	})

	t.Run("dropping_to_single_clears_final_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.CreateExpense(asCaller(user), date(2024, 1, 15), "TV", d(t, "200"), 1, 12, nil, nil, "")
		testutil.AssertNoError(t, err)

		one := 1
		updated, err := svc.UpdateExpense(asCaller(user), expense.ID, nil, nil, nil, nil, &one, nil, nil, nil)
		testutil.AssertNoError(t, err)
		if updated.FinalInstallmentDate != nil {
			t.Error("expected final installment date to be cleared")
		}
	})

	t.Run("installment_number_validated_against_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.CreateExpense(asCaller(user), date(2024, 1, 15), "TV", d(t, "200"), 3, 12, nil, nil, "")
		testutil.AssertNoError(t, err)

		four := 4
		updated, err := svc.UpdateExpense(asCaller(user), expense.ID, nil, nil, nil, &four, nil, nil, nil, nil)
		testutil.AssertNoError(t, err)
		if updated.InstallmentNumber != 4 {
			t.Errorf("expected installment number 4, got %d", updated.InstallmentNumber)
		}

		twenty := 20
		_, err = svc.UpdateExpense(asCaller(user), expense.ID, nil, nil, nil, &twenty, nil, nil, nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		// Shrinking the total below the current number is rejected too.
		two := 2
		_, err = svc.UpdateExpense(asCaller(user), expense.ID, nil, nil, nil, nil, &two, nil, nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestMarkPaid(t *testing.T) {
	t.Run("marks_pending_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user.ID, "100")

		updated, err := svc.MarkPaid(asCaller(user), expense.ID)
		testutil.AssertNoError(t, err)
		if updated.Status != models.PaymentStatusPaid {
			t.Errorf("expected paid, got %s", updated.Status)
		}
	})

	t.Run("already_paid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db, nil)
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user.ID, "100")

		_, err := svc.MarkPaid(asCaller(user), expense.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.MarkPaid(asCaller(user), expense.ID)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestExpenseOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExpenseService(db, nil)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	admin := testutil.CreateTestAdmin(t, db)
	expense := testutil.CreateTestExpense(t, db, owner.ID, "100")

	_, err := svc.GetExpenseByID(asCaller(other), expense.ID)
	testutil.AssertAppError(t, err, "FORBIDDEN")

	_, err = svc.GetExpenseByID(asCaller(admin), expense.ID)
	testutil.AssertNoError(t, err)

	err = svc.DeleteExpense(asCaller(other), expense.ID)
	testutil.AssertAppError(t, err, "FORBIDDEN")

	err = svc.DeleteExpense(asCaller(owner), expense.ID)
	testutil.AssertNoError(t, err)
	_, err = svc.GetExpenseByID(asCaller(owner), expense.ID)
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
}
