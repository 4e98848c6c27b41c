package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateParameter(t *testing.T) {
	t.Run("valid_per_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewParameterService(db)
		user := testutil.CreateTestUser(t, db)

		tests := []struct {
			key       string
			value     string
			paramType models.ParameterType
		}{
			{"display.currency", "EUR", models.ParameterTypeString},
			{"budget.monthly_limit", "2500.50", models.ParameterTypeNumber},
			{"alerts.enabled", "true", models.ParameterTypeBoolean},
			{"dashboard.layout", `{"columns": 3}`, models.ParameterTypeJSON},
		}

		for _, tt := range tests {
			_, err := svc.CreateParameter(asCaller(user), tt.key, "", tt.value, tt.paramType)
			testutil.AssertNoError(t, err)
		}
	})

	t.Run("value_must_match_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewParameterService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateParameter(asCaller(user), "bad.number", "", "abc", models.ParameterTypeNumber)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateParameter(asCaller(user), "bad.bool", "", "yes", models.ParameterTypeBoolean)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateParameter(asCaller(user), "bad.json", "", "{broken", models.ParameterTypeJSON)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewParameterService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateParameter(asCaller(user), "display.currency", "", "EUR", models.ParameterTypeString)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateParameter(asCaller(user), "display.currency", "", "USD", models.ParameterTypeString)
		testutil.AssertAppError(t, err, "DUPLICATE_PARAMETER_KEY")
	})

	t.Run("same_key_different_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewParameterService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateParameter(asCaller(user1), "display.currency", "", "EUR", models.ParameterTypeString)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateParameter(asCaller(user2), "display.currency", "", "USD", models.ParameterTypeString)
		testutil.AssertNoError(t, err)
	})
}

func TestTypedReads(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewParameterService(db)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.CreateParameter(asCaller(user), "limit.count", "", "42", models.ParameterTypeNumber)
	testutil.AssertNoError(t, err)
	_, err = svc.CreateParameter(asCaller(user), "limit.amount", "", "2500.50", models.ParameterTypeNumber)
	testutil.AssertNoError(t, err)
	_, err = svc.CreateParameter(asCaller(user), "alerts.enabled", "", "true", models.ParameterTypeBoolean)
	testutil.AssertNoError(t, err)
	_, err = svc.CreateParameter(asCaller(user), "display.currency", "", "EUR", models.ParameterTypeString)
	testutil.AssertNoError(t, err)

	if v, err := svc.GetInt(asCaller(user), "limit.count"); err != nil || v != 42 {
		t.Errorf("expected 42, got %d (err %v)", v, err)
	}
	if v, err := svc.GetFloat(asCaller(user), "limit.amount"); err != nil || v != 2500.50 {
		t.Errorf("expected 2500.50, got %f (err %v)", v, err)
	}
	if v, err := svc.GetBool(asCaller(user), "alerts.enabled"); err != nil || !v {
		t.Errorf("expected true, got %v (err %v)", v, err)
	}
	if v, err := svc.GetString(asCaller(user), "display.currency"); err != nil || v != "EUR" {
		t.Errorf("expected EUR, got %s (err %v)", v, err)
	}

	// Type mismatch on read.
	if _, err := svc.GetInt(asCaller(user), "display.currency"); err == nil {
		t.Error("expected error reading string parameter as int")
	}

	// Unknown key.
	_, err = svc.GetString(asCaller(user), "missing.key")
	testutil.AssertAppError(t, err, "PARAMETER_NOT_FOUND")
}

func TestUpdateParameter(t *testing.T) {
	t.Run("revalidates_value_against_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewParameterService(db)
		user := testutil.CreateTestUser(t, db)

		param, err := svc.CreateParameter(asCaller(user), "limit.count", "", "42", models.ParameterTypeNumber)
		testutil.AssertNoError(t, err)

		bad := "not-a-number"
		_, err = svc.UpdateParameter(asCaller(user), param.ID, nil, &bad, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		// Changing the type alone is checked against the current value.
		boolType := models.ParameterTypeBoolean
		_, err = svc.UpdateParameter(asCaller(user), param.ID, nil, nil, &boolType)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		good := "100"
		updated, err := svc.UpdateParameter(asCaller(user), param.ID, nil, &good, nil)
		testutil.AssertNoError(t, err)
		if updated.Value != "100" {
			t.Errorf("expected 100, got %s", updated.Value)
		}
	})
}

func TestListParameters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewParameterService(db)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.CreateParameter(asCaller(user), "a.string", "", "x", models.ParameterTypeString)
	testutil.AssertNoError(t, err)
	_, err = svc.CreateParameter(asCaller(user), "b.number", "", "1", models.ParameterTypeNumber)
	testutil.AssertNoError(t, err)

	page := pagination.PageRequest{Page: 1, PageSize: 20}
	numberType := models.ParameterTypeNumber
	result, err := svc.ListParameters(asCaller(user), page, ParameterFilter{Type: &numberType})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Errorf("expected 1 number parameter, got %d", result.TotalItems)
	}
}

func TestParameterOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewParameterService(db)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	param := testutil.CreateTestParameter(t, db, owner.ID, "value")

	_, err := svc.GetParameterByID(asCaller(other), param.ID)
	testutil.AssertAppError(t, err, "FORBIDDEN")

	// By-key lookups are always scoped to the caller, so the other user
	// simply does not find it.
	_, err = svc.GetParameterByKey(asCaller(other), param.Key)
	testutil.AssertAppError(t, err, "PARAMETER_NOT_FOUND")
}
