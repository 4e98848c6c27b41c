package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// --- mock dashboard service ---

type mockDashboardService struct {
	getDashboardFn     func(caller services.Caller, month, year int) (*services.DashboardData, error)
	getBalanceFn       func(caller services.Caller) (*services.BalanceData, error)
	comparePeriodsFn   func(caller services.Caller, month1, year1, month2, year2 int) (*services.PeriodComparison, error)
	getEvolutionFn     func(caller services.Caller, months int) ([]services.EvolutionPoint, error)
	getTopCategoriesFn func(caller services.Caller, month, year, limit int) ([]services.CategorySummary, error)
	getIndicatorsFn    func(caller services.Caller, month, year int) (*services.Indicators, error)
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

func (m *mockDashboardService) GetDashboard(caller services.Caller, month, year int) (*services.DashboardData, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(caller, month, year)
	}
	return &services.DashboardData{Month: month, Year: year}, nil
}

func (m *mockDashboardService) GetBalance(caller services.Caller) (*services.BalanceData, error) {
	if m.getBalanceFn != nil {
		return m.getBalanceFn(caller)
	}
	return &services.BalanceData{}, nil
}

func (m *mockDashboardService) ComparePeriods(caller services.Caller, month1, year1, month2, year2 int) (*services.PeriodComparison, error) {
	if m.comparePeriodsFn != nil {
		return m.comparePeriodsFn(caller, month1, year1, month2, year2)
	}
	return &services.PeriodComparison{}, nil
}

func (m *mockDashboardService) GetEvolution(caller services.Caller, months int) ([]services.EvolutionPoint, error) {
	if m.getEvolutionFn != nil {
		return m.getEvolutionFn(caller, months)
	}
	return []services.EvolutionPoint{}, nil
}

func (m *mockDashboardService) GetTopCategories(caller services.Caller, month, year, limit int) ([]services.CategorySummary, error) {
	if m.getTopCategoriesFn != nil {
		return m.getTopCategoriesFn(caller, month, year, limit)
	}
	return []services.CategorySummary{}, nil
}

func (m *mockDashboardService) GetIndicators(caller services.Caller, month, year int) (*services.Indicators, error) {
	if m.getIndicatorsFn != nil {
		return m.getIndicatorsFn(caller, month, year)
	}
	return &services.Indicators{}, nil
}

func (m *mockDashboardService) InvalidateUser(uint) {}

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUser(1, false))
	auth.GET("/dashboard", handler.GetDashboard)
	auth.GET("/dashboard/balance", handler.GetBalance)
	auth.GET("/dashboard/comparison", handler.ComparePeriods)
	auth.GET("/dashboard/evolution", handler.GetEvolution)
	auth.GET("/dashboard/top-categories", handler.GetTopCategories)
	auth.GET("/dashboard/indicators", handler.GetIndicators)
	return r
}

// --- tests ---

func TestDashboardHandler_GetDashboard(t *testing.T) {
	t.Run("defaults_to_current_month", func(t *testing.T) {
		var capturedMonth, capturedYear int
		svc := &mockDashboardService{
			getDashboardFn: func(_ services.Caller, month, year int) (*services.DashboardData, error) {
				capturedMonth, capturedYear = month, year
				return &services.DashboardData{Month: month, Year: year}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		now := time.Now()
		if capturedMonth != int(now.Month()) || capturedYear != now.Year() {
			t.Errorf("expected current month/year, got %d/%d", capturedMonth, capturedYear)
		}
	})

	t.Run("forwards_explicit_month", func(t *testing.T) {
		var capturedMonth, capturedYear int
		svc := &mockDashboardService{
			getDashboardFn: func(_ services.Caller, month, year int) (*services.DashboardData, error) {
				capturedMonth, capturedYear = month, year
				return &services.DashboardData{Month: month, Year: year}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard?month=6&year=2024", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if capturedMonth != 6 || capturedYear != 2024 {
			t.Errorf("expected 6/2024, got %d/%d", capturedMonth, capturedYear)
		}
	})

	t.Run("returns_400_non_numeric_month", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

		rec := doRequest(r, "GET", "/dashboard?month=june", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns_400_out_of_range_month", func(t *testing.T) {
		svc := &mockDashboardService{
			getDashboardFn: func(_ services.Caller, _, _ int) (*services.DashboardData, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard?month=13&year=2024", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestDashboardHandler_ComparePeriods(t *testing.T) {
	t.Run("baseline_defaults_to_previous_month", func(t *testing.T) {
		var gotMonth1, gotYear1, gotMonth2, gotYear2 int
		svc := &mockDashboardService{
			comparePeriodsFn: func(_ services.Caller, month1, year1, month2, year2 int) (*services.PeriodComparison, error) {
				gotMonth1, gotYear1, gotMonth2, gotYear2 = month1, year1, month2, year2
				return &services.PeriodComparison{}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/comparison?month=1&year=2024", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotMonth1 != 1 || gotYear1 != 2024 {
			t.Errorf("expected first period 1/2024, got %d/%d", gotMonth1, gotYear1)
		}
		if gotMonth2 != 12 || gotYear2 != 2023 {
			t.Errorf("expected baseline 12/2023, got %d/%d", gotMonth2, gotYear2)
		}
	})

	t.Run("forwards_explicit_baseline", func(t *testing.T) {
		var gotMonth2, gotYear2 int
		svc := &mockDashboardService{
			comparePeriodsFn: func(_ services.Caller, _, _, month2, year2 int) (*services.PeriodComparison, error) {
				gotMonth2, gotYear2 = month2, year2
				return &services.PeriodComparison{}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/comparison?month=6&year=2024&month2=6&year2=2023", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotMonth2 != 6 || gotYear2 != 2023 {
			t.Errorf("expected baseline 6/2023, got %d/%d", gotMonth2, gotYear2)
		}
	})

	t.Run("returns_400_non_numeric_baseline", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

		rec := doRequest(r, "GET", "/dashboard/comparison?month=6&year=2024&month2=may", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestDashboardHandler_GetEvolution(t *testing.T) {
	t.Run("defaults_to_six_months", func(t *testing.T) {
		var capturedMonths int
		svc := &mockDashboardService{
			getEvolutionFn: func(_ services.Caller, months int) ([]services.EvolutionPoint, error) {
				capturedMonths = months
				return []services.EvolutionPoint{}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/evolution", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if capturedMonths != 6 {
			t.Errorf("expected 6 months, got %d", capturedMonths)
		}
	})

	t.Run("returns_points", func(t *testing.T) {
		svc := &mockDashboardService{
			getEvolutionFn: func(_ services.Caller, _ int) ([]services.EvolutionPoint, error) {
				return []services.EvolutionPoint{
					{Month: 5, Year: 2024, Balance: decimal.RequireFromString("100")},
					{Month: 6, Year: 2024, Balance: decimal.RequireFromString("200")},
				}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/evolution?months=2", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		points := parseJSON(t, rec)["evolution"].([]interface{})
		if len(points) != 2 {
			t.Errorf("expected 2 points, got %d", len(points))
		}
	})
}

func TestDashboardHandler_GetTopCategories(t *testing.T) {
	var capturedLimit int
	svc := &mockDashboardService{
		getTopCategoriesFn: func(_ services.Caller, _, _, limit int) ([]services.CategorySummary, error) {
			capturedLimit = limit
			return []services.CategorySummary{{Name: "Rent", Total: decimal.RequireFromString("1500")}}, nil
		},
	}
	r := setupDashboardRouter(NewDashboardHandler(svc))

	rec := doRequest(r, "GET", "/dashboard/top-categories?month=6&year=2024&limit=3", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if capturedLimit != 3 {
		t.Errorf("expected limit 3, got %d", capturedLimit)
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}
}

func TestDashboardHandler_GetIndicators(t *testing.T) {
	svc := &mockDashboardService{
		getIndicatorsFn: func(_ services.Caller, month, year int) (*services.Indicators, error) {
			return &services.Indicators{
				Month:          month,
				Year:           year,
				HealthScore:    85,
				Classification: "excellent",
			}, nil
		},
	}
	r := setupDashboardRouter(NewDashboardHandler(svc))

	rec := doRequest(r, "GET", "/dashboard/indicators?month=6&year=2024", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["health_score"].(float64) != 85 {
		t.Errorf("expected health_score=85, got %v", result["health_score"])
	}
	if result["classification"] != "excellent" {
		t.Errorf("expected classification=excellent, got %v", result["classification"])
	}
}
