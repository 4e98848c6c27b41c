package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

func TestRecalculateProgress(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		target   string
		expected string
	}{
		{"zero balance", "0", "1000", "0"},
		{"halfway", "500", "1000", "50"},
		{"rounds half up", "333.33", "1000", "33.33"},
		{"third", "1", "3", "33.33"},
		{"two thirds rounds up", "2", "3", "66.67"},
		{"exact target", "1000", "1000", "100"},
		{"over target capped", "1500", "1000", "100"},
		{"zero target", "500", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Goal{
				CurrentAmount: dec(t, tt.current),
				TargetAmount:  dec(t, tt.target),
			}
			g.RecalculateProgress()
			if !g.Progress.Equal(dec(t, tt.expected)) {
				t.Errorf("expected progress %s, got %s", tt.expected, g.Progress)
			}
		})
	}
}

func TestRefreshStatus(t *testing.T) {
	t.Run("promotes to completed when achieved", func(t *testing.T) {
		g := &Goal{
			CurrentAmount: dec(t, "1000"),
			TargetAmount:  dec(t, "1000"),
			Status:        GoalStatusInProgress,
		}
		g.RefreshStatus()
		if g.Status != GoalStatusCompleted {
			t.Errorf("expected completed, got %s", g.Status)
		}
	})

	t.Run("cancelled goal stays cancelled", func(t *testing.T) {
		g := &Goal{
			CurrentAmount: dec(t, "2000"),
			TargetAmount:  dec(t, "1000"),
			Status:        GoalStatusCancelled,
		}
		g.RefreshStatus()
		if g.Status != GoalStatusCancelled {
			t.Errorf("expected cancelled, got %s", g.Status)
		}
	})

	t.Run("paused goal promotes when achieved", func(t *testing.T) {
		g := &Goal{
			CurrentAmount: dec(t, "1000"),
			TargetAmount:  dec(t, "1000"),
			Status:        GoalStatusPaused,
		}
		g.RefreshStatus()
		if g.Status != GoalStatusCompleted {
			t.Errorf("expected completed, got %s", g.Status)
		}
	})

	t.Run("completed goal keeps status when balance drops", func(t *testing.T) {
		g := &Goal{
			CurrentAmount: dec(t, "800"),
			TargetAmount:  dec(t, "1000"),
			Status:        GoalStatusCompleted,
		}
		g.RefreshStatus()
		if g.Status != GoalStatusCompleted {
			t.Errorf("expected completed, got %s", g.Status)
		}
	})

	t.Run("unachieved goal stays in progress", func(t *testing.T) {
		g := &Goal{
			CurrentAmount: dec(t, "500"),
			TargetAmount:  dec(t, "1000"),
			Status:        GoalStatusInProgress,
		}
		g.RefreshStatus()
		if g.Status != GoalStatusInProgress {
			t.Errorf("expected in_progress, got %s", g.Status)
		}
	})
}

func TestRecomputeIdempotent(t *testing.T) {
	g := &Goal{
		CurrentAmount: dec(t, "750"),
		TargetAmount:  dec(t, "1000"),
		Status:        GoalStatusInProgress,
	}
	g.Recompute()
	first := g.Progress
	g.Recompute()
	if !g.Progress.Equal(first) {
		t.Errorf("recompute not idempotent: %s then %s", first, g.Progress)
	}
	if g.Status != GoalStatusInProgress {
		t.Errorf("expected in_progress, got %s", g.Status)
	}
}

func TestGoalIsOverdue(t *testing.T) {
	past := time.Now().AddDate(0, 0, -10)
	future := time.Now().AddDate(0, 0, 10)

	t.Run("past deadline in progress", func(t *testing.T) {
		g := &Goal{
			CurrentAmount: dec(t, "100"),
			TargetAmount:  dec(t, "1000"),
			Deadline:      &past,
			Status:        GoalStatusInProgress,
		}
		if !g.IsOverdue() {
			t.Error("expected overdue")
		}
	})

	t.Run("future deadline", func(t *testing.T) {
		g := &Goal{
			CurrentAmount: dec(t, "100"),
			TargetAmount:  dec(t, "1000"),
			Deadline:      &future,
			Status:        GoalStatusInProgress,
		}
		if g.IsOverdue() {
			t.Error("expected not overdue")
		}
	})

	t.Run("no deadline", func(t *testing.T) {
		g := &Goal{
			CurrentAmount: dec(t, "100"),
			TargetAmount:  dec(t, "1000"),
			Status:        GoalStatusInProgress,
		}
		if g.IsOverdue() {
			t.Error("expected not overdue")
		}
	})

	t.Run("achieved goal past deadline", func(t *testing.T) {
		g := &Goal{
			CurrentAmount: dec(t, "1000"),
			TargetAmount:  dec(t, "1000"),
			Deadline:      &past,
			Status:        GoalStatusInProgress,
		}
		if g.IsOverdue() {
			t.Error("achieved goal should not be overdue")
		}
	})

	t.Run("paused goal past deadline", func(t *testing.T) {
		g := &Goal{
			CurrentAmount: dec(t, "100"),
			TargetAmount:  dec(t, "1000"),
			Deadline:      &past,
			Status:        GoalStatusPaused,
		}
		if g.IsOverdue() {
			t.Error("paused goal should not be overdue")
		}
	})
}

func TestGoalTransactionSignedAmount(t *testing.T) {
	contribution := &GoalTransaction{Amount: dec(t, "50"), Type: GoalTransactionContribution}
	if !contribution.SignedAmount().Equal(dec(t, "50")) {
		t.Errorf("expected 50, got %s", contribution.SignedAmount())
	}

	withdrawal := &GoalTransaction{Amount: dec(t, "50"), Type: GoalTransactionWithdrawal}
	if !withdrawal.SignedAmount().Equal(dec(t, "-50")) {
		t.Errorf("expected -50, got %s", withdrawal.SignedAmount())
	}
}

func TestExpenseHelpers(t *testing.T) {
	t.Run("installment label", func(t *testing.T) {
		e := &Expense{InstallmentNumber: 3, InstallmentTotal: 12}
		if got := e.InstallmentLabel(); got != "3/12" {
			t.Errorf("expected 3/12, got %s", got)
		}
		single := &Expense{InstallmentNumber: 1, InstallmentTotal: 1}
		if got := single.InstallmentLabel(); got != "single" {
			t.Errorf("expected single, got %s", got)
		}
	})

	t.Run("overdue only when pending and past", func(t *testing.T) {
		past := time.Now().AddDate(0, 0, -5)
		pending := &Expense{Status: PaymentStatusPending, Date: past}
		if !pending.IsOverdue() {
			t.Error("expected overdue")
		}
		paid := &Expense{Status: PaymentStatusPaid, Date: past}
		if paid.IsOverdue() {
			t.Error("paid expense should not be overdue")
		}
	})
}

func TestIncomeTotals(t *testing.T) {
	income := &Income{
		Salary:        dec(t, "3000"),
		Allowances:    dec(t, "500"),
		ExtraServices: dec(t, "250.50"),
		Expenses: []Expense{
			{Amount: dec(t, "1000")},
			{Amount: dec(t, "200.25")},
		},
	}

	if !income.TotalIncome().Equal(dec(t, "3750.50")) {
		t.Errorf("expected total 3750.50, got %s", income.TotalIncome())
	}
	if !income.TotalLinkedExpenses().Equal(dec(t, "1200.25")) {
		t.Errorf("expected expenses 1200.25, got %s", income.TotalLinkedExpenses())
	}
	if !income.Balance().Equal(dec(t, "2550.25")) {
		t.Errorf("expected balance 2550.25, got %s", income.Balance())
	}
}

func TestParameterTypedValues(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		p := &Parameter{Type: ParameterTypeNumber, Value: "42"}
		if v, ok := p.IntValue(); !ok || v != 42 {
			t.Errorf("expected 42, got %d ok=%v", v, ok)
		}
	})

	t.Run("boolean", func(t *testing.T) {
		p := &Parameter{Type: ParameterTypeBoolean, Value: "true"}
		if v, ok := p.BoolValue(); !ok || !v {
			t.Errorf("expected true, got %v ok=%v", v, ok)
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		p := &Parameter{Type: ParameterTypeString, Value: "42"}
		if _, ok := p.IntValue(); ok {
			t.Error("string parameter should not parse as int")
		}
	})
}
