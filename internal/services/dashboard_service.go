package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"fintrack/internal/cache"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

const (
	minYear          = 1990
	maxYear          = 2100
	maxEvolution     = 24
	maxTopCategories = 20
	topCategoryCount = 5
)

// dashboardService computes read-only aggregates over a user's expenses,
// incomes, and goals. Results are cached per user with an LRU+TTL cache;
// every mutating service drops the user's entries via InvalidateUser.
type dashboardService struct {
	db    *gorm.DB
	cache *cache.LRUCache[any]
}

// NewDashboardService creates a new DashboardServicer with a cache of the
// given capacity and TTL.
func NewDashboardService(db *gorm.DB, cacheSize int, cacheTTL time.Duration) DashboardServicer {
	return &dashboardService{
		db:    db,
		cache: cache.NewLRUCache[any](cacheSize, cacheTTL),
	}
}

// InvalidateUser drops every cached aggregate belonging to one user.
func (s *dashboardService) InvalidateUser(userID uint) {
	s.cache.DeletePrefix(fmt.Sprintf("u%d:", userID))
}

func validateMonthYear(month, year int) error {
	if month < 1 || month > 12 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if year < minYear || year > maxYear {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("year must be between %d and %d", minYear, maxYear))
	}
	return nil
}

// percentOf returns part/whole as a percentage, two decimal places half-up.
// A zero whole yields zero rather than an error.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(oneHundredPct).DivRound(whole, 2)
}

// percentDelta returns the relative change from previous to current as a
// percentage. A zero baseline yields zero.
func percentDelta(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Mul(oneHundredPct).DivRound(previous, 2)
}

var oneHundredPct = decimal.NewFromInt(100)

// monthRange returns the half-open interval [start, end) covering a month.
func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

// monthTotals sums a user's income and expenses for one month. Income
// periods count towards the month their start date falls in.
func (s *dashboardService) monthTotals(userID uint, month, year int) (*BalanceData, error) {
	start, end := monthRange(month, year)

	var incomes []models.Income
	if err := s.db.Where("user_id = ? AND period_start >= ? AND period_start < ?", userID, start, end).
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totalIncome := decimal.Zero
	for i := range incomes {
		totalIncome = totalIncome.Add(incomes[i].TotalIncome())
	}

	totalExpenses := decimal.Zero
	for i := range expenses {
		totalExpenses = totalExpenses.Add(expenses[i].Amount)
	}

	return &BalanceData{
		Month:         month,
		Year:          year,
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		Balance:       totalIncome.Sub(totalExpenses),
	}, nil
}

// monthExpenses loads a user's expenses for one month.
func (s *dashboardService) monthExpenses(userID uint, month, year int) ([]models.Expense, error) {
	start, end := monthRange(month, year)

	var expenses []models.Expense
	if err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// categoryBreakdown groups expenses by category, largest share first.
func (s *dashboardService) categoryBreakdown(userID uint, expenses []models.Expense) ([]CategorySummary, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	names := make(map[uint]string, len(categories))
	for i := range categories {
		names[categories[i].ID] = categories[i].Name
	}

	total := decimal.Zero
	for i := range expenses {
		total = total.Add(expenses[i].Amount)
	}

	grouped := make(map[string]*CategorySummary)
	var seen []string
	for i := range expenses {
		e := &expenses[i]
		key := "uncategorized"
		name := "uncategorized"
		var categoryID *uint
		if e.CategoryID != nil {
			key = fmt.Sprintf("c%d", *e.CategoryID)
			name = names[*e.CategoryID]
			categoryID = e.CategoryID
		}
		entry, ok := grouped[key]
		if !ok {
			entry = &CategorySummary{
				CategoryID: categoryID,
				Name:       name,
				Total:      decimal.Zero,
			}
			grouped[key] = entry
			seen = append(seen, key)
		}
		entry.Total = entry.Total.Add(e.Amount)
		entry.Count++
	}

	// Stable sort over first-seen order, so equal totals keep the order in
	// which the categories appeared in the expense stream.
	result := make([]CategorySummary, 0, len(seen))
	for _, key := range seen {
		entry := grouped[key]
		entry.Percentage = percentOf(entry.Total, total)
		result = append(result, *entry)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	return result, nil
}

// goalSection loads the user's goals and folds them into the same summary
// the goal service exposes: targets, saved and completed totals, remaining
// amount, mean progress, counts per status, and the overdue count.
func (s *dashboardService) goalSection(userID uint) (*GoalSummary, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return summarizeGoals(goals), nil
}

// monthlyAverages computes the user's all-time averages: income per income
// period and expenses per month that has any.
func (s *dashboardService) monthlyAverages(userID uint) (decimal.Decimal, decimal.Decimal, error) {
	var incomes []models.Income
	if err := s.db.Where("user_id = ?", userID).Find(&incomes).Error; err != nil {
		return decimal.Zero, decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	avgIncome := decimal.Zero
	if len(incomes) > 0 {
		sum := decimal.Zero
		for i := range incomes {
			sum = sum.Add(incomes[i].TotalIncome())
		}
		avgIncome = sum.DivRound(decimal.NewFromInt(int64(len(incomes))), 2)
	}

	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return decimal.Zero, decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byMonth := make(map[string]decimal.Decimal)
	for i := range expenses {
		key := expenses[i].Date.Format("2006-01")
		byMonth[key] = byMonth[key].Add(expenses[i].Amount)
	}
	avgExpense := decimal.Zero
	if len(byMonth) > 0 {
		sum := decimal.Zero
		for _, total := range byMonth {
			sum = sum.Add(total)
		}
		avgExpense = sum.DivRound(decimal.NewFromInt(int64(len(byMonth))), 2)
	}

	return avgIncome, avgExpense, nil
}

// GetDashboard returns the full aggregate for one month.
func (s *dashboardService) GetDashboard(caller Caller, month, year int) (*DashboardData, error) {
	if err := validateMonthYear(month, year); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("u%d:dashboard:%d-%d", caller.UserID, year, month)
	if cached, ok := s.cache.Get(key); ok {
		if data, ok := cached.(*DashboardData); ok {
			return data, nil
		}
	}

	totals, err := s.monthTotals(caller.UserID, month, year)
	if err != nil {
		return nil, err
	}

	expenses, err := s.monthExpenses(caller.UserID, month, year)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.categoryBreakdown(caller.UserID, expenses)
	if err != nil {
		return nil, err
	}

	goals, err := s.goalSection(caller.UserID)
	if err != nil {
		return nil, err
	}

	avgIncome, avgExpense, err := s.monthlyAverages(caller.UserID)
	if err != nil {
		return nil, err
	}

	paidAmount := decimal.Zero
	pendingAmount := decimal.Zero
	var paid, pending, overdue int64
	today := time.Now()
	for i := range expenses {
		e := &expenses[i]
		switch {
		case e.Status == models.PaymentStatusPaid:
			paid++
			paidAmount = paidAmount.Add(e.Amount)
		case e.Status == models.PaymentStatusPending && e.Date.Before(today):
			overdue++
			pendingAmount = pendingAmount.Add(e.Amount)
		default:
			pending++
			pendingAmount = pendingAmount.Add(e.Amount)
		}
	}

	_, end := monthRange(month, year)
	daysInMonth := decimal.NewFromInt(int64(end.AddDate(0, 0, -1).Day()))

	top := breakdown
	if len(top) > topCategoryCount {
		top = top[:topCategoryCount]
	}

	data := &DashboardData{
		Month:               month,
		Year:                year,
		TotalIncome:         totals.TotalIncome,
		TotalExpenses:       totals.TotalExpenses,
		TotalPaid:           paidAmount,
		TotalPending:        pendingAmount,
		Balance:             totals.Balance,
		DisposableBalance:   totals.TotalIncome.Sub(paidAmount),
		ExpenseCount:        int64(len(expenses)),
		PaidCount:           paid,
		PendingCount:        pending,
		OverdueCount:        overdue,
		PercentSpent:        percentOf(totals.TotalExpenses, totals.TotalIncome),
		PercentSaved:        percentOf(totals.Balance, totals.TotalIncome),
		PaymentRate:         percentOf(paidAmount, totals.TotalExpenses),
		AverageDailyExpense: totals.TotalExpenses.DivRound(daysInMonth, 2),
		AvgMonthlyIncome:    avgIncome,
		AvgMonthlyExpense:   avgExpense,
		Categories:          breakdown,
		TopCategories:       top,
		Goals:               *goals,
	}

	s.cache.Set(key, data)
	return data, nil
}

// GetBalance returns the income/expense balance for the current month.
func (s *dashboardService) GetBalance(caller Caller) (*BalanceData, error) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()

	key := fmt.Sprintf("u%d:balance:%d-%d", caller.UserID, year, month)
	if cached, ok := s.cache.Get(key); ok {
		if data, ok := cached.(*BalanceData); ok {
			return data, nil
		}
	}

	totals, err := s.monthTotals(caller.UserID, month, year)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, totals)
	return totals, nil
}

// ComparePeriods compares two arbitrary months. The second period is the
// baseline the percentage deltas are computed against.
func (s *dashboardService) ComparePeriods(caller Caller, month1, year1, month2, year2 int) (*PeriodComparison, error) {
	if err := validateMonthYear(month1, year1); err != nil {
		return nil, err
	}
	if err := validateMonthYear(month2, year2); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("u%d:compare:%d-%d:%d-%d", caller.UserID, year1, month1, year2, month2)
	if cached, ok := s.cache.Get(key); ok {
		if data, ok := cached.(*PeriodComparison); ok {
			return data, nil
		}
	}

	current, err := s.monthTotals(caller.UserID, month1, year1)
	if err != nil {
		return nil, err
	}
	previous, err := s.monthTotals(caller.UserID, month2, year2)
	if err != nil {
		return nil, err
	}

	comparison := &PeriodComparison{
		Current:       *current,
		Previous:      *previous,
		IncomeChange:  percentDelta(current.TotalIncome, previous.TotalIncome),
		ExpenseChange: percentDelta(current.TotalExpenses, previous.TotalExpenses),
		BalanceChange: percentDelta(current.Balance, previous.Balance),
	}

	s.cache.Set(key, comparison)
	return comparison, nil
}

// GetEvolution returns the last n months of income/expense totals, oldest
// first and ending with the current month. Empty months yield zeros. The
// per-month queries run concurrently.
func (s *dashboardService) GetEvolution(caller Caller, months int) ([]EvolutionPoint, error) {
	if months < 1 || months > maxEvolution {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("months must be between 1 and %d", maxEvolution))
	}

	key := fmt.Sprintf("u%d:evolution:%d", caller.UserID, months)
	if cached, ok := s.cache.Get(key); ok {
		if data, ok := cached.([]EvolutionPoint); ok {
			return data, nil
		}
	}

	now := time.Now()
	points := make([]EvolutionPoint, months)

	var g errgroup.Group
	for i := 0; i < months; i++ {
		idx := i
		// Index 0 is the oldest month of the window.
		target := now.AddDate(0, idx-(months-1), 0)
		g.Go(func() error {
			totals, err := s.monthTotals(caller.UserID, int(target.Month()), target.Year())
			if err != nil {
				return err
			}
			points[idx] = EvolutionPoint{
				Month:         totals.Month,
				Year:          totals.Year,
				TotalIncome:   totals.TotalIncome,
				TotalExpenses: totals.TotalExpenses,
				Balance:       totals.Balance,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.Set(key, points)
	return points, nil
}

// GetTopCategories returns the largest expense categories of one month.
func (s *dashboardService) GetTopCategories(caller Caller, month, year, limit int) ([]CategorySummary, error) {
	if err := validateMonthYear(month, year); err != nil {
		return nil, err
	}
	if limit < 1 || limit > maxTopCategories {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("limit must be between 1 and %d", maxTopCategories))
	}

	key := fmt.Sprintf("u%d:top:%d-%d:%d", caller.UserID, year, month, limit)
	if cached, ok := s.cache.Get(key); ok {
		if data, ok := cached.([]CategorySummary); ok {
			return data, nil
		}
	}

	expenses, err := s.monthExpenses(caller.UserID, month, year)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.categoryBreakdown(caller.UserID, expenses)
	if err != nil {
		return nil, err
	}
	if len(breakdown) > limit {
		breakdown = breakdown[:limit]
	}

	s.cache.Set(key, breakdown)
	return breakdown, nil
}

// GetIndicators computes the financial health indicators for one month.
// Overdue expenses and goals are counted across all time, not just the month.
func (s *dashboardService) GetIndicators(caller Caller, month, year int) (*Indicators, error) {
	if err := validateMonthYear(month, year); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("u%d:indicators:%d-%d", caller.UserID, year, month)
	if cached, ok := s.cache.Get(key); ok {
		if data, ok := cached.(*Indicators); ok {
			return data, nil
		}
	}

	totals, err := s.monthTotals(caller.UserID, month, year)
	if err != nil {
		return nil, err
	}

	expenses, err := s.monthExpenses(caller.UserID, month, year)
	if err != nil {
		return nil, err
	}

	paidAmount := decimal.Zero
	pendingAmount := decimal.Zero
	for i := range expenses {
		if expenses[i].Status == models.PaymentStatusPaid {
			paidAmount = paidAmount.Add(expenses[i].Amount)
		} else {
			pendingAmount = pendingAmount.Add(expenses[i].Amount)
		}
	}

	var overdueExpenses int64
	if err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND status = ? AND date < ?", caller.UserID, models.PaymentStatusPending, time.Now()).
		Count(&overdueExpenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := s.db.Where("user_id = ? AND status = ?", caller.UserID, models.GoalStatusInProgress).
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var overdueGoals int64
	for i := range goals {
		if goals[i].IsOverdue() {
			overdueGoals++
		}
	}

	savingsRate := percentOf(totals.Balance, totals.TotalIncome)
	debtRatio := percentOf(totals.TotalExpenses, totals.TotalIncome)
	paymentCapacity := percentOf(paidAmount, totals.TotalExpenses)

	score := healthScore(debtRatio, savingsRate, paymentCapacity, overdueExpenses, overdueGoals)

	indicators := &Indicators{
		Month:           month,
		Year:            year,
		Balance:         totals.Balance,
		SavingsRate:     savingsRate,
		DebtRatio:       debtRatio,
		PaymentCapacity: paymentCapacity,
		TotalPending:    pendingAmount,
		OverdueExpenses: overdueExpenses,
		OverdueGoals:    overdueGoals,
		HealthScore:     score,
		Classification:  classifyScore(score),
	}

	s.cache.Set(key, indicators)
	return indicators, nil
}

// healthScore starts at 100, applies penalties and bonuses, and clamps the
// result to [0, 100].
func healthScore(debtRatio, savingsRate, paymentCapacity decimal.Decimal, overdueExpenses, overdueGoals int64) int {
	score := 100

	switch {
	case debtRatio.GreaterThan(decimal.NewFromInt(80)):
		score -= 30
	case debtRatio.GreaterThan(decimal.NewFromInt(60)):
		score -= 20
	case debtRatio.GreaterThan(decimal.NewFromInt(40)):
		score -= 10
	}

	switch {
	case savingsRate.GreaterThan(decimal.NewFromInt(30)):
		score += 10
	case savingsRate.GreaterThan(decimal.NewFromInt(20)):
		score += 5
	}

	switch {
	case paymentCapacity.LessThan(decimal.NewFromInt(50)):
		score -= 20
	case paymentCapacity.LessThan(decimal.NewFromInt(70)):
		score -= 10
	}

	switch {
	case overdueExpenses > 5:
		score -= 15
	case overdueExpenses > 0:
		score -= 5
	}

	switch {
	case overdueGoals > 3:
		score -= 10
	case overdueGoals > 0:
		score -= 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func classifyScore(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	case score >= 20:
		return "poor"
	default:
		return "critical"
	}
}
