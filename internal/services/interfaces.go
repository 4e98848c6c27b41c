package services

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// Caller identifies the authenticated user on whose behalf a service method
// runs. By-ID access is allowed for the owner or an admin; list and aggregate
// queries are always scoped to the caller's own data.
type Caller struct {
	UserID  uint
	IsAdmin bool
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	UpdateProfile(caller Caller, name string) (*models.User, error)
	ChangePassword(caller Caller, currentPassword, newPassword string) error
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// GoalFilter holds optional filter parameters for listing goals.
type GoalFilter struct {
	Status *models.GoalStatus
	Type   *models.GoalType
}

// GoalSummary aggregates a user's goals across statuses.
type GoalSummary struct {
	TotalTarget     decimal.Decimal             `json:"total_target"`
	TotalSaved      decimal.Decimal             `json:"total_saved"`
	TotalCompleted  decimal.Decimal             `json:"total_completed"`
	RemainingAmount decimal.Decimal             `json:"remaining_amount"`
	AverageProgress decimal.Decimal             `json:"average_progress"`
	CountsByStatus  map[models.GoalStatus]int64 `json:"counts_by_status"`
	OverdueCount    int64                       `json:"overdue_count"`
}

// GoalTransactionStats aggregates one goal's ledger per entry kind.
type GoalTransactionStats struct {
	ContributionCount    int64           `json:"contribution_count"`
	WithdrawalCount      int64           `json:"withdrawal_count"`
	TotalContributed     decimal.Decimal `json:"total_contributed"`
	TotalWithdrawn       decimal.Decimal `json:"total_withdrawn"`
	AverageContribution  decimal.Decimal `json:"average_contribution"`
	LargestContribution  decimal.Decimal `json:"largest_contribution"`
	SmallestContribution decimal.Decimal `json:"smallest_contribution"`
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(caller Caller, name, description string, goalType models.GoalType, targetAmount decimal.Decimal, deadline *time.Time, notes string) (*models.Goal, error)
	GetGoalByID(caller Caller, goalID uint, withTransactions bool) (*models.Goal, error)
	ListGoals(caller Caller, page pagination.PageRequest, filter GoalFilter) (*pagination.PageResponse[models.Goal], error)
	UpdateGoal(caller Caller, goalID uint, name, description *string, goalType *models.GoalType, targetAmount *decimal.Decimal, deadline *time.Time, notes *string) (*models.Goal, error)
	DeleteGoal(caller Caller, goalID uint) error
	Contribute(caller Caller, goalID uint, amount decimal.Decimal, date time.Time, description string) (*models.Goal, error)
	Withdraw(caller Caller, goalID uint, amount decimal.Decimal, date time.Time, description string) (*models.Goal, error)
	CancelGoal(caller Caller, goalID uint) (*models.Goal, error)
	PauseGoal(caller Caller, goalID uint) (*models.Goal, error)
	ResumeGoal(caller Caller, goalID uint) (*models.Goal, error)
	ListGoalTransactions(caller Caller, goalID uint, page pagination.PageRequest) (*pagination.PageResponse[models.GoalTransaction], error)
	GetTransactionStats(caller Caller, goalID uint) (*GoalTransactionStats, error)
	GetSummary(caller Caller) (*GoalSummary, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Status     *models.PaymentStatus
	CategoryID *uint
	IncomeID   *uint
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(caller Caller, date time.Time, description string, amount decimal.Decimal, installmentNumber, installmentTotal int, categoryID, incomeID *uint, notes string) (*models.Expense, error)
	GetExpenseByID(caller Caller, expenseID uint) (*models.Expense, error)
	ListExpenses(caller Caller, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	UpdateExpense(caller Caller, expenseID uint, date *time.Time, description *string, amount *decimal.Decimal, installmentNumber, installmentTotal *int, categoryID, incomeID *uint, notes *string) (*models.Expense, error)
	MarkPaid(caller Caller, expenseID uint) (*models.Expense, error)
	DeleteExpense(caller Caller, expenseID uint) error
}

// IncomeServicer defines the contract for income-period business logic.
type IncomeServicer interface {
	CreateIncome(caller Caller, periodStart, periodEnd time.Time, workingDays *int, salary, allowances, extraServices decimal.Decimal, notes string) (*models.Income, error)
	GetIncomeByID(caller Caller, incomeID uint) (*models.Income, error)
	ListIncomes(caller Caller, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	UpdateIncome(caller Caller, incomeID uint, periodStart, periodEnd *time.Time, workingDays *int, salary, allowances, extraServices *decimal.Decimal, notes *string) (*models.Income, error)
	DeleteIncome(caller Caller, incomeID uint) error
	FindByDate(caller Caller, date time.Time) (*models.Income, error)
}

// CategoryFilter holds optional filter parameters for listing categories.
type CategoryFilter struct {
	Type     *models.CategoryType
	IsActive *bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(caller Caller, name string, categoryType models.CategoryType) (*models.Category, error)
	GetCategoryByID(caller Caller, categoryID uint) (*models.Category, error)
	ListCategories(caller Caller, page pagination.PageRequest, filter CategoryFilter) (*pagination.PageResponse[models.Category], error)
	UpdateCategory(caller Caller, categoryID uint, name string) (*models.Category, error)
	ActivateCategory(caller Caller, categoryID uint) (*models.Category, error)
	DeactivateCategory(caller Caller, categoryID uint) (*models.Category, error)
	DeleteCategory(caller Caller, categoryID uint) error
}

// ParameterFilter holds optional filter parameters for listing parameters.
type ParameterFilter struct {
	Type *models.ParameterType
}

// ParameterServicer defines the contract for parameter-related business logic.
type ParameterServicer interface {
	CreateParameter(caller Caller, key, description, value string, paramType models.ParameterType) (*models.Parameter, error)
	GetParameterByID(caller Caller, parameterID uint) (*models.Parameter, error)
	GetParameterByKey(caller Caller, key string) (*models.Parameter, error)
	ListParameters(caller Caller, page pagination.PageRequest, filter ParameterFilter) (*pagination.PageResponse[models.Parameter], error)
	UpdateParameter(caller Caller, parameterID uint, description, value *string, paramType *models.ParameterType) (*models.Parameter, error)
	DeleteParameter(caller Caller, parameterID uint) error
	GetString(caller Caller, key string) (string, error)
	GetInt(caller Caller, key string) (int, error)
	GetFloat(caller Caller, key string) (float64, error)
	GetBool(caller Caller, key string) (bool, error)
}

// CategorySummary is one category's share of a period's expenses.
type CategorySummary struct {
	CategoryID *uint           `json:"category_id,omitempty"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
	Count      int64           `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// DashboardData is the full dashboard aggregate for one month. The monthly
// averages and the goal summary span the user's whole history, not just the
// requested month.
type DashboardData struct {
	Month               int               `json:"month"`
	Year                int               `json:"year"`
	TotalIncome         decimal.Decimal   `json:"total_income"`
	TotalExpenses       decimal.Decimal   `json:"total_expenses"`
	TotalPaid           decimal.Decimal   `json:"total_paid"`
	TotalPending        decimal.Decimal   `json:"total_pending"`
	Balance             decimal.Decimal   `json:"balance"`
	DisposableBalance   decimal.Decimal   `json:"disposable_balance"`
	ExpenseCount        int64             `json:"expense_count"`
	PaidCount           int64             `json:"paid_count"`
	PendingCount        int64             `json:"pending_count"`
	OverdueCount        int64             `json:"overdue_count"`
	PercentSpent        decimal.Decimal   `json:"percent_spent"`
	PercentSaved        decimal.Decimal   `json:"percent_saved"`
	PaymentRate         decimal.Decimal   `json:"payment_rate"`
	AverageDailyExpense decimal.Decimal   `json:"average_daily_expense"`
	AvgMonthlyIncome    decimal.Decimal   `json:"avg_monthly_income"`
	AvgMonthlyExpense   decimal.Decimal   `json:"avg_monthly_expense"`
	Categories          []CategorySummary `json:"categories"`
	TopCategories       []CategorySummary `json:"top_categories"`
	Goals               GoalSummary       `json:"goals"`
}

// BalanceData is the income/expense balance for one month.
type BalanceData struct {
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// PeriodComparison compares two months, the second serving as the baseline.
type PeriodComparison struct {
	Current       BalanceData     `json:"current"`
	Previous      BalanceData     `json:"previous"`
	IncomeChange  decimal.Decimal `json:"income_change_pct"`
	ExpenseChange decimal.Decimal `json:"expense_change_pct"`
	BalanceChange decimal.Decimal `json:"balance_change_pct"`
}

// EvolutionPoint is one month in the income/expense evolution series.
type EvolutionPoint struct {
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// Indicators holds the financial health indicators for one month.
// PaymentCapacity is the paid share of the month's expenses as a percentage.
type Indicators struct {
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	Balance         decimal.Decimal `json:"balance"`
	SavingsRate     decimal.Decimal `json:"savings_rate"`
	DebtRatio       decimal.Decimal `json:"debt_ratio"`
	PaymentCapacity decimal.Decimal `json:"payment_capacity"`
	TotalPending    decimal.Decimal `json:"total_pending"`
	OverdueExpenses int64           `json:"overdue_expenses"`
	OverdueGoals    int64           `json:"overdue_goals"`
	HealthScore     int             `json:"health_score"`
	Classification  string          `json:"classification"`
}

// DashboardServicer defines the contract for read-only dashboard aggregation.
// Results are cached per user; InvalidateUser drops a user's cached entries
// and is called by every mutating service.
type DashboardServicer interface {
	GetDashboard(caller Caller, month, year int) (*DashboardData, error)
	GetBalance(caller Caller) (*BalanceData, error)
	ComparePeriods(caller Caller, month1, year1, month2, year2 int) (*PeriodComparison, error)
	GetEvolution(caller Caller, months int) ([]EvolutionPoint, error)
	GetTopCategories(caller Caller, month, year, limit int) ([]CategorySummary, error)
	GetIndicators(caller Caller, month, year int) (*Indicators, error)
	InvalidateUser(userID uint)
}
