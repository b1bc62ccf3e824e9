package model

// DashboardStats is the aggregate view served by the backend dashboard
// endpoint. The endpoint returns it as the bare response body.
type DashboardStats struct {
	InvoiceStatistics      InvoiceStatistics  `json:"InvoiceStatistics"`
	ExpenseTrend           []TrendPoint       `json:"ExpenseTrend"`
	CostCenterDistribution []CostCenterShare  `json:"CostCenterDistribution"`
	SpendingByExpenseType  []ExpenseTypeShare `json:"SpendingByExpenseType"`
	RecentLargeExpenses    []LargeExpense     `json:"RecentLargeExpenses"`
}

// InvoiceStatistics compares the current period with the previous one.
type InvoiceStatistics struct {
	TotalExpenses                  float64 `json:"TotalExpenses"`
	TotalExpensesChangePercent     float64 `json:"TotalExpensesChangePercent"`
	PreviousPeriodExpenses         float64 `json:"PreviousPeriodExpenses"`
	TotalTransactions              int     `json:"TotalTransactions"`
	TotalTransactionsChangePercent float64 `json:"TotalTransactionsChangePercent"`
	PreviousPeriodTransactions     int     `json:"PreviousPeriodTransactions"`
	ActiveCostCenters              int     `json:"ActiveCostCenters"`
	ActiveCostCentersChangePercent float64 `json:"ActiveCostCentersChangePercent"`
	AveragePerTransaction          float64 `json:"AveragePerTransaction"`
	AvgPerTransactionChangePercent float64 `json:"AvgPerTransactionChangePercent"`
	PreviousPeriodAvgTransaction   float64 `json:"PreviousPeriodAvgTransaction"`
	PeriodDays                     int     `json:"PeriodDays"`
	PeriodDescription              string  `json:"PeriodDescription"`
}

// TrendPoint is one period of the expense trend series.
type TrendPoint struct {
	PeriodLabel      string  `json:"PeriodLabel"`
	TotalExpenses    float64 `json:"TotalExpenses"`
	TransactionCount int     `json:"TransactionCount"`
}

// CostCenterShare is one cost center's share of spending.
type CostCenterShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ExpenseTypeShare is the spending attributed to one expense type.
type ExpenseTypeShare struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// LargeExpense is a single notable expense. Date is preformatted by the
// backend.
type LargeExpense struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	CostCenter  string  `json:"costCenter"`
	Amount      float64 `json:"amount"`
}
