package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAmount is an expense total aggregated under one category.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryShare extends CategoryAmount with its share of the total. The
// inline percentage label is suppressed below five percent.
type CategoryShare struct {
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Percent   decimal.Decimal `json:"percent"`
	ShowLabel bool            `json:"showLabel"`
}

// MonthFlow sums income and expenses for one calendar month.
type MonthFlow struct {
	Year     int             `json:"year"`
	Month    time.Month      `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// PortfolioSummary is the aggregate over all investment holdings.
type PortfolioSummary struct {
	TotalValue decimal.Decimal `json:"totalValue"`
	TotalGain  decimal.Decimal `json:"totalGain"`
}

// BillStatus is a bill together with its computed due classification.
type BillStatus struct {
	Bill         Bill      `json:"bill"`
	NextDue      time.Time `json:"nextDue"`
	DaysUntilDue int       `json:"daysUntilDue"`
	Overdue      bool      `json:"overdue"`
	Label        string    `json:"label"`
	Payable      bool      `json:"payable"`
}

// RangeReport summarizes transactions inside a date-range/member scope.
// HasSpending is false when total expenses are zero, in which case the
// breakdown is empty rather than carrying divide-by-zero percentages.
type RangeReport struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetFlow       decimal.Decimal `json:"netFlow"`
	HasSpending   bool            `json:"hasSpending"`
	Breakdown     []CategoryShare `json:"breakdown"`
}

// DashboardSummary is everything the dashboard view renders at once.
type DashboardSummary struct {
	Flow        MonthFlow        `json:"flow"`
	TopCategory string           `json:"topCategory"` // empty when no spending
	Spending    []CategoryAmount `json:"spending"`
	Portfolio   PortfolioSummary `json:"portfolio"`
	Upcoming    []BillStatus     `json:"upcomingBills"`
	Recent      []Transaction    `json:"recentTransactions"`
}
