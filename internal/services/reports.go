package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"familywallet/internal/core"
)

// MemberFilterAll selects every transaction regardless of member reference.
// core.MemberShared is itself a selectable filter value.
const MemberFilterAll = "all"

var hundred = decimal.NewFromInt(100)

// labelSharePercent is the share below which the inline percentage label is
// suppressed in the breakdown.
var labelSharePercent = decimal.NewFromInt(5)

// MonthFlow sums income and expenses over the transactions falling in the
// calendar month and year of now.
func MonthFlow(txs []core.Transaction, now time.Time) core.MonthFlow {
	flow := core.MonthFlow{Year: now.Year(), Month: now.Month()}
	for _, t := range txs {
		if t.Date.Year() != now.Year() || t.Date.Month() != now.Month() {
			continue
		}
		if t.Type == core.Income {
			flow.Income = flow.Income.Add(t.Amount)
		} else {
			flow.Expenses = flow.Expenses.Add(t.Amount)
		}
	}
	return flow
}

// SpendingByCategory groups expense transactions by category and sorts the
// totals descending. The sort is stable, so categories with equal totals
// keep first-encounter order.
func SpendingByCategory(txs []core.Transaction) []core.CategoryAmount {
	idx := make(map[string]int)
	var out []core.CategoryAmount
	for _, t := range txs {
		if t.Type != core.Expense {
			continue
		}
		i, ok := idx[t.Category]
		if !ok {
			i = len(out)
			idx[t.Category] = i
			out = append(out, core.CategoryAmount{Category: t.Category})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

// TopCategory is the category with the largest expense total, or empty when
// there is no spending.
func TopCategory(spending []core.CategoryAmount) string {
	if len(spending) == 0 {
		return ""
	}
	return spending[0].Category
}

// Portfolio aggregates total current value and unrealized gain/loss across
// all holdings.
func Portfolio(invs []core.Investment) core.PortfolioSummary {
	var sum core.PortfolioSummary
	for _, inv := range invs {
		sum.TotalValue = sum.TotalValue.Add(inv.CurrentTotal())
		sum.TotalGain = sum.TotalGain.Add(inv.GainLoss())
	}
	return sum
}

// RecentTransactions returns the latest transactions by date, newest first,
// capped at limit. The input slice is not modified.
func RecentTransactions(txs []core.Transaction, limit int) []core.Transaction {
	recent := make([]core.Transaction, len(txs))
	copy(recent, txs)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// FilterByRange scopes transactions to a date range and member filter. The
// range runs from the start of day on start through the end of day
// (23:59:59.999) on end, both inclusive. memberID is MemberFilterAll, a
// member's ID, or core.MemberShared.
func FilterByRange(txs []core.Transaction, start, end time.Time, memberID string) []core.Transaction {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location())

	var out []core.Transaction
	for _, t := range txs {
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		if memberID != MemberFilterAll && t.MemberID != memberID {
			continue
		}
		out = append(out, t)
	}
	return out
}

// BuildRangeReport totals an already-scoped transaction set and derives the
// per-category expense breakdown with percentage shares. A zero expense
// total yields HasSpending=false and an empty breakdown instead of
// non-finite percentages.
func BuildRangeReport(txs []core.Transaction) core.RangeReport {
	var report core.RangeReport
	for _, t := range txs {
		if t.Type == core.Income {
			report.TotalIncome = report.TotalIncome.Add(t.Amount)
		} else {
			report.TotalExpenses = report.TotalExpenses.Add(t.Amount)
		}
	}
	report.NetFlow = report.TotalIncome.Sub(report.TotalExpenses)

	if report.TotalExpenses.IsZero() {
		return report
	}
	report.HasSpending = true
	for _, ca := range SpendingByCategory(txs) {
		pct := ca.Amount.Div(report.TotalExpenses).Mul(hundred).Round(2)
		report.Breakdown = append(report.Breakdown, core.CategoryShare{
			Category:  ca.Category,
			Amount:    ca.Amount,
			Percent:   pct,
			ShowLabel: pct.GreaterThan(labelSharePercent),
		})
	}
	return report
}

// Dashboard assembles every derived view the dashboard renders: the current
// month's flow and spending breakdown, portfolio totals, the three soonest
// upcoming bills and the five most recent transactions.
func Dashboard(txs []core.Transaction, bills []core.Bill, invs []core.Investment, now time.Time) core.DashboardSummary {
	var thisMonth []core.Transaction
	for _, t := range txs {
		if t.Date.Year() == now.Year() && t.Date.Month() == now.Month() {
			thisMonth = append(thisMonth, t)
		}
	}
	spending := SpendingByCategory(thisMonth)

	return core.DashboardSummary{
		Flow:        MonthFlow(txs, now),
		TopCategory: TopCategory(spending),
		Spending:    spending,
		Portfolio:   Portfolio(invs),
		Upcoming:    UpcomingBills(bills, now, 3),
		Recent:      RecentTransactions(txs, 5),
	}
}
