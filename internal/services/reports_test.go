package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"familywallet/internal/core"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(id, category string, amount string, d time.Time, typ core.TransactionType, memberID string) core.Transaction {
	return core.Transaction{
		ID:          id,
		Description: id,
		Amount:      dec(amount),
		Date:        d,
		MemberID:    memberID,
		Category:    category,
		Type:        typ,
	}
}

func TestMonthFlow(t *testing.T) {
	now := date(2025, 3, 15)
	txs := []core.Transaction{
		tx("salary", "Salary", "15000", date(2025, 3, 1), core.Income, "m1"),
		tx("groceries", "Groceries", "350.75", date(2025, 3, 10), core.Expense, "m1"),
		tx("utilities", "Utilities", "220.50", date(2025, 3, 12), core.Expense, core.MemberShared),
		tx("last-month", "Shopping", "999", date(2025, 2, 28), core.Expense, "m1"),
		tx("last-year", "Salary", "5000", date(2024, 3, 15), core.Income, "m1"),
	}

	flow := MonthFlow(txs, now)
	if flow.Year != 2025 || flow.Month != time.March {
		t.Errorf("MonthFlow() period = %d-%v, want 2025-March", flow.Year, flow.Month)
	}
	if want := dec("15000"); !flow.Income.Equal(want) {
		t.Errorf("Income = %s, want %s", flow.Income, want)
	}
	if want := dec("571.25"); !flow.Expenses.Equal(want) {
		t.Errorf("Expenses = %s, want %s", flow.Expenses, want)
	}
}

func TestSpendingByCategory(t *testing.T) {
	txs := []core.Transaction{
		tx("g1", "Groceries", "100", date(2025, 3, 1), core.Expense, "m1"),
		tx("s1", "Shopping", "450", date(2025, 3, 2), core.Expense, "m1"),
		tx("g2", "Groceries", "250", date(2025, 3, 3), core.Expense, "m1"),
		tx("income", "Salary", "9000", date(2025, 3, 4), core.Income, "m1"),
		tx("t1", "Transport", "350", date(2025, 3, 5), core.Expense, "m1"),
	}

	got := SpendingByCategory(txs)
	if len(got) != 3 {
		t.Fatalf("SpendingByCategory() returned %d categories, want 3", len(got))
	}
	if got[0].Category != "Shopping" || !got[0].Amount.Equal(dec("450")) {
		t.Errorf("top category = %s %s, want Shopping 450", got[0].Category, got[0].Amount)
	}
	// Groceries and Transport both total 350; Groceries was seen first.
	if got[1].Category != "Groceries" {
		t.Errorf("equal totals broke first-encounter order: got %s second", got[1].Category)
	}
	if got[2].Category != "Transport" {
		t.Errorf("equal totals broke first-encounter order: got %s third", got[2].Category)
	}
}

func TestTopCategory(t *testing.T) {
	if got := TopCategory(nil); got != "" {
		t.Errorf("TopCategory(nil) = %q, want empty", got)
	}
	spending := []core.CategoryAmount{{Category: "Shopping", Amount: dec("450")}}
	if got := TopCategory(spending); got != "Shopping" {
		t.Errorf("TopCategory() = %q, want Shopping", got)
	}
}

func TestPortfolio(t *testing.T) {
	invs := []core.Investment{
		{Name: "Apple Inc.", Quantity: dec("10"), PurchasePrice: dec("550.25"), CurrentValue: dec("650.80")},
		{Name: "Bitcoin", Quantity: dec("0.1"), PurchasePrice: dec("100000"), CurrentValue: dec("125000")},
	}

	sum := Portfolio(invs)
	if want := dec("19008"); !sum.TotalValue.Equal(want) {
		t.Errorf("TotalValue = %s, want %s", sum.TotalValue, want)
	}
	// 1005.50 from Apple plus 2500 from Bitcoin.
	if want := dec("3505.5"); !sum.TotalGain.Equal(want) {
		t.Errorf("TotalGain = %s, want %s", sum.TotalGain, want)
	}
}

func TestRecentTransactions(t *testing.T) {
	txs := []core.Transaction{
		tx("a", "Groceries", "1", date(2025, 3, 1), core.Expense, "m1"),
		tx("b", "Groceries", "1", date(2025, 3, 5), core.Expense, "m1"),
		tx("c", "Groceries", "1", date(2025, 3, 3), core.Expense, "m1"),
		tx("d", "Groceries", "1", date(2025, 3, 5), core.Expense, "m1"),
	}

	got := RecentTransactions(txs, 3)
	if len(got) != 3 {
		t.Fatalf("RecentTransactions() returned %d, want 3", len(got))
	}
	// b and d share a date; stable sort keeps b first.
	wantOrder := []string{"b", "d", "c"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("RecentTransactions()[%d].ID = %s, want %s", i, got[i].ID, id)
		}
	}

	// Input order is untouched.
	if txs[0].ID != "a" || txs[3].ID != "d" {
		t.Errorf("RecentTransactions() mutated its input")
	}
}

func TestFilterByRange(t *testing.T) {
	loc := time.UTC
	txs := []core.Transaction{
		tx("before", "Groceries", "1", time.Date(2025, 2, 28, 23, 59, 59, 0, loc), core.Expense, "m1"),
		tx("start-edge", "Groceries", "1", time.Date(2025, 3, 1, 0, 0, 0, 0, loc), core.Expense, "m1"),
		tx("inside", "Groceries", "1", time.Date(2025, 3, 5, 12, 0, 0, 0, loc), core.Expense, "m2"),
		tx("shared", "Utilities", "1", time.Date(2025, 3, 6, 8, 0, 0, 0, loc), core.Expense, core.MemberShared),
		tx("end-edge", "Groceries", "1", time.Date(2025, 3, 10, 23, 59, 59, int(999*time.Millisecond), loc), core.Expense, "m1"),
		tx("after", "Groceries", "1", time.Date(2025, 3, 11, 0, 0, 0, 0, loc), core.Expense, "m1"),
	}
	start := date(2025, 3, 1)
	end := date(2025, 3, 10)

	t.Run("all members", func(t *testing.T) {
		got := FilterByRange(txs, start, end, MemberFilterAll)
		wantIDs := []string{"start-edge", "inside", "shared", "end-edge"}
		if len(got) != len(wantIDs) {
			t.Fatalf("FilterByRange() returned %d, want %d", len(got), len(wantIDs))
		}
		for i, id := range wantIDs {
			if got[i].ID != id {
				t.Errorf("FilterByRange()[%d].ID = %s, want %s", i, got[i].ID, id)
			}
		}
	})

	t.Run("single member", func(t *testing.T) {
		got := FilterByRange(txs, start, end, "m2")
		if len(got) != 1 || got[0].ID != "inside" {
			t.Errorf("FilterByRange(m2) = %v, want just 'inside'", got)
		}
	})

	t.Run("shared filter", func(t *testing.T) {
		got := FilterByRange(txs, start, end, core.MemberShared)
		if len(got) != 1 || got[0].ID != "shared" {
			t.Errorf("FilterByRange(shared) = %v, want just 'shared'", got)
		}
	})

	t.Run("millisecond past end of day excluded", func(t *testing.T) {
		edge := []core.Transaction{
			tx("over", "Groceries", "1", time.Date(2025, 3, 10, 23, 59, 59, int(999*time.Millisecond)+1, loc), core.Expense, "m1"),
		}
		if got := FilterByRange(edge, start, end, MemberFilterAll); len(got) != 0 {
			t.Errorf("FilterByRange() included a transaction past end of day")
		}
	})
}

func TestBuildRangeReport(t *testing.T) {
	t.Run("totals and breakdown", func(t *testing.T) {
		txs := []core.Transaction{
			tx("salary", "Salary", "1000", date(2025, 3, 1), core.Income, "m1"),
			tx("g", "Groceries", "600", date(2025, 3, 2), core.Expense, "m1"),
			tx("t", "Transport", "360", date(2025, 3, 3), core.Expense, "m1"),
			tx("e", "Entertainment", "40", date(2025, 3, 4), core.Expense, "m1"),
		}

		report := BuildRangeReport(txs)
		if want := dec("1000"); !report.TotalIncome.Equal(want) {
			t.Errorf("TotalIncome = %s, want %s", report.TotalIncome, want)
		}
		if want := dec("1000"); !report.TotalExpenses.Equal(want) {
			t.Errorf("TotalExpenses = %s, want %s", report.TotalExpenses, want)
		}
		if !report.NetFlow.IsZero() {
			t.Errorf("NetFlow = %s, want 0", report.NetFlow)
		}
		if !report.HasSpending {
			t.Fatalf("HasSpending = false with nonzero expenses")
		}
		if len(report.Breakdown) != 3 {
			t.Fatalf("Breakdown has %d entries, want 3", len(report.Breakdown))
		}

		// Percentages sum to the whole.
		var pctSum decimal.Decimal
		for _, share := range report.Breakdown {
			pctSum = pctSum.Add(share.Percent)
		}
		if want := dec("100"); !pctSum.Equal(want) {
			t.Errorf("breakdown percents sum to %s, want %s", pctSum, want)
		}

		// The 4% slice keeps its amount but suppresses the label.
		for _, share := range report.Breakdown {
			wantLabel := share.Percent.GreaterThan(dec("5"))
			if share.ShowLabel != wantLabel {
				t.Errorf("%s: ShowLabel = %v with percent %s", share.Category, share.ShowLabel, share.Percent)
			}
		}
	})

	t.Run("no spending", func(t *testing.T) {
		txs := []core.Transaction{
			tx("salary", "Salary", "1000", date(2025, 3, 1), core.Income, "m1"),
		}
		report := BuildRangeReport(txs)
		if report.HasSpending {
			t.Errorf("HasSpending = true with zero expenses")
		}
		if len(report.Breakdown) != 0 {
			t.Errorf("Breakdown should be empty with zero expenses")
		}
		if want := dec("1000"); !report.NetFlow.Equal(want) {
			t.Errorf("NetFlow = %s, want %s", report.NetFlow, want)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		report := BuildRangeReport(nil)
		if report.HasSpending || len(report.Breakdown) != 0 {
			t.Errorf("empty input should yield no spending")
		}
	})
}

func TestDashboard(t *testing.T) {
	now := date(2025, 3, 15)
	txs := []core.Transaction{
		tx("salary", "Salary", "15000", date(2025, 3, 1), core.Income, "m1"),
		tx("g", "Groceries", "350.75", date(2025, 3, 10), core.Expense, "m1"),
		tx("s", "Shopping", "450", date(2025, 3, 9), core.Expense, "m1"),
		tx("old", "Shopping", "9999", date(2025, 1, 9), core.Expense, "m1"),
		tx("t1", "Transport", "10", date(2025, 3, 2), core.Expense, "m1"),
		tx("t2", "Transport", "20", date(2025, 3, 3), core.Expense, "m1"),
		tx("t3", "Transport", "30", date(2025, 3, 4), core.Expense, "m1"),
	}
	bills := []core.Bill{
		{ID: "b1", Name: "Internet", Amount: dec("200"), DueDay: 20, Frequency: core.Monthly, LastPaid: date(2025, 2, 20)},
	}
	invs := []core.Investment{
		{Name: "Apple Inc.", Quantity: dec("10"), PurchasePrice: dec("550.25"), CurrentValue: dec("650.80")},
	}

	sum := Dashboard(txs, bills, invs, now)

	if sum.TopCategory != "Shopping" {
		t.Errorf("TopCategory = %q, want Shopping (out-of-month spending must not count)", sum.TopCategory)
	}
	if want := dec("860.75"); !sum.Flow.Expenses.Equal(want) {
		t.Errorf("Flow.Expenses = %s, want %s", sum.Flow.Expenses, want)
	}
	if len(sum.Recent) != 5 {
		t.Errorf("Recent has %d entries, want 5", len(sum.Recent))
	}
	if sum.Recent[0].ID != "g" {
		t.Errorf("Recent[0].ID = %s, want g (newest first)", sum.Recent[0].ID)
	}
	if len(sum.Upcoming) != 1 || sum.Upcoming[0].Bill.ID != "b1" {
		t.Errorf("Upcoming = %v, want the single pending bill", sum.Upcoming)
	}
	if want := dec("1005.5"); !sum.Portfolio.TotalGain.Equal(want) {
		t.Errorf("Portfolio.TotalGain = %s, want %s", sum.Portfolio.TotalGain, want)
	}
}
