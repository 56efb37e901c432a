package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"familywallet/internal/core"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGetPeriodAdvancer(t *testing.T) {
	for _, freq := range []core.BillFrequency{core.Monthly, core.Quarterly, core.Yearly} {
		if _, err := GetPeriodAdvancer(freq); err != nil {
			t.Errorf("GetPeriodAdvancer(%s) error = %v", freq, err)
		}
	}
	if _, err := GetPeriodAdvancer("Weekly"); err == nil {
		t.Errorf("GetPeriodAdvancer(Weekly) expected error, got nil")
	}
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name     string
		dueDay   int
		freq     core.BillFrequency
		lastPaid time.Time
		want     time.Time
	}{
		{
			name:     "monthly simple",
			dueDay:   15,
			freq:     core.Monthly,
			lastPaid: date(2025, 1, 10),
			want:     date(2025, 2, 15),
		},
		{
			name:     "quarterly",
			dueDay:   20,
			freq:     core.Quarterly,
			lastPaid: date(2025, 1, 20),
			want:     date(2025, 4, 20),
		},
		{
			name:     "yearly",
			dueDay:   1,
			freq:     core.Yearly,
			lastPaid: date(2025, 6, 1),
			want:     date(2026, 6, 1),
		},
		{
			name:   "day 31 rolls over short month",
			dueDay: 31,
			freq:   core.Monthly,
			// Jan + 1 month = Feb; Feb 31 normalizes to Mar 3 in 2025.
			lastPaid: date(2025, 1, 15),
			want:     date(2025, 3, 3),
		},
		{
			name:     "day 31 rolls over leap february",
			dueDay:   31,
			freq:     core.Monthly,
			lastPaid: date(2024, 1, 15),
			want:     date(2024, 3, 2),
		},
		{
			name:   "day 30 in february",
			dueDay: 30,
			freq:   core.Monthly,
			// Feb 30 normalizes to Mar 2 in a non-leap year.
			lastPaid: date(2025, 1, 5),
			want:     date(2025, 3, 2),
		},
		{
			name:   "addDate month-end drift then due day reset",
			dueDay: 5,
			freq:   core.Monthly,
			// Jan 31 + 1 month lands in March via normalization, then the
			// day is forced to 5.
			lastPaid: date(2025, 1, 31),
			want:     date(2025, 3, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.dueDay, tt.freq, tt.lastPaid)
			if !got.Equal(tt.want) {
				t.Errorf("NextDueDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	lastPaid := date(2025, 1, 10)
	// Next due: Feb 15.
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "before due date", now: date(2025, 2, 10), want: false},
		{name: "exactly on due date", now: date(2025, 2, 15), want: false},
		{name: "just after due date", now: time.Date(2025, 2, 15, 0, 0, 1, 0, time.UTC), want: true},
		{name: "well past due date", now: date(2025, 3, 1), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(15, core.Monthly, lastPaid, tt.now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysUntilDue(t *testing.T) {
	now := date(2025, 2, 10)
	tests := []struct {
		name    string
		nextDue time.Time
		want    int
	}{
		{name: "five days out", nextDue: date(2025, 2, 15), want: 5},
		{name: "partial day rounds up", nextDue: time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC), want: 1},
		{name: "same instant", nextDue: now, want: 0},
		{name: "past due", nextDue: date(2025, 2, 8), want: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilDue(tt.nextDue, now); got != tt.want {
				t.Errorf("DaysUntilDue() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBillStatus(t *testing.T) {
	bill := func(dueDay int, lastPaid time.Time) core.Bill {
		return core.Bill{
			Name:      "Internet",
			Amount:    decimal.RequireFromString("200"),
			DueDay:    dueDay,
			Frequency: core.Monthly,
			LastPaid:  lastPaid,
		}
	}

	tests := []struct {
		name        string
		bill        core.Bill
		now         time.Time
		wantOverdue bool
		wantLabel   string
		wantPayable bool
	}{
		{
			name:        "overdue",
			bill:        bill(15, date(2025, 1, 10)),
			now:         date(2025, 2, 20),
			wantOverdue: true,
			wantLabel:   "Overdue",
			wantPayable: true,
		},
		{
			name:        "due soon shows countdown",
			bill:        bill(15, date(2025, 1, 10)),
			now:         date(2025, 2, 10),
			wantOverdue: false,
			wantLabel:   "Due in 5 days",
			wantPayable: true,
		},
		{
			name:        "far out shows concrete date",
			bill:        bill(15, date(2025, 1, 10)),
			now:         date(2025, 1, 20),
			wantOverdue: false,
			wantLabel:   "Due on Feb 15, 2025",
			wantPayable: false,
		},
		{
			name: "inside pay window but past label horizon",
			bill: bill(15, date(2025, 1, 10)),
			// 12 days out: label shows the date, but payment is already
			// actionable inside the 15-day window.
			now:         date(2025, 2, 3),
			wantOverdue: false,
			wantLabel:   "Due on Feb 15, 2025",
			wantPayable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := BillStatus(tt.bill, tt.now)
			if st.Overdue != tt.wantOverdue {
				t.Errorf("Overdue = %v, want %v", st.Overdue, tt.wantOverdue)
			}
			if st.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", st.Label, tt.wantLabel)
			}
			if st.Payable != tt.wantPayable {
				t.Errorf("Payable = %v, want %v", st.Payable, tt.wantPayable)
			}
		})
	}
}

func TestUpcomingBills(t *testing.T) {
	now := date(2025, 2, 1)
	amount := decimal.RequireFromString("100")
	bills := []core.Bill{
		{ID: "overdue", Name: "Rent", Amount: amount, DueDay: 1, Frequency: core.Monthly, LastPaid: date(2024, 12, 1)},
		{ID: "later", Name: "Insurance", Amount: amount, DueDay: 20, Frequency: core.Monthly, LastPaid: date(2025, 1, 20)},
		{ID: "sooner", Name: "Internet", Amount: amount, DueDay: 10, Frequency: core.Monthly, LastPaid: date(2025, 1, 10)},
		{ID: "soonest", Name: "Water", Amount: amount, DueDay: 5, Frequency: core.Monthly, LastPaid: date(2025, 1, 5)},
		{ID: "furthest", Name: "Car", Amount: amount, DueDay: 25, Frequency: core.Monthly, LastPaid: date(2025, 1, 25)},
	}

	got := UpcomingBills(bills, now, 3)
	if len(got) != 3 {
		t.Fatalf("UpcomingBills() returned %d bills, want 3", len(got))
	}
	wantOrder := []string{"soonest", "sooner", "later"}
	for i, id := range wantOrder {
		if got[i].Bill.ID != id {
			t.Errorf("UpcomingBills()[%d].ID = %s, want %s", i, got[i].Bill.ID, id)
		}
	}
	for _, st := range got {
		if st.Overdue {
			t.Errorf("UpcomingBills() included overdue bill %s", st.Bill.ID)
		}
	}
}
