// Package services holds the business logic over the core entities: the
// bill recurrence engine, the reporting aggregations and the market
// simulation. Everything here is a pure function of its inputs plus an
// explicit reference time, which keeps it testable without a clock.
package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"familywallet/internal/core"
)

// PeriodAdvancer moves a timestamp forward by one recurrence period.
type PeriodAdvancer interface {
	Advance(t time.Time) time.Time
}

type monthlyAdvancer struct{}

func (monthlyAdvancer) Advance(t time.Time) time.Time { return t.AddDate(0, 1, 0) }

type quarterlyAdvancer struct{}

func (quarterlyAdvancer) Advance(t time.Time) time.Time { return t.AddDate(0, 3, 0) }

type yearlyAdvancer struct{}

func (yearlyAdvancer) Advance(t time.Time) time.Time { return t.AddDate(1, 0, 0) }

var periodAdvancers = map[core.BillFrequency]PeriodAdvancer{
	core.Monthly:   monthlyAdvancer{},
	core.Quarterly: quarterlyAdvancer{},
	core.Yearly:    yearlyAdvancer{},
}

// GetPeriodAdvancer returns the advancer for a bill frequency, or an error
// for a frequency outside the enumerated set.
func GetPeriodAdvancer(freq core.BillFrequency) (PeriodAdvancer, error) {
	adv, ok := periodAdvancers[freq]
	if !ok {
		return nil, fmt.Errorf("unknown bill frequency: %s", freq)
	}
	return adv, nil
}

// NextDueDate computes when a bill is next due: the last-paid timestamp
// advanced by one period, with the day of month then forced to dueDay.
//
// Setting a day past the target month's length rolls over into the
// following month (day 31 on a 30-day month lands on the next month's 1st).
// That rollover is deliberate: it matches calendar normalization and the
// overdue classification near month boundaries depends on it. Time of day
// is inherited from the advanced timestamp, not normalized to midnight.
func NextDueDate(dueDay int, freq core.BillFrequency, lastPaid time.Time) time.Time {
	adv, err := GetPeriodAdvancer(freq)
	if err != nil {
		// Frequency is validated on entry; treat anything else as monthly.
		adv = monthlyAdvancer{}
	}
	t := adv.Advance(lastPaid)
	return time.Date(t.Year(), t.Month(), dueDay, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// IsOverdue reports whether now is strictly after the next due date. A bill
// is not overdue on its due date itself.
func IsOverdue(dueDay int, freq core.BillFrequency, lastPaid, now time.Time) bool {
	return now.After(NextDueDate(dueDay, freq, lastPaid))
}

// DaysUntilDue is the ceiling of the remaining interval in days. Zero or
// negative once the due date has passed.
func DaysUntilDue(nextDue, now time.Time) int {
	return int(math.Ceil(nextDue.Sub(now).Hours() / 24))
}

// The label switches from a relative countdown to the concrete date beyond
// this horizon, and payment becomes actionable inside the lookahead window.
const (
	dueSoonHorizonDays = 10
	payLookaheadDays   = 15
	dueDateLabelFormat = "Jan 2, 2006"
)

// BillStatus classifies a bill against a reference time.
func BillStatus(b core.Bill, now time.Time) core.BillStatus {
	next := NextDueDate(b.DueDay, b.Frequency, b.LastPaid)
	overdue := now.After(next)
	days := DaysUntilDue(next, now)

	label := fmt.Sprintf("Due in %d days", days)
	switch {
	case overdue:
		label = "Overdue"
	case days > dueSoonHorizonDays:
		label = "Due on " + next.Format(dueDateLabelFormat)
	}

	return core.BillStatus{
		Bill:         b,
		NextDue:      next,
		DaysUntilDue: days,
		Overdue:      overdue,
		Label:        label,
		Payable:      overdue || days <= payLookaheadDays,
	}
}

// UpcomingBills returns the statuses of the non-overdue bills soonest due,
// capped at limit. Ties on the due date keep insertion order.
func UpcomingBills(bills []core.Bill, now time.Time, limit int) []core.BillStatus {
	upcoming := make([]core.BillStatus, 0, len(bills))
	for _, b := range bills {
		st := BillStatus(b, now)
		if st.Overdue {
			continue
		}
		upcoming = append(upcoming, st)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextDue.Before(upcoming[j].NextDue)
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}
