package analysis

import (
	"sort"
	"strings"

	"donare/internal/core"
)

// summarize computes the per-payee rollup from its rows.
func summarize(g payeeGroup) core.PayeeSummary {
	s := core.PayeeSummary{
		PayeeID:      g.id,
		Organization: displayName(g.rows),
		Schedule:     firstSchedule(g.rows),
	}
	years := make(map[int]struct{})
	for i, d := range g.rows {
		s.Total = s.Total.Add(d.Amount)
		s.DonationCount++
		years[d.Year()] = struct{}{}
		if i == 0 || d.Date.Before(s.FirstDate.Time) {
			s.FirstDate = d.Date
		}
		if i == 0 || d.Date.After(s.LastDate.Time) {
			s.LastDate = d.Date
		}
	}
	s.DistinctYears = len(years)
	return s
}

// Patterns splits payees into one-time donations and stopped recurring
// donations, both sorted descending by total amount.
//
// One-time: exactly one donation ever. Stopped: more than one donation, the
// most recent strictly before nowYear-1, and the schedule text marked
// annual/semi-annual. A payee who last donated in the prior calendar year is
// still on schedule; only a gap of two or more years signals a lapse.
func Patterns(ds []core.Donation, nowYear int) (oneTime, stopped []core.PayeeSummary) {
	for _, g := range groupByPayee(ds) {
		s := summarize(g)
		switch {
		case s.DonationCount == 1:
			oneTime = append(oneTime, s)
		case s.LastDate.Year() < nowYear-1 && scheduleTextIsRecurring(s.Schedule):
			stopped = append(stopped, s)
		}
	}
	byTotalDesc(oneTime)
	byTotalDesc(stopped)
	return oneTime, stopped
}

func byTotalDesc(ss []core.PayeeSummary) {
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].Total.Cents > ss[j].Total.Cents
	})
}

func scheduleTextIsRecurring(schedule string) bool {
	s := strings.ToLower(schedule)
	return strings.Contains(s, core.ScheduleAnnual) || strings.Contains(s, core.ScheduleSemiAnnual)
}

// SumTotals adds up the Total of each summary.
func SumTotals(ss []core.PayeeSummary) core.Money {
	var total core.Money
	for _, s := range ss {
		total = total.Add(s.Total)
	}
	return total
}
