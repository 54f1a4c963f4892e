package analysis

import (
	"sort"
	"strings"

	"donare/internal/core"
)

// SortMode selects the ordering of the active-recurring result list.
type SortMode string

const (
	SortByTotal  SortMode = "total"  // descending by total ever donated
	SortByAnnual SortMode = "annual" // descending by average annual amount
)

// IsValid returns true if the sort mode is recognized.
func (m SortMode) IsValid() bool {
	return m == SortByTotal || m == SortByAnnual
}

// Recurring returns the payees with an active annual/semi-annual schedule.
//
// Only rows whose schedule text matches annual/semi-annual count toward
// qualification: a payee needs at least minYears distinct qualifying years,
// and is excluded when its last qualifying donation is older than
// nowYear-staleYears. This staleness window is intentionally independent from
// the stopped-recurring check in Patterns; callers choose which
// classification they want.
//
// AverageAnnual divides the qualifying-row total by the qualifying year
// count; TotalEverDonated sums every row of the payee, qualifying or not.
// Returns an empty slice when no payee qualifies.
func Recurring(ds []core.Donation, mode SortMode, minYears, staleYears, nowYear int) []core.RecurringCharity {
	// Totals over all rows, for TotalEverDonated.
	everTotals := make(map[string]int64)
	for _, d := range ds {
		everTotals[d.PayeeID] += d.Amount.Cents
	}

	var qualifying []core.Donation
	for _, d := range ds {
		if d.ScheduleIsRecurring() {
			qualifying = append(qualifying, d)
		}
	}

	var out []core.RecurringCharity
	for _, g := range groupByPayee(qualifying) {
		years := yearlyTotals(g.rows)
		if len(years) < minYears {
			continue
		}

		var last core.Date
		var total int64
		firstYear := 0
		for _, d := range g.rows {
			total += d.Amount.Cents
			if last.IsZero() || d.Date.After(last.Time) {
				last = d.Date
			}
			if firstYear == 0 || d.Year() < firstYear {
				firstYear = d.Year()
			}
		}
		if last.Year() < nowYear-staleYears {
			continue
		}

		out = append(out, core.RecurringCharity{
			PayeeID:          g.id,
			Organization:     displayName(g.rows),
			FirstYear:        firstYear,
			YearsSupported:   len(years),
			AverageAnnual:    core.Money{Cents: total / int64(len(years))},
			TotalEverDonated: core.Money{Cents: everTotals[g.id]},
			PeriodLabel:      periodLabel(g.rows),
			LastDonation:     last,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if mode == SortByAnnual {
			return out[i].AverageAnnual.Cents > out[j].AverageAnnual.Cents
		}
		return out[i].TotalEverDonated.Cents > out[j].TotalEverDonated.Cents
	})
	return out
}

// periodLabel prefers Semi-Annual over Annual when both substrings appear
// across the payee's rows.
func periodLabel(rows []core.Donation) string {
	annual := false
	for _, d := range rows {
		s := strings.ToLower(d.Schedule)
		if strings.Contains(s, core.ScheduleSemiAnnual) {
			return "Semi-Annual"
		}
		if strings.Contains(s, core.ScheduleAnnual) {
			annual = true
		}
	}
	if annual {
		return "Annual"
	}
	return "Unknown"
}

// RecurringIDs returns the payee identifiers in the active-recurring set.
func RecurringIDs(rs []core.RecurringCharity) map[string]struct{} {
	ids := make(map[string]struct{}, len(rs))
	for _, r := range rs {
		ids[r.PayeeID] = struct{}{}
	}
	return ids
}
