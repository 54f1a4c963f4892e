// Package analysis implements the aggregation and pattern-classification
// pipeline over donation records. All functions are pure: they take the full
// record slice plus explicit parameters (including the reference year) and
// return freshly computed value objects.
package analysis

import (
	"sort"

	"donare/internal/core"
)

// payeeGroup keeps the rows of one payee together while preserving the order
// in which payees first appear in the input. Stable sorts over these groups
// leave ties in first-appearance order.
type payeeGroup struct {
	id   string
	rows []core.Donation
}

func groupByPayee(ds []core.Donation) []payeeGroup {
	index := make(map[string]int)
	groups := make([]payeeGroup, 0)
	for _, d := range ds {
		i, ok := index[d.PayeeID]
		if !ok {
			i = len(groups)
			index[d.PayeeID] = i
			groups = append(groups, payeeGroup{id: d.PayeeID})
		}
		groups[i].rows = append(groups[i].rows, d)
	}
	return groups
}

// yearlyTotals sums amounts per calendar year for one payee's rows.
func yearlyTotals(rows []core.Donation) map[int]int64 {
	totals := make(map[int]int64)
	for _, d := range rows {
		totals[d.Year()] += d.Amount.Cents
	}
	return totals
}

func sumCents(rows []core.Donation) int64 {
	var total int64
	for _, d := range rows {
		total += d.Amount.Cents
	}
	return total
}

// firstSchedule returns the first non-empty schedule text in row order.
func firstSchedule(rows []core.Donation) string {
	for _, d := range rows {
		if d.Schedule != "" {
			return d.Schedule
		}
	}
	return ""
}

// displayName returns one organization name for the payee; name variants may
// exist across rows, the first one wins.
func displayName(rows []core.Donation) string {
	for _, d := range rows {
		if d.Organization != "" {
			return d.Organization
		}
	}
	return ""
}

func sortedYears(totals map[int]int64) []int {
	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
