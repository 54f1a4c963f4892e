package analysis

import (
	"sort"

	"donare/internal/core"
)

// ConsistentDonors finds payees with an unbroken trailing streak of
// qualifying-amount years.
//
// Walking backward year by year from nowYear, a year qualifies when the
// payee's total that year reaches minAmount; the first year that does not
// qualify breaks the streak. A payee is included only when minYears
// consecutive qualifying years were found, so a payee whose current year
// falls short is excluded entirely, a contiguous trailing streak rather than
// "minYears out of the last N".
func ConsistentDonors(ds []core.Donation, minYears int, minAmount core.Money, nowYear int) map[string]core.ConsistentDonor {
	out := make(map[string]core.ConsistentDonor)

	for _, g := range groupByPayee(ds) {
		totals := yearlyTotals(g.rows)

		streak := 0
		for year := nowYear; year > nowYear-minYears; year-- {
			if totals[year] < minAmount.Cents {
				break
			}
			streak++
		}
		if streak < minYears {
			continue
		}

		yearly := make(map[int]core.Money, minYears)
		var streakTotal int64
		for year := nowYear - minYears + 1; year <= nowYear; year++ {
			yearly[year] = core.Money{Cents: totals[year]}
			streakTotal += totals[year]
		}

		var sector string
		if len(g.rows) > 0 {
			sector = g.rows[0].Sector
		}
		out[g.id] = core.ConsistentDonor{
			PayeeID:        g.id,
			Organization:   displayName(g.rows),
			Sector:         sector,
			YearlyAmounts:  yearly,
			StreakTotal:    core.Money{Cents: streakTotal},
			AveragePerYear: core.Money{Cents: streakTotal / int64(minYears)},
		}
	}
	return out
}

// SortConsistent orders consistent donors by streak total descending, payee
// id ascending on ties, for deterministic rendering.
func SortConsistent(m map[string]core.ConsistentDonor) []core.ConsistentDonor {
	out := make([]core.ConsistentDonor, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StreakTotal.Cents != out[j].StreakTotal.Cents {
			return out[i].StreakTotal.Cents > out[j].StreakTotal.Cents
		}
		return out[i].PayeeID < out[j].PayeeID
	})
	return out
}
