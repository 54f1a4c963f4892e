package analysis

import (
	"sort"

	"donare/internal/core"
)

// ByCategory groups donations by charitable sector and sums amounts,
// descending by total. Records with an empty sector form their own bucket.
// An empty input yields an empty slice.
func ByCategory(ds []core.Donation) []core.CategoryTotal {
	totals := make(map[string]int64)
	order := make([]string, 0)
	for _, d := range ds {
		if _, ok := totals[d.Sector]; !ok {
			order = append(order, d.Sector)
		}
		totals[d.Sector] += d.Amount.Cents
	}

	out := make([]core.CategoryTotal, 0, len(order))
	for _, sector := range order {
		out = append(out, core.CategoryTotal{
			Sector: sector,
			Total:  core.Money{Cents: totals[sector]},
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cents > out[j].Total.Cents
	})
	return out
}

// ByYear groups donations by derived year, ascending by year.
func ByYear(ds []core.Donation) []core.YearSummary {
	totals := make(map[int]int64)
	counts := make(map[int]int)
	for _, d := range ds {
		totals[d.Year()] += d.Amount.Cents
		counts[d.Year()]++
	}

	out := make([]core.YearSummary, 0, len(totals))
	for _, year := range sortedYears(totals) {
		out = append(out, core.YearSummary{
			Year:  year,
			Total: core.Money{Cents: totals[year]},
			Count: counts[year],
		})
	}
	return out
}

// GrandTotal sums all donation amounts.
func GrandTotal(ds []core.Donation) core.Money {
	return core.Money{Cents: sumCents(ds)}
}

// YearRange returns the earliest and latest derived year in the input, or
// (0, 0) for an empty input.
func YearRange(ds []core.Donation) (min, max int) {
	for i, d := range ds {
		y := d.Year()
		if i == 0 {
			min, max = y, y
			continue
		}
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	return min, max
}
