package analysis

import "donare/internal/core"

// FocusCharities determines the strategic-donor set over a lookback window.
//
// Attention is restricted to the most recent count years (nowYear-count
// through nowYear). A payee qualifies when (a) its total in the year
// immediately prior to nowYear reaches minAmount, and (b) at least minYears
// distinct years in the window individually reach minAmount. Unlike the
// consistent-donor streak, qualifying years need not be contiguous.
func FocusCharities(ds []core.Donation, count, minYears int, minAmount core.Money, nowYear int) map[string]struct{} {
	windowStart := nowYear - count
	prevYear := nowYear - 1

	out := make(map[string]struct{})
	for _, g := range groupByPayee(ds) {
		totals := make(map[int]int64)
		for _, d := range g.rows {
			y := d.Year()
			if y < windowStart || y > nowYear {
				continue
			}
			totals[y] += d.Amount.Cents
		}

		if totals[prevYear] < minAmount.Cents {
			continue
		}
		qualifyingYears := 0
		for _, amount := range totals {
			if amount >= minAmount.Cents {
				qualifyingYears++
			}
		}
		if qualifyingYears >= minYears {
			out[g.id] = struct{}{}
		}
	}
	return out
}
