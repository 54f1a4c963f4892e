package analysis

import (
	"sort"

	"donare/internal/core"
)

// TopCharities ranks payees by total amount, descending, and keeps the first
// n. Ties keep the order in which payees first appear in the input; no
// further tie-break is defined.
func TopCharities(ds []core.Donation, n int) []core.CharityRanking {
	groups := groupByPayee(ds)
	out := make([]core.CharityRanking, 0, len(groups))
	for _, g := range groups {
		out = append(out, core.CharityRanking{
			PayeeID:      g.id,
			Organization: displayName(g.rows),
			Total:        core.Money{Cents: sumCents(g.rows)},
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cents > out[j].Total.Cents
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// CharityDetails returns the full donation history of each ranked payee,
// sorted by date. The histories feed the per-payee detail sections and trend
// charts.
func CharityDetails(ds []core.Donation, ranked []core.CharityRanking) map[string][]core.Donation {
	wanted := make(map[string]struct{}, len(ranked))
	for _, r := range ranked {
		wanted[r.PayeeID] = struct{}{}
	}

	details := make(map[string][]core.Donation, len(wanted))
	for _, d := range ds {
		if _, ok := wanted[d.PayeeID]; ok {
			details[d.PayeeID] = append(details[d.PayeeID], d)
		}
	}
	for id := range details {
		rows := details[id]
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Date.Before(rows[j].Date.Time)
		})
	}
	return details
}
