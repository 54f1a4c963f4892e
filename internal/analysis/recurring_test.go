package analysis

import (
	"testing"

	"donare/internal/core"
)

func annualRows(payee, org string, amounts []int64, lastYear int) []core.Donation {
	rows := make([]core.Donation, 0, len(amounts))
	for i, cents := range amounts {
		rows = append(rows, donation(payee, org, "Education", cents, lastYear-i, 3, 15, "Annually"))
	}
	return rows
}

func TestRecurringEmptyWhenNoPayeeReachesMinYears(t *testing.T) {
	ds := []core.Donation{
		donation("11", "A", "X", 10000, nowYear, 1, 10, "Annually"),
		donation("22", "B", "X", 20000, nowYear-1, 2, 10, "Annually"),
	}
	if got := Recurring(ds, SortByTotal, 4, 4, nowYear); len(got) != 0 {
		t.Errorf("Recurring = %v, want empty", got)
	}
}

func TestRecurringIncludesPayeeWithFourYears(t *testing.T) {
	ds := annualRows("11", "A", []int64{10000, 15000, 20000, 25000}, nowYear)

	got := Recurring(ds, SortByTotal, 4, 4, nowYear)
	if len(got) != 1 {
		t.Fatalf("got %d recurring payees, want 1", len(got))
	}
	r := got[0]
	if r.PayeeID != "11" {
		t.Errorf("payee = %s, want 11", r.PayeeID)
	}
	if r.YearsSupported != 4 {
		t.Errorf("years supported = %d, want 4", r.YearsSupported)
	}
	if r.FirstYear != nowYear-3 {
		t.Errorf("first year = %d, want %d", r.FirstYear, nowYear-3)
	}
	if want := int64(70000 / 4); r.AverageAnnual.Cents != want {
		t.Errorf("average annual = %d, want %d", r.AverageAnnual.Cents, want)
	}
	if r.TotalEverDonated.Cents != 70000 {
		t.Errorf("total ever donated = %d, want 70000", r.TotalEverDonated.Cents)
	}
	if r.PeriodLabel != "Annual" {
		t.Errorf("period label = %q, want Annual", r.PeriodLabel)
	}
}

func TestRecurringSortByTotal(t *testing.T) {
	// Payee 11 totals 400, payee 22 totals 800, both over 4 years.
	ds := append(
		annualRows("11", "A", []int64{10000, 10000, 10000, 10000}, nowYear),
		annualRows("22", "B", []int64{20000, 20000, 20000, 20000}, nowYear)...,
	)

	got := Recurring(ds, SortByTotal, 4, 4, nowYear)
	if len(got) != 2 || got[0].PayeeID != "22" || got[1].PayeeID != "11" {
		t.Fatalf("sort-by-total order wrong: %v", got)
	}
}

func TestRecurringSortByAnnual(t *testing.T) {
	// Payee 11 averages 162.50, payee 22 averages a flat 150.
	ds := append(
		annualRows("11", "A", []int64{10000, 15000, 20000, 20000}, nowYear),
		annualRows("22", "B", []int64{15000, 15000, 15000, 15000}, nowYear)...,
	)

	got := Recurring(ds, SortByAnnual, 4, 4, nowYear)
	if len(got) != 2 || got[0].PayeeID != "11" || got[1].PayeeID != "22" {
		t.Fatalf("sort-by-annual order wrong: %v", got)
	}
	if got[0].AverageAnnual.Cents != 16250 {
		t.Errorf("average annual = %d, want 16250", got[0].AverageAnnual.Cents)
	}
}

func TestRecurringStaleExclusion(t *testing.T) {
	ds := []core.Donation{
		donation("11", "Recent", "X", 100000, nowYear-1, 1, 15, "annually through indefinitely"),
		donation("22", "Stale", "X", 75000, nowYear-4, 5, 1, "annually through indefinitely"),
		// Payee with only one qualifying year, two years back: below the
		// stale window only with staleYears=1.
		donation("33", "Borderline", "X", 50000, nowYear-2, 12, 20, "semi-annually through indefinitely"),
	}

	got := Recurring(ds, SortByTotal, 1, 2, nowYear)
	ids := RecurringIDs(got)
	if _, ok := ids["22"]; ok {
		t.Error("stale payee 22 included")
	}
	if _, ok := ids["11"]; !ok {
		t.Error("recent payee 11 excluded")
	}
	if _, ok := ids["33"]; !ok {
		t.Error("payee 33 within stale window excluded")
	}

	// Tighter window drops the borderline payee too.
	got = Recurring(ds, SortByTotal, 1, 1, nowYear)
	ids = RecurringIDs(got)
	if _, ok := ids["33"]; ok {
		t.Error("payee 33 outside tightened stale window included")
	}
}

func TestRecurringEmptyScheduleExcluded(t *testing.T) {
	ds := []core.Donation{donation("11", "A", "X", 100000, nowYear, 1, 15, "")}
	if got := Recurring(ds, SortByTotal, 1, 4, nowYear); len(got) != 0 {
		t.Errorf("payee with empty schedule included: %v", got)
	}
}

func TestRecurringPeriodLabelPrefersSemiAnnual(t *testing.T) {
	ds := []core.Donation{
		donation("11", "A", "X", 10000, nowYear, 1, 1, "annually"),
		donation("11", "A", "X", 10000, nowYear-1, 1, 1, "semi-annually"),
	}
	got := Recurring(ds, SortByTotal, 1, 4, nowYear)
	if len(got) != 1 || got[0].PeriodLabel != "Semi-Annual" {
		t.Fatalf("period label = %v, want Semi-Annual", got)
	}
}
