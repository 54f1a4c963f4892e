// Package report renders the analysis results as HTML, Markdown, and plain
// text. All three formats carry the same logical sections; the layout config
// controls which sections appear and in what order.
package report

import (
	"fmt"
	"time"

	"donare/internal/charapi"
	"donare/internal/core"
)

// Data is everything the renderers need, computed once per run and shared by
// all enabled formats.
type Data struct {
	Generated     time.Time
	DonationCount int
	GrandTotal    core.Money
	FirstYear     int
	LastYear      int

	Categories []core.CategoryTotal
	Years      []core.YearSummary
	Top        []core.CharityRanking

	OneTime      []core.PayeeSummary
	OneTimeTotal core.Money
	Stopped      []core.PayeeSummary
	StoppedTotal core.Money
	Recurring    []core.RecurringCharity
	Consistent   []core.ConsistentDonor

	Focus       map[string]struct{}
	Consider    map[string]struct{}
	Details     map[string][]core.Donation
	Evaluations map[string]*charapi.Evaluation

	Charts Charts
}

// Charts holds relative references to the generated chart files.
type Charts struct {
	YearlyAmounts string
	YearlyCounts  string
	Trends        map[string]string // payee id -> relative path
}

// IsFocus reports whether a payee is in the strategic focus set.
func (d *Data) IsFocus(payeeID string) bool {
	_, ok := d.Focus[payeeID]
	return ok
}

// IsConsider reports whether a payee passed the consideration screen for new
// or increased support.
func (d *Data) IsConsider(payeeID string) bool {
	_, ok := d.Consider[payeeID]
	return ok
}

// badges lists the flags shown beside a ranked payee, in display order.
func (d *Data) badges(payeeID string) []string {
	var out []string
	if d.IsFocus(payeeID) {
		out = append(out, "FOCUS")
	}
	if d.IsConsider(payeeID) {
		out = append(out, "CONSIDER")
	}
	return out
}

// Evaluation returns the evaluation for a payee, or nil when the evaluation
// service had nothing for it.
func (d *Data) Evaluation(payeeID string) *charapi.Evaluation {
	return d.Evaluations[payeeID]
}

// Trend returns the trend chart reference for a payee, or "" when none was
// generated.
func (d *Data) Trend(payeeID string) string {
	return d.Charts.Trends[payeeID]
}

// money renders a Money value with the currency symbol used in all formats.
func money(m core.Money) string {
	return "$" + m.Format()
}

// percent renders part as a percentage of total with one decimal. A zero
// total renders as 0.0% rather than dividing.
func percent(part, total core.Money) string {
	if total.Cents == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part.Cents)*100/float64(total.Cents))
}

// overflowCount returns how many entries were hidden by a max-shown limit.
func overflowCount(total, shown int) int {
	if total > shown {
		return total - shown
	}
	return 0
}
