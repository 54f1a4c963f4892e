package report

import (
	"fmt"
	"strings"

	"donare/internal/core"
)

// MarkdownBuilder renders the report as a single Markdown document.
type MarkdownBuilder struct{}

func NewMarkdownBuilder() *MarkdownBuilder {
	return &MarkdownBuilder{}
}

// Build renders the sections enabled in the layout, in layout order.
func (b *MarkdownBuilder) Build(d *Data, layout Layout) []byte {
	var sb strings.Builder
	for _, sec := range layout.Sections {
		if !sec.Enabled() {
			continue
		}
		switch sec.Name {
		case SectionSummary:
			b.summary(&sb, d)
		case SectionSectors:
			b.sectors(&sb, d, sec)
		case SectionYearly:
			b.yearly(&sb, d)
		case SectionTopCharities:
			b.topCharities(&sb, d)
		case SectionPatterns:
			b.patterns(&sb, d, sec)
		case SectionRecurringSummary:
			b.recurringSummary(&sb, d, sec)
		case SectionConsistent:
			b.consistent(&sb, d)
		case SectionDetail:
			b.detail(&sb, d)
		}
	}
	return []byte(sb.String())
}

func (b *MarkdownBuilder) summary(sb *strings.Builder, d *Data) {
	fmt.Fprintf(sb, "# Charitable Donation Analysis Report\n\n")
	fmt.Fprintf(sb, "*Generated on %s*\n\n", d.Generated.Format("January 2, 2006 at 3:04 PM"))
	fmt.Fprintf(sb, "## Summary\n\n")
	fmt.Fprintf(sb, "- **Total Donations:** %d donations\n", d.DonationCount)
	fmt.Fprintf(sb, "- **Total Amount:** %s\n", money(d.GrandTotal))
	fmt.Fprintf(sb, "- **Years Covered:** %d - %d\n\n", d.FirstYear, d.LastYear)
}

func (b *MarkdownBuilder) sectors(sb *strings.Builder, d *Data, sec SectionConfig) {
	fmt.Fprintf(sb, "## Donations by Charitable Sector\n\n")
	if sec.ShowPercentages {
		fmt.Fprintf(sb, "| Charitable Sector | Total Amount | Percentage |\n")
		fmt.Fprintf(sb, "|:------------------|-------------:|-----------:|\n")
		for _, c := range d.Categories {
			fmt.Fprintf(sb, "| %s | %s | %s |\n", sectorName(c.Sector), money(c.Total), percent(c.Total, d.GrandTotal))
		}
	} else {
		fmt.Fprintf(sb, "| Charitable Sector | Total Amount |\n")
		fmt.Fprintf(sb, "|:------------------|-------------:|\n")
		for _, c := range d.Categories {
			fmt.Fprintf(sb, "| %s | %s |\n", sectorName(c.Sector), money(c.Total))
		}
	}
	fmt.Fprintf(sb, "\n**Total:** %s\n\n", money(d.GrandTotal))
}

func (b *MarkdownBuilder) yearly(sb *strings.Builder, d *Data) {
	fmt.Fprintf(sb, "## Yearly Analysis\n\n")
	if d.Charts.YearlyAmounts != "" {
		fmt.Fprintf(sb, "![Yearly Amounts](%s)\n\n", d.Charts.YearlyAmounts)
	}
	fmt.Fprintf(sb, "| Year | Total Amount | Number of Donations |\n")
	fmt.Fprintf(sb, "|-----:|-------------:|--------------------:|\n")
	for _, y := range d.Years {
		fmt.Fprintf(sb, "| %d | %s | %d |\n", y.Year, money(y.Total), y.Count)
	}
	if d.Charts.YearlyCounts != "" {
		fmt.Fprintf(sb, "\n![Yearly Counts](%s)\n", d.Charts.YearlyCounts)
	}
	fmt.Fprintf(sb, "\n")
}

func (b *MarkdownBuilder) topCharities(sb *strings.Builder, d *Data) {
	fmt.Fprintf(sb, "## Top %d Charities by Total Donations\n\n", len(d.Top))
	fmt.Fprintf(sb, "| Rank | Organization | Total Amount | Flags |\n")
	fmt.Fprintf(sb, "|-----:|:-------------|-------------:|:-----:|\n")
	for _, r := range d.Top {
		flags := strings.Join(d.badges(r.PayeeID), " ")
		fmt.Fprintf(sb, "| %d | %s | %s | %s |\n", r.Rank, r.Organization, money(r.Total), flags)
	}
	fmt.Fprintf(sb, "\n")
}

func (b *MarkdownBuilder) patterns(sb *strings.Builder, d *Data, sec SectionConfig) {
	maxOneTime := sec.maxOneTime()
	fmt.Fprintf(sb, "## One-Time Donations\n\n")
	fmt.Fprintf(sb, "Organizations that received a single donation (%d organizations):\n\n", len(d.OneTime))
	fmt.Fprintf(sb, "| Organization | Amount | Date |\n")
	fmt.Fprintf(sb, "|:-------------|-------:|:-----|\n")
	for _, s := range truncate(d.OneTime, maxOneTime) {
		fmt.Fprintf(sb, "| %s | %s | %s |\n", s.Organization, money(s.Total), s.FirstDate)
	}
	if n := overflowCount(len(d.OneTime), maxOneTime); n > 0 {
		fmt.Fprintf(sb, "\n*... and %d more organizations*\n", n)
	}
	fmt.Fprintf(sb, "\n**One-time donations total:** %s\n\n", money(d.OneTimeTotal))

	maxStopped := sec.maxStopped()
	fmt.Fprintf(sb, "## Stopped Recurring Donations\n\n")
	fmt.Fprintf(sb, "Organizations with recurring donations that appear to have stopped (%d organizations):\n\n", len(d.Stopped))
	fmt.Fprintf(sb, "| Organization | Total Amount | Donations | First Date | Last Date |\n")
	fmt.Fprintf(sb, "|:-------------|-------------:|----------:|:-----------|:----------|\n")
	for _, s := range truncate(d.Stopped, maxStopped) {
		fmt.Fprintf(sb, "| %s | %s | %d | %s | %s |\n",
			s.Organization, money(s.Total), s.DonationCount, s.FirstDate, s.LastDate)
	}
	if n := overflowCount(len(d.Stopped), maxStopped); n > 0 {
		fmt.Fprintf(sb, "\n*... and %d more organizations*\n", n)
	}
	fmt.Fprintf(sb, "\n**Stopped recurring donations total:** %s\n\n", money(d.StoppedTotal))
}

func (b *MarkdownBuilder) recurringSummary(sb *strings.Builder, d *Data, sec SectionConfig) {
	maxShown := sec.maxRecurring()
	fmt.Fprintf(sb, "## Active Recurring Donations\n\n")
	fmt.Fprintf(sb, "Organizations with an active recurring schedule (%d organizations):\n\n", len(d.Recurring))
	fmt.Fprintf(sb, "| Organization | Since | Years | Period | Avg Annual | Total Ever | Last Donation |\n")
	fmt.Fprintf(sb, "|:-------------|------:|------:|:------:|-----------:|-----------:|:--------------|\n")
	for _, r := range truncate(d.Recurring, maxShown) {
		fmt.Fprintf(sb, "| %s | %d | %d | %s | %s | %s | %s |\n",
			r.Organization, r.FirstYear, r.YearsSupported, r.PeriodLabel,
			money(r.AverageAnnual), money(r.TotalEverDonated), r.LastDonation)
	}
	if n := overflowCount(len(d.Recurring), maxShown); n > 0 {
		fmt.Fprintf(sb, "\n*... and %d more organizations*\n", n)
	}
	fmt.Fprintf(sb, "\n")
}

func (b *MarkdownBuilder) consistent(sb *strings.Builder, d *Data) {
	fmt.Fprintf(sb, "## Consistent Donors\n\n")
	if len(d.Consistent) == 0 {
		fmt.Fprintf(sb, "No organizations with an unbroken qualifying streak.\n\n")
		return
	}
	fmt.Fprintf(sb, "Organizations supported every year of the recent streak:\n\n")
	fmt.Fprintf(sb, "| Organization | Sector | Streak Total | Average / Year |\n")
	fmt.Fprintf(sb, "|:-------------|:-------|-------------:|---------------:|\n")
	for _, c := range d.Consistent {
		fmt.Fprintf(sb, "| %s | %s | %s | %s |\n",
			c.Organization, sectorName(c.Sector), money(c.StreakTotal), money(c.AveragePerYear))
	}
	fmt.Fprintf(sb, "\n")
}

func (b *MarkdownBuilder) detail(sb *strings.Builder, d *Data) {
	fmt.Fprintf(sb, "## Detailed Donation History\n\n")
	for _, r := range d.Top {
		b.charityCard(sb, d, r)
	}
}

func (b *MarkdownBuilder) charityCard(sb *strings.Builder, d *Data, r core.CharityRanking) {
	rows := d.Details[r.PayeeID]

	title := fmt.Sprintf("%d. %s", r.Rank, r.Organization)
	for _, b := range d.badges(r.PayeeID) {
		title += " **[" + b + "]**"
	}
	fmt.Fprintf(sb, "### %s\n\n", title)

	sector := ""
	if len(rows) > 0 {
		sector = rows[0].Sector
	}
	fmt.Fprintf(sb, "- **Tax ID:** %s\n", r.PayeeID)
	fmt.Fprintf(sb, "- **Sector:** %s\n", sectorName(sector))
	fmt.Fprintf(sb, "- **Total Donated:** %s\n", money(r.Total))
	fmt.Fprintf(sb, "- **Number of Donations:** %d\n\n", len(rows))

	if e := d.Evaluation(r.PayeeID); e != nil {
		fmt.Fprintf(sb, "**Charity Evaluation:**\n\n")
		fmt.Fprintf(sb, "- Outstanding: %d metrics\n", e.Outstanding)
		fmt.Fprintf(sb, "- Acceptable: %d metrics\n", e.Acceptable)
		fmt.Fprintf(sb, "- Unacceptable: %d metrics\n", e.Unacceptable)
		fmt.Fprintf(sb, "- Grade: %s\n", e.Grade)
		if e.AlignmentScore != nil {
			fmt.Fprintf(sb, "- Alignment Score: %d/100\n", *e.AlignmentScore)
		} else {
			fmt.Fprintf(sb, "- Alignment Score: N/A\n")
		}
		if e.Summary != "" {
			fmt.Fprintf(sb, "\n%s\n", e.Summary)
		}
		fmt.Fprintf(sb, "\n")
	} else {
		fmt.Fprintf(sb, "**Charity Evaluation:** N/A\n\n")
	}

	if ref := d.Trend(r.PayeeID); ref != "" {
		fmt.Fprintf(sb, "![Yearly Trend](%s)\n\n", ref)
	}

	fmt.Fprintf(sb, "| Date | Amount |\n")
	fmt.Fprintf(sb, "|:-----|-------:|\n")
	for _, donation := range rows {
		fmt.Fprintf(sb, "| %s | %s |\n", donation.Date, money(donation.Amount))
	}
	fmt.Fprintf(sb, "\n")
}

// sectorName labels the empty sector bucket.
func sectorName(s string) string {
	if s == "" {
		return "(uncategorized)"
	}
	return s
}

// truncate returns at most n leading entries.
func truncate[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
