package report

import (
	"fmt"
	"strings"

	"donare/internal/core"
)

// TextBuilder renders the report as plain text with ruled section headers.
type TextBuilder struct{}

func NewTextBuilder() *TextBuilder {
	return &TextBuilder{}
}

const textRuleWidth = 80

func rule(c byte) string {
	return strings.Repeat(string(c), textRuleWidth)
}

func (b *TextBuilder) Build(d *Data, layout Layout) []byte {
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

func (b *TextBuilder) summary(sb *strings.Builder, d *Data) {
	fmt.Fprintf(sb, "CHARITABLE DONATION ANALYSIS REPORT\n%s\n\n", rule('='))
	fmt.Fprintf(sb, "Generated on %s\n\n", d.Generated.Format("January 2, 2006 at 3:04 PM"))
	fmt.Fprintf(sb, "SUMMARY\n%s\n", rule('-'))
	fmt.Fprintf(sb, "Total Donations:  %d donations\n", d.DonationCount)
	fmt.Fprintf(sb, "Total Amount:     %s\n", money(d.GrandTotal))
	fmt.Fprintf(sb, "Years Covered:    %d - %d\n\n", d.FirstYear, d.LastYear)
}

func (b *TextBuilder) sectors(sb *strings.Builder, d *Data, sec SectionConfig) {
	fmt.Fprintf(sb, "DONATIONS BY CHARITABLE SECTOR\n%s\n\n", rule('-'))
	for _, c := range d.Categories {
		if sec.ShowPercentages {
			fmt.Fprintf(sb, "%-40s %14s %8s\n", sectorName(c.Sector), money(c.Total), percent(c.Total, d.GrandTotal))
		} else {
			fmt.Fprintf(sb, "%-40s %14s\n", sectorName(c.Sector), money(c.Total))
		}
	}
	fmt.Fprintf(sb, "\nTotal: %s\n\n", money(d.GrandTotal))
}

func (b *TextBuilder) yearly(sb *strings.Builder, d *Data) {
	fmt.Fprintf(sb, "YEARLY ANALYSIS\n%s\n\n", rule('-'))
	if d.Charts.YearlyAmounts != "" {
		fmt.Fprintf(sb, "Note: Charts available in %s and %s\n\n", d.Charts.YearlyAmounts, d.Charts.YearlyCounts)
	}
	fmt.Fprintf(sb, "%6s %14s %10s\n", "Year", "Amount", "Count")
	for _, y := range d.Years {
		fmt.Fprintf(sb, "%6d %14s %10d\n", y.Year, money(y.Total), y.Count)
	}
	fmt.Fprintf(sb, "\n")
}

func (b *TextBuilder) topCharities(sb *strings.Builder, d *Data) {
	fmt.Fprintf(sb, "TOP %d CHARITIES BY TOTAL DONATIONS\n%s\n\n", len(d.Top), rule('-'))
	for _, r := range d.Top {
		flags := ""
		for _, b := range d.badges(r.PayeeID) {
			flags += "  [" + b + "]"
		}
		fmt.Fprintf(sb, "%3d. %-45s %14s%s\n", r.Rank, r.Organization, money(r.Total), flags)
	}
	fmt.Fprintf(sb, "\n")
}

func (b *TextBuilder) patterns(sb *strings.Builder, d *Data, sec SectionConfig) {
	maxOneTime := sec.maxOneTime()
	fmt.Fprintf(sb, "ONE-TIME DONATIONS\n%s\n\n", rule('-'))
	fmt.Fprintf(sb, "Organizations that received a single donation (%d organizations):\n\n", len(d.OneTime))
	for _, s := range truncate(d.OneTime, maxOneTime) {
		fmt.Fprintf(sb, "%-45s %14s  %s\n", s.Organization, money(s.Total), s.FirstDate)
	}
	if n := overflowCount(len(d.OneTime), maxOneTime); n > 0 {
		fmt.Fprintf(sb, "\n... and %d more organizations\n", n)
	}
	fmt.Fprintf(sb, "\nOne-time donations total: %s\n\n", money(d.OneTimeTotal))

	maxStopped := sec.maxStopped()
	fmt.Fprintf(sb, "STOPPED RECURRING DONATIONS\n%s\n\n", rule('-'))
	fmt.Fprintf(sb, "Organizations with recurring donations that appear to have stopped (%d organizations):\n\n", len(d.Stopped))
	for _, s := range truncate(d.Stopped, maxStopped) {
		fmt.Fprintf(sb, "%-40s %14s %5d  %s - %s\n",
			s.Organization, money(s.Total), s.DonationCount, s.FirstDate, s.LastDate)
	}
	if n := overflowCount(len(d.Stopped), maxStopped); n > 0 {
		fmt.Fprintf(sb, "\n... and %d more organizations\n", n)
	}
	fmt.Fprintf(sb, "\nStopped recurring donations total: %s\n\n", money(d.StoppedTotal))
}

func (b *TextBuilder) recurringSummary(sb *strings.Builder, d *Data, sec SectionConfig) {
	maxShown := sec.maxRecurring()
	fmt.Fprintf(sb, "ACTIVE RECURRING DONATIONS\n%s\n\n", rule('-'))
	fmt.Fprintf(sb, "Organizations with an active recurring schedule (%d organizations):\n\n", len(d.Recurring))
	for _, r := range truncate(d.Recurring, maxShown) {
		fmt.Fprintf(sb, "%-40s since %d (%d yrs, %s) avg %s/yr, total %s\n",
			r.Organization, r.FirstYear, r.YearsSupported, r.PeriodLabel,
			money(r.AverageAnnual), money(r.TotalEverDonated))
	}
	if n := overflowCount(len(d.Recurring), maxShown); n > 0 {
		fmt.Fprintf(sb, "\n... and %d more organizations\n", n)
	}
	fmt.Fprintf(sb, "\n")
}

func (b *TextBuilder) consistent(sb *strings.Builder, d *Data) {
	fmt.Fprintf(sb, "CONSISTENT DONORS\n%s\n\n", rule('-'))
	if len(d.Consistent) == 0 {
		fmt.Fprintf(sb, "No organizations with an unbroken qualifying streak.\n\n")
		return
	}
	for _, c := range d.Consistent {
		fmt.Fprintf(sb, "%-45s %14s total, %s/yr\n",
			c.Organization, money(c.StreakTotal), money(c.AveragePerYear))
	}
	fmt.Fprintf(sb, "\n")
}

func (b *TextBuilder) detail(sb *strings.Builder, d *Data) {
	fmt.Fprintf(sb, "DETAILED DONATION HISTORY\n%s\n\n", rule('='))
	for _, r := range d.Top {
		b.charityDetail(sb, d, r)
	}
}

func (b *TextBuilder) charityDetail(sb *strings.Builder, d *Data, r core.CharityRanking) {
	rows := d.Details[r.PayeeID]

	title := fmt.Sprintf("%d. %s", r.Rank, r.Organization)
	for _, b := range d.badges(r.PayeeID) {
		title += " [" + b + "]"
	}
	fmt.Fprintf(sb, "%s\n%s\n", title, rule('-'))

	sector := ""
	if len(rows) > 0 {
		sector = rows[0].Sector
	}
	fmt.Fprintf(sb, "Tax ID:              %s\n", r.PayeeID)
	fmt.Fprintf(sb, "Sector:              %s\n", sectorName(sector))
	fmt.Fprintf(sb, "Total Donated:       %s\n", money(r.Total))
	fmt.Fprintf(sb, "Number of Donations: %d\n", len(rows))

	if e := d.Evaluation(r.PayeeID); e != nil {
		fmt.Fprintf(sb, "Evaluation:          %d outstanding, %d acceptable, %d unacceptable (grade %s)\n",
			e.Outstanding, e.Acceptable, e.Unacceptable, e.Grade)
		if e.AlignmentScore != nil {
			fmt.Fprintf(sb, "Alignment Score:     %d/100\n", *e.AlignmentScore)
		} else {
			fmt.Fprintf(sb, "Alignment Score:     N/A\n")
		}
	} else {
		fmt.Fprintf(sb, "Evaluation:          N/A\n")
	}

	fmt.Fprintf(sb, "\n")
	for _, donation := range rows {
		fmt.Fprintf(sb, "  %s  %14s\n", donation.Date, money(donation.Amount))
	}
	fmt.Fprintf(sb, "\n")
}
