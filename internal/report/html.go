package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var htmlTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// HTMLBuilder renders the report as a standalone HTML page.
type HTMLBuilder struct{}

func NewHTMLBuilder() *HTMLBuilder {
	return &HTMLBuilder{}
}

type pageView struct {
	Sections []template.HTML
}

func (b *HTMLBuilder) Build(d *Data, layout Layout) ([]byte, error) {
	var page pageView
	for _, sec := range layout.Sections {
		if !sec.Enabled() {
			continue
		}
		view, err := sectionView(d, sec)
		if err != nil {
			return nil, err
		}
		if view == nil {
			continue
		}

		var buf bytes.Buffer
		if err := htmlTemplates.ExecuteTemplate(&buf, sec.Name, view); err != nil {
			return nil, fmt.Errorf("render section %s: %w", sec.Name, err)
		}
		page.Sections = append(page.Sections, template.HTML(buf.String()))
	}

	var out bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&out, "page", page); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return out.Bytes(), nil
}

func sectionView(d *Data, sec SectionConfig) (any, error) {
	switch sec.Name {
	case SectionSummary:
		return summaryView(d), nil
	case SectionSectors:
		return sectorsView(d, sec), nil
	case SectionYearly:
		return yearlyView(d), nil
	case SectionTopCharities:
		return topCharitiesView(d), nil
	case SectionPatterns:
		return patternsView(d, sec), nil
	case SectionRecurringSummary:
		return recurringView(d, sec), nil
	case SectionConsistent:
		return consistentView(d), nil
	case SectionDetail:
		return detailView(d), nil
	default:
		return nil, fmt.Errorf("unknown section %q", sec.Name)
	}
}

func summaryView(d *Data) any {
	return struct {
		Generated     string
		DonationCount int
		Total         string
		FirstYear     int
		LastYear      int
	}{
		Generated:     d.Generated.Format("January 2, 2006 at 3:04 PM"),
		DonationCount: d.DonationCount,
		Total:         money(d.GrandTotal),
		FirstYear:     d.FirstYear,
		LastYear:      d.LastYear,
	}
}

type sectorRow struct {
	Sector  string
	Total   string
	Percent string
}

func sectorsView(d *Data, sec SectionConfig) any {
	rows := make([]sectorRow, len(d.Categories))
	for i, c := range d.Categories {
		rows[i] = sectorRow{
			Sector:  sectorName(c.Sector),
			Total:   money(c.Total),
			Percent: percent(c.Total, d.GrandTotal),
		}
	}
	return struct {
		ShowPercentages bool
		Rows            []sectorRow
		Total           string
	}{sec.ShowPercentages, rows, money(d.GrandTotal)}
}

type yearRow struct {
	Year  int
	Total string
	Count int
}

func yearlyView(d *Data) any {
	rows := make([]yearRow, len(d.Years))
	for i, y := range d.Years {
		rows[i] = yearRow{Year: y.Year, Total: money(y.Total), Count: y.Count}
	}
	return struct {
		AmountsChart string
		CountsChart  string
		Rows         []yearRow
	}{d.Charts.YearlyAmounts, d.Charts.YearlyCounts, rows}
}

type rankRow struct {
	Rank         int
	Organization string
	Total        string
	Focus        bool
	Consider     bool
}

func topCharitiesView(d *Data) any {
	rows := make([]rankRow, len(d.Top))
	for i, r := range d.Top {
		rows[i] = rankRow{
			Rank:         r.Rank,
			Organization: r.Organization,
			Total:        money(r.Total),
			Focus:        d.IsFocus(r.PayeeID),
			Consider:     d.IsConsider(r.PayeeID),
		}
	}
	return struct {
		Count int
		Rows  []rankRow
	}{len(rows), rows}
}

type payeeRow struct {
	Organization  string
	Total         string
	DonationCount int
	FirstDate     string
	LastDate      string
}

func patternsView(d *Data, sec SectionConfig) any {
	maxOneTime := sec.maxOneTime()
	oneTime := make([]payeeRow, 0, maxOneTime)
	for _, s := range truncate(d.OneTime, maxOneTime) {
		oneTime = append(oneTime, payeeRow{
			Organization: s.Organization,
			Total:        money(s.Total),
			FirstDate:    s.FirstDate.String(),
		})
	}

	maxStopped := sec.maxStopped()
	stopped := make([]payeeRow, 0, maxStopped)
	for _, s := range truncate(d.Stopped, maxStopped) {
		stopped = append(stopped, payeeRow{
			Organization:  s.Organization,
			Total:         money(s.Total),
			DonationCount: s.DonationCount,
			FirstDate:     s.FirstDate.String(),
			LastDate:      s.LastDate.String(),
		})
	}

	return struct {
		OneTime         []payeeRow
		OneTimeCount    int
		OneTimeOverflow int
		OneTimeTotal    string
		Stopped         []payeeRow
		StoppedCount    int
		StoppedOverflow int
		StoppedTotal    string
	}{
		OneTime:         oneTime,
		OneTimeCount:    len(d.OneTime),
		OneTimeOverflow: overflowCount(len(d.OneTime), maxOneTime),
		OneTimeTotal:    money(d.OneTimeTotal),
		Stopped:         stopped,
		StoppedCount:    len(d.Stopped),
		StoppedOverflow: overflowCount(len(d.Stopped), maxStopped),
		StoppedTotal:    money(d.StoppedTotal),
	}
}

type recurringRow struct {
	Organization  string
	FirstYear     int
	Years         int
	Period        string
	AverageAnnual string
	TotalEver     string
	LastDonation  string
}

func recurringView(d *Data, sec SectionConfig) any {
	maxShown := sec.maxRecurring()
	rows := make([]recurringRow, 0, maxShown)
	for _, r := range truncate(d.Recurring, maxShown) {
		rows = append(rows, recurringRow{
			Organization:  r.Organization,
			FirstYear:     r.FirstYear,
			Years:         r.YearsSupported,
			Period:        r.PeriodLabel,
			AverageAnnual: money(r.AverageAnnual),
			TotalEver:     money(r.TotalEverDonated),
			LastDonation:  r.LastDonation.String(),
		})
	}
	return struct {
		Count    int
		Rows     []recurringRow
		Overflow int
	}{len(d.Recurring), rows, overflowCount(len(d.Recurring), maxShown)}
}

type consistentRow struct {
	Organization   string
	Sector         string
	StreakTotal    string
	AveragePerYear string
}

func consistentView(d *Data) any {
	rows := make([]consistentRow, len(d.Consistent))
	for i, c := range d.Consistent {
		rows[i] = consistentRow{
			Organization:   c.Organization,
			Sector:         sectorName(c.Sector),
			StreakTotal:    money(c.StreakTotal),
			AveragePerYear: money(c.AveragePerYear),
		}
	}
	return struct{ Rows []consistentRow }{rows}
}

type donationRow struct {
	Date   string
	Amount string
}

type charityCard struct {
	Title          string
	Focus          bool
	Consider       bool
	PayeeID        string
	Sector         string
	Total          string
	DonationCount  int
	HasEvaluation  bool
	Outstanding    int
	Acceptable     int
	Unacceptable   int
	Grade          string
	HasAlignment   bool
	AlignmentScore int
	EvalSummary    string
	TrendChart     string
	Donations      []donationRow
}

func detailView(d *Data) any {
	cards := make([]charityCard, 0, len(d.Top))
	for _, r := range d.Top {
		rows := d.Details[r.PayeeID]
		sector := ""
		if len(rows) > 0 {
			sector = rows[0].Sector
		}

		card := charityCard{
			Title:         fmt.Sprintf("%d. %s", r.Rank, r.Organization),
			Focus:         d.IsFocus(r.PayeeID),
			Consider:      d.IsConsider(r.PayeeID),
			PayeeID:       r.PayeeID,
			Sector:        sectorName(sector),
			Total:         money(r.Total),
			DonationCount: len(rows),
			TrendChart:    d.Trend(r.PayeeID),
		}
		if e := d.Evaluation(r.PayeeID); e != nil {
			card.HasEvaluation = true
			card.Outstanding = e.Outstanding
			card.Acceptable = e.Acceptable
			card.Unacceptable = e.Unacceptable
			card.Grade = e.Grade
			card.EvalSummary = e.Summary
			if e.AlignmentScore != nil {
				card.HasAlignment = true
				card.AlignmentScore = *e.AlignmentScore
			}
		}
		for _, donation := range rows {
			card.Donations = append(card.Donations, donationRow{
				Date:   donation.Date.String(),
				Amount: money(donation.Amount),
			})
		}
		cards = append(cards, card)
	}
	return struct{ Cards []charityCard }{cards}
}
