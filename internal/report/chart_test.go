package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"donare/internal/core"
	"donare/internal/log"
)

func newChartWriter(t *testing.T) (*ChartWriter, string) {
	t.Helper()
	dir := t.TempDir()
	return NewChartWriter(dir, log.New(log.ComponentReport, log.Config{})), dir
}

func TestWriteYearly(t *testing.T) {
	w, dir := newChartWriter(t)
	years := []core.YearSummary{
		{Year: 2023, Total: core.Money{Cents: 100000}, Count: 4},
		{Year: 2024, Total: core.Money{Cents: 250000}, Count: 9},
	}

	amountsRef, countsRef, err := w.WriteYearly(years)
	if err != nil {
		t.Fatalf("WriteYearly: %v", err)
	}
	if amountsRef != filepath.Join("images", "yearly_amounts.svg") {
		t.Errorf("amountsRef = %q", amountsRef)
	}

	data, err := os.ReadFile(filepath.Join(dir, amountsRef))
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	svg := string(data)
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "Donations by Year") {
		t.Error("amounts chart missing svg content")
	}
	if !strings.Contains(svg, ">2023<") || !strings.Contains(svg, ">2024<") {
		t.Error("amounts chart missing year labels")
	}

	if _, err := os.Stat(filepath.Join(dir, countsRef)); err != nil {
		t.Errorf("counts chart not written: %v", err)
	}
}

func TestWriteTrend(t *testing.T) {
	w, dir := newChartWriter(t)
	rows := []core.Donation{
		{PayeeID: "53-0196605", Amount: core.Money{Cents: 100000}, Date: core.NewDate(2021, 3, 15)},
		{PayeeID: "53-0196605", Amount: core.Money{Cents: 200000}, Date: core.NewDate(2024, 3, 18)},
	}

	ref, err := w.WriteTrend(1, "53-0196605", rows)
	if err != nil {
		t.Fatalf("WriteTrend: %v", err)
	}
	if ref != filepath.Join("images", "charity_01_530196605.svg") {
		t.Errorf("ref = %q", ref)
	}

	data, err := os.ReadFile(filepath.Join(dir, ref))
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	// The 2021-2024 range zero-fills 2022 and 2023, so four bars.
	if got := strings.Count(string(data), "<rect"); got != 5 { // 4 bars + background
		t.Errorf("trend chart has %d rects, want 5", got)
	}
}

func TestWriteTrendNoRows(t *testing.T) {
	w, _ := newChartWriter(t)
	ref, err := w.WriteTrend(1, "53-0196605", nil)
	if err != nil {
		t.Fatalf("WriteTrend: %v", err)
	}
	if ref != "" {
		t.Errorf("ref = %q, want empty for no rows", ref)
	}
}

func TestBarChartZeroValues(t *testing.T) {
	model := barChart("t", chartWidth, chartHeight, "steelblue", []barValue{{Label: "2024", Value: 0}})
	if len(model.Bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(model.Bars))
	}
	if model.Bars[0].H != 0 {
		t.Errorf("zero value should give zero-height bar, got %d", model.Bars[0].H)
	}
}
