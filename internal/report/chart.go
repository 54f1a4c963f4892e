package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"donare/internal/core"
	"donare/internal/log"
)

// Charts are written as SVG so the reports stay self-contained text
// artifacts with no image toolchain involved.

const (
	chartWidth  = 480
	chartHeight = 240
	trendWidth  = 240
	trendHeight = 120
	chartMargin = 30
)

type chartBar struct {
	X, Y, W, H int
	Label      string
	LabelX     int
}

type chartModel struct {
	Title  string
	Width  int
	Height int
	Fill   string
	Bars   []chartBar
}

var svgTemplate = template.Must(template.New("bar").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
  <rect width="100%" height="100%" fill="white"/>
{{- if .Title}}
  <text x="{{.Width}}" y="16" text-anchor="end" font-family="sans-serif" font-size="12" fill="#333" transform="translate(-8 0)">{{.Title}}</text>
{{- end}}
{{- range .Bars}}
  <rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" fill="{{$.Fill}}" fill-opacity="0.75"/>
{{- if .Label}}
  <text x="{{.LabelX}}" y="{{$.Height}}" text-anchor="middle" font-family="sans-serif" font-size="9" fill="#555" transform="translate(0 -4)">{{.Label}}</text>
{{- end}}
{{- end}}
</svg>
`))

// ChartWriter writes chart files under outputDir/images.
type ChartWriter struct {
	outputDir string
	logger    *log.Logger
}

func NewChartWriter(outputDir string, logger *log.Logger) *ChartWriter {
	return &ChartWriter{outputDir: outputDir, logger: logger.WithComponent(log.ComponentReport)}
}

// WriteYearly writes the two yearly overview charts and returns their
// relative references.
func (w *ChartWriter) WriteYearly(years []core.YearSummary) (amountsRef, countsRef string, err error) {
	amounts := make([]barValue, len(years))
	counts := make([]barValue, len(years))
	for i, y := range years {
		label := fmt.Sprintf("%d", y.Year)
		amounts[i] = barValue{Label: label, Value: y.Total.Cents}
		counts[i] = barValue{Label: label, Value: int64(y.Count)}
	}

	amountsRef = filepath.Join("images", "yearly_amounts.svg")
	if err := w.write(amountsRef, barChart("Donations by Year", chartWidth, chartHeight, "steelblue", amounts)); err != nil {
		return "", "", err
	}
	countsRef = filepath.Join("images", "yearly_counts.svg")
	if err := w.write(countsRef, barChart("Number of Donations by Year", chartWidth, chartHeight, "darkgreen", counts)); err != nil {
		return "", "", err
	}
	return amountsRef, countsRef, nil
}

// WriteTrend writes a compact per-payee yearly trend thumbnail covering the
// payee's full first-to-last year range, zero-filling missing years.
func (w *ChartWriter) WriteTrend(rank int, payeeID string, rows []core.Donation) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}

	totals := map[int]int64{}
	first, last := rows[0].Year(), rows[0].Year()
	for _, d := range rows {
		y := d.Year()
		totals[y] += d.Amount.Cents
		if y < first {
			first = y
		}
		if y > last {
			last = y
		}
	}

	values := make([]barValue, 0, last-first+1)
	for y := first; y <= last; y++ {
		label := ""
		// Thumbnails only label the first, middle, and last year.
		switch y {
		case first, last, first + (last-first)/2:
			label = fmt.Sprintf("%d", y)
		}
		values = append(values, barValue{Label: label, Value: totals[y]})
	}

	ref := filepath.Join("images", fmt.Sprintf("charity_%02d_%s.svg", rank, strings.ReplaceAll(payeeID, "-", "")))
	if err := w.write(ref, barChart("", trendWidth, trendHeight, "steelblue", values)); err != nil {
		return "", err
	}
	return ref, nil
}

type barValue struct {
	Label string
	Value int64
}

func barChart(title string, width, height int, fill string, values []barValue) chartModel {
	model := chartModel{Title: title, Width: width, Height: height, Fill: fill}
	if len(values) == 0 {
		return model
	}

	var max int64
	for _, v := range values {
		if v.Value > max {
			max = v.Value
		}
	}
	if max == 0 {
		max = 1
	}

	top := chartMargin
	bottom := height - chartMargin
	plotHeight := bottom - top
	slot := width / len(values)
	barWidth := slot * 3 / 5
	if barWidth < 2 {
		barWidth = 2
	}

	for i, v := range values {
		h := int(int64(plotHeight) * v.Value / max)
		x := i*slot + (slot-barWidth)/2
		model.Bars = append(model.Bars, chartBar{
			X:      x,
			Y:      bottom - h,
			W:      barWidth,
			H:      h,
			Label:  v.Label,
			LabelX: i*slot + slot/2,
		})
	}
	return model
}

func (w *ChartWriter) write(ref string, model chartModel) error {
	path := filepath.Join(w.outputDir, ref)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := svgTemplate.Execute(f, model); err != nil {
		return fmt.Errorf("render chart %s: %w", ref, err)
	}

	w.logger.Debug("Wrote chart", log.FieldOperation, log.OpRender, log.FieldPath, path)
	return nil
}
