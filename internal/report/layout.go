package report

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// Section names accepted in the layout config.
const (
	SectionSummary          = "summary"
	SectionSectors          = "sectors"
	SectionYearly           = "yearly"
	SectionTopCharities     = "top_charities"
	SectionPatterns         = "patterns"
	SectionRecurringSummary = "recurring_summary"
	SectionConsistent       = "consistent"
	SectionDetail           = "detail"
)

// Defaults for per-section display limits.
const (
	DefaultMaxOneTimeShown   = 20
	DefaultMaxStoppedShown   = 15
	DefaultMaxRecurringShown = 20
)

// SectionConfig is one entry of the layout's section list. Unset limits fall
// back to the defaults above.
type SectionConfig struct {
	Name            string `json:"name"`
	Include         *bool  `json:"include,omitempty"`
	MaxShown        int    `json:"max_shown,omitempty"`
	MaxOneTimeShown int    `json:"max_one_time_shown,omitempty"`
	MaxStoppedShown int    `json:"max_stopped_shown,omitempty"`
	ShowPercentages bool   `json:"show_percentages,omitempty"`
}

// Enabled reports whether the section should be rendered. Sections are
// included unless explicitly switched off.
func (s SectionConfig) Enabled() bool {
	return s.Include == nil || *s.Include
}

func (s SectionConfig) maxOneTime() int {
	if s.MaxOneTimeShown > 0 {
		return s.MaxOneTimeShown
	}
	return DefaultMaxOneTimeShown
}

func (s SectionConfig) maxStopped() int {
	if s.MaxStoppedShown > 0 {
		return s.MaxStoppedShown
	}
	return DefaultMaxStoppedShown
}

func (s SectionConfig) maxRecurring() int {
	if s.MaxShown > 0 {
		return s.MaxShown
	}
	return DefaultMaxRecurringShown
}

// Layout is the report layout configuration, normally loaded from a YAML
// file.
type Layout struct {
	Sections []SectionConfig `json:"sections"`
}

var knownSections = map[string]struct{}{
	SectionSummary:          {},
	SectionSectors:          {},
	SectionYearly:           {},
	SectionTopCharities:     {},
	SectionPatterns:         {},
	SectionRecurringSummary: {},
	SectionConsistent:       {},
	SectionDetail:           {},
}

// Validate rejects unknown or unnamed sections.
func (l Layout) Validate() error {
	for i, s := range l.Sections {
		if s.Name == "" {
			return fmt.Errorf("section %d: missing name", i)
		}
		if _, ok := knownSections[s.Name]; !ok {
			return fmt.Errorf("section %d: unknown section %q", i, s.Name)
		}
	}
	return nil
}

// DefaultLayout is the full section set in its standard order.
func DefaultLayout() Layout {
	return Layout{Sections: []SectionConfig{
		{Name: SectionSummary},
		{Name: SectionSectors, ShowPercentages: true},
		{Name: SectionYearly},
		{Name: SectionTopCharities},
		{Name: SectionPatterns},
		{Name: SectionRecurringSummary},
		{Name: SectionConsistent},
		{Name: SectionDetail},
	}}
}

// ParseLayout parses a YAML layout document.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LoadLayout reads a layout file. An empty path returns the default layout.
func LoadLayout(path string) (Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout file: %w", err)
	}
	return ParseLayout(data)
}
