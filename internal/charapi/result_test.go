package charapi

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"donare/internal/log"
)

func newTestEvaluator() *MockEvaluator {
	return NewMockEvaluator(log.New(log.ComponentEval, log.Config{}))
}

func TestForConsideration(t *testing.T) {
	tests := []struct {
		name string
		eval *Evaluation
		want bool
	}{
		{
			name: "nil evaluation",
			eval: nil,
			want: false,
		},
		{
			name: "nil alignment score",
			eval: &Evaluation{Outstanding: 8, Acceptable: 2},
			want: false,
		},
		{
			name: "alignment below threshold",
			eval: &Evaluation{AlignmentScore: intPtr(60), Outstanding: 8, Acceptable: 2},
			want: false,
		},
		{
			name: "acceptable fraction below threshold",
			eval: &Evaluation{AlignmentScore: intPtr(80), Outstanding: 3, Acceptable: 3, Unacceptable: 4},
			want: false,
		},
		{
			name: "zero metrics never qualifies",
			eval: &Evaluation{AlignmentScore: intPtr(80)},
			want: false,
		},
		{
			name: "both criteria met",
			eval: &Evaluation{AlignmentScore: intPtr(80), Outstanding: 7, Acceptable: 3},
			want: true,
		},
		{
			name: "exact thresholds qualify",
			eval: &Evaluation{AlignmentScore: intPtr(70), Outstanding: 4, Acceptable: 3, Unacceptable: 3},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForConsideration(tt.eval, 70, 70); got != tt.want {
				t.Errorf("ForConsideration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForConsiderationCustomThresholds(t *testing.T) {
	e := &Evaluation{AlignmentScore: intPtr(75), Outstanding: 8, Acceptable: 2}
	if ForConsideration(e, 80, 80) {
		t.Error("alignment 75 passed a threshold of 80")
	}
	e = &Evaluation{AlignmentScore: intPtr(85), Outstanding: 8, Unacceptable: 2}
	if !ForConsideration(e, 80, 80) {
		t.Error("alignment 85 with 80% acceptable failed thresholds of 80")
	}
}

func TestAssignGrade(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{95, "A"}, {90, "A"}, {80, "B"}, {75, "B"}, {60, "C"}, {50, "D"}, {10, "F"},
	}
	for _, c := range cases {
		if got := assignGrade(c.score); got != c.want {
			t.Errorf("assignGrade(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestMockEvaluatorDeterministic(t *testing.T) {
	m := newTestEvaluator()
	ctx := context.Background()

	first, err := m.Evaluate(ctx, "99-0000001")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	second, err := m.Evaluate(ctx, "99-0000001")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if *first.AlignmentScore != *second.AlignmentScore || first.Grade != second.Grade {
		t.Error("repeated evaluations of the same payee disagree")
	}
	if first.AlignmentScore == nil {
		t.Fatal("synthetic evaluation missing alignment score")
	}
	if *first.AlignmentScore < 0 || *first.AlignmentScore > 100 {
		t.Errorf("alignment score %d out of range", *first.AlignmentScore)
	}
}

func TestMockEvaluatorKnownDataset(t *testing.T) {
	m := newTestEvaluator()
	e, err := m.Evaluate(context.Background(), "53-0196605")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if e.OrganizationName == "" || e.TotalMetrics() == 0 {
		t.Errorf("known payee returned empty evaluation: %+v", e)
	}
}

func TestBatchEvaluateSkipsFailures(t *testing.T) {
	m := newTestEvaluator()
	got, err := m.BatchEvaluate(context.Background(), []string{"11-1111111", ""})
	if err != nil {
		t.Fatalf("BatchEvaluate: %v", err)
	}
	if _, ok := got["11-1111111"]; !ok {
		t.Error("valid payee missing from batch result")
	}
	if _, ok := got[""]; ok {
		t.Error("failed payee present in batch result")
	}
}

func TestBatchEvaluateLogsFailuresWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.ComponentEval, log.Config{
		Handler: slog.NewTextHandler(&buf, nil),
	})
	m := NewMockEvaluator(logger)

	if _, err := m.BatchEvaluate(context.Background(), []string{""}); err != nil {
		t.Fatalf("BatchEvaluate: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, log.FieldComponent+"="+log.ComponentEval) {
		t.Errorf("warning missing component attribute: %q", out)
	}
	if !strings.Contains(out, log.FieldPayeeID+"=") {
		t.Errorf("warning missing payee id attribute: %q", out)
	}
}
