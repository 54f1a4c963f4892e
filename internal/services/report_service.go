// Package services orchestrates the report pipeline: load donations, run the
// analysis, score the top charities, render the enabled formats, and notify
// downstream consumers.
package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"donare/internal/amqp"
	"donare/internal/analysis"
	"donare/internal/charapi"
	"donare/internal/config"
	"donare/internal/core"
	"donare/internal/log"
	"donare/internal/report"
	"donare/internal/source"
)

// Artifact filenames, one per format.
const (
	HTMLArtifact     = "donation_analysis.html"
	MarkdownArtifact = "donation_analysis.md"
	TextArtifact     = "donation_analysis.txt"
)

// ReportService runs the full donation analysis pipeline.
type ReportService struct {
	cfg       *config.Config
	reader    source.Reader
	evaluator charapi.Evaluator
	publisher *amqp.Client // nil disables run notifications
	logger    *log.Logger

	// now is injectable so the year-relative classifications are testable.
	now func() time.Time
}

func NewReportService(cfg *config.Config, reader source.Reader, evaluator charapi.Evaluator, publisher *amqp.Client, logger *log.Logger) *ReportService {
	return &ReportService{
		cfg:       cfg,
		reader:    reader,
		evaluator: evaluator,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentApp),
		now:       time.Now,
	}
}

// RunResult reports what a run produced.
type RunResult struct {
	Data      *report.Data
	Artifacts []string
}

// Run executes the pipeline once. Identical input yields identical numeric
// output; only the generation timestamp differs between runs.
func (s *ReportService) Run(ctx context.Context) (*RunResult, error) {
	donations, err := s.reader.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("load donations: %w", err)
	}

	data := s.analyze(ctx, donations)

	if err := s.renderCharts(data); err != nil {
		return nil, err
	}

	layout, err := report.LoadLayout(s.cfg.LayoutPath)
	if err != nil {
		return nil, fmt.Errorf("load report layout: %w", err)
	}

	artifacts, err := s.renderArtifacts(ctx, data, layout)
	if err != nil {
		return nil, err
	}

	s.publishRunSummary(ctx, data, artifacts)

	s.logger.Info("Report run complete",
		log.FieldCount, data.DonationCount,
		log.FieldAmountCents, data.GrandTotal.Cents,
		"artifacts", len(artifacts))
	return &RunResult{Data: data, Artifacts: artifacts}, nil
}

// analyze computes every aggregate and classification the renderers need.
func (s *ReportService) analyze(ctx context.Context, donations []core.Donation) *report.Data {
	nowYear := s.now().Year()
	minAmount := core.Money{Cents: s.cfg.MinAmountCents}

	first, last := analysis.YearRange(donations)
	oneTime, stopped := analysis.Patterns(donations, nowYear)
	recurring := analysis.Recurring(donations, analysis.SortMode(s.cfg.RecurringSort),
		s.cfg.RecurringMinYears, s.cfg.StaleYears, nowYear)
	consistent := analysis.ConsistentDonors(donations, s.cfg.ConsistentMinYears, minAmount, nowYear)
	focus := analysis.FocusCharities(donations, s.cfg.FocusLookbackYears,
		s.cfg.RecurringMinYears, minAmount, nowYear)
	top := analysis.TopCharities(donations, s.cfg.TopN)

	evaluations := s.evaluateTop(ctx, top)
	consider := considerations(evaluations, analysis.RecurringIDs(recurring),
		s.cfg.MinAlignment, s.cfg.MinAcceptablePct)

	s.logger.Info("Classified donation patterns",
		log.FieldOperation, log.OpClassify,
		"one_time", len(oneTime),
		"stopped", len(stopped),
		"recurring", len(recurring),
		"consistent", len(consistent),
		"focus", len(focus),
		"consider", len(consider))

	return &report.Data{
		Generated:     s.now(),
		DonationCount: len(donations),
		GrandTotal:    analysis.GrandTotal(donations),
		FirstYear:     first,
		LastYear:      last,
		Categories:    analysis.ByCategory(donations),
		Years:         analysis.ByYear(donations),
		Top:           top,
		OneTime:       oneTime,
		OneTimeTotal:  analysis.SumTotals(oneTime),
		Stopped:       stopped,
		StoppedTotal:  analysis.SumTotals(stopped),
		Recurring:     recurring,
		Consistent:    analysis.SortConsistent(consistent),
		Focus:         focus,
		Consider:      consider,
		Details:       analysis.CharityDetails(donations, top),
		Evaluations:   evaluations,
	}
}

// considerations screens the evaluated charities for new-support candidates.
// Payees already receiving recurring support are excluded.
func considerations(evaluations map[string]*charapi.Evaluation, recurring map[string]struct{}, minAlignment, minAcceptablePct int) map[string]struct{} {
	out := make(map[string]struct{})
	for id, e := range evaluations {
		if _, ok := recurring[id]; ok {
			continue
		}
		if charapi.ForConsideration(e, minAlignment, minAcceptablePct) {
			out[id] = struct{}{}
		}
	}
	return out
}

// evaluateTop scores the ranked charities. Evaluation failures degrade to a
// missing entry; the renderers show N/A.
func (s *ReportService) evaluateTop(ctx context.Context, top []core.CharityRanking) map[string]*charapi.Evaluation {
	if len(top) == 0 {
		return nil
	}

	ids := make([]string, len(top))
	for i, r := range top {
		ids[i] = r.PayeeID
	}

	evaluations, err := s.evaluator.BatchEvaluate(ctx, ids)
	if err != nil {
		s.logger.Warn("Batch evaluation failed, reports will show N/A",
			log.FieldOperation, log.OpEvaluate, log.FieldError, err)
		return nil
	}

	s.logger.Info("Evaluated top charities",
		log.FieldOperation, log.OpEvaluate,
		log.FieldCount, len(evaluations))
	return evaluations
}

func (s *ReportService) renderCharts(data *report.Data) error {
	writer := report.NewChartWriter(s.cfg.OutputDir, s.logger)

	if len(data.Years) > 0 {
		amountsRef, countsRef, err := writer.WriteYearly(data.Years)
		if err != nil {
			return fmt.Errorf("write yearly charts: %w", err)
		}
		data.Charts.YearlyAmounts = amountsRef
		data.Charts.YearlyCounts = countsRef
	}

	data.Charts.Trends = make(map[string]string, len(data.Top))
	for _, r := range data.Top {
		ref, err := writer.WriteTrend(r.Rank, r.PayeeID, data.Details[r.PayeeID])
		if err != nil {
			return fmt.Errorf("write trend chart for %s: %w", r.PayeeID, err)
		}
		if ref != "" {
			data.Charts.Trends[r.PayeeID] = ref
		}
	}
	return nil
}

// renderArtifacts writes the enabled formats concurrently. Every format
// renders from the same immutable Data.
func (s *ReportService) renderArtifacts(ctx context.Context, data *report.Data, layout report.Layout) ([]string, error) {
	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var artifacts []string
	g, _ := errgroup.WithContext(ctx)

	if s.cfg.GenerateHTML {
		artifacts = append(artifacts, HTMLArtifact)
		g.Go(func() error {
			out, err := report.NewHTMLBuilder().Build(data, layout)
			if err != nil {
				return fmt.Errorf("render html: %w", err)
			}
			return s.writeArtifact(HTMLArtifact, out)
		})
	}
	if s.cfg.GenerateMarkdown {
		artifacts = append(artifacts, MarkdownArtifact)
		g.Go(func() error {
			return s.writeArtifact(MarkdownArtifact, report.NewMarkdownBuilder().Build(data, layout))
		})
	}
	if s.cfg.GenerateText {
		artifacts = append(artifacts, TextArtifact)
		g.Go(func() error {
			return s.writeArtifact(TextArtifact, report.NewTextBuilder().Build(data, layout))
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func (s *ReportService) writeArtifact(name string, content []byte) error {
	path := filepath.Join(s.cfg.OutputDir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	s.logger.Info("Wrote report artifact",
		log.FieldOperation, log.OpRender,
		log.FieldPath, path)
	return nil
}

// publishRunSummary notifies the broker about the finished run. Failures are
// logged and swallowed; the artifacts are already on disk.
func (s *ReportService) publishRunSummary(ctx context.Context, data *report.Data, artifacts []string) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewReportRunMessage(data.Generated, data.GrandTotal.Cents, data.DonationCount, artifacts)
	if err := s.publisher.PublishReportRun(ctx, msg); err != nil {
		s.logger.Warn("Failed to publish run summary",
			log.FieldOperation, log.OpPublish, log.FieldError, err)
	}
}
