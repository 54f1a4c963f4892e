// Command donare loads a donation export, analyzes giving patterns, and
// writes HTML, Markdown, and plain-text reports with supporting charts.
package main

import (
	"context"
	"os"

	"donare/internal/cli"
	"donare/internal/log"
	"donare/internal/services"
	"donare/internal/source"
)

func main() {
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig(cli.SetupLogger("info"))
	logger := cli.SetupLogger(cfg.LogLevel)

	ctx := context.Background()

	factory := source.NewFactory(logger)
	src, err := factory.CreateSource(ctx, source.Config{
		Type:                source.Type(cfg.DonationSource),
		CSVPath:             cfg.InputFile,
		GoogleSpreadsheetID: cfg.GoogleSpreadsheetID,
		GoogleSheetName:     cfg.GoogleSheetName,
	})
	if err != nil {
		logger.Error("Failed to initialize donation source", log.FieldError, err)
		os.Exit(1)
	}
	if src.Cleanup != nil {
		defer src.Cleanup()
	}

	evaluator, closeCache := cli.InitEvaluator(cfg, logger)
	if closeCache != nil {
		defer closeCache()
	}

	publisher := cli.InitPublisher(cfg, logger)
	if publisher != nil {
		defer publisher.Close()
	}

	svc := services.NewReportService(cfg, src.Reader, evaluator, publisher, logger)
	result, err := svc.Run(ctx)
	if err != nil {
		logger.Error("Report run failed", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Done",
		log.FieldCount, result.Data.DonationCount,
		"artifacts", result.Artifacts,
		"output_dir", cfg.OutputDir)
}
