package source

import (
	"context"
	"fmt"

	"donare/internal/log"
	"donare/internal/source/csv"
	"donare/internal/source/memory"
	"donare/internal/source/sheets"
)

// Factory creates donation sources based on configuration.
type Factory interface {
	CreateSource(ctx context.Context, cfg Config) (*Result, error)
}

type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentSource)}
}

func (f *DefaultFactory) CreateSource(ctx context.Context, cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid source type: %s", cfg.Type)
	}

	switch cfg.Type {
	case CSVSource:
		return f.createCSVSource(cfg)
	case SheetsSource:
		return f.createSheetsSource(ctx, cfg)
	case MemorySource:
		return f.createMemorySource(cfg)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", cfg.Type)
	}
}

func (f *DefaultFactory) createCSVSource(cfg Config) (*Result, error) {
	if cfg.CSVPath == "" {
		return nil, fmt.Errorf("csv source requires a file path")
	}
	f.logger.Info("Initialized CSV source", log.FieldPath, cfg.CSVPath)
	return &Result{Reader: csv.New(cfg.CSVPath, f.logger)}, nil
}

func (f *DefaultFactory) createSheetsSource(ctx context.Context, cfg Config) (*Result, error) {
	cli, err := sheets.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, f.logger)
	if err != nil {
		return nil, fmt.Errorf("initialize Google Sheets source: %w", err)
	}
	f.logger.Info("Initialized Google Sheets source")
	return &Result{Reader: cli}, nil
}

func (f *DefaultFactory) createMemorySource(cfg Config) (*Result, error) {
	var store *memory.Store
	if len(cfg.Donations) > 0 {
		store = memory.New(cfg.Donations)
	} else {
		store = memory.NewSample()
	}
	f.logger.Info("Initialized memory source", log.FieldCount, len(cfg.Donations))
	return &Result{Reader: store}, nil
}
