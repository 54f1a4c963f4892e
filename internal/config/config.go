// Package config loads the application configuration from environment
// variables and validates it as a whole, reporting every problem at once.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Donation source
	DonationSource      string
	InputFile           string
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Output
	OutputDir        string
	GenerateHTML     bool
	GenerateMarkdown bool
	GenerateText     bool
	LayoutPath       string

	// Analysis thresholds
	TopN               int
	ConsistentMinYears int
	RecurringMinYears  int
	MinAmountCents     int64
	StaleYears         int
	FocusLookbackYears int
	RecurringSort      string

	// Evaluation
	MinAlignment     int
	MinAcceptablePct int
	EvalCachePath    string
	EvalCacheTTL     time.Duration

	// AMQP (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		DonationSource:      getEnv("DONATION_SOURCE", "csv"),
		InputFile:           getEnv("INPUT_FILE", "./data/donations.csv"),
		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", ""),

		OutputDir:        getEnv("OUTPUT_DIR", "./output"),
		GenerateHTML:     getEnvBool("GENERATE_HTML", true),
		GenerateMarkdown: getEnvBool("GENERATE_MARKDOWN", true),
		GenerateText:     getEnvBool("GENERATE_TEXT", false),
		LayoutPath:       getEnv("REPORT_LAYOUT_FILE", ""),

		TopN:               getEnvInt("TOP_N", 10),
		ConsistentMinYears: getEnvInt("CONSISTENT_MIN_YEARS", 5),
		RecurringMinYears:  getEnvInt("RECURRING_MIN_YEARS", 4),
		MinAmountCents:     int64(getEnvInt("MIN_AMOUNT_CENTS", 50000)),
		StaleYears:         getEnvInt("STALE_YEARS", 4),
		FocusLookbackYears: getEnvInt("FOCUS_LOOKBACK_YEARS", 5),
		RecurringSort:      getEnv("RECURRING_SORT", "total"),

		MinAlignment:     getEnvInt("MIN_ALIGNMENT", 70),
		MinAcceptablePct: getEnvInt("MIN_ACCEPTABLE_PCT", 70),
		EvalCachePath:    getEnv("EVAL_CACHE_PATH", "./data/evaluations.db"),
		EvalCacheTTL:     getEnvDuration("EVAL_CACHE_TTL", 30*24*time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "donare"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_runs"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var errors []string

	validSources := []string{"csv", "sheets", "memory"}
	if !contains(validSources, c.DonationSource) {
		errors = append(errors, fmt.Sprintf("invalid donation source '%s': must be one of %v", c.DonationSource, validSources))
	}

	if c.DonationSource == "csv" && c.InputFile == "" {
		errors = append(errors, "input file cannot be empty when using csv source")
	}
	if c.DonationSource == "sheets" && c.GoogleSpreadsheetID == "" {
		errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
	}

	if !c.GenerateHTML && !c.GenerateMarkdown && !c.GenerateText {
		errors = append(errors, "at least one output format must be enabled")
	}

	if c.OutputDir == "" {
		errors = append(errors, "output directory cannot be empty")
	} else {
		if _, err := os.Stat(c.OutputDir); os.IsNotExist(err) {
			if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("cannot create output directory '%s': %v", c.OutputDir, err))
			}
		}
	}

	if c.LayoutPath != "" {
		if _, err := os.Stat(c.LayoutPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("report layout file does not exist: %s", c.LayoutPath))
		}
	}

	if c.TopN < 1 {
		errors = append(errors, fmt.Sprintf("invalid top N %d: must be at least 1", c.TopN))
	}
	if c.ConsistentMinYears < 1 {
		errors = append(errors, fmt.Sprintf("invalid consistent min years %d: must be at least 1", c.ConsistentMinYears))
	}
	if c.RecurringMinYears < 1 {
		errors = append(errors, fmt.Sprintf("invalid recurring min years %d: must be at least 1", c.RecurringMinYears))
	}
	if c.MinAmountCents < 0 {
		errors = append(errors, fmt.Sprintf("invalid min amount %d cents: cannot be negative", c.MinAmountCents))
	}
	if c.StaleYears < 1 {
		errors = append(errors, fmt.Sprintf("invalid stale years %d: must be at least 1", c.StaleYears))
	}
	if c.FocusLookbackYears < 1 {
		errors = append(errors, fmt.Sprintf("invalid focus lookback %d: must be at least 1", c.FocusLookbackYears))
	}

	validSorts := []string{"total", "annual"}
	if !contains(validSorts, c.RecurringSort) {
		errors = append(errors, fmt.Sprintf("invalid recurring sort '%s': must be one of %v", c.RecurringSort, validSorts))
	}

	if c.MinAlignment < 0 || c.MinAlignment > 100 {
		errors = append(errors, fmt.Sprintf("invalid min alignment %d: must be between 0 and 100", c.MinAlignment))
	}
	if c.MinAcceptablePct < 0 || c.MinAcceptablePct > 100 {
		errors = append(errors, fmt.Sprintf("invalid min acceptable pct %d: must be between 0 and 100", c.MinAcceptablePct))
	}

	if c.EvalCachePath != "" {
		dir := filepath.Dir(c.EvalCachePath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create evaluation cache directory '%s': %v", dir, err))
				}
			}
		}
		if c.EvalCacheTTL <= 0 {
			errors = append(errors, fmt.Sprintf("invalid evaluation cache TTL %v: must be positive", c.EvalCacheTTL))
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
