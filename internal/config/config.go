package config

import (
	"os"
	"strconv"
	"strings"

	"reddlag/internal/errors"
)

// Config represents the complete analysis run configuration
type Config struct {
	Inputs   InputConfig
	Analysis AnalysisConfig
	Report   ReportConfig
}

// InputConfig holds the paths of the three input files
type InputConfig struct {
	ReddWorkbook  string // workbook with redd counts + exclusion sheets
	ReservoirFile string // delimited reservoir pool volume time series
	SnowpackFile  string // delimited annual April 1 SWE series
}

// AnalysisConfig holds the domain parameters of the run
type AnalysisConfig struct {
	TargetComplex string   // population complex the study covers
	Populations   []string // local populations summed into the response
	MinYear       int      // first year of the reliable count window
	MaxLag        int      // reservoir covariate joined at lags 0..MaxLag
	Alpha         float64  // LRT significance threshold for elimination
}

// ReportConfig holds report output settings
type ReportConfig struct {
	OutDir string
	HTML   bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Inputs: InputConfig{
			ReddWorkbook:  os.Getenv("REDD_WORKBOOK"),
			ReservoirFile: os.Getenv("RESERVOIR_SERIES_FILE"),
			SnowpackFile:  os.Getenv("SNOWPACK_SERIES_FILE"),
		},
		Analysis: AnalysisConfig{
			TargetComplex: getEnvOrDefault("TARGET_COMPLEX", "Rimrock"),
			Populations:   splitList(getEnvOrDefault("REDD_POPULATIONS", "Indian Creek,South Fork Tieton")),
			MinYear:       getEnvIntOrDefault("MIN_YEAR", 1990),
			MaxLag:        getEnvIntOrDefault("MAX_LAG", 3),
			Alpha:         getEnvFloatOrDefault("LRT_ALPHA", 0.05),
		},
		Report: ReportConfig{
			OutDir: getEnvOrDefault("REPORT_DIR", "./reports"),
			HTML:   getEnvBoolOrDefault("REPORT_HTML", true),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Inputs.ReddWorkbook == "" {
		return errors.ConfigInvalid("REDD_WORKBOOK is required")
	}
	if config.Inputs.ReservoirFile == "" {
		return errors.ConfigInvalid("RESERVOIR_SERIES_FILE is required")
	}
	if config.Inputs.SnowpackFile == "" {
		return errors.ConfigInvalid("SNOWPACK_SERIES_FILE is required")
	}
	if len(config.Analysis.Populations) == 0 {
		return errors.ConfigInvalid("REDD_POPULATIONS must name at least one local population")
	}
	if config.Analysis.MaxLag < 0 {
		return errors.ConfigInvalid("MAX_LAG cannot be negative")
	}
	if config.Analysis.Alpha <= 0 || config.Analysis.Alpha >= 1 {
		return errors.ConfigInvalid("LRT_ALPHA must be in (0, 1)")
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
