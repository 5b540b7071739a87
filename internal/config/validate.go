package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig validates the configuration and returns a list of validation errors.
// An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []error {
	var errs []error

	errs = append(errs, validateLogConfig(&config.Logging)...)
	errs = append(errs, validateCodecConfig(&config.Codec)...)
	errs = append(errs, validateMetricsConfig(&config.Metrics)...)

	return errs
}

// validateLogConfig validates logging configuration.
func validateLogConfig(config *LogConfig) []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if config.Level != "" && !validLevels[strings.ToLower(config.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: "must be debug, info, warn, or error",
		})
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if config.Format != "" && !validFormats[strings.ToLower(config.Format)] {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: "must be text or json",
		})
	}

	if config.Output != "" && config.Output != "stdout" && config.Output != "stderr" {
		if err := validateFilePath(config.Output); err != nil {
			errs = append(errs, ValidationError{
				Field:   "logging.output",
				Message: "must be stdout, stderr, or " + err.Error(),
			})
		}
	}

	return errs
}

// validateCodecConfig validates codec configuration.
func validateCodecConfig(config *CodecConfig) []error {
	var errs []error

	// 484 is the smallest message size every SNMP entity must accept.
	if config.MaxMessageSize < 484 || config.MaxMessageSize > MaxUDPPayload {
		errs = append(errs, ValidationError{
			Field:   "codec.maxMessageSize",
			Message: fmt.Sprintf("must be between 484 and %d", MaxUDPPayload),
		})
	}

	validFormats := map[string]bool{"tree": true, "json": true}
	if !validFormats[strings.ToLower(config.Format)] {
		errs = append(errs, ValidationError{
			Field:   "codec.format",
			Message: "must be tree or json",
		})
	}

	return errs
}

// validateMetricsConfig validates metrics configuration.
func validateMetricsConfig(config *MetricsConfig) []error {
	var errs []error

	if config.Textfile != "" {
		if err := validateFilePath(config.Textfile); err != nil {
			errs = append(errs, ValidationError{
				Field:   "metrics.textfile",
				Message: "must be " + err.Error(),
			})
		} else if !strings.HasSuffix(config.Textfile, ".prom") {
			errs = append(errs, ValidationError{
				Field:   "metrics.textfile",
				Message: "must have the .prom extension",
			})
		}
	}

	return errs
}

// validateFilePath checks that path is absolute and its directory exists.
func validateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("an absolute file path")
	}
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("a file in an existing directory (%s does not exist)", dir)
	}
	return nil
}
