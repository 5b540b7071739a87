package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v2"
)

// Parser errors.
var (
	ErrInvalidYAML   = errors.New("invalid YAML format")
	ErrInvalidNumber = errors.New("invalid number format")
	ErrFileNotFound  = errors.New("configuration file not found")
)

// Environment variables that override file settings.
const (
	EnvLogLevel       = "SNMPBER_LOG_LEVEL"
	EnvMaxMessageSize = "SNMPBER_MAX_MESSAGE_SIZE"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// LoadConfig loads configuration from a file path.
// It reads the file, substitutes environment variables, parses YAML,
// and applies defaults for missing values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	return ParseConfig(data)
}

// ParseConfig parses configuration from YAML data.
// It substitutes environment variables, applies defaults for missing values
// and finally the SNMPBER_* environment overrides.
func ParseConfig(data []byte) (*Config, error) {
	data = substituteEnvVars(data)

	config := DefaultConfig()

	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Load returns the configuration at path, or the defaults with environment
// overrides applied when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		config := DefaultConfig()
		if err := applyEnvOverrides(config); err != nil {
			return nil, err
		}
		return config, nil
	}
	return LoadConfig(path)
}

// substituteEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment variable values.
func substituteEnvVars(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		content := string(match[2 : len(match)-1])

		if idx := strings.Index(content, ":-"); idx != -1 {
			varName := content[:idx]
			defaultVal := content[idx+2:]
			if val := os.Getenv(varName); val != "" {
				return []byte(val)
			}
			return []byte(defaultVal)
		}

		return []byte(os.Getenv(content))
	})
}

func applyEnvOverrides(config *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv(EnvMaxMessageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidNumber, EnvMaxMessageSize, v)
		}
		config.Codec.MaxMessageSize = n
	}
	return nil
}
