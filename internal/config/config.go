// Package config provides configuration parsing for the snmpber tool.
package config

// Config holds the complete tool configuration.
type Config struct {
	Logging LogConfig     `yaml:"logging"`
	Codec   CodecConfig   `yaml:"codec"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// CodecConfig holds encoder and decoder settings.
type CodecConfig struct {
	// MaxMessageSize caps the size of encoded messages in bytes.
	MaxMessageSize int `yaml:"maxMessageSize"`
	// Format is the default decode output: tree or json.
	Format string `yaml:"format"`
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	// Textfile is the path of a node_exporter textfile written after each
	// command. Empty disables the export.
	Textfile  string `yaml:"textfile"`
	Namespace string `yaml:"namespace"`
}
