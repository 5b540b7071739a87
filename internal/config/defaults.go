package config

// MaxUDPPayload is the largest SNMP message a UDP datagram can carry.
const MaxUDPPayload = 65507

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Logging: LogConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
		Codec: CodecConfig{
			MaxMessageSize: MaxUDPPayload,
			Format:         "tree",
		},
		Metrics: MetricsConfig{
			Textfile:  "",
			Namespace: "snmpber",
		},
	}
}
