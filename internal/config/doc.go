// Package config provides configuration parsing for the snmpber tool.
//
// # Overview
//
// The config package handles loading, parsing, and validating configuration
// from YAML files and environment variables. It supports:
//
//   - YAML configuration files
//   - Environment variable substitution and overrides
//   - Default values for all settings
//   - Configuration validation
//
// # Loading Configuration
//
// Load configuration from a YAML file:
//
//	cfg, err := config.LoadConfig("/etc/snmpber/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or use defaults:
//
//	cfg := config.DefaultConfig()
//
// # Environment Variables
//
// Values may reference the environment as ${VAR} or ${VAR:-default}. After
// parsing, two variables override the file:
//
//	SNMPBER_LOG_LEVEL=debug
//	SNMPBER_MAX_MESSAGE_SIZE=1472
//
// # Validation
//
// ValidateConfig returns every problem found instead of stopping at the
// first one:
//
//	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
//	    for _, err := range errs {
//	        fmt.Fprintln(os.Stderr, err)
//	    }
//	}
//
// # Example Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stderr"
//
//	codec:
//	  maxMessageSize: 1472
//	  format: "tree"
//
//	metrics:
//	  textfile: "/var/lib/node_exporter/textfile/snmpber.prom"
//	  namespace: "snmpber"
package config
