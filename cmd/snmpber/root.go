package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/snmpber/internal/config"
	"github.com/KilimcininKorOglu/snmpber/internal/logging"
	"github.com/KilimcininKorOglu/snmpber/internal/metrics"
)

// app carries the state shared by all subcommands once the configuration is
// loaded.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     logging.Logger
	metrics *metrics.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{log: logging.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "snmpber",
		Short: "Decode and encode SNMP BER data",
		Long: `snmpber decodes and encodes the ASN.1 BER subset used by SNMP: INTEGER,
OCTET STRING, OBJECT IDENTIFIER, NULL, SEQUENCE and the SMI application types
IpAddress, Counter32, Gauge32, TimeTicks, Opaque, Counter64 and UInteger32.`,
		Example: `  # Decode a hex dump as a tree
  snmpber decode 302602010104067075626c6963a019...

  # Summarize captured SNMP messages, several files at once
  snmpber decode --message -f get.ber -f trap.ber

  # Re-encode an edited JSON tree
  snmpber decode --format json -f get.ber > get.json
  snmpber encode get.json

  # Interactive decoding
  snmpber shell`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(
		newDecodeCmd(a),
		newEncodeCmd(a),
		newShellCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads and validates the configuration, then builds the logger and
// the optional metrics sink.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	a.cfg = cfg

	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if cfg.Logging.Output == "" || cfg.Logging.Output == "stderr" {
		a.log = logging.NewWithWriter(logCfg, cmd.ErrOrStderr())
	} else {
		a.log = logging.New(logCfg)
	}

	if cfg.Metrics.Textfile != "" {
		m, err := metrics.New(cfg.Metrics.Namespace)
		if err != nil {
			return err
		}
		a.metrics = m
	}

	a.log.Debug("configuration loaded",
		"path", a.cfgFile,
		"maxMessageSize", cfg.Codec.MaxMessageSize,
		"metrics", cfg.Metrics.Textfile != "",
	)
	return nil
}

// withMetrics wraps a RunE so the metrics textfile is written after the
// command, whether it failed or not.
func (a *app) withMetrics(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if a.metrics == nil {
			return err
		}
		if werr := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); werr != nil {
			a.log.Error("failed to write metrics", "error", werr)
			if err == nil {
				err = werr
			}
		} else {
			a.log.Debug("metrics written", "path", a.cfg.Metrics.Textfile)
		}
		return err
	}
}
