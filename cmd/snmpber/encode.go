package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/snmpber/internal/ber"
	"github.com/KilimcininKorOglu/snmpber/internal/dump"
	"github.com/KilimcininKorOglu/snmpber/internal/metrics"
)

type encodeOptions struct {
	maxSize int
	output  string
}

func newEncodeCmd(a *app) *cobra.Command {
	opts := &encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a JSON value tree as BER",
		Long: `Encode the JSON form produced by "decode --format json" back to BER. The
input is read from file, or from standard input when file is omitted or "-".
The encoding is printed as hex unless --output names a file for the raw
bytes. Values larger than the maximum message size are rejected.`,
		Example: `  snmpber encode request.json
  echo '{"type":"integer","value":"-129"}' | snmpber encode
  snmpber encode --max-size 484 -o request.ber request.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.withMetrics(func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return a.encode(cmd.InOrStdin(), cmd.OutOrStdout(), opts, path)
		}),
	}

	cmd.Flags().IntVar(&opts.maxSize, "max-size", 0, "Maximum encoded size in bytes (default codec.maxMessageSize)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write raw bytes to this file instead of printing hex")
	return cmd
}

func (a *app) encode(stdin io.Reader, w io.Writer, opts *encodeOptions, path string) error {
	data, err := readInput(path, stdin, false)
	if err != nil {
		return err
	}

	v, err := dump.UnmarshalJSON(data)
	if err != nil {
		return err
	}

	maxSize := opts.maxSize
	if maxSize <= 0 {
		maxSize = a.cfg.Codec.MaxMessageSize
	}

	out, err := ber.MarshalLimit(v, maxSize)
	a.metrics.Observe(metrics.OpEncode, v.Kind(), len(out), err)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	log := a.log.WithSource(path)
	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.output, err)
		}
		log.Info("encoded", "bytes", len(out), "output", opts.output)
		return nil
	}

	log.Info("encoded", "bytes", len(out))
	_, err = fmt.Fprintln(w, hex.EncodeToString(out))
	return err
}
