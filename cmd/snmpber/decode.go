package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KilimcininKorOglu/snmpber/internal/ber"
	"github.com/KilimcininKorOglu/snmpber/internal/dump"
	"github.com/KilimcininKorOglu/snmpber/internal/metrics"
	"github.com/KilimcininKorOglu/snmpber/internal/snmp"
)

// Output formats.
const (
	formatTree = "tree"
	formatJSON = "json"
)

var errNoInput = errors.New("nothing to decode: pass hex arguments or --file")

type decodeOptions struct {
	files   []string
	hexText bool
	format  string
	message bool
}

func newDecodeCmd(a *app) *cobra.Command {
	opts := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode [hex...]",
		Short: "Decode BER data and print it",
		Long: `Decode one BER element per input and print it as an indented tree or as
JSON. Inputs are hex arguments (whitespace, colons and a 0x prefix are
ignored) and files given with --file, which hold raw bytes unless --hex is
set. "-" reads standard input. Files are decoded concurrently; results are
printed in input order.`,
		Example: `  snmpber decode "30 05 02 01 05 05 00"
  snmpber decode --message -f capture1.ber -f capture2.ber
  xxd -p capture.ber | snmpber decode --hex -f -`,
		RunE: a.withMetrics(func(cmd *cobra.Command, args []string) error {
			return a.decode(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts, args)
		}),
	}

	cmd.Flags().StringArrayVarP(&opts.files, "file", "f", nil, "File to decode (repeatable, - for stdin)")
	cmd.Flags().BoolVar(&opts.hexText, "hex", false, "Files contain hex text instead of raw bytes")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: tree or json (default from config)")
	cmd.Flags().BoolVarP(&opts.message, "message", "m", false, "Parse inputs as SNMP messages and print a summary")
	return cmd
}

// decodeInput is one thing to decode: inline bytes from an argument or a
// file path read on demand.
type decodeInput struct {
	name string
	data []byte
	path string
}

type decodeResult struct {
	value ber.Value
	msg   *snmp.Message
	err   error
}

func (a *app) decode(ctx context.Context, stdin io.Reader, w io.Writer, opts *decodeOptions, args []string) error {
	format := opts.format
	if format == "" {
		format = a.cfg.Codec.Format
	}
	format = strings.ToLower(format)
	if format != formatTree && format != formatJSON {
		return fmt.Errorf("unknown format %q (want tree or json)", format)
	}
	if opts.message && format == formatJSON {
		return errors.New("--message prints a text summary and cannot be combined with --format json")
	}

	inputs := make([]decodeInput, 0, len(args)+len(opts.files))
	for i, arg := range args {
		data, err := parseHex(arg)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
		inputs = append(inputs, decodeInput{name: fmt.Sprintf("arg%d", i+1), data: data})
	}
	stdinUsed := false
	for _, path := range opts.files {
		if path == "-" {
			if stdinUsed {
				return errors.New("standard input can only be read once")
			}
			stdinUsed = true
		}
		inputs = append(inputs, decodeInput{name: path, path: path})
	}
	if len(inputs) == 0 {
		return errNoInput
	}

	results := make([]decodeResult, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		i, in := i, in // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data := in.data
			if in.path != "" {
				var err error
				if data, err = readInput(in.path, stdin, opts.hexText); err != nil {
					return err
				}
			}
			results[i] = a.decodeOne(in.name, data, opts.message)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, r := range results {
		if r.err != nil {
			failed++
			continue
		}
		if len(inputs) > 1 && format == formatTree {
			fmt.Fprintf(w, "== %s ==\n", inputs[i].name)
		}
		if err := printResult(w, r, format); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed to decode", failed, len(inputs))
	}
	return nil
}

func (a *app) decodeOne(name string, data []byte, message bool) decodeResult {
	log := a.log.WithSource(name)

	if message {
		msg, err := snmp.ParseMessage(data)
		a.metrics.Observe(metrics.OpDecode, leadingKind(data), len(data), err)
		if err != nil {
			log.Error("failed to parse message", "bytes", len(data), "data", data, "error", err)
			return decodeResult{err: err}
		}
		log.Info("message parsed", "bytes", len(data), "pdu", msg.Type().String())
		return decodeResult{msg: msg}
	}

	v, err := ber.Unmarshal(data)
	a.metrics.Observe(metrics.OpDecode, leadingKind(data), len(data), err)
	if err != nil {
		log.Error("failed to decode", "bytes", len(data), "data", data, "error", err)
		return decodeResult{err: err}
	}
	log.Info("decoded", "bytes", len(data), "kind", v.Kind().String())
	return decodeResult{value: v}
}

func printResult(w io.Writer, r decodeResult, format string) error {
	if r.msg != nil {
		return dump.Message(w, r.msg)
	}
	if format == formatJSON {
		data, err := dump.MarshalJSON(r.value)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	return dump.Tree(w, r.value)
}

// leadingKind names the kind announced by the first tag byte, for metric
// labels that must exist even when decoding fails.
func leadingKind(data []byte) ber.Kind {
	if len(data) == 0 {
		return ber.KindUnknown
	}
	kind := ber.KindForTag(data[0])
	if kind == ber.KindUnknown && ber.IsConstructed(data[0]) {
		return ber.KindSequence
	}
	return kind
}

func readInput(path string, stdin io.Reader, hexText bool) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !hexText {
		return data, nil
	}
	data, err = parseHex(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// parseHex decodes a hex dump. Whitespace and colons between digits and a
// leading 0x are ignored.
func parseHex(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, errors.New("empty hex input")
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}
