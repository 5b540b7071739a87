package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/snmpber/internal/ber"
	"github.com/KilimcininKorOglu/snmpber/internal/dump"
	"github.com/KilimcininKorOglu/snmpber/internal/metrics"
)

const modeMessage = "msg"

var errExit = errors.New("exit")

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Decode hex input interactively",
		Long: `Start an interactive session. Each line of hex is decoded and printed in the
current mode (tree, json or msg). Type "help" for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: a.withMetrics(func(cmd *cobra.Command, _ []string) error {
			return a.runShell()
		}),
	}
}

func (a *app) runShell() error {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".snmpber_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "snmpber> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("tree"),
			readline.PcItem("json"),
			readline.PcItem(modeMessage),
			readline.PcItem("mode",
				readline.PcItem(formatTree),
				readline.PcItem(formatJSON),
				readline.PcItem(modeMessage),
			),
			readline.PcItem("oid"),
			readline.PcItem("int"),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	s := newShell(a, rl.Stdout(), a.cfg.Codec.Format)
	fmt.Fprintln(rl.Stdout(), "snmpber shell - type 'help' for commands")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				break
			}
			return err
		}

		if err := s.exec(line); err != nil {
			if err == errExit {
				return nil
			}
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
		rl.SetPrompt(s.prompt())
	}
	return nil
}

// shell interprets one command line at a time. It is kept apart from the
// readline loop so commands can be driven from tests.
type shell struct {
	a    *app
	out  io.Writer
	mode string
}

func newShell(a *app, out io.Writer, mode string) *shell {
	if mode != formatJSON {
		mode = formatTree
	}
	return &shell{a: a, out: out, mode: mode}
}

func (s *shell) prompt() string {
	if s.mode == formatTree {
		return "snmpber> "
	}
	return fmt.Sprintf("snmpber(%s)> ", s.mode)
}

func (s *shell) exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "exit", "quit":
		return errExit
	case "?", "help":
		s.help()
		return nil
	case "mode":
		switch rest {
		case formatTree, formatJSON, modeMessage:
			s.mode = rest
			return nil
		}
		return fmt.Errorf("unknown mode %q (want tree, json or msg)", rest)
	case formatTree, formatJSON, modeMessage:
		return s.decode(cmd, rest)
	case "oid":
		oid, err := ber.ParseObjectID(rest)
		if err != nil {
			return err
		}
		return s.encode(oid)
	case "int":
		n, err := strconv.ParseInt(rest, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid INTEGER %q: %w", rest, err)
		}
		return s.encode(ber.NewInteger(int32(n)))
	default:
		return s.decode(s.mode, line)
	}
}

func (s *shell) decode(mode, text string) error {
	data, err := parseHex(text)
	if err != nil {
		return err
	}
	r := s.a.decodeOne("shell", data, mode == modeMessage)
	if r.err != nil {
		return r.err
	}
	format := formatTree
	if mode == formatJSON {
		format = formatJSON
	}
	return printResult(s.out, r, format)
}

func (s *shell) encode(v ber.Value) error {
	data, err := ber.Marshal(v)
	s.a.metrics.Observe(metrics.OpEncode, v.Kind(), len(data), err)
	if err != nil {
		return err
	}
	tw := &strings.Builder{}
	if err := dump.Tree(tw, v); err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.out, "%s%s\n", tw.String(), splitHex(data))
	return err
}

func (s *shell) help() {
	fmt.Fprint(s.out, `Commands:
  <hex>             decode in the current mode
  tree <hex>        decode and print an indented tree
  json <hex>        decode and print JSON
  msg <hex>         parse an SNMP message and print a summary
  mode tree|json|msg
                    set the mode used for bare hex lines
  oid <dotted>      encode an OBJECT IDENTIFIER
  int <n>           encode an INTEGER
  help              show this help
  exit              leave the shell
`)
}

// splitHex formats data as space separated hex bytes.
func splitHex(data []byte) string {
	var b strings.Builder
	for i, c := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", c)
	}
	return b.String()
}
