// Package logging provides structured logging for the snmpber tool.
package logging

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Level represents the logging level.
type Level int

const (
	// LevelDebug is the most verbose level.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

// String returns the string representation of the log level.
func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLevel parses a string into a Level. Matching ignores case; unknown
// names yield LevelInfo.
func ParseLevel(s string) Level {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i)
		}
	}
	return LevelInfo
}

// Format represents the log output format.
type Format int

const (
	// FormatText outputs logfmt-style lines.
	FormatText Format = iota
	// FormatJSON outputs one JSON object per line.
	FormatJSON
)

// ParseFormat parses a string into a Format.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatText
}

// MaxLoggedBytes is how much of a []byte field is rendered as hex.
const MaxLoggedBytes = 32

// Logger is the interface for structured logging.
//
// Values are rendered as follows: errors by their message, []byte as
// lowercase hex cut at MaxLoggedBytes, fmt.Stringer by its String method
// and everything else as is.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	// WithSource returns a logger that tags entries with the input being
	// processed, such as a file name or "shell".
	WithSource(source string) Logger
	// WithFields returns a logger that adds the given pairs to every entry.
	WithFields(keysAndValues ...interface{}) Logger
}

// Config holds the logger configuration.
type Config struct {
	Level  string
	Format string
	Output string
}

type field struct {
	key   string
	value interface{}
}

type logger struct {
	level  Level
	format Format
	w      io.Writer
	// mu is shared by every logger derived from the same root.
	mu     *sync.Mutex
	source string
	fields []field
}

// New creates a Logger from cfg. Output is "stdout", "stderr" (the default)
// or a file path opened for appending; a file that cannot be opened falls
// back to stderr.
func New(cfg Config) Logger {
	var w io.Writer = os.Stderr
	switch cfg.Output {
	case "", "stderr":
	case "stdout":
		w = os.Stdout
	default:
		if f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			w = f
		}
	}
	return NewWithWriter(cfg, w)
}

// NewWithWriter creates a Logger that writes to w. cfg.Output is ignored.
func NewWithWriter(cfg Config, w io.Writer) Logger {
	return &logger{
		level:  ParseLevel(cfg.Level),
		format: ParseFormat(cfg.Format),
		w:      w,
		mu:     &sync.Mutex{},
	}
}

// NewDefault creates an info-level text logger on stderr.
func NewDefault() Logger {
	return NewWithWriter(Config{Level: "info", Format: "text"}, os.Stderr)
}

// NewNop creates a no-op logger that discards all output.
func NewNop() Logger {
	return nopLogger{}
}

func (l *logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LevelDebug, msg, keysAndValues)
}

func (l *logger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LevelInfo, msg, keysAndValues)
}

func (l *logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LevelWarn, msg, keysAndValues)
}

func (l *logger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LevelError, msg, keysAndValues)
}

func (l *logger) WithSource(source string) Logger {
	child := *l
	child.source = source
	return &child
}

func (l *logger) WithFields(keysAndValues ...interface{}) Logger {
	child := *l
	child.fields = appendPairs(append([]field(nil), l.fields...), keysAndValues)
	return &child
}

// appendPairs appends key/value pairs to fs. Non-string keys and a trailing
// key without a value are dropped.
func appendPairs(fs []field, keysAndValues []interface{}) []field {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fs = append(fs, field{key, renderValue(keysAndValues[i+1])})
		}
	}
	return fs
}

func renderValue(v interface{}) interface{} {
	switch v := v.(type) {
	case error:
		return v.Error()
	case []byte:
		if len(v) > MaxLoggedBytes {
			return fmt.Sprintf("%s...(%d bytes)", hex.EncodeToString(v[:MaxLoggedBytes]), len(v))
		}
		return hex.EncodeToString(v)
	case fmt.Stringer:
		return v.String()
	default:
		return v
	}
}

// entryFields merges inherited and per-call fields, sorted by key. A per-call
// key replaces an inherited one.
func (l *logger) entryFields(keysAndValues []interface{}) []field {
	fs := appendPairs(append([]field(nil), l.fields...), keysAndValues)
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].key < fs[j].key })

	out := fs[:0]
	for i, f := range fs {
		if i+1 < len(fs) && fs[i+1].key == f.key {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (l *logger) log(level Level, msg string, keysAndValues []interface{}) {
	if level < l.level {
		return
	}

	ts := time.Now().UTC().Format(time.RFC3339)
	fs := l.entryFields(keysAndValues)

	var buf bytes.Buffer
	if l.format == FormatJSON {
		writeJSON(&buf, ts, level, msg, l.source, fs)
	} else {
		writeText(&buf, ts, level, msg, l.source, fs)
	}
	buf.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(buf.Bytes())
}

// writeText renders "ts [level] msg source=s k=v ..." with values quoted
// when they contain spaces, quotes or '='.
func writeText(buf *bytes.Buffer, ts string, level Level, msg, source string, fs []field) {
	fmt.Fprintf(buf, "%s [%s] %s", ts, level, msg)
	if source != "" {
		fmt.Fprintf(buf, " source=%s", textValue(source))
	}
	for _, f := range fs {
		fmt.Fprintf(buf, " %s=%s", f.key, textValue(f.value))
	}
}

func textValue(v interface{}) string {
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// writeJSON renders the fixed keys first, then fs in order.
func writeJSON(buf *bytes.Buffer, ts string, level Level, msg, source string, fs []field) {
	buf.WriteByte('{')
	writeJSONPair(buf, "ts", ts)
	buf.WriteByte(',')
	writeJSONPair(buf, "level", level.String())
	buf.WriteByte(',')
	writeJSONPair(buf, "msg", msg)
	if source != "" {
		buf.WriteByte(',')
		writeJSONPair(buf, "source", source)
	}
	for _, f := range fs {
		buf.WriteByte(',')
		writeJSONPair(buf, f.key, f.value)
	}
	buf.WriteByte('}')
}

func writeJSONPair(buf *bytes.Buffer, key string, value interface{}) {
	k, _ := json.Marshal(key)
	v, err := json.Marshal(value)
	if err != nil {
		v, _ = json.Marshal(fmt.Sprint(value))
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (n nopLogger) WithSource(string) Logger         { return n }
func (n nopLogger) WithFields(...interface{}) Logger { return n }
