// Package logging provides structured logging for the snmpber tool.
//
// Logs go to stderr by default so they never mix with decoded output on
// stdout. A Logger has four levels (debug, info, warn, error) and writes
// either logfmt-style text or one JSON object per line.
//
// # Creating a Logger
//
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stderr", // or "stdout", or a file path
//	})
//
// NewWithWriter targets any io.Writer, and NewNop discards everything.
//
// # Fields
//
// Entries carry key/value pairs. Values are rendered for the codec's needs:
//
//	logger.Error("failed to decode",
//	    "bytes", len(data),
//	    "data", data,         // []byte: hex, first 32 bytes
//	    "kind", v.Kind(),     // fmt.Stringer: "OBJECT IDENTIFIER"
//	    "error", err,         // error: its message
//	)
//
// WithFields and WithSource derive loggers that add pairs to every entry.
// A key passed to the call itself wins over an inherited one:
//
//	fileLogger := logger.WithSource("capture/0001.ber")
//	fileLogger.Warn("trailing data", "offset", 40)
//
// Derived loggers share the root's lock, so lines written from concurrent
// goroutines never interleave.
//
// # Output Formats
//
// Text puts source first, then the fields sorted by key. Values containing
// spaces, quotes or '=' are quoted:
//
//	2026-02-18T10:30:00Z [error] failed to decode source=arg1 bytes=2 data=0501 error="ber: truncated value"
//
// JSON writes ts, level, msg and source first, then the sorted fields:
//
//	{"ts":"2026-02-18T10:30:00Z","level":"warn","msg":"trailing data","source":"capture/0001.ber","offset":40}
package logging
