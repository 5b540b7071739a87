package dump

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KilimcininKorOglu/snmpber/internal/ber"
)

const indentUnit = "  "

// Tree writes an indented listing of v to w, one element per line:
//
//	SEQUENCE (3 items, 40 bytes)
//	  INTEGER 1
//	  OCTET STRING "public"
//	  [0xA0] (4 items, 27 bytes)
//	    ...
func Tree(w io.Writer, v ber.Value) error {
	t := &treeWriter{w: w}
	t.value(v, 0)
	return t.err
}

type treeWriter struct {
	w   io.Writer
	err error
}

func (t *treeWriter) line(depth int, format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, "%s%s\n", strings.Repeat(indentUnit, depth), fmt.Sprintf(format, args...))
}

func (t *treeWriter) value(val ber.Value, depth int) {
	switch v := val.(type) {
	case *ber.Sequence:
		t.line(depth, "%s (%d items, %d bytes)", containerLabel(v), v.Len(), v.EncodedLen())
		for _, c := range v.Children() {
			t.value(c, depth+1)
		}
	case *ber.OctetString:
		t.line(depth, "%s %s", v.Kind(), quoteBytes(v.Bytes()))
	case *ber.Null:
		t.line(depth, "NULL")
	case *ber.Unknown:
		t.line(depth, "[0x%02X] %s", v.Tag(), quoteBytes(v.Bytes()))
	case fmt.Stringer:
		t.line(depth, "%s %s", val.Kind(), v.String())
	default:
		t.line(depth, "%s", val.Kind())
	}
}

func containerLabel(s *ber.Sequence) string {
	if s.Kind() == ber.KindChoice {
		if tag, ok := s.ChosenTag(); ok {
			return fmt.Sprintf("CHOICE [0x%02X] alternative %d [0x%02X]", s.Tag(), s.Choice(), tag)
		}
		return fmt.Sprintf("CHOICE [0x%02X] unset", s.Tag())
	}
	if s.Tag() == ber.TagSequence {
		return "SEQUENCE"
	}
	return fmt.Sprintf("[0x%02X]", s.Tag())
}

func quoteBytes(b []byte) string {
	if isText(b) {
		return strconv.Quote(string(b))
	}
	if len(b) == 0 {
		return `""`
	}
	return "0x" + hex.EncodeToString(b)
}
