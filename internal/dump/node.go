package dump

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/KilimcininKorOglu/snmpber/internal/ber"
)

// ErrInvalidNode is returned by FromNode for a node that does not describe a
// valid value.
var ErrInvalidNode = errors.New("dump: invalid node")

// Node is the JSON form of a ber value.
//
// Tag is written in hex ("0xA2") and is only present when it cannot be
// derived from Type. Octet strings use Value when the payload is printable
// text and Hex otherwise.
type Node struct {
	Type     string `json:"type"`
	Tag      string `json:"tag,omitempty"`
	Value    string `json:"value,omitempty"`
	Hex      string `json:"hex,omitempty"`
	Children []Node `json:"children,omitempty"`
}

var typeNames = map[ber.Kind]string{
	ber.KindInteger:    "integer",
	ber.KindString:     "string",
	ber.KindIPAddress:  "ipaddress",
	ber.KindObjectID:   "oid",
	ber.KindSequence:   "sequence",
	ber.KindChoice:     "choice",
	ber.KindCounter:    "counter",
	ber.KindGauge:      "gauge",
	ber.KindTimeTicks:  "timeticks",
	ber.KindOpaque:     "opaque",
	ber.KindNull:       "null",
	ber.KindUnknown:    "unknown",
	ber.KindUInteger32: "uinteger32",
	ber.KindCounter64:  "counter64",
}

var typeKinds = func() map[string]ber.Kind {
	m := make(map[string]ber.Kind, len(typeNames))
	for k, name := range typeNames {
		m[name] = k
	}
	return m
}()

// TypeName returns the Node type string for kind.
func TypeName(kind ber.Kind) string {
	return typeNames[kind]
}

// ToNode converts v into its JSON form.
func ToNode(v ber.Value) Node {
	n := Node{Type: typeNames[v.Kind()]}

	switch v := v.(type) {
	case *ber.Integer:
		n.Value = v.String()
	case *ber.Unsigned:
		n.Value = v.String()
	case *ber.Counter64:
		n.Value = v.String()
	case *ber.OctetString:
		if isText(v.Bytes()) {
			n.Value = string(v.Bytes())
		} else {
			n.Hex = hex.EncodeToString(v.Bytes())
		}
	case *ber.IPAddress:
		n.Value = v.String()
	case *ber.ObjectID:
		n.Value = v.String()
	case *ber.Unknown:
		n.Tag = formatTag(v.Tag())
		n.Hex = hex.EncodeToString(v.Bytes())
	case *ber.Sequence:
		if v.Tag() != ber.TagSequence || v.Kind() == ber.KindChoice {
			n.Tag = formatTag(v.Tag())
		}
		n.Children = make([]Node, 0, v.Len())
		for _, c := range v.Children() {
			n.Children = append(n.Children, ToNode(c))
		}
	}
	return n
}

// FromNode builds the value described by n.
func FromNode(n Node) (ber.Value, error) {
	return fromNode(n, "$")
}

func fromNode(n Node, path string) (ber.Value, error) {
	kind, ok := typeKinds[n.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s: unknown type %q", ErrInvalidNode, path, n.Type)
	}
	if len(n.Children) > 0 && kind != ber.KindSequence && kind != ber.KindChoice {
		return nil, fmt.Errorf("%w: %s: %s cannot have children", ErrInvalidNode, path, n.Type)
	}

	switch kind {
	case ber.KindInteger:
		v, err := strconv.ParseInt(n.Value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidNode, path, err)
		}
		return ber.NewInteger(int32(v)), nil

	case ber.KindCounter, ber.KindGauge, ber.KindTimeTicks, ber.KindUInteger32:
		v, err := strconv.ParseUint(n.Value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidNode, path, err)
		}
		return ber.NewUnsigned(kind, uint32(v)), nil

	case ber.KindCounter64:
		v, err := strconv.ParseUint(n.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidNode, path, err)
		}
		return ber.NewCounter64(v), nil

	case ber.KindString, ber.KindOpaque:
		data, err := payload(n, path)
		if err != nil {
			return nil, err
		}
		if kind == ber.KindOpaque {
			return ber.NewOpaque(data), nil
		}
		return ber.NewOctetString(data), nil

	case ber.KindIPAddress:
		v, err := ber.ParseIPAddress(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidNode, path, err)
		}
		return v, nil

	case ber.KindObjectID:
		v, err := ber.ParseObjectID(n.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidNode, path, err)
		}
		return v, nil

	case ber.KindNull:
		return ber.NewNull(), nil

	case ber.KindUnknown:
		if n.Tag == "" {
			return nil, fmt.Errorf("%w: %s: unknown needs a tag", ErrInvalidNode, path)
		}
		tag, err := parseTag(n.Tag, path)
		if err != nil {
			return nil, err
		}
		if ber.IsConstructed(tag) || ber.KindForTag(tag) != ber.KindUnknown {
			return nil, fmt.Errorf("%w: %s: tag %s is not an unknown primitive tag", ErrInvalidNode, path, n.Tag)
		}
		data, err := hex.DecodeString(n.Hex)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidNode, path, err)
		}
		return ber.NewUnknown(tag, data), nil
	}

	// sequence or choice
	tag := byte(ber.TagSequence)
	if n.Tag != "" {
		var err error
		if tag, err = parseTag(n.Tag, path); err != nil {
			return nil, err
		}
		if !ber.IsConstructed(tag) {
			return nil, fmt.Errorf("%w: %s: tag %s is not constructed", ErrInvalidNode, path, n.Tag)
		}
	}
	var s *ber.Sequence
	if kind == ber.KindChoice {
		s = ber.NewChoice(tag)
	} else {
		s = ber.NewTaggedSequence(tag)
	}
	for i, c := range n.Children {
		v, err := fromNode(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		s.Append(v)
	}
	return s, nil
}

// MarshalJSON returns the indented JSON form of v.
func MarshalJSON(v ber.Value) ([]byte, error) {
	return json.MarshalIndent(ToNode(v), "", "  ")
}

// UnmarshalJSON parses the JSON form of a value.
func UnmarshalJSON(data []byte) (ber.Value, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNode, err)
	}
	return FromNode(n)
}

func payload(n Node, path string) ([]byte, error) {
	if n.Hex == "" {
		return []byte(n.Value), nil
	}
	if n.Value != "" {
		return nil, fmt.Errorf("%w: %s: both value and hex set", ErrInvalidNode, path)
	}
	data, err := hex.DecodeString(n.Hex)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidNode, path, err)
	}
	return data, nil
}

func formatTag(tag byte) string {
	return fmt.Sprintf("0x%02X", tag)
}

func parseTag(s, path string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: bad tag %q", ErrInvalidNode, path, s)
	}
	return byte(v), nil
}

// isText reports whether b is non-empty printable UTF-8.
func isText(b []byte) bool {
	if len(b) == 0 || !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) && r != ' ' {
			return false
		}
	}
	return true
}
