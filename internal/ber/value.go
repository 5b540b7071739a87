// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import "fmt"

// Value is a single ASN.1 value that knows its own BER encoding.
//
// For every Value v, EncodedLen reports exactly the number of bytes a
// following Encode appends, tag and length included. Decode consumes exactly
// that many bytes from the decoder and leaves the offset untouched on failure.
type Value interface {
	Kind() Kind
	EncodedLen() int
	Encode(e *Encoder) error
	Decode(d *Decoder) error
}

// NewValue returns an empty value of the given kind, ready to Decode into.
func NewValue(kind Kind) Value {
	switch kind {
	case KindInteger:
		return &Integer{}
	case KindString, KindOpaque:
		return &OctetString{kind: kind}
	case KindIPAddress:
		return &IPAddress{}
	case KindObjectID:
		return &ObjectID{}
	case KindSequence:
		return NewSequence()
	case KindChoice:
		return NewChoice(TagSequence)
	case KindCounter, KindGauge, KindTimeTicks, KindUInteger32:
		return &Unsigned{kind: kind}
	case KindCounter64:
		return &Counter64{}
	case KindNull:
		return &Null{}
	default:
		return &Unknown{}
	}
}

// valueForTag picks the value to decode a child whose tag byte is tag.
func valueForTag(tag byte) Value {
	kind := KindForTag(tag)
	if kind == KindUnknown && IsConstructed(tag) {
		return NewTaggedSequence(tag)
	}
	return NewValue(kind)
}

// Marshal returns the complete BER encoding of v.
func Marshal(v Value) ([]byte, error) {
	enc := NewEncoder(v.EncodedLen())
	if err := v.Encode(enc); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// MarshalLimit is Marshal with a cap on the encoded size. When v would need
// more than maxLen bytes it returns ErrLengthLimit without encoding anything.
func MarshalLimit(v Value, maxLen int) ([]byte, error) {
	if n := v.EncodedLen(); n > maxLen {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrLengthLimit, n, maxLen)
	}
	return Marshal(v)
}

// Unmarshal decodes exactly one value from data, choosing its type from the
// leading tag byte. Bytes left over after the value are an error.
func Unmarshal(data []byte) (Value, error) {
	dec := NewDecoder(data)
	tag, err := dec.PeekTag()
	if err != nil {
		return nil, err
	}
	v := valueForTag(tag)
	if err := v.Decode(dec); err != nil {
		return nil, err
	}
	if dec.Remaining() != 0 {
		return nil, NewDecodeError(dec.Offset(), fmt.Sprintf("%d bytes left over", dec.Remaining()), ErrTrailingData)
	}
	return v, nil
}
