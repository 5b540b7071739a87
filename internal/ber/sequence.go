// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"errors"
	"fmt"
)

// Sequence is an ordered container of values. It owns its children.
//
// In choice mode the container also tracks which child is the active
// alternative: the last one appended or decoded.
type Sequence struct {
	tag      byte
	choice   bool
	children []Value
	chosen   int
}

// NewSequence returns an empty SEQUENCE with the universal tag 0x30.
func NewSequence() *Sequence {
	return NewTaggedSequence(TagSequence)
}

// NewTaggedSequence returns an empty sequence written with tag instead of
// the universal SEQUENCE tag, e.g. an SNMP PDU tag such as 0xA2.
func NewTaggedSequence(tag byte) *Sequence {
	return &Sequence{tag: tag, chosen: -1}
}

// NewChoice returns an empty container in choice mode written with tag.
func NewChoice(tag byte) *Sequence {
	return &Sequence{tag: tag, choice: true, chosen: -1}
}

// Kind implements Value.
func (s *Sequence) Kind() Kind {
	if s.choice {
		return KindChoice
	}
	return KindSequence
}

// Tag returns the tag byte written in front of the sequence.
func (s *Sequence) Tag() byte { return s.tag }

// Len returns the number of children.
func (s *Sequence) Len() int { return len(s.children) }

// At returns child i.
func (s *Sequence) At(i int) Value { return s.children[i] }

// Children returns the children in order. The slice is owned by s.
func (s *Sequence) Children() []Value { return s.children }

// Choice returns the index of the active alternative, or -1 if none is set.
func (s *Sequence) Choice() int { return s.chosen }

// ChosenTag returns the tag byte of the active alternative. ok is false when
// no alternative is set.
func (s *Sequence) ChosenTag() (tag byte, ok bool) {
	if s.chosen < 0 {
		return 0, false
	}
	return tagOf(s.children[s.chosen]), true
}

// Append adds v as the last child. In choice mode v becomes the active
// alternative.
func (s *Sequence) Append(v Value) {
	s.children = append(s.children, v)
	if s.choice {
		s.chosen = len(s.children) - 1
	}
}

// AppendInteger appends an INTEGER.
func (s *Sequence) AppendInteger(v int32) {
	s.Append(NewInteger(v))
}

// AppendString appends an OCTET STRING holding a copy of v.
func (s *Sequence) AppendString(v []byte) {
	s.Append(NewOctetString(v))
}

// AppendObjectID appends an OBJECT IDENTIFIER.
func (s *Sequence) AppendObjectID(arcs ...uint32) {
	s.Append(NewObjectID(arcs...))
}

// AppendNull appends a NULL.
func (s *Sequence) AppendNull() {
	s.Append(NewNull())
}

func (s *Sequence) payloadLen() int {
	n := 0
	for _, c := range s.children {
		n += c.EncodedLen()
	}
	return n
}

// EncodedLen implements Value.
func (s *Sequence) EncodedLen() int {
	n := s.payloadLen()
	return SequenceStartSize(n) + n
}

// Encode implements Value. If a child fails to encode, the encoder is
// rolled back to where it was before the call.
func (s *Sequence) Encode(e *Encoder) error {
	mark := e.Len()
	if err := s.encode(e); err != nil {
		e.buf = e.buf[:mark]
		return err
	}
	return nil
}

func (s *Sequence) encode(e *Encoder) error {
	if err := e.WriteSequenceStart(s.tag, s.payloadLen()); err != nil {
		return err
	}
	for i, c := range s.children {
		if err := c.Encode(e); err != nil {
			return fmt.Errorf("ber: encode child %d (%s): %w", i, c.Kind(), err)
		}
	}
	return nil
}

// EncodeLimit is Encode with a size cap: when the complete encoding would be
// longer than maxLen bytes it returns ErrLengthLimit and writes nothing.
func (s *Sequence) EncodeLimit(e *Encoder, maxLen int) error {
	if n := s.EncodedLen(); n > maxLen {
		return fmt.Errorf("%w: %d > %d bytes", ErrLengthLimit, n, maxLen)
	}
	return s.Encode(e)
}

// Decode implements Value. Any constructed tag is accepted and kept, so the
// same type decodes SEQUENCEs and application or context tagged structures.
// Existing children are discarded first.
func (s *Sequence) Decode(d *Decoder) error {
	startOffset := d.offset

	h, err := d.ReadHeader()
	if err != nil {
		return err
	}
	if !h.Constructed {
		d.offset = startOffset
		return &TagMismatchError{Offset: startOffset, Expected: s.tag, Actual: h.Tag}
	}

	s.tag = h.Tag
	s.children = nil
	s.chosen = -1

	end := d.offset + h.Length
	body := &Decoder{data: d.data[:end], offset: d.offset}
	for body.offset < end {
		childStart := body.offset
		tag, _ := body.PeekTag()
		child := valueForTag(tag)
		if err := child.Decode(body); err != nil {
			d.offset = startOffset
			if errors.Is(err, ErrUnexpectedEOF) && end < len(d.data) {
				err = ErrSequenceBoundary
			}
			return NewDecodeError(childStart, fmt.Sprintf("child %d of sequence 0x%02X", len(s.children), s.tag), err)
		}
		s.Append(child)
	}
	if body.offset != end {
		d.offset = startOffset
		return NewDecodeError(body.offset, "sequence end", ErrSequenceBoundary)
	}

	d.offset = end
	return nil
}

// IntegerAt returns child i as an int32. It panics if the child is not an
// INTEGER; asking for the wrong type is a programming error.
func (s *Sequence) IntegerAt(i int) int32 {
	v, ok := s.children[i].(*Integer)
	if !ok {
		panic(s.mismatch(i, KindInteger))
	}
	return v.Value()
}

// UnsignedAt returns child i as a uint32. It panics unless the child is a
// Counter32, Gauge32, TimeTicks or UInteger32.
func (s *Sequence) UnsignedAt(i int) uint32 {
	v, ok := s.children[i].(*Unsigned)
	if !ok {
		panic(s.mismatch(i, KindCounter))
	}
	return v.Value()
}

// BytesAt returns the payload of child i. It panics unless the child is an
// OCTET STRING or Opaque.
func (s *Sequence) BytesAt(i int) []byte {
	v, ok := s.children[i].(*OctetString)
	if !ok {
		panic(s.mismatch(i, KindString))
	}
	return v.Bytes()
}

// ObjectIDAt returns child i as an ObjectID. It panics on any other kind.
func (s *Sequence) ObjectIDAt(i int) *ObjectID {
	v, ok := s.children[i].(*ObjectID)
	if !ok {
		panic(s.mismatch(i, KindObjectID))
	}
	return v
}

// SequenceAt returns child i as a Sequence. It panics on any other kind.
func (s *Sequence) SequenceAt(i int) *Sequence {
	v, ok := s.children[i].(*Sequence)
	if !ok {
		panic(s.mismatch(i, KindSequence))
	}
	return v
}

func (s *Sequence) mismatch(i int, want Kind) string {
	return fmt.Sprintf("ber: child %d is %s, not %s", i, s.children[i].Kind(), want)
}

// tagOf returns the tag byte v is written with.
func tagOf(v Value) byte {
	switch t := v.(type) {
	case *Sequence:
		return t.Tag()
	case *Unknown:
		return t.Tag()
	default:
		return TagFor(v.Kind())
	}
}
