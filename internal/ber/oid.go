// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ObjectID is an OBJECT IDENTIFIER held as its list of arcs.
//
// The first two arcs share one encoded subidentifier (X.690 8.19.4), so a
// non-empty ObjectID needs at least two arcs, the first in {0, 1, 2} and, when
// the first is 0 or 1, the second below 40. The empty ObjectID encodes as a
// zero-length payload.
type ObjectID struct {
	arcs []uint32
}

// NewObjectID returns an ObjectID holding a copy of arcs.
func NewObjectID(arcs ...uint32) *ObjectID {
	return &ObjectID{arcs: append([]uint32(nil), arcs...)}
}

// ParseObjectID parses dotted notation such as "1.3.6.1.2.1" or ".1.3.6.1".
func ParseObjectID(s string) (*ObjectID, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), ".")
	if s == "" {
		return &ObjectID{}, nil
	}

	parts := strings.Split(s, ".")
	arcs := make([]uint32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: arc %q in %q", ErrInvalidOID, p, s)
		}
		arcs = append(arcs, uint32(v))
	}

	oid := &ObjectID{arcs: arcs}
	if err := oid.validate(); err != nil {
		return nil, err
	}
	return oid, nil
}

// MustParseObjectID is like ParseObjectID but panics on malformed input.
// It is meant for package-level OID constants.
func MustParseObjectID(s string) *ObjectID {
	oid, err := ParseObjectID(s)
	if err != nil {
		panic(err)
	}
	return oid
}

// Kind implements Value.
func (o *ObjectID) Kind() Kind { return KindObjectID }

// Arcs returns the arcs. The slice is owned by o.
func (o *ObjectID) Arcs() []uint32 { return o.arcs }

// Equal reports whether o and other name the same node.
func (o *ObjectID) Equal(other *ObjectID) bool {
	if len(o.arcs) != len(other.arcs) {
		return false
	}
	for i, a := range o.arcs {
		if other.arcs[i] != a {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is an ancestor of, or equal to, o.
func (o *ObjectID) HasPrefix(prefix *ObjectID) bool {
	if len(prefix.arcs) > len(o.arcs) {
		return false
	}
	for i, a := range prefix.arcs {
		if o.arcs[i] != a {
			return false
		}
	}
	return true
}

// String returns the dotted form without a leading dot.
func (o *ObjectID) String() string {
	var sb strings.Builder
	for i, a := range o.arcs {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(uint64(a), 10))
	}
	return sb.String()
}

func (o *ObjectID) validate() error {
	switch {
	case len(o.arcs) == 0:
		return nil
	case len(o.arcs) == 1:
		return fmt.Errorf("%w: a single arc cannot be encoded", ErrInvalidOID)
	case o.arcs[0] > 2:
		return fmt.Errorf("%w: first arc %d is not 0, 1 or 2", ErrInvalidOID, o.arcs[0])
	case o.arcs[0] < 2 && o.arcs[1] >= 40:
		return fmt.Errorf("%w: second arc %d must be below 40", ErrInvalidOID, o.arcs[1])
	}
	return nil
}

// subidentifiers calls fn with the merged first subidentifier and then every
// remaining arc.
func (o *ObjectID) subidentifiers(fn func(uint64)) {
	if len(o.arcs) < 2 {
		return
	}
	fn(40*uint64(o.arcs[0]) + uint64(o.arcs[1]))
	for _, a := range o.arcs[2:] {
		fn(uint64(a))
	}
}

// base128Len returns the number of 7-bit groups needed for v.
func base128Len(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func (o *ObjectID) payloadLen() int {
	n := 0
	o.subidentifiers(func(v uint64) { n += base128Len(v) })
	return n
}

// EncodedLen implements Value.
func (o *ObjectID) EncodedLen() int {
	n := o.payloadLen()
	return HeaderSize(n) + n
}

// writeBase128 encodes v in base-128, most significant group first, with the
// continuation bit set on every byte except the last.
func (e *Encoder) writeBase128(v uint64) {
	for i := base128Len(v) - 1; i >= 0; i-- {
		b := byte(v>>(uint(i)*7)) & 0x7F
		if i > 0 {
			b |= 0x80
		}
		e.buf = append(e.buf, b)
	}
}

// Encode implements Value. Nothing is written for an invalid ObjectID.
func (o *ObjectID) Encode(e *Encoder) error {
	if err := o.validate(); err != nil {
		return err
	}
	if err := e.writeTagLength(TagOID, o.payloadLen()); err != nil {
		return err
	}
	o.subidentifiers(e.writeBase128)
	return nil
}

// Decode implements Value.
func (o *ObjectID) Decode(d *Decoder) error {
	startOffset := d.offset
	length, err := d.expectHeader(TagOID)
	if err != nil {
		return err
	}

	payload := d.data[d.offset : d.offset+length]
	arcs := make([]uint32, 0, length+1)

	var acc uint64
	open := false
	for i, b := range payload {
		if acc > math.MaxUint64>>7 {
			d.offset = startOffset
			return NewDecodeError(startOffset+i, "subidentifier overflow", ErrInvalidOID)
		}
		acc = acc<<7 | uint64(b&0x7F)
		open = b&0x80 != 0
		if open {
			continue
		}

		if len(arcs) == 0 {
			first, second := splitFirst(acc)
			if second > math.MaxUint32 {
				d.offset = startOffset
				return NewDecodeError(startOffset+i, "second arc overflow", ErrInvalidOID)
			}
			arcs = append(arcs, first, uint32(second))
		} else {
			if acc > math.MaxUint32 {
				d.offset = startOffset
				return NewDecodeError(startOffset+i, "arc overflow", ErrInvalidOID)
			}
			arcs = append(arcs, uint32(acc))
		}
		acc = 0
	}
	if open {
		d.offset = startOffset
		return NewDecodeError(startOffset, "subidentifier runs past declared length", ErrInvalidOID)
	}

	d.offset += length
	o.arcs = arcs
	return nil
}

// splitFirst recovers the first two arcs from the merged subidentifier.
// Values of 80 and above always belong to arc 2, whose second arc is unbounded.
func splitFirst(v uint64) (uint32, uint64) {
	if v < 80 {
		return uint32(v / 40), v % 40
	}
	return 2, v - 80
}
