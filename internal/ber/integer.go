// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"strconv"

	"golang.org/x/exp/constraints"
)

// MinimalSignedWidth returns the number of bytes in the minimal two's
// complement representation of v: redundant 0x00 / 0xFF sign-extension bytes
// are dropped while the top bit of the first kept byte still carries the sign.
func MinimalSignedWidth[T constraints.Signed](v T) int {
	n := 1
	for v < -128 || v > 127 {
		v >>= 8
		n++
	}
	return n
}

// MinimalUnsignedWidth returns the number of bytes needed to carry v as a
// non-negative BER integer. A leading 0x00 is counted whenever the top bit of
// the most significant byte is set, so generic readers never see a negative.
func MinimalUnsignedWidth[T constraints.Unsigned](v T) int {
	n := 1
	for v > 0x7F {
		v >>= 8
		n++
	}
	return n
}

// appendBigEndian writes the low width bytes of v, most significant first.
func (e *Encoder) appendBigEndian(v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		if i >= 8 {
			e.buf = append(e.buf, 0x00)
			continue
		}
		e.buf = append(e.buf, byte(v>>(uint(i)*8)))
	}
}

// writeSigned writes a complete INTEGER-shaped TLV with the given tag.
func (e *Encoder) writeSigned(tag byte, v int64) error {
	width := MinimalSignedWidth(v)
	if err := e.writeTagLength(tag, width); err != nil {
		return err
	}
	e.appendBigEndian(uint64(v), width)
	return nil
}

// writeUnsigned writes a complete unsigned TLV with the given tag.
func (e *Encoder) writeUnsigned(tag byte, v uint64) error {
	width := MinimalUnsignedWidth(v)
	if err := e.writeTagLength(tag, width); err != nil {
		return err
	}
	e.appendBigEndian(v, width)
	return nil
}

// readSigned decodes a two's complement integer of at most maxWidth bytes.
func (d *Decoder) readSigned(tag byte, maxWidth int) (int64, error) {
	startOffset := d.offset

	length, err := d.expectHeader(tag)
	if err != nil {
		return 0, err
	}
	if length == 0 {
		d.offset = startOffset
		return 0, NewDecodeError(startOffset, "integer must have at least 1 byte", ErrInvalidInteger)
	}
	if length > maxWidth {
		d.offset = startOffset
		return 0, NewDecodeError(startOffset, "integer too large", ErrInvalidInteger)
	}

	firstByte := d.data[d.offset]
	d.offset++

	var result int64
	// If high bit is set, the number is negative (two's complement)
	if firstByte&0x80 != 0 {
		result = -1
	}
	result = (result << 8) | int64(firstByte)

	for i := 1; i < length; i++ {
		result = (result << 8) | int64(d.data[d.offset])
		d.offset++
	}
	return result, nil
}

// readUnsigned decodes a non-negative integer whose magnitude fits in
// maxWidth bytes, allowing one extra leading 0x00 pad byte.
func (d *Decoder) readUnsigned(tag byte, maxWidth int) (uint64, error) {
	startOffset := d.offset

	length, err := d.expectHeader(tag)
	if err != nil {
		return 0, err
	}
	if length == 0 {
		d.offset = startOffset
		return 0, NewDecodeError(startOffset, "integer must have at least 1 byte", ErrInvalidInteger)
	}

	payload := d.data[d.offset : d.offset+length]
	if len(payload) > 1 && payload[0] == 0x00 {
		payload = payload[1:]
	}
	if len(payload) > maxWidth {
		d.offset = startOffset
		return 0, NewDecodeError(startOffset, "unsigned integer too large", ErrInvalidInteger)
	}

	var result uint64
	for _, b := range payload {
		result = (result << 8) | uint64(b)
	}
	d.offset += length
	return result, nil
}

// Integer is a signed 32-bit ASN.1 INTEGER.
type Integer struct {
	value int32
}

// NewInteger returns an INTEGER holding v.
func NewInteger(v int32) *Integer {
	return &Integer{value: v}
}

// Kind implements Value.
func (i *Integer) Kind() Kind { return KindInteger }

// Value returns the integer.
func (i *Integer) Value() int32 { return i.value }

// Set replaces the integer.
func (i *Integer) Set(v int32) { i.value = v }

// EncodedLen implements Value.
func (i *Integer) EncodedLen() int {
	width := MinimalSignedWidth(i.value)
	return HeaderSize(width) + width
}

// Encode implements Value.
func (i *Integer) Encode(e *Encoder) error {
	return e.writeSigned(TagInteger, int64(i.value))
}

// Decode implements Value.
func (i *Integer) Decode(d *Decoder) error {
	v, err := d.readSigned(TagInteger, 4)
	if err != nil {
		return err
	}
	i.value = int32(v)
	return nil
}

func (i *Integer) String() string {
	return strconv.FormatInt(int64(i.value), 10)
}

// Unsigned is a 32-bit non-negative SMI integer: Counter32, Gauge32,
// TimeTicks or UInteger32. The variants differ only in their tag.
type Unsigned struct {
	kind  Kind
	value uint32
}

// NewUnsigned returns an unsigned value of the given kind. It panics if kind
// is not one of the 32-bit unsigned kinds.
func NewUnsigned(kind Kind, v uint32) *Unsigned {
	switch kind {
	case KindCounter, KindGauge, KindTimeTicks, KindUInteger32:
	default:
		panic("ber: NewUnsigned called with non-unsigned kind " + kind.String())
	}
	return &Unsigned{kind: kind, value: v}
}

// NewCounter returns a Counter32.
func NewCounter(v uint32) *Unsigned { return NewUnsigned(KindCounter, v) }

// NewGauge returns a Gauge32.
func NewGauge(v uint32) *Unsigned { return NewUnsigned(KindGauge, v) }

// NewTimeTicks returns a TimeTicks value in hundredths of a second.
func NewTimeTicks(v uint32) *Unsigned { return NewUnsigned(KindTimeTicks, v) }

// NewUInteger32 returns a UInteger32.
func NewUInteger32(v uint32) *Unsigned { return NewUnsigned(KindUInteger32, v) }

// Kind implements Value.
func (u *Unsigned) Kind() Kind { return u.kind }

// Value returns the magnitude.
func (u *Unsigned) Value() uint32 { return u.value }

// Set replaces the magnitude.
func (u *Unsigned) Set(v uint32) { u.value = v }

// EncodedLen implements Value.
func (u *Unsigned) EncodedLen() int {
	width := MinimalUnsignedWidth(u.value)
	return HeaderSize(width) + width
}

// Encode implements Value.
func (u *Unsigned) Encode(e *Encoder) error {
	return e.writeUnsigned(TagFor(u.kind), uint64(u.value))
}

// Decode implements Value.
func (u *Unsigned) Decode(d *Decoder) error {
	v, err := d.readUnsigned(TagFor(u.kind), 4)
	if err != nil {
		return err
	}
	u.value = uint32(v)
	return nil
}

func (u *Unsigned) String() string {
	return strconv.FormatUint(uint64(u.value), 10)
}

// Counter64 is the SMIv2 64-bit counter.
type Counter64 struct {
	value uint64
}

// NewCounter64 returns a Counter64 holding v.
func NewCounter64(v uint64) *Counter64 {
	return &Counter64{value: v}
}

// Kind implements Value.
func (c *Counter64) Kind() Kind { return KindCounter64 }

// Value returns the counter.
func (c *Counter64) Value() uint64 { return c.value }

// EncodedLen implements Value.
func (c *Counter64) EncodedLen() int {
	width := MinimalUnsignedWidth(c.value)
	return HeaderSize(width) + width
}

// Encode implements Value.
func (c *Counter64) Encode(e *Encoder) error {
	return e.writeUnsigned(TagCounter64, c.value)
}

// Decode implements Value.
func (c *Counter64) Decode(d *Decoder) error {
	v, err := d.readUnsigned(TagCounter64, 8)
	if err != nil {
		return err
	}
	c.value = v
	return nil
}

func (c *Counter64) String() string {
	return strconv.FormatUint(c.value, 10)
}
