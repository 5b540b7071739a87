// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

// Encoder is an append-only BER output buffer. Values append their complete
// TLV encoding to it; nothing already written is ever rewritten.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	buf []byte
}

// NewEncoder creates a new encoder with an optional initial capacity.
func NewEncoder(capacity int) *Encoder {
	if capacity <= 0 {
		capacity = 64
	}
	return &Encoder{
		buf: make([]byte, 0, capacity),
	}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Reset clears the encoder buffer for reuse.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// Len returns the current length of encoded data.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// WriteRaw writes raw bytes directly to the buffer.
func (e *Encoder) WriteRaw(data []byte) {
	e.buf = append(e.buf, data...)
}

// LengthFieldSize returns how many bytes the BER length field for n occupies:
// 1 in short form (n < 128), otherwise 1 plus the minimal big-endian width of n.
func LengthFieldSize(n int) int {
	if n <= MaxShortFormLength {
		return 1
	}
	size := 1
	for n > 0 {
		size++
		n >>= 8
	}
	return size
}

// WriteLength writes a BER definite length.
// Uses short form for lengths 0-127, long form for larger values.
func (e *Encoder) WriteLength(length int) error {
	if length < 0 {
		return ErrNegativeLength
	}

	// Short form: length fits in 7 bits (0-127)
	if length <= MaxShortFormLength {
		e.buf = append(e.buf, byte(length))
		return nil
	}

	numBytes := LengthFieldSize(length) - 1
	e.buf = append(e.buf, byte(LengthLongFormBit|numBytes))
	for i := numBytes - 1; i >= 0; i-- {
		e.buf = append(e.buf, byte(length>>(i*8)))
	}
	return nil
}

// HeaderSize returns the size of a tag byte plus the length field for a
// payload of n bytes.
func HeaderSize(n int) int {
	return 1 + LengthFieldSize(n)
}

// SequenceStartSize is HeaderSize for sequence and choice headers.
func SequenceStartSize(n int) int {
	return HeaderSize(n)
}

// WriteHeader writes the tag for kind followed by the length n.
func (e *Encoder) WriteHeader(kind Kind, n int) error {
	return e.writeTagLength(TagFor(kind), n)
}

// WriteSequenceStart writes an explicit tag byte followed by the length n.
// Sequences and choices use it so they can carry application or
// context-specific tags instead of the universal SEQUENCE tag.
func (e *Encoder) WriteSequenceStart(tag byte, n int) error {
	return e.writeTagLength(tag, n)
}

func (e *Encoder) writeTagLength(tag byte, n int) error {
	if n < 0 {
		return ErrNegativeLength
	}
	e.buf = append(e.buf, tag)
	return e.WriteLength(n)
}
