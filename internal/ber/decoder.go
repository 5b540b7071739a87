// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

// Decoder reads BER values from a byte slice. Its offset is the shared cursor:
// every successful read advances it past the bytes consumed, so sibling values
// can be decoded one after another from the same buffer. The source slice is
// never modified.
type Decoder struct {
	data   []byte
	offset int
}

// NewDecoder creates a new BER decoder for the given data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		data:   data,
		offset: 0,
	}
}

// Offset returns the current read position in the data.
func (d *Decoder) Offset() int {
	return d.offset
}

// Remaining returns the number of bytes remaining to be read.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.offset
}

// Header is a decoded tag byte and definite length.
type Header struct {
	Tag         byte // full tag byte as it appeared on the wire
	Class       int  // ClassUniversal, ClassApplication, ...
	Constructed bool
	Number      int // low five bits of Tag
	Length      int
}

// ReadLength reads a BER length value from the current position.
func (d *Decoder) ReadLength() (int, error) {
	startOffset := d.offset

	if d.offset >= len(d.data) {
		return 0, NewDecodeError(startOffset, "cannot read length", ErrUnexpectedEOF)
	}

	firstByte := d.data[d.offset]
	d.offset++

	// Short form: bit 8 is 0, bits 1-7 contain the length
	if firstByte&LengthLongFormBit == 0 {
		return int(firstByte), nil
	}

	// Long form: bits 1-7 contain the number of subsequent length bytes
	numBytes := int(firstByte & 0x7F)

	if numBytes == 0 {
		d.offset = startOffset
		return 0, NewDecodeError(startOffset, "indefinite length encoding", ErrIndefiniteLength)
	}
	if numBytes > maxLengthBytes {
		d.offset = startOffset
		return 0, NewDecodeError(startOffset, "length value overflow", ErrInvalidLength)
	}
	if d.offset+numBytes > len(d.data) {
		d.offset = startOffset
		return 0, NewDecodeError(startOffset, "truncated length encoding", ErrUnexpectedEOF)
	}

	length := 0
	for i := 0; i < numBytes; i++ {
		length = (length << 8) | int(d.data[d.offset])
		d.offset++
	}
	if length < 0 {
		d.offset = startOffset
		return 0, NewDecodeError(startOffset, "length value overflow", ErrInvalidLength)
	}

	return length, nil
}

// ReadHeader reads a tag byte and length. It fails if the declared payload
// extends past the end of the data, so callers may slice the payload freely.
// On failure the offset is left where it was.
func (d *Decoder) ReadHeader() (Header, error) {
	startOffset := d.offset

	if d.offset >= len(d.data) {
		return Header{}, NewDecodeError(startOffset, "cannot read tag", ErrUnexpectedEOF)
	}
	tag := d.data[d.offset]
	d.offset++

	length, err := d.ReadLength()
	if err != nil {
		d.offset = startOffset
		return Header{}, err
	}
	if length > d.Remaining() {
		d.offset = startOffset
		return Header{}, NewDecodeError(startOffset, "truncated value", ErrUnexpectedEOF)
	}

	return Header{
		Tag:         tag,
		Class:       int(tag & 0xC0),
		Constructed: tag&TypeConstructed != 0,
		Number:      int(tag & 0x1F),
		Length:      length,
	}, nil
}

// PeekTag returns the next tag byte without advancing the offset.
func (d *Decoder) PeekTag() (byte, error) {
	if d.offset >= len(d.data) {
		return 0, NewDecodeError(d.offset, "cannot peek tag", ErrUnexpectedEOF)
	}
	return d.data[d.offset], nil
}

// expectHeader reads a header and checks its tag byte.
func (d *Decoder) expectHeader(tag byte) (int, error) {
	startOffset := d.offset
	h, err := d.ReadHeader()
	if err != nil {
		return 0, err
	}
	if h.Tag != tag {
		d.offset = startOffset
		return 0, &TagMismatchError{Offset: startOffset, Expected: tag, Actual: h.Tag}
	}
	return h.Length, nil
}

// readPayload copies the next n bytes out of the source buffer.
func (d *Decoder) readPayload(n int) []byte {
	value := make([]byte, n)
	copy(value, d.data[d.offset:d.offset+n])
	d.offset += n
	return value
}
