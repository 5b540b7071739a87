// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"fmt"
	"net"
)

// writeBytes writes a TLV whose payload is raw bytes.
func (e *Encoder) writeBytes(tag byte, v []byte) error {
	if err := e.writeTagLength(tag, len(v)); err != nil {
		return err
	}
	e.buf = append(e.buf, v...)
	return nil
}

// readBytes reads a primitive TLV with the given tag and returns a copy of
// its payload.
func (d *Decoder) readBytes(tag byte) ([]byte, error) {
	length, err := d.expectHeader(tag)
	if err != nil {
		return nil, err
	}
	return d.readPayload(length), nil
}

// OctetString is an OCTET STRING, or an Opaque when built with KindOpaque.
type OctetString struct {
	kind Kind
	data []byte
}

// NewOctetString returns an OCTET STRING holding a copy of v.
func NewOctetString(v []byte) *OctetString {
	return &OctetString{kind: KindString, data: append([]byte(nil), v...)}
}

// NewOpaque returns an Opaque value holding a copy of v.
func NewOpaque(v []byte) *OctetString {
	return &OctetString{kind: KindOpaque, data: append([]byte(nil), v...)}
}

// Kind implements Value.
func (s *OctetString) Kind() Kind {
	if s.kind == KindOpaque {
		return KindOpaque
	}
	return KindString
}

// Bytes returns the payload. The slice is owned by s.
func (s *OctetString) Bytes() []byte { return s.data }

// Set replaces the payload with a copy of v.
func (s *OctetString) Set(v []byte) { s.data = append(s.data[:0], v...) }

// EncodedLen implements Value.
func (s *OctetString) EncodedLen() int {
	return HeaderSize(len(s.data)) + len(s.data)
}

// Encode implements Value.
func (s *OctetString) Encode(e *Encoder) error {
	return e.writeBytes(TagFor(s.Kind()), s.data)
}

// Decode implements Value.
func (s *OctetString) Decode(d *Decoder) error {
	v, err := d.readBytes(TagFor(s.Kind()))
	if err != nil {
		return err
	}
	s.data = v
	return nil
}

func (s *OctetString) String() string {
	return string(s.data)
}

// IPAddress is the SMI IpAddress: an application-tagged string of exactly
// four bytes.
type IPAddress struct {
	addr []byte
}

// NewIPAddress returns an IpAddress holding a copy of b. Length is checked
// when encoding, never guessed.
func NewIPAddress(b []byte) *IPAddress {
	return &IPAddress{addr: append([]byte(nil), b...)}
}

// ParseIPAddress parses a dotted IPv4 address.
func ParseIPAddress(s string) (*IPAddress, error) {
	ip := net.ParseIP(s).To4()
	if ip == nil {
		return nil, fmt.Errorf("%w: %q is not an IPv4 address", ErrInvalidIPAddress, s)
	}
	return NewIPAddress(ip), nil
}

// Kind implements Value.
func (a *IPAddress) Kind() Kind { return KindIPAddress }

// Bytes returns the address bytes.
func (a *IPAddress) Bytes() []byte { return a.addr }

// IP returns the address as a net.IP.
func (a *IPAddress) IP() net.IP { return net.IP(a.addr) }

// EncodedLen implements Value.
func (a *IPAddress) EncodedLen() int {
	return HeaderSize(len(a.addr)) + len(a.addr)
}

// Encode implements Value. It writes nothing unless the address is exactly
// 4 bytes.
func (a *IPAddress) Encode(e *Encoder) error {
	if len(a.addr) != net.IPv4len {
		return ErrInvalidIPAddress
	}
	return e.writeBytes(TagIPAddress, a.addr)
}

// Decode implements Value.
func (a *IPAddress) Decode(d *Decoder) error {
	startOffset := d.offset
	length, err := d.expectHeader(TagIPAddress)
	if err != nil {
		return err
	}
	if length != net.IPv4len {
		d.offset = startOffset
		return NewDecodeError(startOffset, fmt.Sprintf("IpAddress length %d", length), ErrInvalidIPAddress)
	}
	a.addr = d.readPayload(length)
	return nil
}

func (a *IPAddress) String() string {
	if len(a.addr) != net.IPv4len {
		return fmt.Sprintf("invalid(%x)", a.addr)
	}
	return a.IP().String()
}

// Null is the ASN.1 NULL value.
type Null struct{}

// NewNull returns a NULL.
func NewNull() *Null { return &Null{} }

// Kind implements Value.
func (*Null) Kind() Kind { return KindNull }

// EncodedLen implements Value.
func (*Null) EncodedLen() int { return 2 }

// Encode implements Value.
func (*Null) Encode(e *Encoder) error {
	return e.writeTagLength(TagNull, 0)
}

// Decode implements Value.
func (*Null) Decode(d *Decoder) error {
	startOffset := d.offset
	length, err := d.expectHeader(TagNull)
	if err != nil {
		return err
	}
	if length != 0 {
		d.offset = startOffset
		return NewDecodeError(startOffset, "null must have length 0", ErrInvalidNull)
	}
	return nil
}

func (*Null) String() string { return "NULL" }

// Unknown holds a primitive element whose tag has no entry in the kind table,
// such as the SNMPv2 noSuchObject exception. Its tag and payload are kept so
// it re-encodes byte for byte.
type Unknown struct {
	tag  byte
	data []byte
}

// NewUnknown returns an Unknown element with the given tag and a copy of data.
func NewUnknown(tag byte, data []byte) *Unknown {
	return &Unknown{tag: tag, data: append([]byte(nil), data...)}
}

// Kind implements Value.
func (*Unknown) Kind() Kind { return KindUnknown }

// Tag returns the tag byte as decoded.
func (u *Unknown) Tag() byte { return u.tag }

// Bytes returns the raw payload.
func (u *Unknown) Bytes() []byte { return u.data }

// EncodedLen implements Value.
func (u *Unknown) EncodedLen() int {
	return HeaderSize(len(u.data)) + len(u.data)
}

// Encode implements Value.
func (u *Unknown) Encode(e *Encoder) error {
	return e.writeBytes(u.tag, u.data)
}

// Decode implements Value. Any tag is accepted.
func (u *Unknown) Decode(d *Decoder) error {
	h, err := d.ReadHeader()
	if err != nil {
		return err
	}
	u.tag = h.Tag
	u.data = d.readPayload(h.Length)
	return nil
}

func (u *Unknown) String() string {
	return fmt.Sprintf("[0x%02X] %x", u.tag, u.data)
}
