// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

// Tag class constants (bits 7-8 of the tag byte)
const (
	ClassUniversal       = 0x00 // 00xxxxxx
	ClassApplication     = 0x40 // 01xxxxxx
	ClassContextSpecific = 0x80 // 10xxxxxx
	ClassPrivate         = 0xC0 // 11xxxxxx
)

// Constructed flag (bit 6 of the tag byte)
const (
	TypePrimitive   = 0x00 // xx0xxxxx
	TypeConstructed = 0x20 // xx1xxxxx
)

// Universal tag bytes
const (
	TagInteger     = 0x02
	TagOctetString = 0x04
	TagNull        = 0x05
	TagOID         = 0x06
	TagSequence    = 0x30 // universal 16, constructed
)

// Application tag bytes from the SNMP SMI (RFC 1155, RFC 2578).
const (
	TagIPAddress  = 0x40
	TagCounter    = 0x41
	TagGauge      = 0x42
	TagTimeTicks  = 0x43
	TagOpaque     = 0x44
	TagCounter64  = 0x46
	TagUInteger32 = 0x47
)

// Length encoding constants
const (
	// LengthLongFormBit indicates long form length encoding (bit 8 set)
	LengthLongFormBit = 0x80
	// MaxShortFormLength is the maximum length encodable in short form (0-127)
	MaxShortFormLength = 127
	// maxLengthBytes bounds the long form so decoded lengths fit comfortably in an int.
	maxLengthBytes = 4
)

// Kind identifies the logical type of a Value.
type Kind int

const (
	KindInteger Kind = iota
	KindString
	KindIPAddress
	KindObjectID
	KindSequence
	KindChoice
	KindCounter
	KindGauge
	KindTimeTicks
	KindOpaque
	KindNull
	KindUnknown
	KindUInteger32
	KindCounter64

	kindCount
)

// String returns the ASN.1 / SMI name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "INTEGER"
	case KindString:
		return "OCTET STRING"
	case KindIPAddress:
		return "IpAddress"
	case KindObjectID:
		return "OBJECT IDENTIFIER"
	case KindSequence:
		return "SEQUENCE"
	case KindChoice:
		return "CHOICE"
	case KindCounter:
		return "Counter32"
	case KindGauge:
		return "Gauge32"
	case KindTimeTicks:
		return "TimeTicks"
	case KindOpaque:
		return "Opaque"
	case KindNull:
		return "NULL"
	case KindUnknown:
		return "Unknown"
	case KindUInteger32:
		return "UInteger32"
	case KindCounter64:
		return "Counter64"
	default:
		return "Kind(invalid)"
	}
}

// kindTags maps every Kind to the tag byte written in front of its payload.
// Choice shares the SEQUENCE tag by default; Unknown values carry their own.
var kindTags = [kindCount]byte{
	KindInteger:    TagInteger,
	KindString:     TagOctetString,
	KindIPAddress:  TagIPAddress,
	KindObjectID:   TagOID,
	KindSequence:   TagSequence,
	KindChoice:     TagSequence,
	KindCounter:    TagCounter,
	KindGauge:      TagGauge,
	KindTimeTicks:  TagTimeTicks,
	KindOpaque:     TagOpaque,
	KindNull:       TagNull,
	KindUnknown:    0x00,
	KindUInteger32: TagUInteger32,
	KindCounter64:  TagCounter64,
}

// TagFor returns the tag byte used for kind. It panics on a Kind outside
// the declared set.
func TagFor(kind Kind) byte {
	if kind < 0 || kind >= kindCount {
		panic("ber: TagFor called with invalid kind " + kind.String())
	}
	return kindTags[kind]
}

// KindForTag is the inverse of TagFor. It never returns KindChoice; tags with
// no table entry yield KindUnknown.
func KindForTag(tag byte) Kind {
	for k := Kind(0); k < kindCount; k++ {
		if k == KindChoice || k == KindUnknown {
			continue
		}
		if kindTags[k] == tag {
			return k
		}
	}
	return KindUnknown
}

// IsConstructed reports whether the constructed bit is set in tag.
func IsConstructed(tag byte) bool {
	return tag&TypeConstructed != 0
}
