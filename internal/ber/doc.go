// Package ber implements the ASN.1 BER (Basic Encoding Rules) value model
// used by SNMP, as specified in ITU-T X.690 and the SMI (RFC 1155, RFC 2578).
//
// Every value type implements Value: it reports its Kind, the exact number of
// bytes its encoding occupies, and can encode itself into an Encoder or decode
// itself from a Decoder. Sequences nest values recursively.
//
// # Tags
//
// The tag byte of each kind comes from a fixed table (see TagFor):
//
//   - INTEGER 0x02, OCTET STRING 0x04, NULL 0x05, OBJECT IDENTIFIER 0x06
//   - SEQUENCE 0x30
//   - IpAddress 0x40, Counter32 0x41, Gauge32 0x42, TimeTicks 0x43,
//     Opaque 0x44, Counter64 0x46, UInteger32 0x47
//
// Sequences and choices may carry any constructed tag instead of 0x30, which
// is how SNMP PDUs (context tags 0xA0-0xA8) are represented.
//
// # Encoding
//
//	seq := ber.NewSequence()
//	seq.AppendInteger(5)
//	seq.AppendNull()
//
//	enc := ber.NewEncoder(seq.EncodedLen())
//	if err := seq.Encode(enc); err != nil {
//	    // handle error
//	}
//	// enc.Bytes() == 30 05 02 01 05 05 00
//
// EncodeLimit refuses to write a sequence longer than a caller supplied cap.
//
// # Decoding
//
// A Decoder is a cursor over a byte slice. Each Decode advances it past the
// bytes consumed, or leaves it unchanged on failure:
//
//	dec := ber.NewDecoder(data)
//	seq := ber.NewSequence()
//	if err := seq.Decode(dec); err != nil {
//	    // handle error
//	}
//	n := seq.IntegerAt(0)
//
// Decoded strings and object identifiers are copied out of the source, so the
// buffer may be reused as soon as Decode returns.
//
// Only the definite length form is supported; indefinite lengths are
// rejected with ErrIndefiniteLength.
//
// # Concurrency
//
// Values, encoders and decoders carry no shared state. Distinct buffers may be
// used from different goroutines; a single Encoder must have one writer.
//
// # References
//
//   - ITU-T X.690: ASN.1 encoding rules
//   - RFC 1155, RFC 2578: SNMP Structure of Management Information
package ber
