// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"errors"
	"fmt"
)

// Decoder errors
var (
	// ErrUnexpectedEOF is returned when the decoder encounters truncated data.
	ErrUnexpectedEOF = errors.New("ber: unexpected end of data")

	// ErrInvalidLength is returned when a length value is malformed.
	ErrInvalidLength = errors.New("ber: invalid length encoding")

	// ErrIndefiniteLength is returned when indefinite length encoding is encountered.
	ErrIndefiniteLength = errors.New("ber: indefinite length not supported")

	// ErrInvalidInteger is returned when an integer value is malformed or too wide.
	ErrInvalidInteger = errors.New("ber: invalid integer encoding")

	// ErrInvalidNull is returned when a null value has non-zero length.
	ErrInvalidNull = errors.New("ber: invalid null encoding")

	// ErrInvalidIPAddress is returned when an IpAddress payload is not exactly 4 bytes.
	ErrInvalidIPAddress = errors.New("ber: IpAddress must be exactly 4 bytes")

	// ErrInvalidOID is returned when an object identifier is malformed.
	ErrInvalidOID = errors.New("ber: invalid object identifier")

	// ErrSequenceBoundary is returned when the children of a sequence do not
	// end exactly on its declared length.
	ErrSequenceBoundary = errors.New("ber: sequence children overrun declared length")

	// ErrTagMismatch is returned when the expected tag does not match the actual tag.
	ErrTagMismatch = errors.New("ber: tag mismatch")

	// ErrTrailingData is returned by Unmarshal when bytes follow the top-level value.
	ErrTrailingData = errors.New("ber: trailing data after value")
)

// Encoder errors
var (
	// ErrNegativeLength is returned when a negative length is written.
	ErrNegativeLength = errors.New("ber: negative length not allowed")

	// ErrLengthLimit is returned by bounded encodes when the value would not fit.
	ErrLengthLimit = errors.New("ber: encoded length exceeds limit")
)

// DecodeError provides detailed information about a decoding failure.
type DecodeError struct {
	Offset  int    // Byte offset where the error occurred
	Message string // Human-readable error description
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ber: decode error at offset %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("ber: decode error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError with the given parameters.
func NewDecodeError(offset int, message string, err error) *DecodeError {
	return &DecodeError{
		Offset:  offset,
		Message: message,
		Err:     err,
	}
}

// TagMismatchError reports a header whose tag byte differs from the one required.
type TagMismatchError struct {
	Offset   int
	Expected byte
	Actual   byte
}

// Error implements the error interface.
func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("ber: tag mismatch at offset %d: expected 0x%02X, got 0x%02X",
		e.Offset, e.Expected, e.Actual)
}

// Is allows TagMismatchError to match ErrTagMismatch with errors.Is.
func (e *TagMismatchError) Is(target error) bool {
	return target == ErrTagMismatch
}
