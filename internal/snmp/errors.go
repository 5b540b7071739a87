// Package snmp builds and parses SNMP messages on top of the ber value model.
package snmp

import (
	"errors"
	"fmt"
)

// Message errors
var (
	ErrEmptyMessage       = errors.New("snmp: empty message")
	ErrUnsupportedVersion = errors.New("snmp: unsupported version")
	ErrUnknownPDU         = errors.New("snmp: unknown PDU type")
	ErrMalformed          = errors.New("snmp: malformed message")
	ErrNoPDU              = errors.New("snmp: message has no PDU")
)

// ParseError provides detailed information about a parsing failure.
type ParseError struct {
	Offset  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("snmp: parse error at offset %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("snmp: parse error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(offset int, message string, err error) *ParseError {
	return &ParseError{
		Offset:  offset,
		Message: message,
		Err:     err,
	}
}
