// Package errors provides standardized error types and helpers for the RangeAtlas codebase.
package errors

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// Sentinel errors for the document error kinds
var (
	// ErrStructure indicates a violation of required document shape
	ErrStructure = errors.New("structural error")
	// ErrFormat indicates an attribute value that cannot be parsed
	ErrFormat = errors.New("format error")
	// ErrConsistency indicates disagreement between a computed and a supplied value
	ErrConsistency = errors.New("consistency error")
)

// StructuralError represents a violation of required document shape:
// wrong root element, element in the wrong position, missing ancestor,
// or a missing required attribute.
type StructuralError struct {
	Element string // Element being processed (e.g., "group", "range")
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *StructuralError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("invalid document structure at <%s>: %s", e.Element, e.Message)
	}
	return fmt.Sprintf("invalid document structure: %s", e.Message)
}

func (e *StructuralError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrStructure
}

// FormatError represents an attribute value that cannot be parsed as an
// address, CIDR block, or prefix length.
type FormatError struct {
	Attr    string // Attribute name that failed to parse
	Value   string // Offending value
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *FormatError) Error() string {
	if e.Attr != "" {
		return fmt.Sprintf("invalid %s value %q: %s", e.Attr, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid value %q: %s", e.Value, e.Message)
}

func (e *FormatError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrFormat
}

// ConsistencyError represents disagreement between a boundary computed from a
// network specification and one supplied explicitly. Both values are reported
// so corrupt documents can be diagnosed without re-reading the source.
type ConsistencyError struct {
	Attr     string // Attribute that disagreed ("from" or "to")
	Computed string // Value derived from the network attribute
	Supplied string // Value supplied explicitly
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s address %s does not match network boundary %s", e.Attr, e.Supplied, e.Computed)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrConsistency
}

// Helper functions for creating common errors

// NewStructural creates a StructuralError
func NewStructural(element, message string) *StructuralError {
	return &StructuralError{
		Element: element,
		Message: message,
	}
}

// NewFormat creates a FormatError
func NewFormat(attr, value, message string) *FormatError {
	return &FormatError{
		Attr:    attr,
		Value:   value,
		Message: message,
	}
}

// NewConsistency creates a ConsistencyError
func NewConsistency(attr, computed, supplied string) *ConsistencyError {
	return &ConsistencyError{
		Attr:     attr,
		Computed: computed,
		Supplied: supplied,
	}
}

// IsMalformed reports whether err came from the XML tokenizer itself rather
// than from document semantics. Only this kind is skipped during multi-source
// enumeration; semantic errors always propagate.
func IsMalformed(err error) bool {
	var syn *xml.SyntaxError
	return errors.As(err, &syn)
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
