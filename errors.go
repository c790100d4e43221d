package gdprconsent

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBase64 reports that the outer base64 envelope could not be
	// decoded in either the standard or the URL-safe alphabet.
	ErrInvalidBase64 = errors.New("gdprconsent: invalid base64")

	// ErrUnexpectedEnd reports that the bitstream ended before a declared
	// field or payload was fully read.
	ErrUnexpectedEnd = errors.New("gdprconsent: unexpected end of input")
)

// UnsupportedVersionError reports a version tag other than 1.
type UnsupportedVersionError struct {
	Version uint8
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("gdprconsent: unsupported version: %d", e.Version)
}

// MalformedRecordError reports a structurally impossible value inside an
// otherwise readable record, e.g. a range entry referencing vendor ID 0 or
// an ID beyond the declared maximum.
type MalformedRecordError struct {
	Detail string
}

func (e *MalformedRecordError) Error() string {
	return "gdprconsent: malformed record: " + e.Detail
}

// InvalidLanguageError reports a consent language that is not exactly two
// lowercase ASCII letters.
type InvalidLanguageError struct {
	Language string
	Detail   string
}

func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("gdprconsent: invalid consent language %q: %s", e.Language, e.Detail)
}

// FieldOverflowError reports a record value that does not fit its declared
// wire width or domain (e.g. a CmpID above 4095, or a vendor ID beyond
// MaxVendorID).
type FieldOverflowError struct {
	Field string
	Value uint64
	Max   uint64
}

func (e *FieldOverflowError) Error() string {
	return fmt.Sprintf("gdprconsent: field %s: value %d exceeds maximum %d", e.Field, e.Value, e.Max)
}
