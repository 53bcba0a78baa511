package navlinks

import (
	"errors"
	"strings"
)

var (
	// ErrMalformed matches every *MalformedDataError.
	ErrMalformed = errors.New("malformed navigation data")

	// ErrNotFound is returned by callers that need to turn a lookup miss into an error.
	ErrNotFound = errors.New("topic not found")
)

// MalformedDataError describes a table that violates the navigation data contract.
type MalformedDataError struct {
	// Table is the name of the table being loaded (usually the file stem).
	Table string
	// Path locates the offending node, e.g. "topics[2].topics[0]".
	Path string
	// TocID is the offending node's identifier, when it is known.
	TocID string
	// Field is the JSON field at fault, if any.
	Field string
	// Reason is a short human-readable description.
	Reason string
	// Err is the underlying decode error, if any.
	Err error
}

func (e *MalformedDataError) Error() string {
	var b strings.Builder
	b.WriteString("navlinks")
	if e.Table != "" {
		b.WriteString(": table ")
		b.WriteString(e.Table)
	}
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	if e.TocID != "" {
		b.WriteString(" (")
		b.WriteString(e.TocID)
		b.WriteString(")")
	}
	if e.Field != "" {
		b.WriteString(": '")
		b.WriteString(e.Field)
		b.WriteString("'")
	}
	if e.Reason != "" {
		b.WriteString(" ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *MalformedDataError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformed) true for any MalformedDataError.
func (e *MalformedDataError) Is(target error) bool {
	return target == ErrMalformed
}
