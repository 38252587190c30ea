package nusc

import (
	"errors"
	"fmt"

	"nuscenes-devkit/core/token"
)

var (
	// ErrDatasetNotFound is returned when <dataroot>/<version> does not exist.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrSourceNotFound is returned when a required table file is absent.
	ErrSourceNotFound = errors.New("source not found")
	// ErrMalformed is returned for undecodable table files and invalid tokens.
	ErrMalformed = token.ErrMalformed
	// ErrUnresolvedReference is returned when a foreign key has no target record.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrDuplicateToken is returned in strict mode when a table repeats a token.
	ErrDuplicateToken = errors.New("duplicate token")
	// ErrUnknownTable is returned for a table name outside the schema.
	ErrUnknownTable = errors.New("unknown table")
	// ErrRecordNotFound is returned when a lookup token is not in the table.
	ErrRecordNotFound = errors.New("record not found")
	// ErrTableUnavailable is returned for an optional table whose source was absent.
	ErrTableUnavailable = errors.New("table unavailable")
)

// SourceError names the table file that failed to load.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ReferenceError describes a foreign key that could not be resolved.
// Ref is the zero token when the link is derived from the target side
// (a log that no map lists).
type ReferenceError struct {
	Table  string
	Token  token.Token
	Field  string
	Target string
	Ref    token.Token
}

func (e *ReferenceError) Error() string {
	if e.Ref.IsZero() {
		return fmt.Sprintf("%s: %s %s: %s: no %s record links to it", ErrUnresolvedReference, e.Table, e.Token, e.Field, e.Target)
	}
	return fmt.Sprintf("%s: %s %s: %s %s not found in %s", ErrUnresolvedReference, e.Table, e.Token, e.Field, e.Ref, e.Target)
}

func (e *ReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}
