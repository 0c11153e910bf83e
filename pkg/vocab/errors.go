package vocab

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by store operations.
var (
	ErrNotFound        = errors.New("word not found")
	ErrAlreadyExists   = errors.New("word already exists")
	ErrEmptyStore      = errors.New("no words available")
	ErrMalformedRecord = errors.New("malformed record")
	ErrDuplicateKey    = errors.New("duplicate word in stored records")
)

// RecordError describes a persisted record that does not satisfy the schema.
type RecordError struct {
	Index  int
	Word   string
	Field  string
	Reason string
}

func (e *RecordError) Error() string {
	if e.Word != "" {
		return fmt.Sprintf("record %d (%q): %s: %s", e.Index, e.Word, e.Field, e.Reason)
	}
	return fmt.Sprintf("record %d: %s: %s", e.Index, e.Field, e.Reason)
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }

// DuplicateKeyError reports two persisted records sharing one word.
type DuplicateKeyError struct {
	Word   string
	First  int
	Second int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("records %d and %d share the word %q", e.First, e.Second, e.Word)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }
