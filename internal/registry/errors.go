package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrNotFound      = errors.New("registry source not found")
	ErrMalformedData = errors.New("malformed registry data")
)

// NotFoundError reports a registry source that does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("registry: source %s not found", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// MalformedDataError reports a registry entry that fails schema validation.
// Entry is the offending entry's id when one could be read; otherwise Index
// locates it. Index is -1 for document-level failures.
type MalformedDataError struct {
	Source string
	Index  int
	Entry  string
	Field  string
	Reason string
	Err    error
}

func (e *MalformedDataError) Error() string {
	msg := "registry: malformed data"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	switch {
	case e.Entry != "":
		msg += fmt.Sprintf(": entry %q", e.Entry)
	case e.Index >= 0:
		msg += fmt.Sprintf(": entry #%d", e.Index)
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

func (e *MalformedDataError) Is(target error) bool { return target == ErrMalformedData }

func malformed(index int, entry, field, reason string) *MalformedDataError {
	return &MalformedDataError{Index: index, Entry: entry, Field: field, Reason: reason}
}
