package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates the import payload was empty or whitespace.
	ErrEmptyInput = errors.New("empty input")

	// ErrSchema indicates the import payload failed the structural
	// JSON Schema gate.
	ErrSchema = errors.New("module JSON does not match schema")

	// ErrVersion indicates the payload's schemaVersion is newer than
	// this build supports.
	ErrVersion = errors.New("unsupported module format version")
)

// VersionError carries the versions involved in an ErrVersion rejection.
type VersionError struct {
	Found     string
	Supported string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("module format %s is newer than supported %s", e.Found, e.Supported)
}

func (e *VersionError) Unwrap() error { return ErrVersion }
