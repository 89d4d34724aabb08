package importer

import "fmt"

// ParseError means the payload never made it past the parser: invalid
// JSON, a missing schema version marker, or a version newer than this
// build supports. Nothing has been written when it is returned.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "snapshot parse error: " + e.Reason
}

// StorageError means the underlying store rejected a write (or the
// operation timed out mid-merge). The merge transaction has been rolled
// back in full when it is returned.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during import: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
