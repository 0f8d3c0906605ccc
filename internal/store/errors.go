package store

import "errors"

// Sentinel errors returned by the storage engine and repositories. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrStorageInit is returned when the database cannot be opened, loaded
	// from its file, migrated, or seeded at startup. It is fatal: the
	// application cannot run without a database.
	ErrStorageInit = errors.New("storage initialization failed")

	// ErrStorageQuery wraps every recoverable database failure: constraint
	// violations, malformed SQL, scan failures, and I/O errors during the
	// post-write snapshot. The underlying driver message is preserved in
	// the wrapped chain.
	ErrStorageQuery = errors.New("storage query failed")

	// ErrClientNotFound is returned when a lookup targets a client
	// identifier with no matching row.
	ErrClientNotFound = errors.New("client was not found")

	// ErrNoteNotFound is returned when a lookup targets a note identifier
	// with no matching row.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrFieldMetadataNotFound is returned when a metadata lookup or update
	// targets a field name with no FieldMetadata row.
	ErrFieldMetadataNotFound = errors.New("field metadata was not found")
)
