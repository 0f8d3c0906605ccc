package service

import "errors"

// Sentinel errors surfaced by the record services. All are recoverable: the
// presentation layer shows a message and the user corrects the input.
// Callers should use [errors.Is] to match against these values.
var (
	// ErrNoValidFields is returned when a client add or update supplies no
	// key that matches a live Client column. The caller must correct the
	// input; nothing was written.
	ErrNoValidFields = errors.New("no valid fields supplied")

	// ErrRequiredFieldMissing is returned when a client add or update
	// leaves a required field empty (firstName, lastName, or a custom
	// field marked required in the registry).
	ErrRequiredFieldMissing = errors.New("required field is missing")

	// ErrInvalidFieldName is returned by AddField when the proposed name
	// is not a valid identifier.
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrInvalidDataType is returned by AddField when the data type is
	// neither TEXT nor DATE.
	ErrInvalidDataType = errors.New("invalid field data type")

	// ErrFieldAlreadyExists is returned by AddField when the name is
	// already a Client column.
	ErrFieldAlreadyExists = errors.New("field already exists")

	// ErrInvalidDateFormat is returned when a value for a DATE field (or a
	// DATE default on AddField) does not parse as a day-first calendar
	// date.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrFieldNotFound is returned by ToggleFieldVisibility when the field
	// name has no metadata row.
	ErrFieldNotFound = errors.New("field was not found")
)
