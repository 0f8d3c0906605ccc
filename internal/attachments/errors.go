package attachments

import "errors"

// Sentinel errors returned by the attachment store. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrAttachmentNotFound is returned by Open when the requested file
	// does not exist. Delete deliberately does not use it: deleting a
	// missing file reports false instead of failing.
	ErrAttachmentNotFound = errors.New("attachment was not found")

	// ErrInvalidFileName is returned when a file name is empty or would
	// escape its note directory (path separators, "..").
	ErrInvalidFileName = errors.New("invalid attachment file name")
)
