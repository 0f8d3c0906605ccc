package service

import (
	"context"

	"github.com/emre23q/CMS2/models"
)

// ClientService exposes client record operations to the presentation layer.
type ClientService interface {
	// ListClients returns all clients ordered by (lastName, firstName).
	ListClients(ctx context.Context) ([]models.ClientSummary, error)

	// GetClient returns the full dynamic record, or nil when no client has
	// that id.
	GetClient(ctx context.Context, clientID int64) (*models.ClientRecord, error)

	// GetClientSchema returns the live Client column set.
	GetClientSchema(ctx context.Context) ([]models.Column, error)

	// AddClient inserts a client from a field-name → value mapping and
	// returns the new id. Keys that are not live columns are dropped.
	AddClient(ctx context.Context, fields map[string]any) (int64, error)

	// UpdateClient rewrites the supplied fields of one client. The
	// identifier itself is never updatable.
	UpdateClient(ctx context.Context, clientID int64, fields map[string]any) error

	// DeleteClient removes the client, all of its notes, and its whole
	// attachment subtree.
	DeleteClient(ctx context.Context, clientID int64) error
}

// NoteService exposes note and attachment operations. Attachments surface
// here because their lifecycle is bound to notes.
type NoteService interface {
	GetNotes(ctx context.Context, clientID int64) ([]models.Note, error)
	AddNote(ctx context.Context, clientID int64, noteType, content string) (int64, error)
	UpdateNote(ctx context.Context, noteID int64, update models.NoteUpdate) error

	// DeleteNote removes the note row and its attachment directory.
	DeleteNote(ctx context.Context, noteID int64) error

	GetAttachments(ctx context.Context, clientID int64) (map[int64][]string, error)
	SaveAttachment(ctx context.Context, clientID, noteID int64, fileName string, data []byte) error

	// DeleteAttachment reports false when the file did not exist; that is
	// not an error.
	DeleteAttachment(ctx context.Context, clientID, noteID int64, fileName string) (bool, error)
	OpenAttachment(ctx context.Context, clientID, noteID int64, fileName string) error
}

// FieldService exposes dynamic-schema operations.
type FieldService interface {
	GetFieldMetadata(ctx context.Context) ([]models.FieldMetadata, error)
	AddField(ctx context.Context, fieldName string, dataType models.DataType, isRequired bool, defaultValue string) error
	ToggleFieldVisibility(ctx context.Context, fieldName string, hidden bool) error
}

// SearchService answers free-text client searches.
type SearchService interface {
	// SearchClients returns the clients whose non-hidden field values,
	// note content, or attachment file names contain term
	// (case-insensitive). An empty term returns all clients.
	SearchClients(ctx context.Context, term string) ([]models.ClientSummary, error)
}

// AttachmentStore is the slice of the attachment backend the services use.
// Satisfied by *attachments.Store; the interface keeps the backend
// swappable (plain files today, blob storage tomorrow) without touching the
// record services.
type AttachmentStore interface {
	List(ctx context.Context, clientID int64) (map[int64][]string, error)
	Save(ctx context.Context, clientID, noteID int64, fileName string, data []byte) error
	Delete(ctx context.Context, clientID, noteID int64, fileName string) (bool, error)
	DeleteAllForNote(ctx context.Context, clientID, noteID int64) error
	DeleteAllForClient(ctx context.Context, clientID int64) error
	Open(ctx context.Context, clientID, noteID int64, fileName string) error
	Walk(ctx context.Context, fn func(clientID, noteID int64, fileName string)) error
}
