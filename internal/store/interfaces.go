package store

import (
	"context"

	"github.com/emre23q/CMS2/models"
)

// ClientRepository persists client rows. The Client column set is dynamic,
// so write operations take an explicit ordered column list that the caller
// has already filtered against the live schema.
type ClientRepository interface {
	List(ctx context.Context) ([]models.ClientSummary, error)
	Get(ctx context.Context, clientID int64) (models.ClientRecord, error)
	AllRows(ctx context.Context) ([]string, []Row, error)
	Insert(ctx context.Context, columns []string, values map[string]any) (int64, error)
	Update(ctx context.Context, clientID int64, columns []string, values map[string]any) error
	Delete(ctx context.Context, clientID int64) error
}

// NoteRepository persists timestamped notes (History rows).
type NoteRepository interface {
	ListByClient(ctx context.Context, clientID int64) ([]models.Note, error)
	Get(ctx context.Context, noteID int64) (models.Note, error)
	AllContent(ctx context.Context) ([]models.Note, error)
	Insert(ctx context.Context, clientID int64, noteType, content string) (int64, error)
	Update(ctx context.Context, noteID int64, update models.NoteUpdate) error
	Delete(ctx context.Context, noteID int64) error
}

// FieldRepository is the schema registry: it keeps the FieldMetadata table
// in sync with the live Client column set and mutates both together when a
// field is added.
type FieldRepository interface {
	// Initialize makes FieldMetadata consistent with the current Client
	// columns. Idempotent; must run before any other registry operation.
	Initialize(ctx context.Context) error

	List(ctx context.Context) ([]models.FieldMetadata, error)
	Get(ctx context.Context, fieldName string) (models.FieldMetadata, error)
	HiddenFieldNames(ctx context.Context) (map[string]bool, error)

	// AddColumn alters the Client table; the caller validates the name and
	// data type first and inserts the matching metadata row afterwards.
	AddColumn(ctx context.Context, fieldName string, dataType models.DataType) error
	InsertMetadata(ctx context.Context, field models.FieldMetadata) error
	SetHidden(ctx context.Context, fieldName string, hidden bool) error
}
