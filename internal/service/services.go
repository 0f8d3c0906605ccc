package service

import (
	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/internal/store"
)

// Services aggregates every record service behind one value handed to the
// presentation layer. All services share one schema cache so a field
// mutation is immediately visible everywhere.
type Services struct {
	ClientService ClientService
	NoteService   NoteService
	FieldService  FieldService
	SearchService SearchService
}

// NewServices wires the record services onto the repositories and the
// attachment store.
func NewServices(db *store.DB, repos *store.Repositories, files AttachmentStore, logger *logger.Logger) *Services {
	schema := newSchemaCache(db, repos.FieldRepository)

	return &Services{
		ClientService: NewClientService(repos.ClientRepository, files, schema, logger),
		NoteService:   NewNoteService(repos.NoteRepository, files, logger),
		FieldService:  NewFieldService(repos.FieldRepository, schema, logger),
		SearchService: NewSearchService(repos.ClientRepository, repos.NoteRepository, repos.FieldRepository, files, logger),
	}
}
