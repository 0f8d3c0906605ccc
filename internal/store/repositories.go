package store

import "github.com/emre23q/CMS2/internal/logger"

// Repositories aggregates every repository backed by the one database
// handle. Constructed once at startup and handed to the service layer.
type Repositories struct {
	ClientRepository ClientRepository
	NoteRepository   NoteRepository
	FieldRepository  FieldRepository
}

// NewRepositories wires all repositories onto db.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		ClientRepository: NewClientRepository(db, logger),
		NoteRepository:   NewNoteRepository(db, logger),
		FieldRepository:  NewFieldRepository(db, logger),
	}
}
