package service

import (
	"context"

	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/internal/store"
	"github.com/emre23q/CMS2/models"
)

type noteService struct {
	notes store.NoteRepository
	files AttachmentStore

	logger *logger.Logger
}

// NewNoteService constructs the [NoteService] orchestrating the note
// repository and the attachment store.
func NewNoteService(notes store.NoteRepository, files AttachmentStore, logger *logger.Logger) NoteService {
	return &noteService{
		notes:  notes,
		files:  files,
		logger: logger,
	}
}

func (n *noteService) GetNotes(ctx context.Context, clientID int64) ([]models.Note, error) {
	return n.notes.ListByClient(ctx, clientID)
}

func (n *noteService) AddNote(ctx context.Context, clientID int64, noteType, content string) (int64, error) {
	log := n.logger

	id, err := n.notes.Insert(ctx, clientID, noteType, content)
	if err != nil {
		log.Err(err).Str("func", "noteService.AddNote").Int64("client_id", clientID).Msg("failed to add note")
		return 0, err
	}

	log.Debug().Str("func", "noteService.AddNote").Int64("note_id", id).Msg("added note")
	return id, nil
}

func (n *noteService) UpdateNote(ctx context.Context, noteID int64, update models.NoteUpdate) error {
	log := n.logger

	if err := n.notes.Update(ctx, noteID, update); err != nil {
		log.Err(err).Str("func", "noteService.UpdateNote").Int64("note_id", noteID).Msg("failed to update note")
		return err
	}

	return nil
}

// DeleteNote resolves the owning client first (its id names the attachment
// path), deletes the note row, then removes the note's attachment
// directory.
func (n *noteService) DeleteNote(ctx context.Context, noteID int64) error {
	log := n.logger

	note, err := n.notes.Get(ctx, noteID)
	if err != nil {
		log.Err(err).Str("func", "noteService.DeleteNote").Int64("note_id", noteID).Msg("failed to resolve note owner")
		return err
	}

	if err = n.notes.Delete(ctx, noteID); err != nil {
		log.Err(err).Str("func", "noteService.DeleteNote").Int64("note_id", noteID).Msg("failed to delete note")
		return err
	}

	if err = n.files.DeleteAllForNote(ctx, note.ClientID, noteID); err != nil {
		log.Err(err).Str("func", "noteService.DeleteNote").Int64("note_id", noteID).Msg("failed to delete note attachments")
		return err
	}

	log.Debug().Str("func", "noteService.DeleteNote").Int64("note_id", noteID).Msg("deleted note")
	return nil
}

func (n *noteService) GetAttachments(ctx context.Context, clientID int64) (map[int64][]string, error) {
	return n.files.List(ctx, clientID)
}

func (n *noteService) SaveAttachment(ctx context.Context, clientID, noteID int64, fileName string, data []byte) error {
	return n.files.Save(ctx, clientID, noteID, fileName, data)
}

func (n *noteService) DeleteAttachment(ctx context.Context, clientID, noteID int64, fileName string) (bool, error) {
	return n.files.Delete(ctx, clientID, noteID, fileName)
}

func (n *noteService) OpenAttachment(ctx context.Context, clientID, noteID int64, fileName string) error {
	return n.files.Open(ctx, clientID, noteID, fileName)
}
