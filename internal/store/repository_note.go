package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/models"
)

// noteRepository is the SQLite-backed implementation of [NoteRepository].
// Notes live in the History table; createdOn is assigned by the database at
// insert time and never rewritten.
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by db.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// ListByClient returns all notes of one client, newest first.
func (n *noteRepository) ListByClient(ctx context.Context, clientID int64) ([]models.Note, error) {
	return n.queryNotes(ctx, "noteRepository.ListByClient", listNotesByClient, clientID)
}

// Get returns one note by id, or [ErrNoteNotFound].
func (n *noteRepository) Get(ctx context.Context, noteID int64) (models.Note, error) {
	var note models.Note

	err := n.conn.QueryRowContext(ctx, getNote, noteID).
		Scan(&note.NoteID, &note.ClientID, &note.CreatedOn, &note.NoteType, &note.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, fmt.Errorf("%w: id %d", ErrNoteNotFound, noteID)
		}
		return models.Note{}, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}

	return note, nil
}

// AllContent loads the (clientID, content) pairs of every note. Used by the
// search engine, which matches content in memory.
func (n *noteRepository) AllContent(ctx context.Context) ([]models.Note, error) {
	log := n.logger

	rows, err := n.conn.QueryContext(ctx, getAllNoteContent)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.AllContent").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 64)

	for rows.Next() {
		var note models.Note
		if scanErr := rows.Scan(&note.ClientID, &note.Content); scanErr != nil {
			log.Err(scanErr).Str("func", "noteRepository.AllContent").Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrStorageQuery, scanErr)
		}
		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, rowsErr)
	}

	return notes, nil
}

// Insert adds one note for clientID and returns the generated noteID.
func (n *noteRepository) Insert(ctx context.Context, clientID int64, noteType, content string) (int64, error) {
	log := n.logger

	if err := n.Exec(ctx, insertNote, clientID, noteType, content); err != nil {
		log.Err(err).Str("func", "noteRepository.Insert").Int64("client_id", clientID).Msg("failed to insert note")
		return 0, err
	}

	return n.LastInsertID(ctx)
}

// Update rewrites noteType and/or content of one note. Nil fields in update
// are left untouched; createdOn and the owning client never change.
func (n *noteRepository) Update(ctx context.Context, noteID int64, update models.NoteUpdate) error {
	log := n.logger

	builder := sq.Update("History")
	if update.NoteType != nil {
		builder = builder.Set("noteType", *update.NoteType)
	}
	if update.Content != nil {
		builder = builder.Set("content", *update.Content)
	}
	if update.NoteType == nil && update.Content == nil {
		return nil
	}

	query, args, err := builder.Where(sq.Eq{"noteID": noteID}).ToSql()
	if err != nil {
		log.Err(err).Str("func", "noteRepository.Update").Int64("note_id", noteID).Msg("failed to build update query")
		return fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}

	if err = n.Exec(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "noteRepository.Update").Int64("note_id", noteID).Msg("failed to update note")
		return err
	}

	return nil
}

// Delete removes one note row.
func (n *noteRepository) Delete(ctx context.Context, noteID int64) error {
	return n.Exec(ctx, deleteNote, noteID)
}

func (n *noteRepository) queryNotes(ctx context.Context, caller, query string, args ...any) ([]models.Note, error) {
	log := n.logger

	rows, err := n.conn.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", caller).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 16)

	for rows.Next() {
		var note models.Note
		scanErr := rows.Scan(&note.NoteID, &note.ClientID, &note.CreatedOn, &note.NoteType, &note.Content)
		if scanErr != nil {
			log.Err(scanErr).Str("func", caller).Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrStorageQuery, scanErr)
		}
		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", caller).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, rowsErr)
	}

	return notes, nil
}
