package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre23q/CMS2/internal/attachments"
	"github.com/emre23q/CMS2/internal/store"
	"github.com/emre23q/CMS2/models"
)

func TestNoteService_AddAndList(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	clientID := addTestClient(t, svc, map[string]any{"firstName": "Ann", "lastName": "Lee"})

	first, err := svc.NoteService.AddNote(ctx, clientID, "Session", "first visit")
	require.NoError(t, err)
	second, err := svc.NoteService.AddNote(ctx, clientID, "Phone", "rescheduled")
	require.NoError(t, err)

	notes, err := svc.NoteService.GetNotes(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second, notes[0].NoteID, "newest first")
	assert.Equal(t, first, notes[1].NoteID)
}

func TestNoteService_AddForUnknownClient(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	_, err := svc.NoteService.AddNote(ctx, 404, "Session", "orphan")
	assert.ErrorIs(t, err, store.ErrStorageQuery)
}

func TestNoteService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	clientID := addTestClient(t, svc, map[string]any{"firstName": "Ann", "lastName": "Lee"})
	noteID, err := svc.NoteService.AddNote(ctx, clientID, "Session", "first visit")
	require.NoError(t, err)

	noteType := "Follow-Up"
	err = svc.NoteService.UpdateNote(ctx, noteID, models.NoteUpdate{NoteType: &noteType})
	require.NoError(t, err)

	notes, err := svc.NoteService.GetNotes(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Follow-Up", notes[0].NoteType)
	assert.Equal(t, "first visit", notes[0].Content)
}

func TestNoteService_AttachmentLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	clientID := addTestClient(t, svc, map[string]any{"firstName": "Ann", "lastName": "Lee"})
	noteID, err := svc.NoteService.AddNote(ctx, clientID, "Session", "first visit")
	require.NoError(t, err)

	require.NoError(t, svc.NoteService.SaveAttachment(ctx, clientID, noteID, "scan.pdf", []byte("pdf bytes")))

	files, err := svc.NoteService.GetAttachments(ctx, clientID)
	require.NoError(t, err)
	assert.Equal(t, map[int64][]string{noteID: {"scan.pdf"}}, files)

	require.NoError(t, svc.NoteService.DeleteNote(ctx, noteID))

	notes, err := svc.NoteService.GetNotes(ctx, clientID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	files, err = svc.NoteService.GetAttachments(ctx, clientID)
	require.NoError(t, err)
	assert.Empty(t, files, "deleting the note removes its attachment directory")
}

func TestNoteService_DeleteUnknownNote(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	err := svc.NoteService.DeleteNote(ctx, 404)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestNoteService_DeleteAttachment(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	clientID := addTestClient(t, svc, map[string]any{"firstName": "Ann", "lastName": "Lee"})
	noteID, err := svc.NoteService.AddNote(ctx, clientID, "Session", "first visit")
	require.NoError(t, err)
	require.NoError(t, svc.NoteService.SaveAttachment(ctx, clientID, noteID, "scan.pdf", []byte("x")))

	removed, err := svc.NoteService.DeleteAttachment(ctx, clientID, noteID, "scan.pdf")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.NoteService.DeleteAttachment(ctx, clientID, noteID, "scan.pdf")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestNoteService_OpenMissingAttachment(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	clientID := addTestClient(t, svc, map[string]any{"firstName": "Ann", "lastName": "Lee"})

	err := svc.NoteService.OpenAttachment(ctx, clientID, 1, "ghost.pdf")
	assert.ErrorIs(t, err, attachments.ErrAttachmentNotFound)
}
