package models

import "time"

// Note is one timestamped free-text entry attached to a client. Notes live
// in the History table; the name is kept for compatibility with database
// files produced by earlier versions of the application.
type Note struct {
	// NoteID is the auto-generated, unique note identifier.
	NoteID int64 `json:"noteID"`

	// ClientID references the owning client. A note never outlives its
	// client: deleting the client removes all of its notes.
	ClientID int64 `json:"clientID"`

	// NoteType is a short user-chosen label ("General", "Follow-Up", ...).
	NoteType string `json:"noteType"`

	// Content is the free-text body of the note.
	Content string `json:"content"`

	// CreatedOn is assigned by the storage layer at insert time and is
	// never updated afterwards.
	CreatedOn time.Time `json:"createdOn"`
}

// NoteUpdate carries the two mutable note attributes. CreatedOn and the
// owning client are immutable after insert.
type NoteUpdate struct {
	NoteType *string `json:"noteType,omitempty"`
	Content  *string `json:"content,omitempty"`
}

// TableName returns the name of the database table holding note rows.
func (n Note) TableName() string {
	return "History"
}
