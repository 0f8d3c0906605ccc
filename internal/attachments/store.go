// Package attachments maps (clientID, noteID, fileName) triples to bytes on
// the local filesystem. The tree layout is <root>/<clientID>/<noteID>/<file>;
// existence is derived from the filesystem, never mirrored in the database.
//
// The store is mutated in lockstep with note and client deletion by the
// service layer so that no orphaned files remain after a cascade delete.
package attachments

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/emre23q/CMS2/internal/config"
	"github.com/emre23q/CMS2/internal/logger"
)

// Opener hands an attachment path to the platform's "open with default
// application" integration. The integration itself lives outside the core;
// tests and headless runs inject a no-op.
type Opener interface {
	OpenPath(ctx context.Context, path string) error
}

// Store owns the attachment directory tree rooted at one directory.
type Store struct {
	root   string
	opener Opener
	logger *logger.Logger
}

// NewStore creates the attachment root if needed and returns the store.
func NewStore(cfg config.Attachments, opener Opener, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		log.Err(err).Str("func", "attachments.NewStore").Str("root", cfg.Root).Msg("error creating attachments root")
		return nil, fmt.Errorf("creating attachments root: %w", err)
	}

	return &Store{
		root:   cfg.Root,
		opener: opener,
		logger: log,
	}, nil
}

// Root returns the attachment tree root directory.
func (s *Store) Root() string {
	return s.root
}

// List returns every attachment of one client as a noteID → sorted file
// name mapping. A client without an attachment directory yields an empty
// mapping, not an error.
func (s *Store) List(ctx context.Context, clientID int64) (map[int64][]string, error) {
	log := s.logger

	result := make(map[int64][]string)

	clientDir := s.clientDir(clientID)
	noteEntries, err := os.ReadDir(clientDir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		log.Err(err).Str("func", "Store.List").Int64("client_id", clientID).Msg("failed to read client attachment directory")
		return nil, fmt.Errorf("reading attachment directory: %w", err)
	}

	for _, noteEntry := range noteEntries {
		if !noteEntry.IsDir() {
			continue
		}
		noteID, parseErr := strconv.ParseInt(noteEntry.Name(), 10, 64)
		if parseErr != nil {
			continue
		}

		files, readErr := os.ReadDir(filepath.Join(clientDir, noteEntry.Name()))
		if readErr != nil {
			log.Err(readErr).Str("func", "Store.List").Int64("note_id", noteID).Msg("failed to read note attachment directory")
			return nil, fmt.Errorf("reading attachment directory: %w", readErr)
		}

		names := make([]string, 0, len(files))
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			names = append(names, file.Name())
		}
		sort.Strings(names)
		result[noteID] = names
	}

	return result, nil
}

// Save writes one attachment, creating the note directory as needed. A
// second save with the same name overwrites the first. The write is atomic
// (temp file plus rename) so a crash mid-save never leaves a truncated
// attachment behind.
func (s *Store) Save(ctx context.Context, clientID, noteID int64, fileName string, data []byte) error {
	log := s.logger

	if err := validateFileName(fileName); err != nil {
		return err
	}

	noteDir := s.noteDir(clientID, noteID)
	if err := os.MkdirAll(noteDir, 0o755); err != nil {
		log.Err(err).Str("func", "Store.Save").Int64("client_id", clientID).Int64("note_id", noteID).Msg("failed to create attachment directory")
		return fmt.Errorf("creating attachment directory: %w", err)
	}

	path := filepath.Join(noteDir, fileName)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		log.Err(err).Str("func", "Store.Save").Str("path", path).Msg("failed to write attachment")
		return fmt.Errorf("writing attachment: %w", err)
	}

	log.Debug().Str("func", "Store.Save").Str("path", path).Int("size", len(data)).Msg("saved attachment")
	return nil
}

// Delete removes one attachment file. Returns false (and no error) when the
// file does not exist. The containing directory is left in place; directory
// cleanup happens only on cascade delete.
func (s *Store) Delete(ctx context.Context, clientID, noteID int64, fileName string) (bool, error) {
	log := s.logger

	if err := validateFileName(fileName); err != nil {
		return false, err
	}

	path := filepath.Join(s.noteDir(clientID, noteID), fileName)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		log.Err(err).Str("func", "Store.Delete").Str("path", path).Msg("failed to delete attachment")
		return false, fmt.Errorf("deleting attachment: %w", err)
	}

	log.Debug().Str("func", "Store.Delete").Str("path", path).Msg("deleted attachment")
	return true, nil
}

// DeleteAllForNote removes the note's entire attachment directory. No-op
// when the directory does not exist.
func (s *Store) DeleteAllForNote(ctx context.Context, clientID, noteID int64) error {
	return s.removeTree(ctx, s.noteDir(clientID, noteID))
}

// DeleteAllForClient removes the client's entire attachment directory,
// including every note subdirectory. No-op when the directory does not
// exist.
func (s *Store) DeleteAllForClient(ctx context.Context, clientID int64) error {
	return s.removeTree(ctx, s.clientDir(clientID))
}

// Open resolves the attachment's absolute path and hands it to the
// configured [Opener]. Returns [ErrAttachmentNotFound] when the file does
// not exist.
func (s *Store) Open(ctx context.Context, clientID, noteID int64, fileName string) error {
	log := s.logger

	if err := validateFileName(fileName); err != nil {
		return err
	}

	path := filepath.Join(s.noteDir(clientID, noteID), fileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrAttachmentNotFound, fileName)
		}
		return fmt.Errorf("checking attachment: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving attachment path: %w", err)
	}

	log.Debug().Str("func", "Store.Open").Str("path", absPath).Msg("opening attachment")
	return s.opener.OpenPath(ctx, absPath)
}

// Walk visits every attachment file in the tree, calling fn with the owning
// client id, note id, and file name. Directories that do not parse as
// numeric ids are skipped. Used by the search engine.
func (s *Store) Walk(ctx context.Context, fn func(clientID, noteID int64, fileName string)) error {
	clientEntries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading attachments root: %w", err)
	}

	for _, clientEntry := range clientEntries {
		if !clientEntry.IsDir() {
			continue
		}
		clientID, parseErr := strconv.ParseInt(clientEntry.Name(), 10, 64)
		if parseErr != nil {
			continue
		}

		files, listErr := s.List(ctx, clientID)
		if listErr != nil {
			return listErr
		}

		for noteID, names := range files {
			for _, name := range names {
				fn(clientID, noteID, name)
			}
		}
	}

	return nil
}

func (s *Store) removeTree(ctx context.Context, dir string) error {
	log := s.logger

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	if err := os.RemoveAll(dir); err != nil {
		log.Err(err).Str("func", "Store.removeTree").Str("dir", dir).Msg("failed to remove attachment directory")
		return fmt.Errorf("removing attachment directory: %w", err)
	}

	log.Debug().Str("func", "Store.removeTree").Str("dir", dir).Msg("removed attachment directory")
	return nil
}

func (s *Store) clientDir(clientID int64) string {
	return filepath.Join(s.root, strconv.FormatInt(clientID, 10))
}

func (s *Store) noteDir(clientID, noteID int64) string {
	return filepath.Join(s.clientDir(clientID), strconv.FormatInt(noteID, 10))
}

func validateFileName(fileName string) error {
	if fileName == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidFileName)
	}
	if strings.ContainsAny(fileName, `/\`) || fileName == "." || fileName == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidFileName, fileName)
	}
	return nil
}
