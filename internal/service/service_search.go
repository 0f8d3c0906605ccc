package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/internal/store"
	"github.com/emre23q/CMS2/models"
)

// searchService implements the free-text client search: case-insensitive
// substring match across non-hidden client fields, note content, and
// attachment file names, with no ranking. Everything is scanned in memory;
// the dataset is a few thousand rows at most, so no index is built.
//
// Note content is searched; note type deliberately is not.
type searchService struct {
	clients store.ClientRepository
	notes   store.NoteRepository
	fields  store.FieldRepository
	files   AttachmentStore

	logger *logger.Logger
}

// NewSearchService constructs the [SearchService].
func NewSearchService(clients store.ClientRepository, notes store.NoteRepository, fields store.FieldRepository, files AttachmentStore, logger *logger.Logger) SearchService {
	return &searchService{
		clients: clients,
		notes:   notes,
		fields:  fields,
		files:   files,
		logger:  logger,
	}
}

func (s *searchService) SearchClients(ctx context.Context, term string) ([]models.ClientSummary, error) {
	log := s.logger

	term = strings.TrimSpace(term)
	if term == "" {
		return s.clients.List(ctx)
	}
	needle := strings.ToLower(term)

	hidden, err := s.fields.HiddenFieldNames(ctx)
	if err != nil {
		log.Err(err).Str("func", "searchService.SearchClients").Msg("failed to load hidden fields")
		return nil, err
	}

	columns, rows, err := s.clients.AllRows(ctx)
	if err != nil {
		log.Err(err).Str("func", "searchService.SearchClients").Msg("failed to load client rows")
		return nil, err
	}

	matched := make(map[int64]bool)
	summaries := make(map[int64]models.ClientSummary, len(rows))

	for _, row := range rows {
		summary := summaryFromRow(row)
		summaries[summary.ClientID] = summary

		for _, col := range columns {
			if hidden[col] {
				continue
			}
			if valueContains(row[col], needle) {
				matched[summary.ClientID] = true
				break
			}
		}
	}

	notes, err := s.notes.AllContent(ctx)
	if err != nil {
		log.Err(err).Str("func", "searchService.SearchClients").Msg("failed to load note content")
		return nil, err
	}
	for _, note := range notes {
		if matched[note.ClientID] {
			continue
		}
		if strings.Contains(strings.ToLower(note.Content), needle) {
			matched[note.ClientID] = true
		}
	}

	err = s.files.Walk(ctx, func(clientID, noteID int64, fileName string) {
		if strings.Contains(strings.ToLower(fileName), needle) {
			matched[clientID] = true
		}
	})
	if err != nil {
		log.Err(err).Str("func", "searchService.SearchClients").Msg("failed to walk attachments")
		return nil, err
	}

	results := make([]models.ClientSummary, 0, len(matched))
	for clientID := range matched {
		// Attachment or note matches can reference ids with no client row
		// left (orphans from a crash mid-cascade); skip those.
		summary, ok := summaries[clientID]
		if !ok {
			continue
		}
		results = append(results, summary)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].LastName != results[j].LastName {
			return results[i].LastName < results[j].LastName
		}
		return results[i].FirstName < results[j].FirstName
	})

	return results, nil
}

// summaryFromRow pulls the minimal projection out of a full dynamic row.
func summaryFromRow(row store.Row) models.ClientSummary {
	var summary models.ClientSummary

	if id, ok := row[models.FieldNameClientID].(int64); ok {
		summary.ClientID = id
	}
	if first, ok := row[models.FieldNameFirstName].(string); ok {
		summary.FirstName = first
	}
	if last, ok := row[models.FieldNameLastName].(string); ok {
		summary.LastName = last
	}

	return summary
}

// valueContains stringifies a field value and reports whether it contains
// needle, case-insensitively. NULLs never match.
func valueContains(value any, needle string) bool {
	if value == nil {
		return false
	}

	var text string
	switch v := value.(type) {
	case string:
		text = v
	default:
		text = fmt.Sprint(v)
	}

	return strings.Contains(strings.ToLower(text), needle)
}
