package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/internal/store"
	"github.com/emre23q/CMS2/models"
)

type clientService struct {
	clients store.ClientRepository
	files   AttachmentStore
	schema  *schemaCache

	logger *logger.Logger
}

// NewClientService constructs the [ClientService] orchestrating the client
// repository, the schema cache, and the attachment store (for cascade
// cleanup on delete).
func NewClientService(clients store.ClientRepository, files AttachmentStore, schema *schemaCache, logger *logger.Logger) ClientService {
	return &clientService{
		clients: clients,
		files:   files,
		schema:  schema,
		logger:  logger,
	}
}

func (c *clientService) ListClients(ctx context.Context) ([]models.ClientSummary, error) {
	return c.clients.List(ctx)
}

func (c *clientService) GetClient(ctx context.Context, clientID int64) (*models.ClientRecord, error) {
	record, err := c.clients.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrClientNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &record, nil
}

func (c *clientService) GetClientSchema(ctx context.Context) ([]models.Column, error) {
	return c.schema.Columns(ctx)
}

// AddClient filters fields against the live column set, enforces
// required fields, normalizes DATE values, inserts, and returns the new
// client id.
func (c *clientService) AddClient(ctx context.Context, fields map[string]any) (int64, error) {
	log := c.logger

	columns, values, err := c.prepareFields(ctx, fields, false)
	if err != nil {
		return 0, err
	}

	if err = c.checkRequired(ctx, values, false); err != nil {
		return 0, err
	}

	id, err := c.clients.Insert(ctx, columns, values)
	if err != nil {
		log.Err(err).Str("func", "clientService.AddClient").Msg("failed to add client")
		return 0, err
	}

	log.Debug().Str("func", "clientService.AddClient").Int64("client_id", id).Msg("added client")
	return id, nil
}

// UpdateClient rewrites the supplied fields of one client. The clientID key
// is dropped from the update set: the identifier is immutable.
func (c *clientService) UpdateClient(ctx context.Context, clientID int64, fields map[string]any) error {
	log := c.logger

	columns, values, err := c.prepareFields(ctx, fields, true)
	if err != nil {
		return err
	}

	if err = c.checkRequired(ctx, values, true); err != nil {
		return err
	}

	if err = c.clients.Update(ctx, clientID, columns, values); err != nil {
		log.Err(err).Str("func", "clientService.UpdateClient").Int64("client_id", clientID).Msg("failed to update client")
		return err
	}

	log.Debug().Str("func", "clientService.UpdateClient").Int64("client_id", clientID).Msg("updated client")
	return nil
}

// DeleteClient removes the client row (note rows cascade with it) and then
// the client's whole attachment subtree. The two resources are not
// atomically linked: a crash between the two steps can leave an orphaned
// directory, an accepted gap at this scale.
func (c *clientService) DeleteClient(ctx context.Context, clientID int64) error {
	log := c.logger

	if err := c.clients.Delete(ctx, clientID); err != nil {
		log.Err(err).Str("func", "clientService.DeleteClient").Int64("client_id", clientID).Msg("failed to delete client")
		return err
	}

	if err := c.files.DeleteAllForClient(ctx, clientID); err != nil {
		log.Err(err).Str("func", "clientService.DeleteClient").Int64("client_id", clientID).Msg("failed to delete client attachments")
		return err
	}

	log.Debug().Str("func", "clientService.DeleteClient").Int64("client_id", clientID).Msg("deleted client")
	return nil
}

// prepareFields filters the caller-supplied mapping down to keys that are
// live Client columns (in live column order), optionally dropping the
// identifier, and normalizes values of DATE-typed fields to canonical
// YYYY-MM-DD form. Returns [ErrNoValidFields] when nothing survives the
// filter.
func (c *clientService) prepareFields(ctx context.Context, fields map[string]any, dropID bool) ([]string, map[string]any, error) {
	liveColumns, err := c.schema.Columns(ctx)
	if err != nil {
		return nil, nil, err
	}

	metadata, err := c.schema.Fields(ctx)
	if err != nil {
		return nil, nil, err
	}

	columns := make([]string, 0, len(fields))
	values := make(map[string]any, len(fields))

	for _, col := range liveColumns {
		if dropID && col.Name == models.FieldNameClientID {
			continue
		}

		value, supplied := fields[col.Name]
		if !supplied {
			continue
		}

		if field, ok := metadata[col.Name]; ok && field.DataType == models.FieldDate {
			value, err = normalizeDateValue(value)
			if err != nil {
				return nil, nil, err
			}
		}

		columns = append(columns, col.Name)
		values[col.Name] = value
	}

	if len(columns) == 0 {
		return nil, nil, ErrNoValidFields
	}

	return columns, values, nil
}

// checkRequired rejects empty values for firstName/lastName and, on add,
// for custom fields marked required in the registry. On update only the
// supplied keys are checked: an update that does not touch a required field
// is fine.
func (c *clientService) checkRequired(ctx context.Context, values map[string]any, updating bool) error {
	metadata, err := c.schema.Fields(ctx)
	if err != nil {
		return err
	}

	for name, field := range metadata {
		if !field.IsRequired || name == models.FieldNameClientID {
			continue
		}

		value, supplied := values[name]
		if !supplied {
			if updating {
				continue
			}
			if field.IsProtected {
				return fmt.Errorf("%w: %s", ErrRequiredFieldMissing, name)
			}
			// Custom required fields are a form-layer concern on add;
			// the column itself stays nullable.
			continue
		}

		if isEmptyValue(value) {
			return fmt.Errorf("%w: %s", ErrRequiredFieldMissing, name)
		}
	}

	return nil
}

func normalizeDateValue(value any) (any, error) {
	text, ok := value.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return value, nil
	}

	// Already-canonical values round-trip untouched, so re-saving a record
	// the store produced never fails the day-first interpretation.
	if canonical, ok := isCanonicalDate(text); ok {
		return canonical, nil
	}

	canonical, err := ParseFlexibleDate(text)
	if err != nil {
		return nil, err
	}

	return canonical, nil
}

func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text) == ""
	}
	return false
}
