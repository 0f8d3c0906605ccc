package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/internal/store"
	"github.com/emre23q/CMS2/models"
)

type fieldService struct {
	registry store.FieldRepository
	schema   *schemaCache

	logger *logger.Logger
}

// NewFieldService constructs the [FieldService] orchestrating the schema
// registry. Every mutating operation invalidates the shared schema cache
// so the other services immediately see the new column set.
func NewFieldService(registry store.FieldRepository, schema *schemaCache, logger *logger.Logger) FieldService {
	return &fieldService{
		registry: registry,
		schema:   schema,
		logger:   logger,
	}
}

func (f *fieldService) GetFieldMetadata(ctx context.Context) ([]models.FieldMetadata, error) {
	return f.registry.List(ctx)
}

// AddField validates the proposed field, appends a nullable column of the
// mapped type to the Client table, and records the matching metadata row.
//
// The column is added nullable regardless of isRequired: requiredness is
// enforced on the form layer only, never as a storage constraint. A DATE
// default value must parse day-first but is informational only; existing
// rows keep NULL.
func (f *fieldService) AddField(ctx context.Context, fieldName string, dataType models.DataType, isRequired bool, defaultValue string) error {
	log := f.logger

	if !store.ValidIdentifier(fieldName) {
		return fmt.Errorf("%w: %q", ErrInvalidFieldName, fieldName)
	}
	if !dataType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDataType, dataType)
	}

	columns, err := f.schema.Columns(ctx)
	if err != nil {
		return err
	}
	for _, col := range columns {
		if col.Name == fieldName {
			return fmt.Errorf("%w: %q", ErrFieldAlreadyExists, fieldName)
		}
	}

	if dataType == models.FieldDate && defaultValue != "" {
		if _, err = ParseFlexibleDate(defaultValue); err != nil {
			return err
		}
	}

	if err = f.registry.AddColumn(ctx, fieldName, dataType); err != nil {
		log.Err(err).Str("func", "fieldService.AddField").Str("field", fieldName).Msg("failed to add column")
		return err
	}

	field := models.FieldMetadata{
		FieldName:   fieldName,
		DataType:    dataType,
		IsRequired:  isRequired,
		IsHidden:    false,
		IsProtected: false,
	}
	if err = f.registry.InsertMetadata(ctx, field); err != nil {
		log.Err(err).Str("func", "fieldService.AddField").Str("field", fieldName).Msg("failed to insert field metadata")
		return err
	}

	f.schema.Invalidate()

	log.Debug().Str("func", "fieldService.AddField").Str("field", fieldName).Str("type", string(dataType)).Msg("added field")
	return nil
}

// ToggleFieldVisibility flips the hidden flag of one field. The registry
// allows hiding protected fields; the presentation layer simply never
// offers it.
func (f *fieldService) ToggleFieldVisibility(ctx context.Context, fieldName string, hidden bool) error {
	log := f.logger

	if err := f.registry.SetHidden(ctx, fieldName, hidden); err != nil {
		if errors.Is(err, store.ErrFieldMetadataNotFound) {
			return fmt.Errorf("%w: %q", ErrFieldNotFound, fieldName)
		}
		log.Err(err).Str("func", "fieldService.ToggleFieldVisibility").Str("field", fieldName).Msg("failed to toggle visibility")
		return err
	}

	f.schema.Invalidate()

	log.Debug().Str("func", "fieldService.ToggleFieldVisibility").Str("field", fieldName).Bool("hidden", hidden).Msg("toggled field visibility")
	return nil
}
