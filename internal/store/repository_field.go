package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/models"
)

// fieldRepository is the SQLite-backed implementation of [FieldRepository].
// It owns the invariant that the FieldMetadata row set always equals the
// live Client column set: Initialize self-heals on startup, and AddColumn /
// InsertMetadata are mutated in lockstep by the field service.
type fieldRepository struct {
	*DB
	logger *logger.Logger
}

// NewFieldRepository constructs a [FieldRepository] backed by db.
func NewFieldRepository(db *DB, logger *logger.Logger) FieldRepository {
	return &fieldRepository{
		DB:     db,
		logger: logger,
	}
}

// Initialize inserts a FieldMetadata row for every Client column that does
// not have one yet. Covers both the very first run (empty table) and
// database files created before the registry existed. Data type is inferred
// from the declared column type: anything mentioning "date" becomes DATE,
// everything else TEXT. Requiredness mirrors the column's NOT NULL
// constraint; only clientID, firstName and lastName are protected.
//
// Idempotent: a fully populated table makes this a no-op.
func (f *fieldRepository) Initialize(ctx context.Context) error {
	log := f.logger

	columns, err := f.ColumnsOf(ctx, "Client")
	if err != nil {
		log.Err(err).Str("func", "fieldRepository.Initialize").Msg("failed to introspect Client columns")
		return err
	}

	known, err := f.metadataNames(ctx)
	if err != nil {
		log.Err(err).Str("func", "fieldRepository.Initialize").Msg("failed to load existing metadata names")
		return err
	}

	for _, col := range columns {
		if known[col.Name] {
			continue
		}

		field := models.FieldMetadata{
			FieldName:   col.Name,
			DataType:    inferDataType(col.Type),
			IsRequired:  col.NotNull,
			IsHidden:    false,
			IsProtected: isProtectedField(col.Name),
		}

		if err = f.InsertMetadata(ctx, field); err != nil {
			log.Err(err).Str("func", "fieldRepository.Initialize").Str("field", col.Name).Msg("failed to insert metadata row")
			return err
		}

		log.Debug().Str("func", "fieldRepository.Initialize").Str("field", col.Name).Msg("registered field metadata")
	}

	return nil
}

// List returns every metadata row, protected fields first, then
// alphabetically by field name.
func (f *fieldRepository) List(ctx context.Context) ([]models.FieldMetadata, error) {
	log := f.logger

	rows, err := f.conn.QueryContext(ctx, listFieldMetadata)
	if err != nil {
		log.Err(err).Str("func", "fieldRepository.List").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}
	defer rows.Close()

	fields := make([]models.FieldMetadata, 0, 12)

	for rows.Next() {
		field, scanErr := scanFieldMetadata(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "fieldRepository.List").Msg("failed to scan metadata row")
			return nil, fmt.Errorf("%w: %w", ErrStorageQuery, scanErr)
		}
		fields = append(fields, field)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, rowsErr)
	}

	return fields, nil
}

// Get returns the metadata row for fieldName, or [ErrFieldMetadataNotFound].
func (f *fieldRepository) Get(ctx context.Context, fieldName string) (models.FieldMetadata, error) {
	row := f.conn.QueryRowContext(ctx, getFieldMetadata, fieldName)

	field, err := scanFieldMetadata(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FieldMetadata{}, fmt.Errorf("%w: %q", ErrFieldMetadataNotFound, fieldName)
		}
		return models.FieldMetadata{}, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}

	return field, nil
}

// HiddenFieldNames returns the set of field names currently hidden.
func (f *fieldRepository) HiddenFieldNames(ctx context.Context) (map[string]bool, error) {
	rows, err := f.conn.QueryContext(ctx, getHiddenFieldNames)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}
	defer rows.Close()

	hidden := make(map[string]bool)

	for rows.Next() {
		var name string
		if scanErr := rows.Scan(&name); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorageQuery, scanErr)
		}
		hidden[name] = true
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, rowsErr)
	}

	return hidden, nil
}

// AddColumn appends a nullable column of the mapped SQL type to the Client
// table. Custom columns never get a NOT NULL constraint; requiredness is an
// application-layer concern tracked in FieldMetadata only.
func (f *fieldRepository) AddColumn(ctx context.Context, fieldName string, dataType models.DataType) error {
	log := f.logger

	if !ValidIdentifier(fieldName) {
		return fmt.Errorf("%w: invalid column name %q", ErrStorageQuery, fieldName)
	}
	if !dataType.Valid() {
		return fmt.Errorf("%w: invalid data type %q", ErrStorageQuery, dataType)
	}

	stmt := fmt.Sprintf("ALTER TABLE Client ADD COLUMN %s %s;", fieldName, dataType)
	if err := f.Exec(ctx, stmt); err != nil {
		log.Err(err).Str("func", "fieldRepository.AddColumn").Str("field", fieldName).Msg("failed to add column")
		return err
	}

	return nil
}

// InsertMetadata adds one FieldMetadata row.
func (f *fieldRepository) InsertMetadata(ctx context.Context, field models.FieldMetadata) error {
	return f.Exec(ctx, insertFieldMetadata,
		field.FieldName,
		string(field.DataType),
		field.IsRequired,
		field.IsHidden,
		field.IsProtected,
	)
}

// SetHidden flips the visibility flag of one field. Returns
// [ErrFieldMetadataNotFound] when no metadata row exists for fieldName.
// The registry itself does not forbid hiding a protected field; that
// restriction is presentation-layer policy.
func (f *fieldRepository) SetHidden(ctx context.Context, fieldName string, hidden bool) error {
	if _, err := f.Get(ctx, fieldName); err != nil {
		return err
	}

	return f.Exec(ctx, setFieldHidden, hidden, fieldName)
}

func (f *fieldRepository) metadataNames(ctx context.Context) (map[string]bool, error) {
	rows, err := f.conn.QueryContext(ctx, "SELECT fieldName FROM FieldMetadata;")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}
	defer rows.Close()

	names := make(map[string]bool)

	for rows.Next() {
		var name string
		if scanErr := rows.Scan(&name); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorageQuery, scanErr)
		}
		names[name] = true
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, rowsErr)
	}

	return names, nil
}

func scanFieldMetadata(scan func(...any) error) (models.FieldMetadata, error) {
	var (
		field    models.FieldMetadata
		dataType string
	)

	err := scan(&field.FieldName, &dataType, &field.IsRequired, &field.IsHidden, &field.IsProtected)
	if err != nil {
		return models.FieldMetadata{}, err
	}

	field.DataType = models.DataType(dataType)
	return field, nil
}

func inferDataType(declaredType string) models.DataType {
	if strings.Contains(strings.ToLower(declaredType), "date") {
		return models.FieldDate
	}
	return models.FieldText
}

func isProtectedField(name string) bool {
	switch name {
	case models.FieldNameClientID, models.FieldNameFirstName, models.FieldNameLastName:
		return true
	}
	return false
}
