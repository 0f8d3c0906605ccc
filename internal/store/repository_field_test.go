package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/models"
)

func TestFieldRepository_Initialize(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	require.NoError(t, repo.Initialize(ctx))

	fields, err := repo.List(ctx)
	require.NoError(t, err)

	columns, err := db.ColumnNames(ctx, "Client")
	require.NoError(t, err)

	registered := make(map[string]models.FieldMetadata, len(fields))
	for _, field := range fields {
		registered[field.FieldName] = field
	}

	// Every live column has exactly one metadata row.
	require.Len(t, fields, len(columns))
	for _, name := range columns {
		assert.Contains(t, registered, name)
	}

	assert.True(t, registered["clientID"].IsProtected)
	assert.True(t, registered["firstName"].IsProtected)
	assert.True(t, registered["lastName"].IsProtected)
	assert.False(t, registered["email"].IsProtected)

	assert.True(t, registered["firstName"].IsRequired)
	assert.False(t, registered["phone"].IsRequired)

	assert.Equal(t, models.FieldDate, registered["dob"].DataType)
	assert.Equal(t, models.FieldDate, registered["clientSince"].DataType)
	assert.Equal(t, models.FieldText, registered["address"].DataType)
}

func TestFieldRepository_InitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	require.NoError(t, repo.Initialize(ctx))
	before, err := repo.List(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Initialize(ctx))
	after, err := repo.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestFieldRepository_InitializeSelfHeals(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	require.NoError(t, repo.Initialize(ctx))
	require.NoError(t, db.Exec(ctx, "DELETE FROM FieldMetadata WHERE fieldName = 'email';"))

	require.NoError(t, repo.Initialize(ctx))

	field, err := repo.Get(ctx, "email")
	require.NoError(t, err)
	assert.Equal(t, models.FieldText, field.DataType)
}

func TestFieldRepository_ListOrdersProtectedFirst(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	require.NoError(t, repo.Initialize(ctx))

	fields, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, fields)

	seenUnprotected := false
	for _, field := range fields {
		if !field.IsProtected {
			seenUnprotected = true
		} else {
			assert.False(t, seenUnprotected, "protected fields must sort before custom ones")
		}
	}
}

func TestFieldRepository_AddColumn(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())
	require.NoError(t, repo.Initialize(ctx))

	require.NoError(t, repo.AddColumn(ctx, "allergies", models.FieldText))
	require.NoError(t, repo.InsertMetadata(ctx, models.FieldMetadata{
		FieldName: "allergies",
		DataType:  models.FieldText,
	}))

	columns, err := db.ColumnsOf(ctx, "Client")
	require.NoError(t, err)

	var added *models.Column
	for i := range columns {
		if columns[i].Name == "allergies" {
			added = &columns[i]
		}
	}
	require.NotNil(t, added, "ALTER TABLE must add the column")
	assert.False(t, added.NotNull, "custom columns are always nullable")
	assert.Equal(t, "TEXT", added.Type)

	field, err := repo.Get(ctx, "allergies")
	require.NoError(t, err)
	assert.False(t, field.IsProtected)
	assert.False(t, field.IsHidden)
}

func TestFieldRepository_AddColumnRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	err := repo.AddColumn(ctx, "bad name", models.FieldText)
	assert.ErrorIs(t, err, ErrStorageQuery)

	err = repo.AddColumn(ctx, "fine", models.DataType("BLOB"))
	assert.ErrorIs(t, err, ErrStorageQuery)
}

func TestFieldRepository_SetHidden(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())
	require.NoError(t, repo.Initialize(ctx))

	require.NoError(t, repo.SetHidden(ctx, "email", true))

	hidden, err := repo.HiddenFieldNames(ctx)
	require.NoError(t, err)
	assert.True(t, hidden["email"])

	require.NoError(t, repo.SetHidden(ctx, "email", false))

	hidden, err = repo.HiddenFieldNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, hidden)
}

func TestFieldRepository_SetHiddenUnknownField(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())
	require.NoError(t, repo.Initialize(ctx))

	err := repo.SetHidden(ctx, "nonexistent", true)
	assert.ErrorIs(t, err, ErrFieldMetadataNotFound)
}

func TestFieldRepository_GetUnknownField(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	repo := NewFieldRepository(db, logger.Nop())

	_, err := repo.Get(ctx, "ghost")
	assert.ErrorIs(t, err, ErrFieldMetadataNotFound)
}
