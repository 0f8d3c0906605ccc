package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre23q/CMS2/models"
)

func TestFieldService_AddField(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newTestServices(t)

	err := svc.FieldService.AddField(ctx, "allergies", models.FieldText, true, "")
	require.NoError(t, err)

	names, err := db.ColumnNames(ctx, "Client")
	require.NoError(t, err)
	assert.Contains(t, names, "allergies")

	fields, err := svc.FieldService.GetFieldMetadata(ctx)
	require.NoError(t, err)

	var added *models.FieldMetadata
	for i := range fields {
		if fields[i].FieldName == "allergies" {
			added = &fields[i]
		}
	}
	require.NotNil(t, added)
	assert.True(t, added.IsRequired)
	assert.False(t, added.IsHidden)
	assert.False(t, added.IsProtected)
	assert.Equal(t, models.FieldText, added.DataType)
}

func TestFieldService_AddFieldDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	err := svc.FieldService.AddField(ctx, "email", models.FieldText, false, "")
	assert.ErrorIs(t, err, ErrFieldAlreadyExists)
}

func TestFieldService_AddFieldInvalidName(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	bad := []string{"", "9lives", "drop table", "name;--", "a-b"}
	for _, name := range bad {
		err := svc.FieldService.AddField(ctx, name, models.FieldText, false, "")
		assert.ErrorIs(t, err, ErrInvalidFieldName, "name %q", name)
	}
}

func TestFieldService_AddFieldInvalidType(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	err := svc.FieldService.AddField(ctx, "notes2", models.DataType("BLOB"), false, "")
	assert.ErrorIs(t, err, ErrInvalidDataType)
}

func TestFieldService_AddDateFieldValidatesDefault(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	err := svc.FieldService.AddField(ctx, "reviewOn", models.FieldDate, false, "31/04/2024")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	err = svc.FieldService.AddField(ctx, "reviewOn", models.FieldDate, false, "1/6/2024")
	require.NoError(t, err)
}

func TestFieldService_AddFieldIsUsableImmediately(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	// Prime the schema cache with a write before the field exists.
	id := addTestClient(t, svc, map[string]any{"firstName": "Ann", "lastName": "Lee"})

	require.NoError(t, svc.FieldService.AddField(ctx, "allergies", models.FieldText, false, ""))

	// The new column must be writable without any restart or reconnect.
	err := svc.ClientService.UpdateClient(ctx, id, map[string]any{"allergies": "penicillin"})
	require.NoError(t, err)

	record, err := svc.ClientService.GetClient(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "penicillin", record.Get("allergies"))
}

func TestFieldService_AddDateFieldNormalizesValues(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	require.NoError(t, svc.FieldService.AddField(ctx, "reviewOn", models.FieldDate, false, ""))

	id := addTestClient(t, svc, map[string]any{
		"firstName": "Ann",
		"lastName":  "Lee",
		"reviewOn":  "1.6.2024",
	})

	record, err := svc.ClientService.GetClient(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", record.Get("reviewOn"))
}

func TestFieldService_ToggleFieldVisibility(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	require.NoError(t, svc.FieldService.ToggleFieldVisibility(ctx, "email", true))

	fields, err := svc.FieldService.GetFieldMetadata(ctx)
	require.NoError(t, err)
	for _, field := range fields {
		if field.FieldName == "email" {
			assert.True(t, field.IsHidden)
		}
	}

	require.NoError(t, svc.FieldService.ToggleFieldVisibility(ctx, "email", false))
}

func TestFieldService_ToggleUnknownField(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestServices(t)

	err := svc.FieldService.ToggleFieldVisibility(ctx, "ghost", true)
	assert.ErrorIs(t, err, ErrFieldNotFound)
}
