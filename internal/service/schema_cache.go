package service

import (
	"context"
	"sync"

	"github.com/emre23q/CMS2/internal/store"
	"github.com/emre23q/CMS2/models"
)

// columnIntrospector is the slice of the storage engine the cache needs.
// Satisfied by *store.DB.
type columnIntrospector interface {
	ColumnsOf(ctx context.Context, table string) ([]models.Column, error)
}

// schemaCache memoizes the live Client column set and the field metadata
// map for the hot read paths (every client add/update filters against the
// columns). The cache is owned by the service layer and explicitly
// invalidated on every mutating field operation; there are no ambient
// module-level schema variables anywhere in the program.
type schemaCache struct {
	introspector columnIntrospector
	registry     store.FieldRepository

	mu      sync.Mutex
	columns []models.Column
	fields  map[string]models.FieldMetadata
}

func newSchemaCache(introspector columnIntrospector, registry store.FieldRepository) *schemaCache {
	return &schemaCache{
		introspector: introspector,
		registry:     registry,
	}
}

// Columns returns the cached live Client column set, loading it on first
// use after an invalidation.
func (c *schemaCache) Columns(ctx context.Context) ([]models.Column, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.columns == nil {
		columns, err := c.introspector.ColumnsOf(ctx, "Client")
		if err != nil {
			return nil, err
		}
		c.columns = columns
	}

	return c.columns, nil
}

// Fields returns the cached field metadata keyed by field name.
func (c *schemaCache) Fields(ctx context.Context) (map[string]models.FieldMetadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fields == nil {
		list, err := c.registry.List(ctx)
		if err != nil {
			return nil, err
		}

		fields := make(map[string]models.FieldMetadata, len(list))
		for _, field := range list {
			fields[field.FieldName] = field
		}
		c.fields = fields
	}

	return c.fields, nil
}

// Invalidate drops both cached views. The next read re-introspects the
// live schema.
func (c *schemaCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.columns = nil
	c.fields = nil
}
