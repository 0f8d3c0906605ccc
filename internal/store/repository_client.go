package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/emre23q/CMS2/internal/logger"
	"github.com/emre23q/CMS2/models"
)

// clientRepository is the SQLite-backed implementation of
// [ClientRepository]. INSERT and UPDATE statements are built at runtime
// with squirrel because the Client column set grows at runtime; nothing in
// this repository assumes a fixed schema beyond the three protected
// columns.
type clientRepository struct {
	*DB
	logger *logger.Logger
}

// NewClientRepository constructs a [ClientRepository] backed by db.
func NewClientRepository(db *DB, logger *logger.Logger) ClientRepository {
	return &clientRepository{
		DB:     db,
		logger: logger,
	}
}

// List returns the minimal projection of every client, ordered by
// (lastName, firstName).
func (c *clientRepository) List(ctx context.Context) ([]models.ClientSummary, error) {
	log := c.logger

	rows, err := c.conn.QueryContext(ctx, listClients)
	if err != nil {
		log.Err(err).Str("func", "clientRepository.List").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}
	defer rows.Close()

	clients := make([]models.ClientSummary, 0, 32)

	for rows.Next() {
		var client models.ClientSummary
		if scanErr := rows.Scan(&client.ClientID, &client.FirstName, &client.LastName); scanErr != nil {
			log.Err(scanErr).Str("func", "clientRepository.List").Msg("failed to scan client row")
			return nil, fmt.Errorf("%w: %w", ErrStorageQuery, scanErr)
		}
		clients = append(clients, client)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "clientRepository.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrStorageQuery, rowsErr)
	}

	return clients, nil
}

// Get returns the full dynamic record of one client, with the live column
// order preserved. Returns [ErrClientNotFound] when no row matches.
func (c *clientRepository) Get(ctx context.Context, clientID int64) (models.ClientRecord, error) {
	cols, rows, err := c.Query(ctx, getClient, clientID)
	if err != nil {
		return models.ClientRecord{}, err
	}

	if len(rows) == 0 {
		return models.ClientRecord{}, fmt.Errorf("%w: id %d", ErrClientNotFound, clientID)
	}

	return models.ClientRecord{Columns: cols, Values: rows[0]}, nil
}

// AllRows loads every client row with every live column. Used by the search
// engine, which scans field values in memory.
func (c *clientRepository) AllRows(ctx context.Context) ([]string, []Row, error) {
	return c.Query(ctx, getAllClients)
}

// Insert adds one client row. columns is the ordered, already-filtered set
// of live column names to write; values holds one value per column name.
// Returns the generated clientID.
func (c *clientRepository) Insert(ctx context.Context, columns []string, values map[string]any) (int64, error) {
	log := c.logger

	args := make([]any, 0, len(columns))
	for _, col := range columns {
		args = append(args, values[col])
	}

	query, queryArgs, err := sq.Insert("Client").Columns(columns...).Values(args...).ToSql()
	if err != nil {
		log.Err(err).Str("func", "clientRepository.Insert").Msg("failed to build insert query")
		return 0, fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}

	if err = c.Exec(ctx, query, queryArgs...); err != nil {
		log.Err(err).Str("func", "clientRepository.Insert").Msg("failed to insert client")
		return 0, err
	}

	return c.LastInsertID(ctx)
}

// Update rewrites the given columns of one client row.
func (c *clientRepository) Update(ctx context.Context, clientID int64, columns []string, values map[string]any) error {
	log := c.logger

	builder := sq.Update("Client")
	for _, col := range columns {
		builder = builder.Set(col, values[col])
	}

	query, queryArgs, err := builder.Where(sq.Eq{"clientID": clientID}).ToSql()
	if err != nil {
		log.Err(err).Str("func", "clientRepository.Update").Int64("client_id", clientID).Msg("failed to build update query")
		return fmt.Errorf("%w: %w", ErrStorageQuery, err)
	}

	if err = c.Exec(ctx, query, queryArgs...); err != nil {
		log.Err(err).Str("func", "clientRepository.Update").Int64("client_id", clientID).Msg("failed to update client")
		return err
	}

	return nil
}

// Delete removes one client row. Note rows go with it through the
// ON DELETE CASCADE constraint on History.
func (c *clientRepository) Delete(ctx context.Context, clientID int64) error {
	return c.Exec(ctx, deleteClient, clientID)
}
