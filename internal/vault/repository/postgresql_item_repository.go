package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	vaultDomain "github.com/allisson/credvault/internal/vault/domain"
)

// PostgreSQLItemRepository implements Item persistence for PostgreSQL databases.
// Item values are stored already encrypted; the per-item encryption key lives
// in the salt column.
type PostgreSQLItemRepository struct {
	db *sql.DB
}

// NewPostgreSQLItemRepository creates a new PostgreSQL Item repository instance.
func NewPostgreSQLItemRepository(db *sql.DB) *PostgreSQLItemRepository {
	return &PostgreSQLItemRepository{db: db}
}

// Create inserts a new item into the PostgreSQL database.
func (p *PostgreSQLItemRepository) Create(ctx context.Context, item *vaultDomain.Item) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO items (id, component_id, organization_id, item_key, item_value, salt, active, created_by, updated_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(
		ctx,
		query,
		item.ID,
		item.ComponentID,
		item.OrganizationID,
		item.Key,
		item.Value,
		item.EncryptionKey,
		item.Active,
		item.CreatedBy,
		item.UpdatedBy,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create item")
	}
	return nil
}

// GetByID retrieves an active item by its ID.
func (p *PostgreSQLItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Item, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, component_id, organization_id, item_key, item_value, salt, active, created_by, updated_by, created_at, updated_at
			  FROM items
			  WHERE id = $1 AND active = TRUE
			  LIMIT 1`

	var item vaultDomain.Item
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.ComponentID,
		&item.OrganizationID,
		&item.Key,
		&item.Value,
		&item.EncryptionKey,
		&item.Active,
		&item.CreatedBy,
		&item.UpdatedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get item by id")
	}

	return &item, nil
}

// GetByComponentAndKey retrieves an active item by component and key.
func (p *PostgreSQLItemRepository) GetByComponentAndKey(
	ctx context.Context,
	componentID uuid.UUID,
	key string,
) (*vaultDomain.Item, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, component_id, organization_id, item_key, item_value, salt, active, created_by, updated_by, created_at, updated_at
			  FROM items
			  WHERE component_id = $1 AND item_key = $2 AND active = TRUE
			  LIMIT 1`

	var item vaultDomain.Item
	err := querier.QueryRowContext(ctx, query, componentID, key).Scan(
		&item.ID,
		&item.ComponentID,
		&item.OrganizationID,
		&item.Key,
		&item.Value,
		&item.EncryptionKey,
		&item.Active,
		&item.CreatedBy,
		&item.UpdatedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get item by component and key")
	}

	return &item, nil
}

// ListByComponent retrieves active items of a component with pagination.
func (p *PostgreSQLItemRepository) ListByComponent(
	ctx context.Context,
	componentID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Item, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, component_id, organization_id, item_key, item_value, salt, active, created_by, updated_by, created_at, updated_at
			  FROM items
			  WHERE component_id = $1 AND active = TRUE
			  ORDER BY created_at
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, componentID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list items")
	}
	defer func() { _ = rows.Close() }()

	var items []*vaultDomain.Item
	for rows.Next() {
		var item vaultDomain.Item
		err := rows.Scan(
			&item.ID,
			&item.ComponentID,
			&item.OrganizationID,
			&item.Key,
			&item.Value,
			&item.EncryptionKey,
			&item.Active,
			&item.CreatedBy,
			&item.UpdatedBy,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan item")
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate items")
	}

	return items, nil
}

// UpdateValue replaces an item's ciphertext and encryption key.
func (p *PostgreSQLItemRepository) UpdateValue(
	ctx context.Context,
	itemID uuid.UUID,
	value, encryptionKey string,
	updatedBy uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE items
			  SET item_value = $1, salt = $2, updated_by = $3, updated_at = $4
			  WHERE id = $5 AND active = TRUE`

	_, err := querier.ExecContext(ctx, query, value, encryptionKey, updatedBy, time.Now().UTC(), itemID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update item value")
	}
	return nil
}

// Deactivate performs a soft delete on an item by clearing the active flag.
func (p *PostgreSQLItemRepository) Deactivate(ctx context.Context, itemID, updatedBy uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE items
			  SET active = FALSE, updated_by = $1, updated_at = $2
			  WHERE id = $3 AND active = TRUE`

	_, err := querier.ExecContext(ctx, query, updatedBy, time.Now().UTC(), itemID)
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate item")
	}
	return nil
}
