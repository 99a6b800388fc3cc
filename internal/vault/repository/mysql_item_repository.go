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

// MySQLItemRepository implements Item persistence for MySQL databases.
// Item values are stored already encrypted; the per-item encryption key lives
// in the salt column.
type MySQLItemRepository struct {
	db *sql.DB
}

// NewMySQLItemRepository creates a new MySQL Item repository instance.
func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{db: db}
}

// scanItemRow scans a single item row, decoding binary UUID columns.
func scanItemRow(scan func(dest ...any) error) (*vaultDomain.Item, error) {
	var item vaultDomain.Item
	var rawID, rawComponentID, rawOrgID, rawCreatedBy, rawUpdatedBy []byte

	err := scan(
		&rawID,
		&rawComponentID,
		&rawOrgID,
		&item.Key,
		&item.Value,
		&item.EncryptionKey,
		&item.Active,
		&rawCreatedBy,
		&rawUpdatedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := item.ID.UnmarshalBinary(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal item id")
	}
	if err := item.ComponentID.UnmarshalBinary(rawComponentID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal component id")
	}
	if err := item.OrganizationID.UnmarshalBinary(rawOrgID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}
	if err := item.CreatedBy.UnmarshalBinary(rawCreatedBy); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal created_by id")
	}
	if err := item.UpdatedBy.UnmarshalBinary(rawUpdatedBy); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal updated_by id")
	}

	return &item, nil
}

// Create inserts a new item into the MySQL database.
func (m *MySQLItemRepository) Create(ctx context.Context, item *vaultDomain.Item) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO items (id, component_id, organization_id, item_key, item_value, salt, active, created_by, updated_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ids, err := marshalUUIDs([]uuid.UUID{item.ID, item.ComponentID, item.OrganizationID, item.CreatedBy, item.UpdatedBy})
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		ids[0],
		ids[1],
		ids[2],
		item.Key,
		item.Value,
		item.EncryptionKey,
		item.Active,
		ids[3],
		ids[4],
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create item")
	}
	return nil
}

// GetByID retrieves an active item by its ID.
func (m *MySQLItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.Item, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, component_id, organization_id, item_key, item_value, salt, active, created_by, updated_by, created_at, updated_at
			  FROM items
			  WHERE id = ? AND active = TRUE
			  LIMIT 1`

	idValue, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal item id")
	}

	row := querier.QueryRowContext(ctx, query, idValue)
	item, err := scanItemRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get item by id")
	}

	return item, nil
}

// GetByComponentAndKey retrieves an active item by component and key.
func (m *MySQLItemRepository) GetByComponentAndKey(
	ctx context.Context,
	componentID uuid.UUID,
	key string,
) (*vaultDomain.Item, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, component_id, organization_id, item_key, item_value, salt, active, created_by, updated_by, created_at, updated_at
			  FROM items
			  WHERE component_id = ? AND item_key = ? AND active = TRUE
			  LIMIT 1`

	componentValue, err := componentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal component id")
	}

	row := querier.QueryRowContext(ctx, query, componentValue, key)
	item, err := scanItemRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, vaultDomain.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get item by component and key")
	}

	return item, nil
}

// ListByComponent retrieves active items of a component with pagination.
func (m *MySQLItemRepository) ListByComponent(
	ctx context.Context,
	componentID uuid.UUID,
	offset, limit int,
) ([]*vaultDomain.Item, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, component_id, organization_id, item_key, item_value, salt, active, created_by, updated_by, created_at, updated_at
			  FROM items
			  WHERE component_id = ? AND active = TRUE
			  ORDER BY created_at
			  LIMIT ? OFFSET ?`

	componentValue, err := componentID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal component id")
	}

	rows, err := querier.QueryContext(ctx, query, componentValue, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list items")
	}
	defer func() { _ = rows.Close() }()

	var items []*vaultDomain.Item
	for rows.Next() {
		item, err := scanItemRow(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate items")
	}

	return items, nil
}

// UpdateValue replaces an item's ciphertext and encryption key.
func (m *MySQLItemRepository) UpdateValue(
	ctx context.Context,
	itemID uuid.UUID,
	value, encryptionKey string,
	updatedBy uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE items
			  SET item_value = ?, salt = ?, updated_by = ?, updated_at = ?
			  WHERE id = ? AND active = TRUE`

	ids, err := marshalUUIDs([]uuid.UUID{updatedBy, itemID})
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query, value, encryptionKey, ids[0], time.Now().UTC(), ids[1])
	if err != nil {
		return apperrors.Wrap(err, "failed to update item value")
	}
	return nil
}

// Deactivate performs a soft delete on an item by clearing the active flag.
func (m *MySQLItemRepository) Deactivate(ctx context.Context, itemID, updatedBy uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE items
			  SET active = FALSE, updated_by = ?, updated_at = ?
			  WHERE id = ? AND active = TRUE`

	ids, err := marshalUUIDs([]uuid.UUID{updatedBy, itemID})
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query, ids[0], time.Now().UTC(), ids[1])
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate item")
	}
	return nil
}
