package domain

import (
	"time"

	"github.com/google/uuid"
)

// Component is a named grouping of items inside a vault, typically one per
// system the vault holds credentials for (a database, an API, a host).
type Component struct {
	ID             uuid.UUID
	VaultID        uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Description    string
	Active         bool
	CreatedBy      uuid.UUID
	UpdatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
