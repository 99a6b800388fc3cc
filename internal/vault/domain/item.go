package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a single encrypted key/value pair inside a component.
// Value holds the URL-safe base64 ciphertext (IV-prefixed AES-256-CBC) and
// EncryptionKey the URL-safe base64 per-item key, persisted in the legacy
// `salt` column. Plaintext never touches the database.
type Item struct {
	ID             uuid.UUID
	ComponentID    uuid.UUID
	OrganizationID uuid.UUID
	Key            string
	Value          string
	EncryptionKey  string
	Active         bool
	CreatedBy      uuid.UUID
	UpdatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Plaintext holds the decrypted value after a read. Never persisted.
	Plaintext string
}
