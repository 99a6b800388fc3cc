// Package domain defines the core directory entities: organizations, their
// employees, and the projects employees are grouped into. The directory is the
// source of truth the vault context resolves grant targets against.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the top-level tenant. Every employee, project, and vault
// belongs to exactly one organization.
type Organization struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
