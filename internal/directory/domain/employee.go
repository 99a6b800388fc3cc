package domain

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a member of an organization. Employees own vaults and are the
// actors behind every vault operation.
type Employee struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Email          string
	PasswordHash   string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
