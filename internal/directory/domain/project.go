package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project groups employees inside an organization. Project membership is what
// project-level vault grants resolve against.
type Project struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Email          string
	Description    string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
