package repository

import (
	"database/sql/driver"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uuidArray adapts a UUID slice to a PostgreSQL array parameter for ANY($n).
func uuidArray(ids []uuid.UUID) driver.Valuer {
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = id.String()
	}
	return pq.Array(values)
}
