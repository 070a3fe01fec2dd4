package database

import (
	"context"

	"github.com/google/uuid"
)

const updateSessionStatus = `-- name: UpdateSessionStatus :exec
UPDATE sessions
SET status=$1, status_message=$2
WHERE id=$3
`

type UpdateSessionStatusParams struct {
	Status        string
	StatusMessage string
	ID            uuid.UUID
}

func (q *Queries) UpdateSessionStatus(ctx context.Context, arg UpdateSessionStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateSessionStatus, arg.Status, arg.StatusMessage, arg.ID)
	return err
}
