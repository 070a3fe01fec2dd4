package database

import (
	"context"

	"github.com/google/uuid"
)

const getResumeBySession = `-- name: GetResumeBySession :one
SELECT id, original_filename, mime, size_bytes, object_key, created_at, session_id FROM resumes
WHERE session_id=$1
ORDER BY created_at DESC
LIMIT 1
`

func (q *Queries) GetResumeBySession(ctx context.Context, sessionID uuid.UUID) (Resume, error) {
	row := q.db.QueryRowContext(ctx, getResumeBySession, sessionID)
	var i Resume
	err := row.Scan(
		&i.ID,
		&i.OriginalFilename,
		&i.Mime,
		&i.SizeBytes,
		&i.ObjectKey,
		&i.CreatedAt,
		&i.SessionID,
	)
	return i, err
}
