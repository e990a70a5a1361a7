package repository

import (
	"context"
)

// AuditRepository records raw model responses for later inspection. Writes
// are best effort: a failed audit write must never fail the generation that
// produced it, so callers log and continue.
type AuditRepository interface {
	SaveResponse(ctx context.Context, userID, purpose string, timestamp int64, raw []byte) error
}
