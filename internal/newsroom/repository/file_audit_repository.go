package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type fileAuditRepository struct {
	dir string
}

// NewFileAuditRepository creates an AuditRepository writing one JSON file
// per response under dir.
func NewFileAuditRepository(dir string) (AuditRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit directory %s: %w", dir, err)
	}
	return &fileAuditRepository{dir: dir}, nil
}

func (r *fileAuditRepository) SaveResponse(ctx context.Context, userID, purpose string, timestamp int64, raw []byte) error {
	name := fmt.Sprintf("%s_%s_%d.json", userID, purpose, timestamp)
	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write audit file %s: %w", path, err)
	}
	return nil
}
