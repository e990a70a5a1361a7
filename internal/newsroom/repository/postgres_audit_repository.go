package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"golang-ai-newsroom/pkg/postgres"
)

// AIResponseAudit is one archived raw model response.
type AIResponseAudit struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    string         `gorm:"column:user_id;index"`
	Purpose   string         `gorm:"column:purpose"`
	Timestamp int64          `gorm:"column:timestamp"`
	Response  datatypes.JSON `gorm:"column:response"`
	CreatedAt time.Time
}

func (AIResponseAudit) TableName() string {
	return "ai_response_audits"
}

type postgresAuditRepository struct {
	db *gorm.DB
}

// NewPostgresAuditRepository creates an AuditRepository writing responses
// to a Postgres table with a JSON column.
func NewPostgresAuditRepository(db *postgres.DB) AuditRepository {
	return &postgresAuditRepository{db: db.DB}
}

func (r *postgresAuditRepository) SaveResponse(ctx context.Context, userID, purpose string, timestamp int64, raw []byte) error {
	record := AIResponseAudit{
		UserID:    userID,
		Purpose:   purpose,
		Timestamp: timestamp,
		Response:  datatypes.JSON(raw),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to save audit record: %w", err)
	}
	return nil
}
