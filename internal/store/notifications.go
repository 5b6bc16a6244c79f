package store

import (
	"context"

	"github.com/localnerve/securepulse/internal/models"
	"gorm.io/gorm"
)

// NotificationStore records notification attempts.
type NotificationStore struct {
	DB *gorm.DB
}

func (s *NotificationStore) Record(ctx context.Context, entry *models.NotificationLog) error {
	return translate(s.DB.WithContext(ctx).Create(entry).Error)
}

func (s *NotificationStore) ListByAlert(ctx context.Context, alertID string) ([]models.NotificationLog, error) {
	var entries []models.NotificationLog
	err := s.DB.WithContext(ctx).
		Where("alert_id = ?", alertID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, translate(err)
	}
	return entries, nil
}
