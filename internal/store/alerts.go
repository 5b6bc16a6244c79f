package store

import (
	"context"
	"time"

	"github.com/localnerve/securepulse/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// AlertStore persists emergency alerts and their status changes.
type AlertStore struct {
	DB *gorm.DB
}

func (s *AlertStore) Create(ctx context.Context, alert *models.EmergencyAlert) error {
	return translate(s.DB.WithContext(ctx).Create(alert).Error)
}

// ListByOwner returns the owner's alerts, most recent first.
func (s *AlertStore) ListByOwner(ctx context.Context, ownerID string) ([]models.EmergencyAlert, error) {
	alerts := []models.EmergencyAlert{}
	err := s.DB.WithContext(ctx).
		Clauses(hints.Comment("select", "alerts.list")).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, translate(err)
	}
	return alerts, nil
}

// Find loads an alert scoped to its owner.
func (s *AlertStore) Find(ctx context.Context, ownerID, alertID string) (*models.EmergencyAlert, error) {
	var alert models.EmergencyAlert
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", alertID, ownerID).
		First(&alert).Error
	if err != nil {
		return nil, translate(err)
	}
	return &alert, nil
}

// FindByID loads an alert without owner scoping. Only the notification worker uses it.
func (s *AlertStore) FindByID(ctx context.Context, alertID string) (*models.EmergencyAlert, error) {
	var alert models.EmergencyAlert
	if err := s.DB.WithContext(ctx).Where("id = ?", alertID).First(&alert).Error; err != nil {
		return nil, translate(err)
	}
	return &alert, nil
}

// UpdateStatus sets status and respondedAt in a single statement guarded by
// the owner and the expected current status. A miss returns ErrNotFound.
func (s *AlertStore) UpdateStatus(ctx context.Context, ownerID, alertID string, from, to models.AlertStatus, respondedAt time.Time) error {
	result := s.DB.WithContext(ctx).
		Clauses(hints.Comment("update", "alerts.status")).
		Model(&models.EmergencyAlert{}).
		Where("id = ? AND user_id = ? AND status = ?", alertID, ownerID, from).
		Updates(map[string]any{
			"status":       to,
			"responded_at": respondedAt,
		})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
