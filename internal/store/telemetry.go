package store

import (
	"context"

	"github.com/localnerve/securepulse/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// MaxRecentSamples caps a single telemetry read.
const MaxRecentSamples = 100

// TelemetryStore is the append-only log of health samples.
type TelemetryStore struct {
	DB *gorm.DB
}

func (s *TelemetryStore) Append(ctx context.Context, sample *models.HealthSample) error {
	return translate(s.DB.WithContext(ctx).Create(sample).Error)
}

// Recent returns the newest samples for a bracelet, scoped to the owner.
func (s *TelemetryStore) Recent(ctx context.Context, ownerID, braceletID string, limit int) ([]models.HealthSample, error) {
	if limit <= 0 || limit > MaxRecentSamples {
		limit = MaxRecentSamples
	}

	samples := make([]models.HealthSample, 0, limit)
	err := s.DB.WithContext(ctx).
		Clauses(hints.Comment("select", "telemetry.recent")).
		Where("bracelet_id = ? AND user_id = ?", braceletID, ownerID).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&samples).Error
	if err != nil {
		return nil, translate(err)
	}
	return samples, nil
}
