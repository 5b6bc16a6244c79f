// alerts.go
//
// SecurePulse wearable health monitoring service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of securepulse.
// securepulse is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// securepulse is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with securepulse.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/securepulse/internal/metrics"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/notify"
	"github.com/localnerve/securepulse/internal/store"
	"go.uber.org/zap"
)

// Alert sources, used as a metrics label.
const (
	SourceManual = "manual"
	SourceIngest = "ingest"
)

const enqueueTimeout = 2 * time.Second

type AlertRepository interface {
	Create(ctx context.Context, alert *models.EmergencyAlert) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.EmergencyAlert, error)
	Find(ctx context.Context, ownerID, alertID string) (*models.EmergencyAlert, error)
	UpdateStatus(ctx context.Context, ownerID, alertID string, from, to models.AlertStatus, respondedAt time.Time) error
}

type BraceletLookup interface {
	FindBracelet(ctx context.Context, ownerID, braceletID string) (*models.Bracelet, error)
}

type Enqueuer interface {
	Enqueue(ctx context.Context, job notify.Job) error
}

type CreateAlertRequest struct {
	OwnerID     string
	BraceletID  string
	Type        models.AlertType
	Description string
	Latitude    *float64
	Longitude   *float64

	// Source labels the alert in metrics. Defaults to SourceManual.
	Source string
}

// AlertManager owns the emergency alert lifecycle: creation, listing and
// the one-way active -> resolved|false_alarm transition.
type AlertManager struct {
	Alerts           AlertRepository
	Bracelets        BraceletLookup
	Queue            Enqueuer
	Logger           *zap.Logger
	EnforceOwnership bool
	Now              func() time.Time
}

// Create persists a new active alert and queues the emergency notification.
// A queueing failure is logged and does not fail the call.
func (m *AlertManager) Create(ctx context.Context, req CreateAlertRequest) (*models.EmergencyAlert, error) {
	if req.OwnerID == "" {
		return nil, invalid("userId is required")
	}
	if req.BraceletID == "" {
		return nil, invalid("braceletId is required")
	}
	if !req.Type.Valid() {
		return nil, invalid("invalid alertType %q", req.Type)
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, invalid("latitude and longitude must be provided together")
	}
	if req.Latitude != nil && !inRange(*req.Latitude, -90, 90) {
		return nil, invalid("latitude must be between -90 and 90")
	}
	if req.Longitude != nil && !inRange(*req.Longitude, -180, 180) {
		return nil, invalid("longitude must be between -180 and 180")
	}

	if m.EnforceOwnership {
		if _, err := m.Bracelets.FindBracelet(ctx, req.OwnerID, req.BraceletID); err != nil {
			return nil, err
		}
	}

	alert := &models.EmergencyAlert{
		UserID:      req.OwnerID,
		BraceletID:  req.BraceletID,
		AlertType:   req.Type,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      models.AlertActive,
		CreatedAt:   m.now(),
	}
	if err := m.Alerts.Create(ctx, alert); err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = SourceManual
	}
	metrics.AlertsCreated.WithLabelValues(string(alert.AlertType), source).Inc()
	m.logger().Info("Emergency alert created",
		zap.String("alert_id", alert.ID),
		zap.String("user_id", alert.UserID),
		zap.String("bracelet_id", alert.BraceletID),
		zap.String("alert_type", string(alert.AlertType)),
		zap.String("source", source),
	)

	m.enqueue(ctx, alert)
	return alert, nil
}

func (m *AlertManager) enqueue(ctx context.Context, alert *models.EmergencyAlert) {
	if m.Queue == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()

	job := notify.NewAlertJob(alert.UserID, alert.ID)
	if err := m.Queue.Enqueue(ctx, job); err != nil {
		metrics.EnqueueFailures.WithLabelValues(string(job.Kind)).Inc()
		m.logger().Error("Failed to queue emergency notification",
			zap.String("alert_id", alert.ID),
			zap.Error(err),
		)
	}
}

// List returns the owner's alerts, newest first.
func (m *AlertManager) List(ctx context.Context, ownerID string) ([]models.EmergencyAlert, error) {
	return m.Alerts.ListByOwner(ctx, ownerID)
}

// UpdateStatus moves an owned alert to a terminal status and stamps
// respondedAt. Repeating the current terminal status only refreshes respondedAt.
func (m *AlertManager) UpdateStatus(ctx context.Context, ownerID, alertID string, next models.AlertStatus) (*models.EmergencyAlert, error) {
	if !next.Valid() {
		return nil, invalid("invalid status %q", next)
	}
	if next == models.AlertActive {
		return nil, ErrInvalidStatus
	}

	alert, err := m.Alerts.Find(ctx, ownerID, alertID)
	if err != nil {
		return nil, err
	}
	if !alert.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, alert.Status, next)
	}

	respondedAt := m.now()
	if err := m.Alerts.UpdateStatus(ctx, ownerID, alertID, alert.Status, next, respondedAt); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The row exists; its status changed underneath us.
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		return nil, err
	}

	alert.Status = next
	alert.RespondedAt = &respondedAt
	return alert, nil
}

func (m *AlertManager) now() time.Time {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return now().UTC().Truncate(time.Microsecond)
}

func (m *AlertManager) logger() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}
