// dispatcher.go
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

package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/securepulse/internal/metrics"
	"github.com/localnerve/securepulse/internal/models"
	"go.uber.org/zap"
)

var ErrUnknownJob = errors.New("unknown notification job kind")

type UserDirectory interface {
	FindUser(ctx context.Context, id string, withContacts bool) (*models.User, error)
}

type AlertLookup interface {
	FindByID(ctx context.Context, alertID string) (*models.EmergencyAlert, error)
}

type DeliveryLog interface {
	Record(ctx context.Context, entry *models.NotificationLog) error
}

// Dispatcher turns a Job into messages and hands them to the sinks.
// Delivery failures are logged and recorded, never returned.
type Dispatcher struct {
	Users      UserDirectory
	Alerts     AlertLookup
	Deliveries DeliveryLog
	Email      Notifier
	SMS        Notifier
	Logger     *zap.Logger

	// SendTimeout bounds each individual send.
	SendTimeout time.Duration
}

type delivery struct {
	notifier Notifier
	channel  models.Channel
	to       string
	msg      Message
}

func (d *Dispatcher) Dispatch(ctx context.Context, job Job) error {
	switch job.Kind {
	case KindEmergencyAlert:
		return d.dispatchAlert(ctx, job)
	case KindWelcome:
		return d.dispatchWelcome(ctx, job)
	}
	return fmt.Errorf("%w: %q", ErrUnknownJob, job.Kind)
}

func (d *Dispatcher) dispatchAlert(ctx context.Context, job Job) error {
	alert, err := d.Alerts.FindByID(ctx, job.AlertID)
	if err != nil {
		return fmt.Errorf("failed to load alert %s: %w", job.AlertID, err)
	}
	user, err := d.Users.FindUser(ctx, alert.UserID, true)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", alert.UserID, err)
	}

	details := NewAlertDetails(user, alert)
	email, err := EmergencyEmail(details)
	if err != nil {
		return err
	}
	sms := EmergencySMS(details)

	var deliveries []delivery
	for _, contact := range user.EmergencyContacts {
		if contact.Email != "" {
			deliveries = append(deliveries, delivery{d.Email, models.ChannelEmail, contact.Email, email})
		}
		if contact.Phone != "" {
			deliveries = append(deliveries, delivery{d.SMS, models.ChannelSMS, contact.Phone, sms})
		}
	}
	if len(deliveries) == 0 {
		// Nobody else to tell, so the owner is notified directly.
		deliveries = append(deliveries, delivery{d.Email, models.ChannelEmail, user.Email, email})
		if user.Phone != "" {
			deliveries = append(deliveries, delivery{d.SMS, models.ChannelSMS, user.Phone, sms})
		}
	}

	alertID := alert.ID
	for _, dl := range deliveries {
		d.deliver(ctx, user.ID, &alertID, dl)
	}
	return nil
}

func (d *Dispatcher) dispatchWelcome(ctx context.Context, job Job) error {
	user, err := d.Users.FindUser(ctx, job.UserID, false)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", job.UserID, err)
	}
	msg, err := WelcomeEmail(user)
	if err != nil {
		return err
	}
	d.deliver(ctx, user.ID, nil, delivery{d.Email, models.ChannelEmail, user.Email, msg})
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, userID string, alertID *string, dl delivery) {
	entry := &models.NotificationLog{
		AlertID:   alertID,
		UserID:    userID,
		Channel:   dl.channel,
		Recipient: dl.to,
	}
	fields := []zap.Field{
		zap.String("channel", string(dl.channel)),
		zap.String("recipient", dl.to),
		zap.String("user_id", userID),
	}

	switch {
	case dl.notifier == nil:
		entry.Status = models.DeliverySkipped
		entry.Error = fmt.Sprintf("%s notifier not configured", dl.channel)
		d.Logger.Debug("Notification skipped", fields...)
	default:
		entry.Channel = dl.notifier.Channel()
		sendCtx, cancel := d.sendContext(ctx)
		err := dl.notifier.Send(sendCtx, dl.to, dl.msg)
		cancel()
		if err != nil {
			entry.Status = models.DeliveryFailed
			entry.Error = err.Error()
			d.Logger.Warn("Notification failed", append(fields, zap.Error(err))...)
		} else {
			entry.Status = models.DeliverySent
			d.Logger.Info("Notification sent", fields...)
		}
	}
	metrics.Notifications.WithLabelValues(string(entry.Channel), string(entry.Status)).Inc()

	if payload, err := models.NewJSON(dl.msg); err == nil {
		entry.Payload = payload
	}
	if d.Deliveries == nil {
		return
	}
	if err := d.Deliveries.Record(ctx, entry); err != nil {
		d.Logger.Warn("Failed to record notification", append(fields, zap.Error(err))...)
	}
}

func (d *Dispatcher) sendContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.SendTimeout > 0 {
		return context.WithTimeout(ctx, d.SendTimeout)
	}
	return context.WithCancel(ctx)
}
