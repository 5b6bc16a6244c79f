// services_test.go
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

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/localnerve/securepulse/internal/auth"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/notify"
	"github.com/localnerve/securepulse/internal/rules"
	"github.com/localnerve/securepulse/internal/services"
	"github.com/localnerve/securepulse/internal/store"
	"github.com/localnerve/securepulse/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// fixture wires the services against one in-memory database.
type fixture struct {
	identities *store.IdentityStore
	telemetry  *store.TelemetryStore
	alertStore *store.AlertStore
	queue      *notify.ChannelQueue
	clock      *clock
	alerts     *services.AlertManager
	ingestor   *services.Ingestor
	accounts   *services.Accounts
	bracelets  *services.Bracelets
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)

	f := &fixture{
		identities: &store.IdentityStore{DB: db},
		telemetry:  &store.TelemetryStore{DB: db},
		alertStore: &store.AlertStore{DB: db},
		queue:      notify.NewChannelQueue(16),
		clock:      &clock{now: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)},
	}
	f.alerts = &services.AlertManager{
		Alerts:           f.alertStore,
		Bracelets:        f.identities,
		Queue:            f.queue,
		Logger:           zap.NewNop(),
		EnforceOwnership: true,
		Now:              f.clock.Now,
	}
	f.ingestor = &services.Ingestor{
		Samples:          f.telemetry,
		Bracelets:        f.identities,
		Alerts:           f.alerts,
		Rules:            rules.Default(),
		Logger:           zap.NewNop(),
		EnforceOwnership: true,
		Now:              f.clock.Now,
	}
	f.accounts = &services.Accounts{
		Identities: f.identities,
		Tokens:     auth.NewTokens("test-secret", time.Hour),
		Queue:      f.queue,
		Logger:     zap.NewNop(),
	}
	f.bracelets = &services.Bracelets{Identities: f.identities, Now: f.clock.Now}
	return f
}

// user registers an account and drains its welcome job.
func (f *fixture) user(t *testing.T, email string) *models.User {
	t.Helper()
	user, _, err := f.accounts.Register(context.Background(), services.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: testutil.GeneratePassword(),
	})
	require.NoError(t, err)
	f.drain()
	return user
}

func (f *fixture) bracelet(t *testing.T, ownerID, deviceID string) *models.Bracelet {
	t.Helper()
	bracelet, err := f.bracelets.Register(context.Background(), ownerID, deviceID, "")
	require.NoError(t, err)
	return bracelet
}

func (f *fixture) drain() []notify.Job {
	var jobs []notify.Job
	for f.queue.Len() > 0 {
		job, err := f.queue.Dequeue(context.Background())
		if err != nil {
			break
		}
		jobs = append(jobs, job)
	}
	return jobs
}

type failingAlerts struct {
	calls int
}

func (f *failingAlerts) Create(context.Context, services.CreateAlertRequest) (*models.EmergencyAlert, error) {
	f.calls++
	return nil, errors.New("alert store unavailable")
}

type failingQueue struct{}

func (failingQueue) Enqueue(context.Context, notify.Job) error {
	return notify.ErrQueueFull
}
