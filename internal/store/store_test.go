// store_test.go
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

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/store"
	"github.com/localnerve/securepulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *store.IdentityStore, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email, Password: "hash"}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func seedBracelet(t *testing.T, s *store.IdentityStore, ownerID, deviceID string) *models.Bracelet {
	t.Helper()
	bracelet := &models.Bracelet{UserID: ownerID, DeviceID: deviceID, Nickname: models.DefaultNickname(deviceID)}
	require.NoError(t, s.CreateBracelet(context.Background(), bracelet))
	return bracelet
}

func TestIdentityStoreUsers(t *testing.T) {
	ctx := context.Background()
	s := &store.IdentityStore{DB: testutil.NewTestDB(t)}

	user := seedUser(t, s, "ada@example.com")
	assert.Len(t, user.ID, 36)
	assert.Equal(t, models.PlanIndividual, user.Plan)

	err := s.CreateUser(ctx, &models.User{Email: "ada@example.com", Password: "hash"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	found, err := s.FindUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = s.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	name, plan := "Ada", models.PlanFamily
	updated, err := s.UpdateProfile(ctx, user.ID, store.ProfileUpdate{Name: &name, Plan: &plan})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, models.PlanFamily, updated.Plan)

	_, err = s.UpdateProfile(ctx, "missing", store.ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestIdentityStoreBracelets(t *testing.T) {
	ctx := context.Background()
	s := &store.IdentityStore{DB: testutil.NewTestDB(t)}
	owner := seedUser(t, s, "owner@example.com")
	other := seedUser(t, s, "other@example.com")

	bracelet := seedBracelet(t, s, owner.ID, "SP-0001")
	assert.Equal(t, models.BraceletActive, bracelet.Status)

	reloaded, err := s.FindUser(ctx, owner.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.BraceletCount)

	// Duplicate device ids roll back the count bump.
	err = s.CreateBracelet(ctx, &models.Bracelet{UserID: other.ID, DeviceID: "SP-0001"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
	reloaded, err = s.FindUser(ctx, other.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.BraceletCount)

	_, err = s.FindBracelet(ctx, other.ID, bracelet.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	battery, status := 42, models.BraceletLost
	syncedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	updated, err := s.UpdateBracelet(ctx, owner.ID, bracelet.ID, store.BraceletUpdate{Battery: &battery, Status: &status}, syncedAt)
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Battery)
	assert.Equal(t, models.BraceletLost, updated.Status)
	require.NotNil(t, updated.LastSync)
	assert.True(t, syncedAt.Equal(*updated.LastSync))

	_, err = s.UpdateBracelet(ctx, other.ID, bracelet.ID, store.BraceletUpdate{Battery: &battery}, syncedAt)
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.ListBracelets(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIdentityStoreContacts(t *testing.T) {
	ctx := context.Background()
	s := &store.IdentityStore{DB: testutil.NewTestDB(t)}
	owner := seedUser(t, s, "owner@example.com")
	other := seedUser(t, s, "other@example.com")

	contact := &models.EmergencyContact{UserID: owner.ID, Name: "Grace", Email: "grace@example.com"}
	require.NoError(t, s.CreateContact(ctx, contact))

	user, err := s.FindUser(ctx, owner.ID, true)
	require.NoError(t, err)
	require.Len(t, user.EmergencyContacts, 1)
	assert.Equal(t, "Grace", user.EmergencyContacts[0].Name)

	assert.ErrorIs(t, s.DeleteContact(ctx, other.ID, contact.ID), store.ErrNotFound)
	require.NoError(t, s.DeleteContact(ctx, owner.ID, contact.ID))

	contacts, err := s.ListContacts(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestTelemetryStoreRecent(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	identities := &store.IdentityStore{DB: db}
	telemetry := &store.TelemetryStore{DB: db}

	owner := seedUser(t, identities, "owner@example.com")
	other := seedUser(t, identities, "other@example.com")
	bracelet := seedBracelet(t, identities, owner.ID, "SP-0001")

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 105; i++ {
		require.NoError(t, telemetry.Append(ctx, &models.HealthSample{
			BraceletID: bracelet.ID,
			UserID:     owner.ID,
			HeartRate:  60 + i%20,
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	samples, err := telemetry.Recent(ctx, owner.ID, bracelet.ID, store.MaxRecentSamples)
	require.NoError(t, err)
	require.Len(t, samples, store.MaxRecentSamples)
	assert.True(t, samples[0].Timestamp.Equal(base.Add(104*time.Minute)))
	for i := 1; i < len(samples); i++ {
		assert.False(t, samples[i].Timestamp.After(samples[i-1].Timestamp))
	}

	samples, err = telemetry.Recent(ctx, other.ID, bracelet.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, samples)

	err = telemetry.Append(ctx, &models.HealthSample{BraceletID: "missing", UserID: owner.ID, Timestamp: base})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAlertStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	identities := &store.IdentityStore{DB: db}
	alerts := &store.AlertStore{DB: db}

	owner := seedUser(t, identities, "owner@example.com")
	other := seedUser(t, identities, "other@example.com")
	bracelet := seedBracelet(t, identities, owner.ID, "SP-0001")

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	var ids []string
	for i, alertType := range []models.AlertType{models.AlertSOS, models.AlertFall, models.AlertHealth} {
		alert := &models.EmergencyAlert{
			UserID:     owner.ID,
			BraceletID: bracelet.ID,
			AlertType:  alertType,
			Status:     models.AlertActive,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, alerts.Create(ctx, alert))
		ids = append(ids, alert.ID)
	}

	list, err := alerts.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[0], list[2].ID)

	list, err = alerts.ListByOwner(ctx, other.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	respondedAt := base.Add(5 * time.Hour)
	err = alerts.UpdateStatus(ctx, other.ID, ids[0], models.AlertActive, models.AlertResolved, respondedAt)
	assert.ErrorIs(t, err, store.ErrNotFound)

	unchanged, err := alerts.FindByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.AlertActive, unchanged.Status)
	assert.Nil(t, unchanged.RespondedAt)

	require.NoError(t, alerts.UpdateStatus(ctx, owner.ID, ids[0], models.AlertActive, models.AlertResolved, respondedAt))
	resolved, err := alerts.Find(ctx, owner.ID, ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.AlertResolved, resolved.Status)
	require.NotNil(t, resolved.RespondedAt)
	assert.True(t, respondedAt.Equal(*resolved.RespondedAt))

	// The guard on the current status rejects a stale transition.
	err = alerts.UpdateStatus(ctx, owner.ID, ids[0], models.AlertActive, models.AlertFalseAlarm, respondedAt)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAlertStoreSameInstantOrder(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	identities := &store.IdentityStore{DB: db}
	alerts := &store.AlertStore{DB: db}

	owner := seedUser(t, identities, "owner@example.com")
	bracelet := seedBracelet(t, identities, owner.ID, "SP-0001")

	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for _, id := range []string{
		"00000000-0000-0000-0000-000000000002",
		"00000000-0000-0000-0000-000000000003",
		"00000000-0000-0000-0000-000000000001",
	} {
		require.NoError(t, alerts.Create(ctx, &models.EmergencyAlert{
			ID:         id,
			UserID:     owner.ID,
			BraceletID: bracelet.ID,
			AlertType:  models.AlertSOS,
			Status:     models.AlertActive,
			CreatedAt:  at,
		}))
	}

	for i := 0; i < 3; i++ {
		list, err := alerts.ListByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{
			"00000000-0000-0000-0000-000000000003",
			"00000000-0000-0000-0000-000000000002",
			"00000000-0000-0000-0000-000000000001",
		}, []string{list[0].ID, list[1].ID, list[2].ID})
	}
}

func TestNotificationStore(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	identities := &store.IdentityStore{DB: db}
	notifications := &store.NotificationStore{DB: db}

	owner := seedUser(t, identities, "owner@example.com")
	alertID := "00000000-0000-0000-0000-000000000001"
	payload, err := models.NewJSON(map[string]string{"subject": "EMERGENCY"})
	require.NoError(t, err)

	require.NoError(t, notifications.Record(ctx, &models.NotificationLog{
		AlertID:   &alertID,
		UserID:    owner.ID,
		Channel:   models.ChannelEmail,
		Recipient: "grace@example.com",
		Status:    models.DeliverySent,
		Payload:   payload,
	}))
	require.NoError(t, notifications.Record(ctx, &models.NotificationLog{
		UserID:  owner.ID,
		Channel: models.ChannelSMS,
		Status:  models.DeliverySkipped,
	}))

	entries, err := notifications.ListByAlert(ctx, alertID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "grace@example.com", entries[0].Recipient)
	assert.JSONEq(t, `{"subject":"EMERGENCY"}`, string(entries[0].Payload.JSON))
}
