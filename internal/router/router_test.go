// router_test.go
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

package router_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/securepulse/internal/auth"
	"github.com/localnerve/securepulse/internal/config"
	"github.com/localnerve/securepulse/internal/handlers"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/notify"
	"github.com/localnerve/securepulse/internal/router"
	"github.com/localnerve/securepulse/internal/rules"
	"github.com/localnerve/securepulse/internal/services"
	"github.com/localnerve/securepulse/internal/store"
	"github.com/localnerve/securepulse/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	app   *fiber.App
	queue *notify.ChannelQueue
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := zap.NewNop()

	identities := &store.IdentityStore{DB: db}
	telemetry := &store.TelemetryStore{DB: db}
	alertStore := &store.AlertStore{DB: db}
	queue := notify.NewChannelQueue(64)
	tokens := auth.NewTokens("router-secret", time.Hour)

	alerts := &services.AlertManager{
		Alerts:           alertStore,
		Bracelets:        identities,
		Queue:            queue,
		Logger:           log,
		EnforceOwnership: true,
	}
	ingestor := &services.Ingestor{
		Samples:          telemetry,
		Bracelets:        identities,
		Alerts:           alerts,
		Rules:            rules.Default(),
		Logger:           log,
		EnforceOwnership: true,
	}
	accounts := &services.Accounts{Identities: identities, Tokens: tokens, Queue: queue, Logger: log}

	app := router.New(router.Options{
		Logger:   log,
		Tokens:   tokens,
		Registry: prometheus.NewRegistry(),
		Handlers: router.Handlers{
			Auth:       &handlers.AuthHandler{Accounts: accounts, Logger: log},
			Users:      &handlers.UserHandler{Accounts: accounts, Logger: log},
			Bracelets:  &handlers.BraceletHandler{Bracelets: &services.Bracelets{Identities: identities}, Logger: log},
			HealthData: &handlers.HealthDataHandler{Ingestor: ingestor, Samples: telemetry, Logger: log},
			Alerts:     &handlers.AlertHandler{Alerts: alerts, Logger: log},
			Health: &handlers.HealthHandler{Checker: &services.HealthChecker{
				Config: &config.Config{DBType: "sqlite", DBDatabase: "memory"},
				DB:     db,
			}},
		},
	})
	return &testServer{app: app, queue: queue}
}

func (s *testServer) do(t *testing.T, method, target string, body any, token string, status int) *http.Response {
	t.Helper()
	resp, err := s.app.Test(testutil.JSONRequest(t, method, target, body, token), -1)
	require.NoError(t, err)
	testutil.AssertStatus(t, resp, status)
	return resp
}

func (s *testServer) register(t *testing.T, name, email string) (string, handlers.AuthUser) {
	t.Helper()
	resp := s.do(t, "POST", "/api/auth/register", handlers.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: testutil.GeneratePassword(),
	}, "", fiber.StatusCreated)

	var out handlers.AuthResponse
	testutil.ParseJSON(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token, out.User
}

func (s *testServer) bracelet(t *testing.T, token, deviceID string) models.Bracelet {
	t.Helper()
	resp := s.do(t, "POST", "/api/bracelets", handlers.BraceletRequest{DeviceID: deviceID}, token, fiber.StatusCreated)
	var out handlers.BraceletResponse
	testutil.ParseJSON(t, resp, &out)
	return out.Bracelet
}

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Ok      bool   `json:"ok"`
	Type    string `json:"type"`
	URL     string `json:"url"`
}

func assertEnvelope(t *testing.T, resp *http.Response, status int, errorType string) envelope {
	t.Helper()
	var env envelope
	testutil.ParseJSON(t, resp, &env)
	assert.Equal(t, status, env.Status)
	assert.False(t, env.Ok)
	assert.Equal(t, errorType, env.Type)
	return env
}

func TestAbnormalHeartRateRaisesOneAlert(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "Alice", "alice@example.com")
	b1 := s.bracelet(t, token, "SP-0000-B001")

	resp := s.do(t, "POST", "/api/health-data", map[string]any{
		"braceletId":  b1.ID,
		"heartRate":   40,
		"bloodOxygen": "97.5",
		"temperature": 36.4,
		"steps":       "1200",
	}, token, fiber.StatusCreated)

	var recorded handlers.HealthDataResponse
	testutil.ParseJSON(t, resp, &recorded)
	assert.Equal(t, 40, recorded.HealthData.HeartRate)
	assert.Equal(t, 97.5, recorded.HealthData.BloodOxygen)
	require.NotNil(t, recorded.Alert)
	assert.Equal(t, models.AlertHealth, recorded.Alert.AlertType)

	resp = s.do(t, "GET", "/api/emergency-alerts", nil, token, fiber.StatusOK)
	var alerts []models.EmergencyAlert
	testutil.ParseJSON(t, resp, &alerts)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertHealth, alerts[0].AlertType)
	assert.Equal(t, models.AlertActive, alerts[0].Status)
	assert.Equal(t, b1.ID, alerts[0].BraceletID)
	assert.Contains(t, alerts[0].Description, "40")

	resp = s.do(t, "GET", "/api/health-data/"+b1.ID, nil, token, fiber.StatusOK)
	var samples []models.HealthSample
	testutil.ParseJSON(t, resp, &samples)
	assert.Len(t, samples, 1)

	// Welcome email plus the health alert notification.
	assert.Equal(t, 2, s.queue.Len())
}

func TestNormalReadingAndBatch(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "Bob", "bob@example.com")
	b1 := s.bracelet(t, token, "SP-0000-B002")

	resp := s.do(t, "POST", "/api/health-data", map[string]any{"braceletId": b1.ID, "heartRate": 72}, token, fiber.StatusCreated)
	var recorded handlers.HealthDataResponse
	testutil.ParseJSON(t, resp, &recorded)
	assert.Nil(t, recorded.Alert)

	resp = s.do(t, "POST", "/api/health-data/batch", map[string]any{
		"braceletId": b1.ID,
		"samples": []map[string]any{
			{"heartRate": 70},
			{"heartRate": 130},
			{"heartRate": "75"},
		},
	}, token, fiber.StatusCreated)
	var batch handlers.BatchResponse
	testutil.ParseJSON(t, resp, &batch)
	assert.Len(t, batch.HealthData, 3)
	assert.Equal(t, 1, batch.Alerts)

	resp = s.do(t, "POST", "/api/health-data/batch", map[string]any{
		"braceletId": b1.ID,
		"samples":    []map[string]any{{"heartRate": 70}, {"heartRate": 999}},
	}, token, fiber.StatusBadRequest)
	env := assertEnvelope(t, resp, fiber.StatusBadRequest, "validation")
	assert.Contains(t, env.Message, "samples[1]")

	resp = s.do(t, "GET", "/api/health-data/"+b1.ID, nil, token, fiber.StatusOK)
	var samples []models.HealthSample
	testutil.ParseJSON(t, resp, &samples)
	assert.Len(t, samples, 4)
}

func TestErrorEnvelopes(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.register(t, "Alice", "alice@example.com")
	mallory, _ := s.register(t, "Mallory", "mallory@example.com")
	b1 := s.bracelet(t, alice, "SP-0000-B003")

	t.Run("missing token", func(t *testing.T) {
		resp := s.do(t, "GET", "/api/bracelets", nil, "", fiber.StatusUnauthorized)
		assertEnvelope(t, resp, fiber.StatusUnauthorized, "authorization")
	})

	t.Run("bad token", func(t *testing.T) {
		resp := s.do(t, "GET", "/api/bracelets", nil, "forged", fiber.StatusForbidden)
		assertEnvelope(t, resp, fiber.StatusForbidden, "authorization")
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp := s.do(t, "POST", "/api/auth/register", handlers.RegisterRequest{
			Name: "Again", Email: "alice@example.com", Password: testutil.GeneratePassword(),
		}, "", fiber.StatusBadRequest)
		env := assertEnvelope(t, resp, fiber.StatusBadRequest, "conflict")
		assert.Equal(t, "User already exists", env.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := s.do(t, "POST", "/api/auth/login", handlers.LoginRequest{Email: "alice@example.com", Password: "not-her-password"}, "", fiber.StatusUnauthorized)
		assertEnvelope(t, resp, fiber.StatusUnauthorized, "authorization")
	})

	t.Run("duplicate device", func(t *testing.T) {
		resp := s.do(t, "POST", "/api/bracelets", handlers.BraceletRequest{DeviceID: "SP-0000-B003"}, mallory, fiber.StatusBadRequest)
		assertEnvelope(t, resp, fiber.StatusBadRequest, "conflict")
	})

	t.Run("foreign bracelet", func(t *testing.T) {
		resp := s.do(t, "POST", "/api/health-data", map[string]any{"braceletId": b1.ID, "heartRate": 72}, mallory, fiber.StatusNotFound)
		env := assertEnvelope(t, resp, fiber.StatusNotFound, "not_found")
		assert.Equal(t, "Bracelet not found", env.Message)
	})

	t.Run("missing heart rate", func(t *testing.T) {
		resp := s.do(t, "POST", "/api/health-data", map[string]any{"braceletId": b1.ID}, alice, fiber.StatusBadRequest)
		assertEnvelope(t, resp, fiber.StatusBadRequest, "validation")
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := s.do(t, "POST", "/api/emergency-alerts", "{", alice, fiber.StatusBadRequest)
		assertEnvelope(t, resp, fiber.StatusBadRequest, "validation")
	})

	t.Run("unknown route", func(t *testing.T) {
		resp := s.do(t, "GET", "/api/nowhere", nil, "", fiber.StatusNotFound)
		assertEnvelope(t, resp, fiber.StatusNotFound, "not_found")
	})
}

func TestNonFiniteNumbersRejected(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "Dana", "dana@example.com")
	b1 := s.bracelet(t, token, "SP-0000-B006")
	queued := s.queue.Len()

	readings := []map[string]any{
		{"braceletId": b1.ID, "heartRate": 70, "bloodOxygen": "NaN"},
		{"braceletId": b1.ID, "heartRate": 70, "bloodOxygen": "Infinity"},
		{"braceletId": b1.ID, "heartRate": 70, "temperature": "NaN"},
		{"braceletId": b1.ID, "heartRate": 70, "temperature": "-Infinity"},
		{"braceletId": b1.ID, "heartRate": "NaN"},
	}
	for _, body := range readings {
		resp := s.do(t, "POST", "/api/health-data", body, token, fiber.StatusBadRequest)
		assertEnvelope(t, resp, fiber.StatusBadRequest, "validation")
	}

	resp := s.do(t, "POST", "/api/health-data/batch", map[string]any{
		"braceletId": b1.ID,
		"samples":    []map[string]any{{"heartRate": 70}, {"heartRate": 70, "temperature": "Infinity"}},
	}, token, fiber.StatusBadRequest)
	assertEnvelope(t, resp, fiber.StatusBadRequest, "validation")

	locations := []map[string]any{
		{"latitude": "NaN", "longitude": "NaN"},
		{"latitude": "Infinity", "longitude": 18.4},
		{"latitude": -33.9, "longitude": "-Infinity"},
	}
	for _, loc := range locations {
		body := map[string]any{"braceletId": b1.ID, "alertType": "SOS"}
		for k, v := range loc {
			body[k] = v
		}
		resp := s.do(t, "POST", "/api/emergency-alerts", body, token, fiber.StatusBadRequest)
		assertEnvelope(t, resp, fiber.StatusBadRequest, "validation")
	}

	resp = s.do(t, "GET", "/api/health-data/"+b1.ID, nil, token, fiber.StatusOK)
	var samples []models.HealthSample
	testutil.ParseJSON(t, resp, &samples)
	assert.Empty(t, samples)

	resp = s.do(t, "GET", "/api/emergency-alerts", nil, token, fiber.StatusOK)
	var alerts []models.EmergencyAlert
	testutil.ParseJSON(t, resp, &alerts)
	assert.Empty(t, alerts)
	assert.Equal(t, queued, s.queue.Len())
}

func TestAlertLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice, _ := s.register(t, "Alice", "alice@example.com")
	mallory, _ := s.register(t, "Mallory", "mallory@example.com")
	b1 := s.bracelet(t, alice, "SP-0000-B004")

	resp := s.do(t, "POST", "/api/emergency-alerts", map[string]any{
		"braceletId":  b1.ID,
		"alertType":   "SOS",
		"description": "Pressed the SOS button",
		"latitude":    "40.7128",
		"longitude":   -74.006,
	}, alice, fiber.StatusCreated)
	var created handlers.AlertResponse
	testutil.ParseJSON(t, resp, &created)
	alertID := created.Alert.ID
	require.NotNil(t, created.Alert.Latitude)
	assert.Equal(t, 40.7128, *created.Alert.Latitude)

	resp = s.do(t, "POST", "/api/emergency-alerts", map[string]any{"braceletId": b1.ID, "alertType": "Panic"}, alice, fiber.StatusBadRequest)
	assertEnvelope(t, resp, fiber.StatusBadRequest, "validation")

	resp = s.do(t, "PUT", "/api/emergency-alerts/"+alertID, handlers.AlertStatusRequest{Status: "resolved"}, mallory, fiber.StatusNotFound)
	assertEnvelope(t, resp, fiber.StatusNotFound, "not_found")

	resp = s.do(t, "PUT", "/api/emergency-alerts/"+alertID, handlers.AlertStatusRequest{Status: "active"}, alice, fiber.StatusBadRequest)
	assertEnvelope(t, resp, fiber.StatusBadRequest, "validation")

	resp = s.do(t, "PUT", "/api/emergency-alerts/"+alertID, handlers.AlertStatusRequest{Status: "resolved"}, alice, fiber.StatusOK)
	var resolved models.EmergencyAlert
	testutil.ParseJSON(t, resp, &resolved)
	assert.Equal(t, models.AlertResolved, resolved.Status)
	assert.NotNil(t, resolved.RespondedAt)

	resp = s.do(t, "PUT", "/api/emergency-alerts/"+alertID, handlers.AlertStatusRequest{Status: "false_alarm"}, alice, fiber.StatusConflict)
	assertEnvelope(t, resp, fiber.StatusConflict, "conflict")
}

func TestProfileContactsAndBracelets(t *testing.T) {
	s := newTestServer(t)
	token, user := s.register(t, "Carol", "carol@example.com")
	b1 := s.bracelet(t, token, "SP-0000-B005")
	assert.Equal(t, "Bracelet B005", b1.Nickname)

	resp := s.do(t, "PUT", "/api/users/profile", map[string]any{"phone": "+15555550100", "plan": "Family"}, token, fiber.StatusOK)
	var profile models.User
	testutil.ParseJSON(t, resp, &profile)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, models.PlanFamily, profile.Plan)

	s.do(t, "PUT", "/api/users/profile", map[string]any{"plan": "Enterprise"}, token, fiber.StatusBadRequest)

	resp = s.do(t, "POST", "/api/users/emergency-contacts", handlers.ContactRequest{Name: "Dave", Phone: "+15555550111"}, token, fiber.StatusCreated)
	var contact models.EmergencyContact
	testutil.ParseJSON(t, resp, &contact)

	resp = s.do(t, "GET", "/api/users/profile", nil, token, fiber.StatusOK)
	testutil.ParseJSON(t, resp, &profile)
	assert.Equal(t, 1, profile.BraceletCount)
	require.Len(t, profile.EmergencyContacts, 1)
	assert.Empty(t, profile.Password)

	resp = s.do(t, "PUT", "/api/bracelets/"+b1.ID, map[string]any{"battery": "42", "status": "inactive"}, token, fiber.StatusOK)
	var updated models.Bracelet
	testutil.ParseJSON(t, resp, &updated)
	assert.Equal(t, 42, updated.Battery)
	assert.Equal(t, models.BraceletInactive, updated.Status)
	assert.NotNil(t, updated.LastSync)

	resp = s.do(t, "DELETE", "/api/users/emergency-contacts/"+contact.ID, nil, token, fiber.StatusNoContent)
	testutil.AssertNoContent(t, resp)
	s.do(t, "DELETE", "/api/users/emergency-contacts/"+contact.ID, nil, token, fiber.StatusNotFound)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, "GET", "/api/health", nil, "", fiber.StatusOK)
	assert.Equal(t, "1.0.0", resp.Header.Get("X-Api-Version"))

	var result services.HealthCheckResult
	testutil.ParseJSON(t, resp, &result)
	assert.Equal(t, services.StatusHealthy, result.Status)
	assert.Equal(t, "ok", result.Database)
}
