//go:build e2e

package router_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
	"github.com/localnerve/securepulse/internal/handlers"
	"github.com/localnerve/securepulse/internal/models"
	"github.com/localnerve/securepulse/internal/services"
	"github.com/localnerve/securepulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2EWithFullStack runs the service image against postgres and redis.
func TestE2EWithFullStack(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	tc, err := testutil.CreateAllTestContainers(t, true)
	require.NoError(t, err, "Failed to start test containers")
	defer tc.Terminate(t)

	client := resty.New().
		SetBaseURL(tc.BaseURL).
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json")

	t.Run("HealthCheck", func(t *testing.T) {
		var result services.HealthCheckResult
		resp, err := client.R().SetResult(&result).Get("/api/health")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
		assert.Equal(t, "ok", result.Database)
		assert.Equal(t, "ok", result.Redis)
	})

	t.Run("PrometheusMetrics", func(t *testing.T) {
		resp, err := client.R().Get("/metrics")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
		assert.True(t, strings.Contains(resp.String(), "http_requests_total"))
	})

	t.Run("SwaggerUI", func(t *testing.T) {
		resp, err := client.R().Get("/swagger/index.html")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
	})

	t.Run("AbnormalHeartRate", func(t *testing.T) {
		var registered handlers.AuthResponse
		resp, err := client.R().
			SetBody(handlers.RegisterRequest{Name: "E2E", Email: "e2e@example.com", Password: testutil.GeneratePassword()}).
			SetResult(&registered).
			Post("/api/auth/register")
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

		authed := client.R().SetAuthToken(registered.Token)

		var bracelet handlers.BraceletResponse
		resp, err = authed.SetBody(handlers.BraceletRequest{DeviceID: "SP-E2E-0001"}).SetResult(&bracelet).Post("/api/bracelets")
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

		resp, err = client.R().SetAuthToken(registered.Token).
			SetBody(map[string]any{"braceletId": bracelet.Bracelet.ID, "heartRate": 40}).
			Post("/api/health-data")
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())

		var alerts []models.EmergencyAlert
		resp, err = client.R().SetAuthToken(registered.Token).SetResult(&alerts).Get("/api/emergency-alerts")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
		require.Len(t, alerts, 1)
		assert.Equal(t, models.AlertHealth, alerts[0].AlertType)
	})

	t.Run("QueueDrained", func(t *testing.T) {
		rdb := redis.NewClient(&redis.Options{Addr: tc.RedisAddr})
		defer rdb.Close()

		// The worker inside the service consumes the welcome and alert jobs.
		assert.Eventually(t, func() bool {
			n, err := rdb.LLen(context.Background(), "securepulse:notifications").Result()
			return err == nil && n == 0
		}, 10*time.Second, 200*time.Millisecond)
	})
}
