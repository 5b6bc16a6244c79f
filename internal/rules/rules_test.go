package rules

import (
	"testing"

	"github.com/localnerve/securepulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeartRateBoundaries(t *testing.T) {
	engine := Default()

	tests := []struct {
		heartRate int
		alert     bool
	}{
		{heartRate: 0, alert: true},
		{heartRate: 40, alert: true},
		{heartRate: 49, alert: true},
		{heartRate: 50, alert: false},
		{heartRate: 72, alert: false},
		{heartRate: 120, alert: false},
		{heartRate: 121, alert: true},
		{heartRate: 135, alert: true},
	}

	for _, tt := range tests {
		intent, ok := engine.Evaluate(Sample{HeartRate: tt.heartRate, BloodOxygen: 98, Temperature: 36.6})
		assert.Equal(t, tt.alert, ok, "heart rate %d", tt.heartRate)
		if tt.alert {
			assert.Equal(t, models.AlertHealth, intent.Type)
		} else {
			assert.Equal(t, Intent{}, intent)
		}
	}
}

func TestHeartRateDescription(t *testing.T) {
	intent, ok := Default().Evaluate(Sample{HeartRate: 135})
	require.True(t, ok)
	assert.Equal(t, "Abnormal heart rate detected: 135 bpm", intent.Description)
}

func TestOtherVitalsAreNotEvaluated(t *testing.T) {
	_, ok := Default().Evaluate(Sample{HeartRate: 80, BloodOxygen: 70, Temperature: 41.5, Steps: -1})
	assert.False(t, ok)
}

func TestFirstMatchingRuleWins(t *testing.T) {
	fall := Rule{
		Name: "fall",
		Evaluate: func(s Sample) (Intent, bool) {
			return Intent{Type: models.AlertFall, Description: "fall"}, s.Steps < 0
		},
	}
	engine := NewEngine(fall, HeartRateRule)

	intent, ok := engine.Evaluate(Sample{HeartRate: 200, Steps: -1})
	require.True(t, ok)
	assert.Equal(t, models.AlertFall, intent.Type)

	intent, ok = engine.Evaluate(Sample{HeartRate: 200})
	require.True(t, ok)
	assert.Equal(t, models.AlertHealth, intent.Type)

	assert.Equal(t, []string{"fall", "heart_rate"}, engine.Rules())
}

func TestEmptyEngine(t *testing.T) {
	_, ok := NewEngine().Evaluate(Sample{HeartRate: 10})
	assert.False(t, ok)
}
