package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind selects how a job is rendered and who receives it.
type Kind string

const (
	KindEmergencyAlert Kind = "emergency_alert"
	KindWelcome        Kind = "welcome"
)

// Job is the unit handed from request handlers to the notification worker.
// It carries ids only; the worker loads current state when it runs.
type Job struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	UserID     string    `json:"userId"`
	AlertID    string    `json:"alertId,omitempty"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

func NewAlertJob(userID, alertID string) Job {
	return Job{
		ID:         uuid.NewString(),
		Kind:       KindEmergencyAlert,
		UserID:     userID,
		AlertID:    alertID,
		EnqueuedAt: time.Now().UTC(),
	}
}

func NewWelcomeJob(userID string) Job {
	return Job{
		ID:         uuid.NewString(),
		Kind:       KindWelcome,
		UserID:     userID,
		EnqueuedAt: time.Now().UTC(),
	}
}

func encodeJob(job Job) ([]byte, error) {
	return json.Marshal(job)
}

func decodeJob(data []byte) (Job, error) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}
	if job.Kind == "" || job.UserID == "" {
		return Job{}, fmt.Errorf("%w: missing kind or user", ErrMalformedJob)
	}
	return job, nil
}
