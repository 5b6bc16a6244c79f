package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/localnerve/securepulse/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelQueue(t *testing.T) {
	ctx := context.Background()
	q := notify.NewChannelQueue(2)

	first := notify.NewAlertJob("user-1", "alert-1")
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, notify.NewWelcomeJob("user-2")))
	assert.ErrorIs(t, q.Enqueue(ctx, notify.NewWelcomeJob("user-3")), notify.ErrQueueFull)
	assert.Equal(t, 2, q.Len())

	job, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, job.ID)

	require.NoError(t, q.Close())
	assert.ErrorIs(t, q.Enqueue(ctx, first), notify.ErrQueueClosed)

	// Buffered jobs are still handed out after Close.
	job, err = q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-2", job.UserID)

	_, err = q.Dequeue(ctx)
	assert.ErrorIs(t, err, notify.ErrQueueClosed)
}

func TestChannelQueueDequeueHonoursContext(t *testing.T) {
	q := notify.NewChannelQueue(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedisQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	q := notify.NewRedisQueue(client, "test:notifications")

	first := notify.NewAlertJob("user-1", "alert-1")
	second := notify.NewWelcomeJob("user-2")
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	job, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, job.ID)
	assert.Equal(t, notify.KindEmergencyAlert, job.Kind)
	assert.Equal(t, "alert-1", job.AlertID)

	job, err = q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, job.ID)

	_, err = mr.Lpush("test:notifications", "{not json")
	require.NoError(t, err)
	_, err = q.Dequeue(ctx)
	assert.ErrorIs(t, err, notify.ErrMalformedJob)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = q.Dequeue(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
