package services

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/localnerve/securepulse/internal/config"
	"github.com/localnerve/securepulse/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

const pingTimeout = 1500 * time.Millisecond

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Redis        string            `json:"redis"`
	Notifier     string            `json:"notifier"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(status, message string) {
	if status == StatusUnhealthy || r.Status == StatusHealthy {
		r.Status = status
	}
	if r.ErrorMessage == "" {
		r.ErrorMessage = message
	} else {
		r.ErrorMessage += "; " + message
	}
}

// HealthChecker probes the database, the redis queue when configured, and
// the SMTP relay when configured. Database or redis failures make the service
// unhealthy; an unreachable SMTP relay only degrades it.
type HealthChecker struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *zap.Logger

	// Dial checks TCP reachability. Defaults to utils.PingAddress.
	Dial func(address string, timeout time.Duration) error
}

func (h *HealthChecker) Check(ctx context.Context) HealthCheckResult {
	log := h.Logger
	if log == nil {
		log = zap.NewNop()
	}
	result := HealthCheckResult{
		Status:  StatusHealthy,
		Details: make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(ctx, 2*pingTimeout)
	defer cancel()

	// Check database connectivity
	sqlDB, err := h.DB.DB()
	if err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.fail(StatusUnhealthy, fmt.Sprintf("Database connection error: %v", err))
		log.Warn("Health check failed - database connection", zap.Error(err))
	} else if err := sqlDB.PingContext(ctx); err != nil {
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.fail(StatusUnhealthy, fmt.Sprintf("Database ping failed: %v", err))
		log.Warn("Health check failed - database ping", zap.Error(err))
	} else {
		result.Database = "ok"
		if h.Config != nil {
			result.Details["database_type"] = h.Config.DBType
			result.Details["database_name"] = h.Config.DBDatabase
		}
	}

	// Check the notification queue
	if h.Redis == nil {
		result.Redis = "disabled"
		result.Details["queue"] = "memory"
	} else if err := h.Redis.Ping(ctx).Err(); err != nil {
		result.Redis = "unreachable"
		result.Details["redis_error"] = err.Error()
		result.fail(StatusUnhealthy, fmt.Sprintf("Redis ping failed: %v", err))
		log.Warn("Health check failed - redis ping", zap.Error(err))
	} else {
		result.Redis = "ok"
		result.Details["queue"] = "redis"
	}

	// Check the SMTP relay
	if h.Config == nil || !h.Config.SMTPEnabled() {
		result.Notifier = "log"
	} else {
		address := net.JoinHostPort(h.Config.SMTPHost, strconv.Itoa(h.Config.SMTPPort))
		if err := h.dial(address); err != nil {
			result.Notifier = "unreachable"
			result.Details["smtp_error"] = err.Error()
			result.fail(StatusDegraded, fmt.Sprintf("SMTP relay unreachable: %v", err))
			log.Warn("Health check degraded - smtp relay", zap.Error(err))
		} else {
			result.Notifier = "ok"
			result.Details["smtp_address"] = address
		}
	}

	if result.Status == StatusHealthy {
		log.Debug("Health check passed - all systems operational")
	}

	return result
}

func (h *HealthChecker) dial(address string) error {
	if h.Dial != nil {
		return h.Dial(address, pingTimeout)
	}
	return utils.PingAddress(address, pingTimeout)
}
