package utils

import (
	"context"
	"sync"
	"time"

	"randevu/config"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus is the latest snapshot of the service's dependencies. Each
// cache is reported under its role rather than as an anonymous list.
type HealthStatus struct {
	Mongo        bool      `json:"mongo"`
	SessionCache bool      `json:"sessionCache"`
	AuthCache    bool      `json:"authCache"`
	CheckedAt    time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func checkInterval() time.Duration {
	if config.AppConfig.HealthCheckIntervalSec > 0 {
		return time.Duration(config.AppConfig.HealthCheckIntervalSec) * time.Second
	}
	return 60 * time.Second
}

func pingRedis(ctx context.Context, client *redis.Client, role string) bool {
	if client == nil {
		return false
	}
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("health check failed", zap.String("dependency", role), zap.Error(err))
		return false
	}
	return true
}

func checkHealth(ctx context.Context, sessionCache, authCache *redis.Client, mongoClient *mongo.Client) HealthStatus {
	status := HealthStatus{
		SessionCache: pingRedis(ctx, sessionCache, "redis-session"),
		AuthCache:    pingRedis(ctx, authCache, "redis-auth"),
		CheckedAt:    time.Now(),
	}
	if mongoClient != nil {
		if err := mongoClient.Ping(ctx, nil); err != nil {
			GetLogger().Warn("health check failed", zap.String("dependency", "mongo"), zap.Error(err))
		} else {
			status.Mongo = true
		}
	}
	return status
}

// StartHealthMonitor periodically pings the session cache, auth cache and
// Mongo, keeping the in-memory snapshot current. The interval comes from
// HEALTH_CHECK_INTERVAL_SEC.
func StartHealthMonitor(sessionCache, authCache *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(checkInterval())
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			status := checkHealth(ctx, sessionCache, authCache, mongoClient)
			cancel()

			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}
	}()
}
