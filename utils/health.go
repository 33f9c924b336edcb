package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the snapshot served by the health endpoint: one flag per
// backing store this app runs on.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	AuthCache bool      `json:"auth_cache"`
	CheckedAt time.Time `json:"checked_at"`
}

var (
	healthMu      sync.RWMutex
	currentHealth HealthStatus
)

// GetHealthStatus returns the latest stored snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func setHealthStatus(s HealthStatus) {
	healthMu.Lock()
	currentHealth = s
	healthMu.Unlock()
}

func probeHealth(ctx context.Context, authCache *redis.Client, mongoClient *mongo.Client) HealthStatus {
	return HealthStatus{
		Mongo:     mongoClient.Ping(ctx, nil) == nil,
		AuthCache: authCache.Ping(ctx).Err() == nil,
		CheckedAt: time.Now(),
	}
}

// StartHealthMonitor probes mongo and the auth cache once immediately and
// then every minute, keeping the snapshot the health endpoint serves.
func StartHealthMonitor(authCache *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ctx := context.Background()
		setHealthStatus(probeHealth(ctx, authCache, mongoClient))

		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			setHealthStatus(probeHealth(ctx, authCache, mongoClient))
		}
	}()
}
