package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// CatalogStatus is the part of the catalog store the health check reads.
type CatalogStatus interface {
	Loaded() bool
	RenderCount() int
}

// HealthStatus represents current status of the catalog and its publisher.
type HealthStatus struct {
	CatalogLoaded bool      `json:"catalogLoaded"`
	Renders       int       `json:"renders"`
	Redis         *bool     `json:"redis,omitempty"`
	CheckedAt     time.Time `json:"checkedAt"`
}

// CheckHealth takes a fresh snapshot. Redis is only reported when a client
// is configured.
func CheckHealth(ctx context.Context, catalog CatalogStatus, client *redis.Client) HealthStatus {
	status := HealthStatus{
		CatalogLoaded: catalog.Loaded(),
		Renders:       catalog.RenderCount(),
		CheckedAt:     time.Now().UTC(),
	}
	if client != nil {
		ctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		ok := client.Ping(ctx).Err() == nil
		status.Redis = &ok
	}
	return status
}
