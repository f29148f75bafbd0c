package catalog

import (
	"context"
	"encoding/json"

	"almadina/models"

	"github.com/go-redis/redis/v8"
)

const DefaultRenderChannel = "catalog:renders"

// RedisRenderPublisher sends each render event to a pub/sub channel so
// other processes can refresh their copy of the page.
type RedisRenderPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisRenderPublisher(client *redis.Client, channel string) *RedisRenderPublisher {
	if channel == "" {
		channel = DefaultRenderChannel
	}
	return &RedisRenderPublisher{client: client, channel: channel}
}

func (p *RedisRenderPublisher) PublishRender(ctx context.Context, event models.RenderEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, b).Err()
}

// NopRenderPublisher drops events; used when Redis is not configured.
type NopRenderPublisher struct{}

func (NopRenderPublisher) PublishRender(context.Context, models.RenderEvent) error { return nil }
