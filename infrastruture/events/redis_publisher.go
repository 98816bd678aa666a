package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/redis/go-redis/v9"
)

// LastEventSuffix is appended to the channel name to form the key holding the
// most recent event, so late subscribers can catch up.
const LastEventSuffix = ":last"

// RedisPublisher publishes generation events on a Redis channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  i.Logger
}

// NewRedisPublisher initializes a RedisPublisher for channel.
func NewRedisPublisher(client *redis.Client, channel string, logger i.Logger) (i.Publisher, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	if channel == "" {
		return nil, fmt.Errorf("redis channel is empty")
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}, nil
}

// Publish encodes e as JSON, stores it as the latest event and publishes it.
func (p *RedisPublisher) Publish(ctx context.Context, e i.GenerationEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", e.Kind, err)
	}

	_, err = p.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, p.channel+LastEventSuffix, payload, 0)
		pipe.Publish(ctx, p.channel, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", p.channel, err)
	}

	p.logger.Info(fmt.Sprintf("published %s event for generation %s", e.Kind, e.GenerationID))
	return nil
}

// NopPublisher drops every event. It stands in when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, i.GenerationEvent) error { return nil }
