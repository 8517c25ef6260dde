package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"tempora-backend/internal/models"
)

// TimerEventChannel is the redis pub/sub channel carrying timer transitions.
// The websocket hub subscribes to it and relays events to connected clients.
const TimerEventChannel = "timer:events"

type TimerEvent struct {
	Type    string                       `json:"type"`
	Session *models.TimerSessionResponse `json:"session"`
}

// EventPublisher fans out timer transitions. Publishing is fire-and-forget:
// a failed publish never fails the request that caused it.
type EventPublisher interface {
	PublishTimerEvent(ctx context.Context, event TimerEvent)
}

type RedisEventPublisher struct {
	client *redis.Client
}

func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{client: client}
}

func (p *RedisEventPublisher) PublishTimerEvent(ctx context.Context, event TimerEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := p.client.Publish(ctx, TimerEventChannel, payload).Err(); err != nil {
		log.Printf("timer event publish failed: %v", err)
	}
}
