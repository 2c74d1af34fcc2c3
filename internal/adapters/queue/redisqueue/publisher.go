// Package redisqueue hands stored notifications to an external delivery worker through a Redis list.
package redisqueue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// DefaultQueue is the list notifications are pushed to when none is configured.
const DefaultQueue = "jobs:notifications"

// envelope is what the delivery worker pops off the list.
type envelope struct {
	Type    string              `json:"type"`
	Payload domain.Notification `json:"payload"`
}

// Publisher pushes notifications onto a Redis list with LPUSH; workers consume with BRPOP.
type Publisher struct {
	rdb   *redis.Client
	queue string
}

var _ portsrepo.NotificationPublisher = (*Publisher)(nil)

// NewClient parses redisURL and verifies connectivity.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// NewPublisher returns a publisher writing to queue, or DefaultQueue when queue is empty.
func NewPublisher(rdb *redis.Client, queue string) *Publisher {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Publisher{rdb: rdb, queue: queue}
}

// Publish enqueues the notification.
func (p *Publisher) Publish(ctx context.Context, n domain.Notification) error {
	encoded, err := json.Marshal(envelope{Type: string(n.Kind), Payload: n})
	if err != nil {
		return fmt.Errorf("encode notification %s: %w", n.NotificationID, err)
	}
	if err := p.rdb.LPush(ctx, p.queue, encoded).Err(); err != nil {
		return fmt.Errorf("push notification %s to %s: %w", n.NotificationID, p.queue, err)
	}
	return nil
}

// Queue returns the list name notifications are pushed to.
func (p *Publisher) Queue() string {
	return p.queue
}
