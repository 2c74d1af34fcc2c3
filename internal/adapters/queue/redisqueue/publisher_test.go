package redisqueue

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher_DefaultsQueue(t *testing.T) {
	p := NewPublisher(nil, "")
	assert.Equal(t, DefaultQueue, p.Queue())

	p = NewPublisher(nil, "custom")
	assert.Equal(t, "custom", p.Queue())
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := NewClient(context.Background(), "not-a-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func TestPublish_UnreachableServerReturnsError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := NewPublisher(rdb, "").Publish(ctx, domain.Notification{NotificationID: "n1", Kind: domain.NotificationWelcome})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push notification n1")
}
