// Package messaging provides a thin redis pub/sub client used for
// payload-light update notifications between the server and its consumers.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher publishes messages to named channels.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// Client is a redis-backed publisher with a managed connection. Consumers
// subscribe through their own redis clients.
type Client interface {
	Publisher
	Close() error
}

type redisClient struct {
	client *redis.Client
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(addr, username, password string, db int) (Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisClient{client: client}, nil
}

// NewRedisClientFrom wraps an already connected redis client.
func NewRedisClientFrom(client *redis.Client) Client {
	return &redisClient{client: client}
}

func (r *redisClient) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return r.client.Publish(ctx, channel, payload).Err()
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
