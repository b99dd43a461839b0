// Package repositories initializes the backing clients and provides the
// document-store repositories.
package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"portal-server/config"
)

// Clients bundles the external connections the service needs.
type Clients struct {
	Mongo *mongo.Client
	DB    *mongo.Database
	Redis *redis.Client
}

// Init connects to MongoDB and redis, verifying both connections.
func Init(cfg *config.Config, logger *zap.Logger) (*Clients, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoDB.URI)
	if cfg.MongoDB.Username != "" {
		clientOptions = clientOptions.SetAuth(options.Credential{
			Username: cfg.MongoDB.Username,
			Password: cfg.MongoDB.Password,
		})
	}

	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		return nil, err
	}
	logger.Info("MongoDB connected successfully")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	logger.Info("Redis connected successfully")

	return &Clients{
		Mongo: mongoClient,
		DB:    mongoClient.Database(cfg.MongoDB.Database),
		Redis: redisClient,
	}, nil
}

// Close disconnects all clients.
func (c *Clients) Close(ctx context.Context) error {
	if err := c.Redis.Close(); err != nil {
		return err
	}
	return c.Mongo.Disconnect(ctx)
}
