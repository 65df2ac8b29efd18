package health

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/quillblog/quill/internal/core/ports"
	infraDB "github.com/quillblog/quill/internal/infrastructure/db"
)

// checker adapts a named probe function to ports.HealthChecker.
type checker struct {
	name  string
	probe func(ctx context.Context) error
}

func (c *checker) Name() string                    { return c.name }
func (c *checker) Check(ctx context.Context) error { return c.probe(ctx) }

// NewDBHealthChecker probes the database connection.
func NewDBHealthChecker(database *infraDB.Database) ports.HealthChecker {
	return &checker{
		name:  "database",
		probe: func(ctx context.Context) error { return database.DB.PingContext(ctx) },
	}
}

// NewRedisHealthChecker probes the Redis connection.
func NewRedisHealthChecker(client *redis.Client) ports.HealthChecker {
	return &checker{
		name:  "redis",
		probe: func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}
}
