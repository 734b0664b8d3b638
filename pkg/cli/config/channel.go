package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"

	"github.com/worklane/worklane/pkg/domain/interfaces"
	"github.com/worklane/worklane/pkg/service/channel"
	"github.com/worklane/worklane/pkg/utils/logging"
)

// Channel holds CLI flags for the per-user push channel backend
type Channel struct {
	backend       string
	redisAddr     string
	redisPassword string
	redisDB       int64
}

// Flags returns CLI flags for channel configuration
func (c *Channel) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "channel-backend",
			Usage:       "Push channel backend type (redis or memory)",
			Value:       "memory",
			Sources:     cli.EnvVars("WORKLANE_CHANNEL_BACKEND"),
			Destination: &c.backend,
		},
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis address (required when using redis backend)",
			Sources:     cli.EnvVars("WORKLANE_REDIS_ADDR"),
			Destination: &c.redisAddr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Sources:     cli.EnvVars("WORKLANE_REDIS_PASSWORD"),
			Destination: &c.redisPassword,
		},
		&cli.Int64Flag{
			Name:        "redis-db",
			Usage:       "Redis database number",
			Sources:     cli.EnvVars("WORKLANE_REDIS_DB"),
			Destination: &c.redisDB,
		},
	}
}

// Configure initializes the push channel based on the configured backend.
// The caller is responsible for calling Close() on the returned channel.
func (c *Channel) Configure(ctx context.Context) (interfaces.Channel, error) {
	switch c.backend {
	case "redis":
		if c.redisAddr == "" {
			return nil, goerr.New("redis-addr is required when using redis backend")
		}

		client := redis.NewClient(&redis.Options{
			Addr:     c.redisAddr,
			Password: c.redisPassword,
			DB:       int(c.redisDB),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", c.redisAddr))
		}

		logging.Default().Info("Using Redis push channel", "addr", c.redisAddr, "db", c.redisDB)
		return channel.NewRedis(client), nil

	case "memory":
		logging.Default().Info("Using in-process push channel (development mode)")
		return channel.NewHub(), nil

	default:
		return nil, goerr.New("invalid channel backend", goerr.V("backend", c.backend))
	}
}
