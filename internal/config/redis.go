package config

// This file defines a Redis client constructor for the application.  Redis is
// used for distributed rate limiting and HTTP response caching.  If connection
// fails during startup, the function returns nil and callers degrade
// gracefully by disabling caching and rate limiting.

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis holds connection settings.  Host and Port take precedence over Addr
// when both are set.
type Redis struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT"`
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	TLS      bool   `env:"TLS" envDefault:"false"`
}

// Address resolves the host:port the client should dial.
func (r Redis) Address() string {
	if r.Host != "" && r.Port != "" {
		return r.Host + ":" + r.Port
	}
	if r.Addr == "" {
		return "localhost:6379"
	}
	return r.Addr
}

// NewRedisClient instantiates a Redis client from cfg and pings it with a
// short timeout.  The returned client is nil if the server is unreachable.
func NewRedisClient(cfg Redis) *redis.Client {
	var tlsConf *tls.Config
	if cfg.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Address(),
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConf,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
