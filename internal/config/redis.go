package config

import (
	"context"
	"crypto/tls"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the shared Redis client used by the response
// cache and the rate limiter. Connection parameters come from the
// environment:
//
//	REDIS_ADDR       host:port (default localhost:6379)
//	REDIS_HOST/PORT  override REDIS_ADDR when both are set
//	REDIS_PASSWORD   optional password
//	REDIS_DB         database number (default 0)
//	REDIS_TLS        enable TLS when truthy
//
// Redis is optional infrastructure here: when the ping fails the
// function returns nil and the middleware degrades to pass-throughs
// rather than taking the service down.
func NewRedisClient() *redis.Client {
	addr := envStr("REDIS_ADDR", "localhost:6379")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}

	var tlsConf *tls.Config
	if envBool("REDIS_TLS", false) {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}

	client := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  os.Getenv("REDIS_PASSWORD"),
		DB:        envInt("REDIS_DB", 0),
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis ping failed for %s: %v", addr, err)
		_ = client.Close()
		return nil
	}
	return client
}
