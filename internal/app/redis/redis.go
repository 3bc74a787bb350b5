// Package redis хранит отозванные при выходе JWT-токены.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"repairdesk/internal/app/config"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	servicePrefix = "repairdesk."
	jwtPrefix     = "jwt."
)

type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	client := &Client{cfg: cfg}

	client.client = redis.NewClient(&redis.Options{
		Addr:        cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Username:    cfg.User,
		Password:    cfg.Password,
		DB:          0,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if _, err := client.client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cant ping redis: %w", err)
	}

	log.Infof("redis connected at %s:%d", cfg.Host, cfg.Port)
	return client, nil
}

func getJWTKey(token string) string {
	return servicePrefix + jwtPrefix + token
}

// WriteJWTToBlacklist отзывает токен до истечения его срока
func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error {
	return c.client.Set(ctx, getJWTKey(jwtStr), true, jwtTTL).Err()
}

// CheckJWTInBlacklist возвращает nil, если токен отозван, и redis.Nil, если нет
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) error {
	return c.client.Get(ctx, getJWTKey(jwtStr)).Err()
}

// IsRevoked сообщает, отозван ли токен
func (c *Client) IsRevoked(ctx context.Context, jwtStr string) (bool, error) {
	err := c.CheckJWTInBlacklist(ctx, jwtStr)
	switch {
	case err == nil:
		return true, nil
	case err == redis.Nil:
		return false, nil
	default:
		return false, err
	}
}

func (c *Client) Revoke(ctx context.Context, jwtStr string, ttl time.Duration) error {
	return c.WriteJWTToBlacklist(ctx, jwtStr, ttl)
}

func (c *Client) Close() error {
	return c.client.Close()
}
