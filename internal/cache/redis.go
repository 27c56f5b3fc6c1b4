package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zvrva/littlelemon/config"
	"github.com/zvrva/littlelemon/internal/domain"
)

type RedisCache struct {
	client   *redis.Client
	menuTTL  time.Duration
	tokenTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, menuTTL, tokenTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		menuTTL:  menuTTL,
		tokenTTL: tokenTTL,
	}
}

func (c *RedisCache) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	data, err := c.client.Get(ctx, menuKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *RedisCache) SetMenu(ctx context.Context, items []domain.MenuItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, menuKey(), payload, c.menuTTL).Err()
}

func (c *RedisCache) InvalidateMenu(ctx context.Context) error {
	return c.client.Del(ctx, menuKey()).Err()
}

func (c *RedisCache) GetTokenUser(ctx context.Context, token string) (*domain.User, error) {
	data, err := c.client.Get(ctx, tokenKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *RedisCache) SetTokenUser(ctx context.Context, token string, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tokenKey(token), payload, c.tokenTTL).Err()
}

func menuKey() string {
	return "cache:menu"
}

func tokenKey(token string) string {
	return fmt.Sprintf("auth:token:%s", token)
}
