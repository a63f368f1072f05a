// Package cache tiene il contatore delle notifiche non lette su redis.
// Il backend è opzionale: senza REDIS_ADDR si usa il no-op e il
// contatore viene sempre ricalcolato dal database.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	chiaveUnread = "notifiche:unread"
	ttlUnread    = 30 * time.Second
)

type Contatori interface {
	UnreadCount(ctx context.Context) (int64, bool)
	SetUnreadCount(ctx context.Context, n int64)
	InvalidateUnread(ctx context.Context)
	Close() error
}

// Noop è il fallback quando redis non è configurato.
type Noop struct{}

func (Noop) UnreadCount(context.Context) (int64, bool) { return 0, false }
func (Noop) SetUnreadCount(context.Context, int64)     {}
func (Noop) InvalidateUnread(context.Context)          {}
func (Noop) Close() error                              { return nil }

type redisContatori struct {
	client *redis.Client
}

// NewRedis apre la connessione e la verifica con un ping; in caso di
// errore il chiamante può ripiegare su Noop.
func NewRedis(addr, password string) (Contatori, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &redisContatori{client: client}, nil
}

func (r *redisContatori) UnreadCount(ctx context.Context) (int64, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	val, err := r.client.Get(ctx, chiaveUnread).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (r *redisContatori) SetUnreadCount(ctx context.Context, n int64) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_ = r.client.Set(ctx, chiaveUnread, strconv.FormatInt(n, 10), ttlUnread).Err()
}

func (r *redisContatori) InvalidateUnread(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_ = r.client.Del(ctx, chiaveUnread).Err()
}

func (r *redisContatori) Close() error { return r.client.Close() }
