package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/raushankrgupta/glow-studio/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ProfileBus carries stored profiles to every live session of the same user
type ProfileBus struct {
	rdb    *redis.Client
	prefix string
	log    zerolog.Logger
}

// NewProfileBus connects to Redis at addr and checks the connection
func NewProfileBus(ctx context.Context, addr, prefix string, log zerolog.Logger) (*ProfileBus, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &ProfileBus{
		rdb:    rdb,
		prefix: prefix,
		log:    log.With().Str("component", "profile_bus").Logger(),
	}, nil
}

func (b *ProfileBus) channel(userID string) string {
	return b.prefix + ":" + userID
}

// Publish sends the stored profile of u to its subscribers
func (b *ProfileBus) Publish(ctx context.Context, u models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel(u.ID.Hex()), raw).Err()
}

// Subscribe calls onChange for every profile published for userID until the returned
// function is called. The subscription does not end with ctx, which only bounds the setup.
func (b *ProfileBus) Subscribe(ctx context.Context, userID string, onChange func(models.User)) (func(), error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ch := sub.Channel()
		for {
			select {
			case <-stop:
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var u models.User
				if err := json.Unmarshal([]byte(m.Payload), &u); err != nil {
					b.log.Warn().Err(err).Str("user_id", userID).Msg("bad profile payload")
					continue
				}
				onChange(u)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			_ = sub.Close()
			<-done
		})
	}, nil
}

func (b *ProfileBus) Close() error {
	return b.rdb.Close()
}
