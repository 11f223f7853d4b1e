// Package redis comparte el local storage entre instancias vía Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ngo-animal-rescue/internal/ports/storage"

	goredis "github.com/redis/go-redis/v9"
)

const opTimeout = 3 * time.Second

type Config struct {
	Addr     string
	Password string
	Prefix   string // se antepone a cada clave, p.ej. "rescue:"
}

type LocalStorage struct {
	client *goredis.Client
	prefix string
}

var _ storage.LocalStorage = (*LocalStorage)(nil)

func New(cfg Config) *LocalStorage {
	return &LocalStorage{
		client: goredis.NewClient(&goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
		}),
		prefix: cfg.Prefix,
	}
}

// Ping sirve para fallar rápido al arrancar.
func (s *LocalStorage) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

func (s *LocalStorage) Close() error {
	return s.client.Close()
}

func (s *LocalStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return v, true, nil
}

func (s *LocalStorage) SetItem(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

func (s *LocalStorage) RemoveItem(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}
