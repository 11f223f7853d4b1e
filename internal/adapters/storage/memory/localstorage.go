package memory

import (
	"context"

	"ngo-animal-rescue/internal/ports/storage"

	"github.com/patrickmn/go-cache"
)

// LocalStorage guarda los items en proceso. Sin expiración: se pierden al reiniciar.
type LocalStorage struct {
	c *cache.Cache
}

var _ storage.LocalStorage = (*LocalStorage)(nil)

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{c: cache.New(cache.NoExpiration, 0)}
}

func (s *LocalStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", false, nil
	}
	str, ok := v.(string)
	return str, ok, nil
}

func (s *LocalStorage) SetItem(ctx context.Context, key, value string) error {
	s.c.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *LocalStorage) RemoveItem(ctx context.Context, key string) error {
	s.c.Delete(key)
	return nil
}
