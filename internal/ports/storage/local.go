package storage

import (
	"context"
	"errors"
)

// ErrUnavailable: el backend no responde. La sesión lo trata como "sin dato".
var ErrUnavailable = errors.New("local storage unavailable")

// LocalStorage es el equivalente al localStorage del navegador:
// strings por clave, sin esquema. Presencia/ausencia es todo el contrato.
type LocalStorage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
