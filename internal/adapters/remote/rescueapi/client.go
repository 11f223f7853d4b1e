// Package rescueapi es el adapter de la API REST de la ONG.
// Implementa catalog.Source, auth.Gateway e incidents.Dispatcher sobre platform/httpclient.
package rescueapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ngo-animal-rescue/internal/domain/catalog"
	"ngo-animal-rescue/internal/domain/incidents"
	"ngo-animal-rescue/internal/platform/httpclient"
	"ngo-animal-rescue/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("rescue api not configured")
	ErrBadResponse   = errors.New("rescue api: unexpected response")
)

const (
	pathAnimals     = "/animals"
	pathLogin       = "/auth/login"
	pathRegister    = "/auth/register"
	pathProfile     = "/user/profile"
	pathEmergencies = "/emergencies"

	// La colección de animales viene entera en un solo GET.
	DefaultMaxResponseBytes int64 = 32 << 20
)

type Config struct {
	BaseURL string
	Timeout time.Duration

	// MaxResponseBytes: tope del body de respuesta; <= 0 usa DefaultMaxResponseBytes.
	MaxResponseBytes int64

	// Transport opcional (tests).
	Transport http.RoundTripper
}

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithTransport(cfg.BaseURL, cfg.Timeout, cfg.Transport)
	if err != nil {
		return nil, fmt.Errorf("rescueapi: %w", err)
	}
	hc.MaxBodyBytes = cfg.MaxResponseBytes
	if hc.MaxBodyBytes <= 0 {
		hc.MaxBodyBytes = DefaultMaxResponseBytes
	}
	return &Client{http: hc}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// -------------------------
// catalog.Source
// -------------------------

// List trae la colección completa. Acepta un array plano o {"data": [...]}.
func (c *Client) List(ctx context.Context) ([]catalog.Animal, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	var raw json.RawMessage
	if err := c.http.DoJSON(ctx, http.MethodGet, pathAnimals, nil, nil, &raw); err != nil {
		return nil, err
	}

	var items []animalPayload
	if err := json.Unmarshal(raw, &items); err != nil {
		var wrapped struct {
			Data []animalPayload `json:"data"`
		}
		if err2 := json.Unmarshal(raw, &wrapped); err2 != nil || wrapped.Data == nil {
			return nil, fmt.Errorf("%w: animals: %v", ErrBadResponse, err)
		}
		items = wrapped.Data
	}

	out := make([]catalog.Animal, 0, len(items))
	for _, p := range items {
		out = append(out, p.animal())
	}
	return out, nil
}

// animalPayload tolera el "_id" del backend además de "id".
type animalPayload struct {
	catalog.Animal
	MongoID string `json:"_id"`
}

func (p animalPayload) animal() catalog.Animal {
	a := p.Animal
	if a.ID == "" {
		a.ID = p.MongoID
	}
	return a
}

// -------------------------
// auth.Gateway
// -------------------------

func (c *Client) Login(ctx context.Context, in auth.Credentials) (auth.Identity, error) {
	return c.identityCall(ctx, http.MethodPost, pathLogin, "", in)
}

func (c *Client) Register(ctx context.Context, in auth.Registration) (auth.Identity, error) {
	return c.identityCall(ctx, http.MethodPost, pathRegister, "", in)
}

func (c *Client) GetProfile(ctx context.Context, token string) (auth.Identity, error) {
	return c.identityCall(ctx, http.MethodGet, pathProfile, token, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, token string, in auth.ProfileUpdate) (auth.Identity, error) {
	return c.identityCall(ctx, http.MethodPut, pathProfile, token, in)
}

func (c *Client) DeleteProfile(ctx context.Context, token string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	return c.http.DoJSON(ctx, http.MethodDelete, pathProfile, httpclient.Bearer(token), nil, nil)
}

func (c *Client) identityCall(ctx context.Context, method, path, token string, in any) (auth.Identity, error) {
	if !c.IsConfigured() {
		return auth.Identity{}, ErrNotConfigured
	}

	var out identityPayload
	if err := c.http.DoJSON(ctx, method, path, httpclient.Bearer(token), in, &out); err != nil {
		return auth.Identity{}, err
	}
	return out.identity(), nil
}

// identityPayload acepta la identidad plana o envuelta en {"user": {...}, "token": "..."}.
type identityPayload struct {
	auth.Identity
	MongoID string       `json:"_id"`
	User    *userPayload `json:"user"`
}

type userPayload struct {
	auth.Identity
	MongoID string `json:"_id"`
}

func (p identityPayload) identity() auth.Identity {
	id := p.Identity
	if id.ID == "" {
		id.ID = p.MongoID
	}
	if p.User != nil {
		u := p.User.Identity
		if u.ID == "" {
			u.ID = p.User.MongoID
		}
		if u.Token == "" {
			u.Token = id.Token
		}
		id = u
	}
	id.ID = strings.TrimSpace(id.ID)
	id.Email = strings.TrimSpace(id.Email)
	return id
}

// -------------------------
// incidents.Dispatcher
// -------------------------

type emergencyRequest struct {
	Location    *incidents.Location   `json:"location"`
	Description incidents.Description `json:"description"`
}

// Dispatch no requiere autenticación. Devuelve el id remoto si el backend lo informa.
func (c *Client) Dispatch(ctx context.Context, r incidents.Report) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	var out struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
		Data    *struct {
			ID      string `json:"id"`
			MongoID string `json:"_id"`
		} `json:"data"`
	}
	body := emergencyRequest{Location: r.Location, Description: r.Description}
	if err := c.http.DoJSON(ctx, http.MethodPost, pathEmergencies, nil, body, &out); err != nil {
		return "", err
	}

	for _, id := range []string{out.ID, out.MongoID} {
		if id != "" {
			return id, nil
		}
	}
	if out.Data != nil {
		if out.Data.ID != "" {
			return out.Data.ID, nil
		}
		return out.Data.MongoID, nil
	}
	return "", nil
}
