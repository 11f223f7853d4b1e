package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ngo-animal-rescue/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

// recordVersion es la versión actual del blob persistido.
// v0 = identidad "cruda" sin envelope (formato histórico del cliente web).
const recordVersion = 1

var (
	ErrCorruptRecord      = errors.New("session: persisted record is not valid json")
	ErrIncompatibleRecord = errors.New("session: persisted record has an incompatible shape")
	ErrUnknownVersion     = errors.New("session: persisted record has an unknown version")
)

type record struct {
	Version  int            `json:"version"`
	SavedAt  time.Time      `json:"saved_at"`
	Identity *auth.Identity `json:"identity"`
}

func encodeRecord(id auth.Identity, now time.Time) (string, error) {
	b, err := json.Marshal(record{
		Version:  recordVersion,
		SavedAt:  now.UTC(),
		Identity: &id,
	})
	if err != nil {
		return "", fmt.Errorf("session: encode record: %w", err)
	}
	return string(b), nil
}

// decodeRecord aplica la política de migración:
// - sin "version": identidad v0, se migra si trae id o email
// - version 1: envelope actual
// - cualquier otra: se descarta a propósito
func decodeRecord(raw string) (auth.Identity, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// JSON válido pero no es un objeto ("[]", "42", "\"x\"")
			return auth.Identity{}, ErrIncompatibleRecord
		}
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if probe == nil {
		return auth.Identity{}, ErrIncompatibleRecord
	}

	rawVersion, versioned := probe["version"]
	if !versioned {
		var id auth.Identity
		if err := json.Unmarshal([]byte(raw), &id); err != nil {
			return auth.Identity{}, fmt.Errorf("%w: %v", ErrIncompatibleRecord, err)
		}
		if !id.Valid() {
			return auth.Identity{}, ErrIncompatibleRecord
		}
		return id, nil
	}

	var version int
	if err := json.Unmarshal(rawVersion, &version); err != nil {
		return auth.Identity{}, fmt.Errorf("%w: version: %v", ErrIncompatibleRecord, err)
	}
	if version != recordVersion {
		return auth.Identity{}, fmt.Errorf("%w: %d", ErrUnknownVersion, version)
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %v", ErrIncompatibleRecord, err)
	}
	if rec.Identity == nil || !rec.Identity.Valid() {
		return auth.Identity{}, ErrIncompatibleRecord
	}
	return *rec.Identity, nil
}

// tokenExpired sólo opina si el token es un JWT con exp. Tokens opacos nunca "expiran" acá.
// No verificamos firma: no tenemos la clave y sólo nos interesa no restaurar sesiones muertas.
func tokenExpired(token string, now time.Time) bool {
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
