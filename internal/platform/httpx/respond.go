// Package httpx tiene los helpers JSON compartidos por los handlers de cada dominio.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ngo-animal-rescue/internal/platform/validation"

	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

// ErrorBody es el formato de todos los errores de la API.
type ErrorBody struct {
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	if status == http.StatusNoContent || v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, status, ErrorBody{
		Error:     msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// Invalid responde 422 con los mensajes por campo si err es de validación.
// Devuelve false si err no lo es (el caller decide el status).
func Invalid(w http.ResponseWriter, r *http.Request, err error) bool {
	fields, ok := validation.Fields(err)
	if !ok {
		return false
	}
	WriteJSON(w, http.StatusUnprocessableEntity, ErrorBody{
		Error:     "validation failed",
		Fields:    fields,
		RequestID: middleware.GetReqID(r.Context()),
	})
	return true
}

// DecodeJSON lee el body con límite de tamaño y sin campos desconocidos.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError

		switch {
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &typeErr):
			if typeErr.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", typeErr.Field)
			}
			return errors.New("body contains incorrect JSON type")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("body contains unknown key %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		case errors.As(err, &maxErr):
			return fmt.Errorf("body must not be larger than %d bytes", maxErr.Limit)
		default:
			return fmt.Errorf("invalid json: %w", err)
		}
	}

	if dec.More() {
		return errors.New("body must only contain a single JSON object")
	}
	return nil
}
