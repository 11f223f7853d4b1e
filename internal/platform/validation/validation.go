// Package validation junta errores de formulario por campo.
// Los mensajes son los que ve el usuario junto al input; nunca llegan a la red.
package validation

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Errors mapea campo -> mensaje. Vacío = formulario válido.
type Errors map[string]string

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation: ok"
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Add registra sólo el primer error de cada campo.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; ok {
		return
	}
	e[field] = msg
}

// Err devuelve nil si no hubo errores (evita el clásico nil-interface no nil).
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Required falla si el valor está vacío tras TrimSpace.
func (e Errors) Required(field, value, msg string) bool {
	if strings.TrimSpace(value) == "" {
		e.Add(field, msg)
		return false
	}
	return true
}

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Email: requerido + formato mínimo (algo@algo.algo).
func (e Errors) Email(field, value, requiredMsg, invalidMsg string) bool {
	if !e.Required(field, value, requiredMsg) {
		return false
	}
	if !emailRe.MatchString(strings.TrimSpace(value)) {
		e.Add(field, invalidMsg)
		return false
	}
	return true
}

func (e Errors) MinLen(field, value string, n int, msg string) bool {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
		e.Add(field, msg)
		return false
	}
	return true
}

func (e Errors) Check(ok bool, field, msg string) bool {
	if !ok {
		e.Add(field, msg)
	}
	return ok
}

// Fields extrae los errores por campo de err, si los hay.
func Fields(err error) (Errors, bool) {
	var ve Errors
	if errors.As(err, &ve) && len(ve) > 0 {
		return ve, true
	}
	return nil, false
}

// IsEmail expone la misma regla que Email para usos fuera de formularios.
func IsEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// Recorder cuenta formularios rechazados (métricas). Opcional en los servicios.
type Recorder interface {
	FormRejected(form string)
}

// Reject registra el rechazo si err es de validación y devuelve err sin tocar.
func Reject(rec Recorder, form string, err error) error {
	if rec == nil {
		return err
	}
	if _, ok := Fields(err); ok {
		rec.FormRejected(form)
	}
	return err
}
