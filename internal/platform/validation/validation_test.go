package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_FirstMessageWinsAndErrNil(t *testing.T) {
	e := Errors{}
	require.NoError(t, e.Err())

	e.Required("email", " ", "Email is required")
	e.Email("email", "", "Email is required", "Email is invalid")
	e.MinLen("password", "abc", 6, "Password must be at least 6 characters")

	require.Error(t, e.Err())
	assert.Equal(t, "Email is required", e["email"])
	assert.Equal(t, "validation: email: Email is required; password: Password must be at least 6 characters", e.Error())
}

func TestEmailRule(t *testing.T) {
	cases := map[string]bool{
		"a@b.co":           true,
		"name@example.com": true,
		"no-at.example":    false,
		"a@b":              false,
		"with space@x.io":  false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsEmail(in), in)
	}
}

func TestFields_UnwrapsWrappedErrors(t *testing.T) {
	e := Errors{"name": "Name is required"}
	wrapped := fmt.Errorf("signup: %w", e.Err())

	fields, ok := Fields(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Name is required", fields["name"])

	_, ok = Fields(fmt.Errorf("plain"))
	assert.False(t, ok)
}

type formCounter map[string]int

func (f formCounter) FormRejected(form string) { f[form]++ }

func TestReject_CountsOnlyValidationErrors(t *testing.T) {
	rec := formCounter{}

	errs := Errors{}
	errs.Add("name", "Name is required")

	assert.Equal(t, errs.Err(), Reject(rec, "signup", errs.Err()))
	assert.Equal(t, fmt.Errorf("boom"), Reject(rec, "signup", fmt.Errorf("boom")))
	assert.NoError(t, Reject(rec, "signup", nil))
	assert.NoError(t, Reject(nil, "signup", nil))

	assert.Equal(t, formCounter{"signup": 1}, rec)
}
