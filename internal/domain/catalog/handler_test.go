package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ngo-animal-rescue/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passThrough(next http.Handler) http.Handler { return next }

func newTestRouter(c *Catalog) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, c, passThrough)
	return r
}

func postJSON(t *testing.T, h http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	b, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateAnimalHandler_TrimsName(t *testing.T) {
	c := loadedCatalog(t)
	h := newTestRouter(c)

	rr := postJSON(t, h, "/admin/animals", map[string]any{"name": " Rex ", "species": "Dog"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var got Animal
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Rex", got.Name)

	stored, ok := c.GetByID(got.ID)
	require.True(t, ok)
	assert.Equal(t, "Rex", stored.Name)
}

func TestCreateAnimalHandler_RejectsInvalidForm(t *testing.T) {
	c := loadedCatalog(t)
	h := newTestRouter(c)

	rr := postJSON(t, h, "/admin/animals", map[string]any{"name": "  ", "species": "Fish", "age": -2})
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "name")
	assert.Contains(t, body.Fields, "species")
	assert.Contains(t, body.Fields, "age")
	assert.Len(t, c.List(), 5)
}

func TestReloadHandler_InterruptedUsesFixedMessage(t *testing.T) {
	blocking := sourceFunc(func(ctx context.Context) ([]Animal, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	c := newTestCatalog(t, blocking, Options{})
	h := newTestRouter(c)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/animals/reload", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, ReloadInterruptedMessage, body.Error)
	assert.NotContains(t, rr.Body.String(), "context canceled")
}
