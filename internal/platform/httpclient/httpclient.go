package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	DefaultMaxBodyBytes int64 = 1 << 20 // 1MB
)

// ErrResponseTooLarge: el body supera MaxBodyBytes. No se intenta decodificar.
var ErrResponseTooLarge = errors.New("httpclient: response body too large")

// Client envuelve *http.Client con helpers JSON para los adapters de la API remota.
// Lleva cookie jar: el backend de la ONG establece la sesión vía cookie (withCredentials).
type Client struct {
	HTTP    *http.Client
	BaseURL string

	// MaxBodyBytes limita la respuesta leída; <= 0 usa DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// New crea un Client con BaseURL + timeout + cookie jar.
// BaseURL vacío es válido: entonces DoJSON sólo acepta URLs absolutas.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	return NewWithTransport(baseURL, timeout, nil)
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(baseURL string, timeout time.Duration, tr http.RoundTripper) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: cookie jar: %w", err)
	}

	c := &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
			Jar:       jar,
		},
	}

	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return c, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Message devuelve el mensaje legible que manda el backend en {"error": ...} o {"message": ...}.
// Vacío si el body no trae ninguno (el caller pone su propio texto).
func (e *HTTPError) Message() string {
	if e == nil || e.Body == "" {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err != nil {
		return ""
	}
	if m := strings.TrimSpace(payload.Error); m != "" {
		return m
	}
	return strings.TrimSpace(payload.Message)
}

// RemoteMessage extrae el mensaje del backend de cualquier error envuelto, o fallback.
func RemoteMessage(err error, fallback string) string {
	var he *HTTPError
	if errors.As(err, &he) {
		if m := he.Message(); m != "" {
			return m
		}
	}
	return fallback
}

// Bearer arma el header Authorization si hay token.
func Bearer(token string) map[string]string {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// DoJSON hace un request JSON.
// - method: GET/POST/etc
// - pathOrURL: URL absoluta o path relativo a BaseURL
// - headers: headers extra (opcional)
// - in: body a enviar (opcional). Si nil => no body.
// - out: donde decodificar JSON (opcional). Si nil => ignora body.
// Retorna *HTTPError si status no es 2xx.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	limit := c.maxBodyBytes()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}
	tooLarge := int64(len(raw)) > limit
	if tooLarge {
		raw = raw[:limit]
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	if tooLarge {
		return fmt.Errorf("%w: limit=%d bytes", ErrResponseTooLarge, limit)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) maxBodyBytes() int64 {
	if c.MaxBodyBytes > 0 {
		return c.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	if c.BaseURL == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}
	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}
