// Package httpclient es un cliente tipado de la API de perros.
// Lo usan el modo -healthcheck del binario y los tests end-to-end.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBody = 1 << 20 // 1MB
)

// Dog es la representación JSON que devuelve la API.
type Dog struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Breed       string  `json:"breed"`
	Age         float64 `json:"age"`
	Description string  `json:"description"`
}

// Client envuelve *http.Client con la BaseURL del servicio.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New crea un Client con BaseURL + timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// HTTPError representa una respuesta que la operación no esperaba.
// Errors/Message se completan si el body trae el formato de error de la API.
type HTTPError struct {
	StatusCode int
	Body       string
	Errors     []string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// CreateDog manda el body tal cual (map o struct); 400 vuelve como *HTTPError con Errors.
func (c *Client) CreateDog(ctx context.Context, body any) (Dog, error) {
	var d Dog
	err := c.doJSON(ctx, http.MethodPost, "/dogs", body, &d, http.StatusCreated)
	return d, err
}

func (c *Client) ListDogs(ctx context.Context) ([]Dog, error) {
	var out []Dog
	err := c.doJSON(ctx, http.MethodGet, "/dogs/", nil, &out, http.StatusOK)
	return out, err
}

// GetDog devuelve found=false cuando la API responde 204.
func (c *Client) GetDog(ctx context.Context, id string) (Dog, bool, error) {
	return c.maybeDog(ctx, http.MethodGet, id)
}

// DeleteDog devuelve el registro borrado; found=false cuando la API responde 204.
func (c *Client) DeleteDog(ctx context.Context, id string) (Dog, bool, error) {
	return c.maybeDog(ctx, http.MethodDelete, id)
}

// UpdateDog devuelve el perro actualizado, o la lista de claves inválidas
// si la API las reportó (en ese caso el Dog queda vacío).
func (c *Client) UpdateDog(ctx context.Context, id string, patch any) (Dog, []string, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodPatch, "/dogs/"+url.PathEscape(id), patch, &raw, http.StatusCreated); err != nil {
		return Dog{}, nil, err
	}

	var envelope struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Errors != nil {
		return Dog{}, envelope.Errors, nil
	}

	var d Dog
	if err := json.Unmarshal(raw, &d); err != nil {
		return Dog{}, nil, fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return d, nil, nil
}

// Ready consulta /ready; cualquier respuesta no-200 es error.
func (c *Client) Ready(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/ready", nil, nil, http.StatusOK)
}

func (c *Client) maybeDog(ctx context.Context, method, id string) (Dog, bool, error) {
	status, raw, err := c.do(ctx, method, "/dogs/"+url.PathEscape(id), nil)
	if err != nil {
		return Dog{}, false, err
	}
	switch status {
	case http.StatusNoContent:
		return Dog{}, false, nil
	case http.StatusOK:
		var d Dog
		if err := json.Unmarshal(raw, &d); err != nil {
			return Dog{}, false, fmt.Errorf("httpclient: unmarshal json: %w", err)
		}
		return d, true, nil
	default:
		return Dog{}, false, newHTTPError(status, raw)
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, want int) error {
	status, raw, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	if status != want {
		return newHTTPError(status, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in any) (int, []byte, error) {
	if c == nil || c.HTTP == nil {
		return 0, nil, errors.New("httpclient: nil client")
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("httpclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, nil, fmt.Errorf("httpclient: read body: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func newHTTPError(status int, raw []byte) *HTTPError {
	e := &HTTPError{
		StatusCode: status,
		Body:       strings.TrimSpace(string(raw)),
	}
	var payload struct {
		Errors  []string `json:"errors"`
		Message string   `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		e.Errors = payload.Errors
		e.Message = payload.Message
	}
	return e
}
