package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dogs-api/internal/platform/httpclient"
	"dogs-api/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts router.Options) (*httptest.Server, *httpclient.Client) {
	t.Helper()

	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)

	c, err := httpclient.New(ts.URL, 0)
	require.NoError(t, err)
	return ts, c
}

func TestHTTP_Hello(t *testing.T) {
	ts, _ := newServer(t, router.Options{})

	st, body := doReq(t, ts.URL, "GET", "/", nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, `{"message":"Hello World!"}`, string(body))
}

func TestHTTP_CreateDog(t *testing.T) {
	_, c := newServer(t, router.Options{})
	ctx := context.Background()

	d, err := c.CreateDog(ctx, map[string]any{
		"name":        "Rex",
		"breed":       "Lab",
		"age":         3,
		"description": "friendly",
	})
	require.NoError(t, err)

	assert.Positive(t, d.ID)
	assert.Equal(t, "Rex", d.Name)
	assert.Equal(t, "Lab", d.Breed)
	assert.Equal(t, float64(3), d.Age)
	assert.Equal(t, "friendly", d.Description)
}

func TestHTTP_CreateDog_WrongTypesAndMissingFields(t *testing.T) {
	_, c := newServer(t, router.Options{})

	_, err := c.CreateDog(context.Background(), map[string]any{
		"name": "Rex",
		"age":  "three",
	})

	var httpErr *httpclient.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected HTTPError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, []string{
		"age should be a number",
		"breed should be a string",
		"description should be a string",
	}, httpErr.Errors)
}

func TestHTTP_CreateDog_UnknownKey(t *testing.T) {
	ts, c := newServer(t, router.Options{})

	_, err := c.CreateDog(context.Background(), map[string]any{
		"name":        "Rex",
		"breed":       "Lab",
		"age":         3,
		"description": "x",
		"color":       "brown",
	})

	var httpErr *httpclient.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Contains(t, httpErr.Errors, "'color' is not a valid key")

	// nada se guardó
	st, body := doReq(t, ts.URL, "GET", "/dogs/", nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, `[]`, string(body))
}

func TestHTTP_CreateDog_InvalidJSON(t *testing.T) {
	ts, _ := newServer(t, router.Options{})

	res, err := http.Post(ts.URL+"/dogs", "application/json", strings.NewReader(`{"name":`))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestHTTP_ListDogs_AscendingID(t *testing.T) {
	ts, c := newServer(t, router.Options{})
	ctx := context.Background()

	first := createDog(t, c, "Rex")
	second := createDog(t, c, "Fido")

	items, err := c.ListDogs(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Less(t, items[0].ID, items[1].ID)

	// sin barra final también
	st, _ := doReq(t, ts.URL, "GET", "/dogs", nil)
	assert.Equal(t, http.StatusOK, st)
}

func TestHTTP_GetDog(t *testing.T) {
	ts, c := newServer(t, router.Options{})
	ctx := context.Background()

	{
		st, body := doReq(t, ts.URL, "GET", "/dogs/abc", nil)
		require.Equal(t, http.StatusBadRequest, st)
		assert.JSONEq(t, `{"message":"id should be a number"}`, string(body))
	}
	{
		_, found, err := c.GetDog(ctx, "999999")
		require.NoError(t, err)
		assert.False(t, found)
	}

	created := createDog(t, c, "Rex")

	got, found, err := c.GetDog(ctx, itoa(created.ID))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created, got)

	// idempotente: el payload no cambia entre lecturas
	_, first := doReq(t, ts.URL, "GET", "/dogs/"+itoa(created.ID), nil)
	_, again := doReq(t, ts.URL, "GET", "/dogs/"+itoa(created.ID), nil)
	assert.Equal(t, string(first), string(again))
}

func TestHTTP_NumericIDStrings(t *testing.T) {
	ts, c := newServer(t, router.Options{})
	ctx := context.Background()

	created := createDog(t, c, "Rex")
	require.Equal(t, int64(1), created.ID)

	for _, raw := range []string{"1.0", "1e0", "0x1", "01"} {
		got, found, err := c.GetDog(ctx, raw)
		require.NoError(t, err, "id=%s", raw)
		require.True(t, found, "id=%s", raw)
		assert.Equal(t, created, got)
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/dogs/1.5", nil)
		assert.Equal(t, http.StatusInternalServerError, st)
		assert.JSONEq(t, `{"message":"Internal Server Error"}`, string(body))
	}

	deleted, found, err := c.DeleteDog(ctx, "1e0")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created, deleted)

	_, found, err = c.DeleteDog(ctx, "1.0")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHTTP_UpdateDog(t *testing.T) {
	_, c := newServer(t, router.Options{})
	ctx := context.Background()

	created := createDog(t, c, "Rex")

	updated, errs, err := c.UpdateDog(ctx, itoa(created.ID), map[string]any{"name": "Max", "age": 4})
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Max", updated.Name)
	assert.Equal(t, float64(4), updated.Age)
	assert.Equal(t, created.Breed, updated.Breed)
	assert.Equal(t, created.Description, updated.Description)
}

func TestHTTP_UpdateDog_UnknownKeysStillUpdates(t *testing.T) {
	_, c := newServer(t, router.Options{})
	ctx := context.Background()

	created := createDog(t, c, "Rex")

	_, errs, err := c.UpdateDog(ctx, itoa(created.ID), map[string]any{
		"breed": "Beagle",
		"color": "brown",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"'color' is not a valid key"}, errs)

	got, found, err := c.GetDog(ctx, itoa(created.ID))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Beagle", got.Breed)
}

func TestHTTP_UpdateDog_FallsThroughToErrorHandler(t *testing.T) {
	ts, c := newServer(t, router.Options{})
	created := createDog(t, c, "Rex")

	{
		st, _ := doReq(t, ts.URL, "PATCH", "/dogs/abc", map[string]any{"name": "Max"})
		assert.Equal(t, http.StatusNotFound, st)
	}
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/dogs/999999", map[string]any{"name": "Max"})
		assert.Equal(t, http.StatusNotFound, st)
	}
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/dogs/"+itoa(created.ID), map[string]any{"age": "old"})
		assert.Equal(t, http.StatusBadRequest, st)
	}
}

func TestHTTP_DeleteDog(t *testing.T) {
	ts, c := newServer(t, router.Options{})
	ctx := context.Background()

	{
		st, body := doReq(t, ts.URL, "DELETE", "/dogs/abc", nil)
		require.Equal(t, http.StatusBadRequest, st)
		assert.JSONEq(t, `{"message":"id should be a number"}`, string(body))
	}

	created := createDog(t, c, "Rex")

	deleted, found, err := c.DeleteDog(ctx, itoa(created.ID))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created, deleted)

	_, found, err = c.DeleteDog(ctx, itoa(created.ID))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHTTP_ReadyChecks(t *testing.T) {
	{
		_, c := newServer(t, router.Options{})
		require.NoError(t, c.Ready(context.Background()))
	}
	{
		_, c := newServer(t, router.Options{
			ReadyChecks: map[string]router.ReadyCheck{
				"postgres": func(context.Context) error { return errors.New("connection refused") },
			},
		})
		err := c.Ready(context.Background())

		var httpErr *httpclient.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	}
}

func TestHTTP_MetricsExposeStoreCalls(t *testing.T) {
	ts, c := newServer(t, router.Options{})
	createDog(t, c, "Rex")

	st, body := doReq(t, ts.URL, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), `dogs_store_call_total{op="create"} 1`)
}

func TestHTTP_RequestIDEchoed(t *testing.T) {
	ts, _ := newServer(t, router.Options{})

	req, err := http.NewRequest("GET", ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, "req-123", res.Header.Get("X-Request-ID"))
}

func createDog(t *testing.T, c *httpclient.Client, name string) httpclient.Dog {
	t.Helper()

	d, err := c.CreateDog(context.Background(), map[string]any{
		"name":        name,
		"breed":       "mixed",
		"age":         2,
		"description": "test",
	})
	require.NoError(t, err, "create dog")
	require.NotZero(t, d.ID, "create dog: missing id")
	return d
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
