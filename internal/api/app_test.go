package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timada-org/todo/internal/api"
	"github.com/timada-org/todo/internal/core"
	"github.com/timada-org/todo/internal/store/memory"
	"github.com/timada-org/todo/pkg/todo"
)

func newServer(t *testing.T, metrics bool) *httptest.Server {
	t.Helper()

	cfg := core.DefaultConfig()
	cfg.Metrics.Enabled = metrics

	app := api.New(cfg, memory.New(nil), log.New(io.Discard))
	server := httptest.NewServer(app.Handler())

	t.Cleanup(func() {
		server.Close()
		app.Close()
	})

	return server
}

func do(t *testing.T, server *httptest.Server, method, path, body string) (*http.Response, string) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, server.URL+path, r)
	require.NoError(t, err)

	res, err := server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(b)
}

func TestApp(t *testing.T) {
	t.Run("crud round trip", func(t *testing.T) {
		server := newServer(t, false)

		res, body := do(t, server, http.MethodPost, "/todos", `{"title":"Buy milk"}`)
		require.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
		assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

		var created todo.Todo
		require.NoError(t, json.Unmarshal([]byte(body), &created))
		assert.Equal(t, "Buy milk", created.Title)

		res, body = do(t, server, http.MethodPut, "/todos/"+created.ID, `{"completed":true}`)
		require.Equal(t, http.StatusOK, res.StatusCode)

		var updated todo.Todo
		require.NoError(t, json.Unmarshal([]byte(body), &updated))
		assert.True(t, updated.Completed)
		assert.Equal(t, "Buy milk", updated.Title)

		res, body = do(t, server, http.MethodGet, "/todos", "")
		require.Equal(t, http.StatusOK, res.StatusCode)

		var todos []todo.Todo
		require.NoError(t, json.Unmarshal([]byte(body), &todos))
		require.Len(t, todos, 1)
		assert.Equal(t, created.ID, todos[0].ID)

		res, body = do(t, server, http.MethodDelete, "/todos/"+created.ID, "")
		assert.Equal(t, http.StatusNoContent, res.StatusCode)
		assert.Empty(t, body)

		res, body = do(t, server, http.MethodGet, "/todos/"+created.ID, "")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.JSONEq(t, `{"message":"Todo not found"}`, body)
	})

	t.Run("get unknown", func(t *testing.T) {
		res, body := do(t, newServer(t, false), http.MethodGet, "/todos/unknown-id", "")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.JSONEq(t, `{"message":"Todo not found"}`, body)
	})

	t.Run("update without body", func(t *testing.T) {
		server := newServer(t, false)

		_, body := do(t, server, http.MethodPost, "/todos", `{"title":"Buy milk"}`)
		var created todo.Todo
		require.NoError(t, json.Unmarshal([]byte(body), &created))

		res, body := do(t, server, http.MethodPut, "/todos/"+created.ID, "")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.JSONEq(t, `{"message":"Missing request body or ID"}`, body)
	})

	t.Run("preflight", func(t *testing.T) {
		res, body := do(t, newServer(t, false), http.MethodOptions, "/todos/abc", "")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Empty(t, body)
		assert.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", res.Header.Get("Access-Control-Allow-Methods"))
	})

	t.Run("unmatched", func(t *testing.T) {
		server := newServer(t, false)

		for _, c := range []struct{ method, path string }{
			{http.MethodPut, "/todos"},
			{http.MethodPost, "/todos/abc"},
			{http.MethodGet, "/todos/"},
			{http.MethodGet, "/users"},
			{http.MethodGet, "/metrics"},
		} {
			res, body := do(t, server, c.method, c.path, "")
			assert.Equal(t, http.StatusNotFound, res.StatusCode, c.method+" "+c.path)
			assert.JSONEq(t, `{"message":"Not found"}`, body)
			assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		res, body := do(t, newServer(t, false), http.MethodPost, "/todos", `["Buy milk"]`)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.JSONEq(t, `{"message":"Internal server error"}`, body)
	})

	t.Run("metrics", func(t *testing.T) {
		server := newServer(t, true)

		do(t, server, http.MethodGet, "/todos", "")

		res, body := do(t, server, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, `todo_api_requests_total{code="200",operation="list"} 1`)
		assert.Contains(t, body, "go_goroutines")
	})
}
