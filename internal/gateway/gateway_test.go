package gateway_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timada-org/todo/internal/api"
	"github.com/timada-org/todo/internal/gateway"
	"github.com/timada-org/todo/internal/store/memory"
	"github.com/timada-org/todo/pkg/todo"
)

func newHandler() *gateway.Handler {
	logger := log.New(io.Discard)
	return gateway.New(api.NewDispatcher(memory.New(nil), logger, nil), logger)
}

func TestHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		h := newHandler()

		res, err := h.Handle(ctx, events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodPost,
			Resource:   "/todos",
			Path:       "/todos",
			Body:       `{"title":"Buy milk"}`,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Equal(t, "*", res.Headers["Access-Control-Allow-Origin"])

		var created todo.Todo
		require.NoError(t, json.Unmarshal([]byte(res.Body), &created))

		res, err = h.Handle(ctx, events.APIGatewayProxyRequest{
			HTTPMethod:     http.MethodGet,
			Resource:       "/todos/{id}",
			Path:           "/todos/" + created.ID,
			PathParameters: map[string]string{"id": created.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, res.Body, created.ID)
	})

	t.Run("base64 body", func(t *testing.T) {
		res, err := newHandler().Handle(ctx, events.APIGatewayProxyRequest{
			HTTPMethod:      http.MethodPost,
			Resource:        "/todos",
			Body:            base64.StdEncoding.EncodeToString([]byte(`{"title":"Walk the dog"}`)),
			IsBase64Encoded: true,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Contains(t, res.Body, "Walk the dog")
	})

	t.Run("bad base64 body", func(t *testing.T) {
		res, err := newHandler().Handle(ctx, events.APIGatewayProxyRequest{
			HTTPMethod:      http.MethodPost,
			Resource:        "/todos",
			Body:            "%%%",
			IsBase64Encoded: true,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.JSONEq(t, `{"message":"Internal server error"}`, res.Body)
	})

	t.Run("preflight", func(t *testing.T) {
		res, err := newHandler().Handle(ctx, events.APIGatewayProxyRequest{
			HTTPMethod:     http.MethodOptions,
			Resource:       "/todos/{id}",
			PathParameters: map[string]string{"id": "abc"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Empty(t, res.Body)
		assert.Equal(t, "application/json", res.Headers["Content-Type"])
		assert.Equal(t, "*", res.Headers["Access-Control-Allow-Origin"])
		assert.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", res.Headers["Access-Control-Allow-Methods"])
		assert.Equal(t, "Content-Type,X-Amz-Date,X-Api-Key,X-Amz-Security-Token", res.Headers["Access-Control-Allow-Headers"])
	})

	t.Run("missing id", func(t *testing.T) {
		res, err := newHandler().Handle(ctx, events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodDelete,
			Resource:   "/todos/{id}",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.JSONEq(t, `{"message":"Missing ID"}`, res.Body)
	})

	t.Run("unmatched", func(t *testing.T) {
		res, err := newHandler().Handle(ctx, events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodPatch,
			Resource:   "/todos",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.JSONEq(t, `{"message":"Not found"}`, res.Body)
	})
}
