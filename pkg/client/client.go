// Package client talks to the todo API over HTTP and keeps the client side
// copy of the collection.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/juju/errors"
	"github.com/timada-org/todo/pkg/todo"
)

// Error is a non-2xx answer from the API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("todo api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("todo api: %d %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *Error
	return stderrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API rooted at baseURL, e.g.
// "https://abc.execute-api.us-east-1.amazonaws.com/prod". A nil httpClient
// uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) List(ctx context.Context) ([]todo.Todo, error) {
	var todos []todo.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}

	return todos, nil
}

func (c *Client) Get(ctx context.Context, id string) (*todo.Todo, error) {
	var t todo.Todo
	if err := c.do(ctx, http.MethodGet, todoPath(id), nil, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

func (c *Client) Create(ctx context.Context, input todo.CreateInput) (*todo.Todo, error) {
	var t todo.Todo
	if err := c.do(ctx, http.MethodPost, "/todos", input, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

func (c *Client) Update(ctx context.Context, id string, input todo.UpdateInput) (*todo.Todo, error) {
	var t todo.Todo
	if err := c.do(ctx, http.MethodPut, todoPath(id), input, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

func todoPath(id string) string {
	return "/todos/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Annotate(err, "encoding request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Trace(err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Annotatef(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Annotate(err, "reading response")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &Error{StatusCode: res.StatusCode}

		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(b, &msg) == nil {
			apiErr.Message = msg.Message
		}

		return apiErr
	}

	if out == nil || len(b) == 0 {
		return nil
	}

	return errors.Annotate(json.Unmarshal(b, out), "decoding response")
}
