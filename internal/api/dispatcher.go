package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/juju/errors"
	"github.com/timada-org/todo/pkg/todo"
)

// Request is one inbound call: the method, the matched resource template, its
// path parameters and the raw body ("" when absent).
type Request struct {
	Method         string
	Resource       string
	PathParameters map[string]string
	Body           string
}

type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

const (
	msgNotFound       = "Not found"
	msgTodoNotFound   = "Todo not found"
	msgMissingBody    = "Missing request body"
	msgMissingBodyID  = "Missing request body or ID"
	msgMissingID      = "Missing ID"
	msgMissingTitle   = "Missing title"
	msgInternalServer = "Internal server error"
)

type messageBody struct {
	Message string `json:"message"`
}

func headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,X-Api-Key,X-Amz-Security-Token",
	}
}

// InternalError is the only response a fault ever produces.
func InternalError() *Response {
	b, _ := json.Marshal(messageBody{Message: msgInternalServer})

	return &Response{
		StatusCode: http.StatusInternalServerError,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(b),
	}
}

// Dispatcher maps requests onto a todo.Store. It keeps no state between
// calls.
type Dispatcher struct {
	store   todo.Store
	logger  *log.Logger
	metrics *Metrics
}

func NewDispatcher(store todo.Store, logger *log.Logger, metrics *Metrics) *Dispatcher {
	return &Dispatcher{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Dispatch always returns a response. Errors and panics below it become a
// 500 whose body carries no detail.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) (res *Response) {
	start := time.Now()
	label := "preflight"

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic while dispatching", "method", req.Method, "resource", req.Resource, "panic", r)
			res = InternalError()
		}

		d.metrics.observe(label, res.StatusCode, time.Since(start))
	}()

	if req.Method == http.MethodOptions {
		return &Response{StatusCode: http.StatusOK, Headers: headers()}
	}

	op := Route(req.Method, req.Resource)
	label = op.String()

	res, err := d.dispatch(ctx, op, req)
	if err != nil {
		d.logger.Error("dispatch failed", "operation", op, "method", req.Method, "resource", req.Resource, "err", err)
		return InternalError()
	}

	return res
}

func (d *Dispatcher) dispatch(ctx context.Context, op Operation, req *Request) (*Response, error) {
	id := req.PathParameters["id"]

	switch op {
	case OpList:
		todos, err := d.store.List(ctx)
		if err != nil {
			return nil, errors.Trace(err)
		}

		if todos == nil {
			todos = []todo.Todo{}
		}

		return jsonResponse(http.StatusOK, todos)

	case OpGet:
		t, err := d.store.Get(ctx, id)
		if errors.Is(err, errors.NotFound) {
			return message(http.StatusNotFound, msgTodoNotFound), nil
		}
		if err != nil {
			return nil, errors.Trace(err)
		}

		return jsonResponse(http.StatusOK, t)

	case OpCreate:
		if req.Body == "" {
			return message(http.StatusBadRequest, msgMissingBody), nil
		}

		var input todo.CreateInput
		if err := d.decode(req.Body, &input); err != nil {
			return nil, err
		}

		t, err := d.store.Create(ctx, input)
		if errors.Is(err, errors.NotValid) {
			return message(http.StatusBadRequest, msgMissingTitle), nil
		}
		if err != nil {
			return nil, errors.Trace(err)
		}

		return jsonResponse(http.StatusCreated, t)

	case OpUpdate:
		if req.Body == "" || id == "" {
			return message(http.StatusBadRequest, msgMissingBodyID), nil
		}

		var input todo.UpdateInput
		if err := d.decode(req.Body, &input); err != nil {
			return nil, err
		}

		t, err := d.store.Update(ctx, id, input)
		switch {
		case errors.Is(err, errors.NotFound):
			return message(http.StatusNotFound, msgTodoNotFound), nil
		case errors.Is(err, errors.NotValid):
			return message(http.StatusBadRequest, msgMissingTitle), nil
		case err != nil:
			return nil, errors.Trace(err)
		}

		return jsonResponse(http.StatusOK, t)

	case OpDelete:
		if id == "" {
			return message(http.StatusBadRequest, msgMissingID), nil
		}

		deleted, err := d.store.Delete(ctx, id)
		if err != nil {
			return nil, errors.Trace(err)
		}

		if !deleted {
			return message(http.StatusNotFound, msgTodoNotFound), nil
		}

		return &Response{StatusCode: http.StatusNoContent, Headers: headers()}, nil
	}

	return message(http.StatusNotFound, msgNotFound), nil
}

func (d *Dispatcher) decode(body string, out any) error {
	unused, err := decodePayload(body, out)
	if err != nil {
		return err
	}

	if len(unused) > 0 {
		d.logger.Debug("ignoring unknown fields", "fields", unused)
	}

	return nil
}

func jsonResponse(status int, v any) (*Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Annotate(err, "encoding response")
	}

	return &Response{StatusCode: status, Headers: headers(), Body: string(b)}, nil
}

func message(status int, msg string) *Response {
	b, _ := json.Marshal(messageBody{Message: msg})

	return &Response{StatusCode: status, Headers: headers(), Body: string(b)}
}
