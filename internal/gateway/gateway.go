// Package gateway adapts API Gateway proxy events to the dispatcher.
package gateway

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
	"github.com/charmbracelet/log"
	"github.com/timada-org/todo/internal/api"
)

type Handler struct {
	dispatcher *api.Dispatcher
	logger     *log.Logger
}

func New(dispatcher *api.Dispatcher, logger *log.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle never returns an error; failures are reported as a 500 response so
// the gateway does not substitute its own body.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := event.Body

	if event.IsBase64Encoded && body != "" {
		b, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			h.logger.Error("decoding request body", "method", event.HTTPMethod, "resource", event.Resource, "err", err)
			return toProxy(api.InternalError()), nil
		}
		body = string(b)
	}

	res := h.dispatcher.Dispatch(ctx, &api.Request{
		Method:         event.HTTPMethod,
		Resource:       event.Resource,
		PathParameters: event.PathParameters,
		Body:           body,
	})

	return toProxy(res), nil
}

func toProxy(res *api.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: res.StatusCode,
		Headers:    res.Headers,
		Body:       res.Body,
	}
}
