package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/timada-org/todo/internal/core"
	"github.com/timada-org/todo/pkg/todo"
)

const maxBodyBytes = 1 << 20

type App struct {
	config     *core.Config
	store      todo.Store
	logger     *log.Logger
	registry   *prometheus.Registry
	dispatcher *Dispatcher
}

func New(config *core.Config, store todo.Store, logger *log.Logger) *App {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &App{
		config:     config,
		store:      store,
		logger:     logger,
		registry:   registry,
		dispatcher: NewDispatcher(store, logger, NewMetrics(registry)),
	}
}

func (app *App) Dispatcher() *Dispatcher {
	return app.dispatcher
}

// Handler serves the todo routes. Everything the router does not match,
// OPTIONS included, still goes through the dispatcher so it alone decides
// the response.
func (app *App) Handler() http.Handler {
	router := httprouter.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.HandleMethodNotAllowed = false
	router.HandleOPTIONS = false

	router.GET("/todos", app.handle(ResourceTodos))
	router.POST("/todos", app.handle(ResourceTodos))
	router.GET("/todos/:id", app.handle(ResourceTodo))
	router.PUT("/todos/:id", app.handle(ResourceTodo))
	router.DELETE("/todos/:id", app.handle(ResourceTodo))

	if app.config.Metrics.Enabled {
		router.Handler(http.MethodGet, app.config.Metrics.Path, promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))
	}

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.serve(w, r, r.URL.Path, nil)
	})

	return logRequests(app.logger, router)
}

// Listen serves until ctx is done, then shuts down gracefully.
func (app *App) Listen(ctx context.Context) error {
	server := &http.Server{
		Addr:              app.config.Addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)

	go func() {
		app.logger.Info("listening", "addr", app.config.Addr, "store", app.config.Store.Driver)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func (app *App) Close() error {
	return app.store.Close()
}

func (app *App) handle(resource string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		params := make(map[string]string, len(p))
		for _, param := range p {
			params[param.Key] = param.Value
		}

		app.serve(w, r, resource, params)
	}
}

func (app *App) serve(w http.ResponseWriter, r *http.Request, resource string, params map[string]string) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		app.logger.Error("reading request body", "method", r.Method, "path", r.URL.Path, "err", err)
		writeResponse(w, InternalError())
		return
	}

	res := app.dispatcher.Dispatch(r.Context(), &Request{
		Method:         r.Method,
		Resource:       resource,
		PathParameters: params,
		Body:           string(body),
	})

	writeResponse(w, res)
}

func writeResponse(w http.ResponseWriter, res *Response) {
	for k, v := range res.Headers {
		w.Header().Set(k, v)
	}

	w.WriteHeader(res.StatusCode)

	if res.Body == "" {
		return
	}

	if _, err := io.WriteString(w, res.Body); err != nil {
		log.Error("writing response", "err", err)
	}
}
