package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/metrics"
	"github.com/dmitrymomot/formkit/pkg/requestid"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

// Catalog is a named collection of schemas. *schemafile.Registry and
// *openapi.Document implement it.
type Catalog interface {
	Names() []string
	Schema(name string) (*schema.Schema, error)
}

type handlerConfig struct {
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	maxBody  int64
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

// WithRequestLogger logs every request and every processing failure.
func WithRequestLogger(l *slog.Logger) HandlerOption {
	return func(c *handlerConfig) { c.logger = l }
}

// WithMetrics serves the metrics of g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) HandlerOption {
	return func(c *handlerConfig) { c.gatherer = g }
}

// WithMaxBodySize limits request bodies to n bytes. Default 1 MiB.
func WithMaxBodySize(n int64) HandlerOption {
	return func(c *handlerConfig) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// NewHandler returns the router serving the schemas of catalog.
func NewHandler(catalog Catalog, opts ...HandlerOption) http.Handler {
	cfg := handlerConfig{maxBody: 1 << 20}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Discard()
	}
	h := &handler{catalog: catalog, cfg: cfg}

	r := chi.NewRouter()
	r.Use(requestid.Middleware())
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.liveness)
	r.Get("/schemas", h.list)
	r.Get("/schemas/{name}", h.describe)
	r.Post("/schemas/{name}", h.validate)
	if cfg.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(cfg.gatherer))
	}
	return r
}

type handler struct {
	catalog Catalog
	cfg     handlerConfig
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.cfg.logger.InfoContext(r.Context(), "request",
			requestid.Attr(r.Context()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			logger.Duration(time.Since(start)),
		)
	})
}

func (h *handler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}

func (h *handler) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"schemas": h.catalog.Names()})
}

func (h *handler) describe(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, Describe(s))
}

func (h *handler) validate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.maxBody)
	data, err := binder.Bind(r, binder.Query(), binder.Body())
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, binder.ErrUnsupportedMediaType) || errors.Is(err, binder.ErrMissingContentType) {
			status = http.StatusUnsupportedMediaType
		}
		writeError(w, status, err.Error())
		return
	}

	res := s.Process(data)
	if !res.IsValid() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"valid":  false,
			"errors": res.Errors(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid": true,
		"value": res.Value(),
	})
}

func (h *handler) lookup(w http.ResponseWriter, r *http.Request) (*schema.Schema, bool) {
	name := chi.URLParam(r, "name")
	if !slices.Contains(h.catalog.Names(), name) {
		writeError(w, http.StatusNotFound, "schema not found: "+name)
		return nil, false
	}
	s, err := h.catalog.Schema(name)
	if err != nil {
		h.cfg.logger.ErrorContext(r.Context(), "failed to build schema",
			requestid.Attr(r.Context()),
			logger.Schema(name),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "schema is not available: "+name)
		return nil, false
	}
	return s, true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
