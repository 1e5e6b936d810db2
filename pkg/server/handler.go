// Package server serves a form over HTTP: GET renders it, POST validates the
// submission and either re-renders it with errors or hands the data on.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-htmlform/pkg/form"
)

// ErrNilFactory is returned by NewHandler when no form factory is given.
var ErrNilFactory = errors.New("server: nil form factory")

// Factory builds a fresh form for every request.
type Factory func() (*form.Form, error)

// SuccessFunc receives a submission that passed validation.
type SuccessFunc func(w http.ResponseWriter, r *http.Request, f *form.Form, data *form.Data)

// Option configures a Handler.
type Option func(*Handler)

// WithOnSuccess sets what happens after a valid submission. By default the
// form is rendered again with 200 OK.
func WithOnSuccess(fn SuccessFunc) Option {
	return func(h *Handler) {
		if fn != nil {
			h.onSuccess = fn
		}
	}
}

// WithRegisterer registers the handler metrics on reg instead of the default
// Prometheus registerer. Handlers with the same name on one registerer share
// their collectors.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(h *Handler) {
		if reg != nil {
			h.registerer = reg
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithVariables adds variables to every form render.
func WithVariables(vars map[string]any) Option {
	return func(h *Handler) {
		h.vars = vars
	}
}

// WithName sets the "form" label on the handler metrics.
func WithName(name string) Option {
	return func(h *Handler) {
		h.name = name
	}
}

// Handler is an http.Handler for one form.
type Handler struct {
	router     chi.Router
	factory    Factory
	onSuccess  SuccessFunc
	registerer prometheus.Registerer
	logger     *slog.Logger
	vars       map[string]any
	name       string
	metrics    *metrics
}

// NewHandler wires GET and POST on "/" for the forms built by factory.
func NewHandler(factory Factory, opts ...Option) (*Handler, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}

	h := &Handler{
		factory:    factory,
		registerer: prometheus.DefaultRegisterer,
		logger:     slog.New(slog.DiscardHandler),
		name:       "default",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	m, err := newMetrics(h.registerer, h.name)
	if err != nil {
		return nil, err
	}
	h.metrics = m

	r := chi.NewRouter()
	r.Get("/", h.show)
	r.Post("/", h.submit)
	h.router = r
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	f, err := h.factory()
	if err != nil {
		h.fail(w, r, "build form", err)
		return
	}
	h.render(w, r, f, http.StatusOK)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	f, err := h.factory()
	if err != nil {
		h.metrics.submissions.WithLabelValues(ResultError).Inc()
		h.fail(w, r, "build form", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.metrics.submissions.WithLabelValues(ResultError).Inc()
		h.logger.Warn("invalid form body", slog.String("path", r.URL.Path), slog.Any("error", err))
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	data := Decode(f, r.PostForm)
	if errs := f.Validate(data); errs != nil {
		h.metrics.submissions.WithLabelValues(ResultInvalid).Inc()
		h.logger.Info("form submission rejected",
			slog.String("form", f.Name()),
			slog.Int("invalid_fields", len(errs)),
		)
		h.render(w, r, f, http.StatusUnprocessableEntity)
		return
	}

	h.metrics.submissions.WithLabelValues(ResultValid).Inc()
	if h.onSuccess == nil {
		h.render(w, r, f, http.StatusOK)
		return
	}
	h.onSuccess(w, r, f, data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, f *form.Form, status int) {
	start := time.Now()
	html, err := f.Render(h.vars)
	h.metrics.renderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		h.fail(w, r, "render form", err)
		return
	}

	h.metrics.renders.WithLabelValues(strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(html)); err != nil {
		h.logger.Error("write response failed", slog.Any("error", err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.metrics.renders.WithLabelValues(strconv.Itoa(http.StatusInternalServerError)).Inc()
	h.logger.Error(op+" failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
