package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-htmlform"
	"github.com/goliatone/go-htmlform/pkg/definition"
	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/server"
)

const shutdownTimeout = 5 * time.Second

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <definition>",
		Short: "Serve a form over HTTP with Prometheus metrics on /metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.builder()
			if err != nil {
				return err
			}
			doc, err := a.document(ctx, b, args[0])
			if err != nil {
				return err
			}
			handler, err := a.serveHandler(b, doc, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			return a.listen(ctx, handler)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from config)")
	return cmd
}

// serveHandler mounts the form at / and the metrics of reg at /metrics. Each
// request gets a form freshly built from doc.
func (a *app) serveHandler(b *htmlform.Builder, doc *definition.Document, reg *prometheus.Registry) (http.Handler, error) {
	factory := func() (*form.Form, error) {
		return b.Build(doc)
	}
	formHandler, err := server.NewHandler(factory,
		server.WithName(doc.Form.Name),
		server.WithRegisterer(reg),
		server.WithLogger(a.logger),
		server.WithOnSuccess(func(w http.ResponseWriter, r *http.Request, f *form.Form, data *form.Data) {
			a.logger.Info("form submitted", slog.String("form", f.Name()), slog.Int("fields", data.Len()))
			http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
		}),
	)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Mount("/", formHandler)
	return r, nil
}

func (a *app) listen(ctx context.Context, handler http.Handler) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("serving form", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
