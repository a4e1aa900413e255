// Package observability bundles the logger, tracer, and metrics registry
// handed to every module at wiring time.
package observability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
)

// Config controls the observability bootstrap.
type Config struct {
	ServiceName    string
	Environment    string
	MetricsAddress string // empty disables the /metrics listener
}

// Observability bundles the shared logger, tracer, and prometheus registry.
type Observability struct {
	logger        *slog.Logger
	tracer        trace.Tracer
	registry      *prometheus.Registry
	metricsServer *http.Server
}

// New builds the observability stack: a JSON slog logger on stdout, the
// global otel tracer for the service, and a prometheus registry with the Go
// and process collectors pre-registered.
func New(cfg Config) *Observability {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		attr.String("service", cfg.ServiceName),
		attr.String("environment", cfg.Environment),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	obs := &Observability{
		logger:   logger,
		tracer:   otel.Tracer(cfg.ServiceName),
		registry: registry,
	}

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		obs.metricsServer = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return obs
}

func (o *Observability) GetLogger() *slog.Logger { return o.logger }

func (o *Observability) GetTracer() trace.Tracer { return o.tracer }

func (o *Observability) GetRegistry() *prometheus.Registry { return o.registry }

// ServeMetrics runs the /metrics listener until the context is canceled.
// It is a no-op when no metrics address is configured.
func (o *Observability) ServeMetrics(ctx context.Context) error {
	if o.metricsServer == nil {
		return nil
	}

	errCh := make(chan error, 1)
	go func() {
		if err := o.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return o.metricsServer.Shutdown(shutdownCtx)
	}
}
