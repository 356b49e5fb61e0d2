package tracing

import (
	"fmt"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/agroclimatic/bulletins/config"
	"github.com/agroclimatic/bulletins/pkg/logger"
)

// InitTracing configures sampling, exporters and the views of the API.
// codecov:ignore:start
func InitTracing(cfg *config.TracingConfig, log logger.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if err := initTraceExporter(cfg, log); err != nil {
		return err
	}

	if err := initMetricsExporters(cfg, log); err != nil {
		return err
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"trace_exporter":   cfg.TraceExporter,
		"metrics_exporter": cfg.MetricsExporter,
	}).Info("OpenCensus initialized")
	return nil
}

func initTraceExporter(cfg *config.TracingConfig, log logger.Logger) error {
	switch cfg.TraceExporter {
	case "jaeger":
		return initJaegerExporter(cfg, log)
	case "zipkin":
		return initZipkinExporter(cfg, log)
	case "datadog":
		exporter, err := newDatadogExporter(cfg, log)
		if err != nil {
			return err
		}
		trace.RegisterExporter(exporter)
		return nil
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
}

// initMetricsExporters accepts a comma separated list of exporters
func initMetricsExporters(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.MetricsExporter == "none" || cfg.MetricsExporter == "" {
		return nil
	}

	for _, name := range splitExporters(cfg.MetricsExporter) {
		var err error
		switch name {
		case "prometheus":
			err = initPrometheusExporter(cfg, log)
		case "datadog":
			var exporter *datadog.Exporter
			exporter, err = newDatadogExporter(cfg, log)
			if err == nil {
				view.RegisterExporter(exporter)
			}
		default:
			return fmt.Errorf("unsupported metrics exporter: %s", name)
		}

		if err != nil {
			return fmt.Errorf("failed to initialize %s metrics exporter: %w", name, err)
		}
		log.WithField("exporter", name).Info("Metrics exporter initialized")
	}

	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}
	if err := RegisterRenderViews(); err != nil {
		return fmt.Errorf("failed to register render views: %w", err)
	}

	return nil
}

func splitExporters(value string) []string {
	var names []string
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		if name != "" && name != "none" {
			names = append(names, name)
		}
	}
	return names
}

func initJaegerExporter(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.JaegerEndpoint == "" {
		return fmt.Errorf("Jaeger endpoint is required for Jaeger exporter")
	}

	je, err := jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: cfg.JaegerEndpoint,
		ServiceName:       cfg.ServiceName,
		Process: jaeger.Process{
			ServiceName: cfg.ServiceName,
		},
		OnError: func(err error) {
			log.Error(fmt.Sprintf("Jaeger exporter error: %v", err))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	trace.RegisterExporter(je)
	log.WithField("endpoint", cfg.JaegerEndpoint).Info("Jaeger exporter initialized")
	return nil
}

func initZipkinExporter(cfg *config.TracingConfig, log logger.Logger) error {
	if cfg.ZipkinEndpoint == "" {
		return fmt.Errorf("Zipkin endpoint is required for Zipkin exporter")
	}

	reporter := zipkinhttp.NewReporter(cfg.ZipkinEndpoint)
	trace.RegisterExporter(zipkin.NewExporter(reporter, nil))
	log.WithField("endpoint", cfg.ZipkinEndpoint).Info("Zipkin exporter initialized")
	return nil
}

// newDatadogExporter builds one exporter serving traces and stats through the agent
func newDatadogExporter(cfg *config.TracingConfig, log logger.Logger) (*datadog.Exporter, error) {
	if cfg.DatadogAgentAddress == "" {
		return nil, fmt.Errorf("Datadog agent address is required for Datadog exporter")
	}

	exporter, err := datadog.NewExporter(datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: cfg.DatadogAgentAddress,
		StatsAddr: cfg.DatadogAgentAddress,
		Tags:      []string{"service:" + cfg.ServiceName},
		OnError: func(err error) {
			log.Error(fmt.Sprintf("Datadog exporter error: %v", err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Datadog exporter: %w", err)
	}
	return exporter, nil
}

func initPrometheusExporter(cfg *config.TracingConfig, log logger.Logger) error {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			log.Error(fmt.Sprintf("Prometheus exporter error: %v", err))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	view.RegisterExporter(pe)

	if cfg.PrometheusPort <= 0 {
		log.Warn("Prometheus metrics server not started (port not configured)")
		return nil
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", pe)

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.PrometheusPort),
			Handler: mux,
		}

		log.WithField("port", cfg.PrometheusPort).Info("Starting Prometheus metrics server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(fmt.Sprintf("Prometheus metrics server failed: %v", err))
		}
	}()

	return nil
}

// codecov:ignore:end
