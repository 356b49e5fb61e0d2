package tracing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agroclimatic/bulletins/config"
	"github.com/agroclimatic/bulletins/pkg/logger"
)

func TestInitTracing_Disabled(t *testing.T) {
	err := InitTracing(&config.TracingConfig{Enabled: false, TraceExporter: "invalid"}, logger.NewTestLogger(t))
	assert.NoError(t, err)
}

func TestInitTracing_InvalidTraceExporter(t *testing.T) {
	err := InitTracing(&config.TracingConfig{Enabled: true, TraceExporter: "invalid"}, logger.NewTestLogger(t))
	assert.EqualError(t, err, "unsupported trace exporter: invalid")
}

func TestInitMetricsExporters(t *testing.T) {
	log := logger.NewTestLogger(t)

	assert.NoError(t, initMetricsExporters(&config.TracingConfig{MetricsExporter: "none"}, log))
	assert.NoError(t, initMetricsExporters(&config.TracingConfig{MetricsExporter: ""}, log))

	err := initMetricsExporters(&config.TracingConfig{MetricsExporter: "statsd"}, log)
	assert.EqualError(t, err, "unsupported metrics exporter: statsd")
}

func TestExportersRequireEndpoints(t *testing.T) {
	log := logger.NewTestLogger(t)

	assert.Error(t, initTraceExporter(&config.TracingConfig{TraceExporter: "jaeger"}, log))
	assert.Error(t, initTraceExporter(&config.TracingConfig{TraceExporter: "zipkin"}, log))
	assert.Error(t, initTraceExporter(&config.TracingConfig{TraceExporter: "datadog"}, log))
	assert.NoError(t, initTraceExporter(&config.TracingConfig{TraceExporter: "none"}, log))

	err := initMetricsExporters(&config.TracingConfig{MetricsExporter: "datadog"}, log)
	assert.ErrorContains(t, err, "failed to initialize datadog metrics exporter")
}

func TestSplitExporters(t *testing.T) {
	assert.Equal(t, []string{"prometheus", "datadog"}, splitExporters("prometheus,  datadog,, none, "))
	assert.Nil(t, splitExporters(" , "))
}
