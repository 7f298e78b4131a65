package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "flowcore"

	metricInvocationsTotal    = "flow.invocations.total"
	metricInvocationDuration  = "flow.invocation.duration"
	metricInvocationSuccess   = "flow.invocations.success.total"
	metricInvocationFailure   = "flow.invocations.failure.total"
	metricNodeUpdatesTotal    = "flow.node.updates.total"
	metricNodeUpdateDuration  = "flow.node.update.duration"
	metricSchedulingPasses    = "flow.scheduling.passes.total"
	metricSchedulingPassSize  = "flow.scheduling.pass.size"
)

// Provider manages OpenTelemetry setup and exposes tracers, meters, and the
// recording helpers an executor's Hooks call into.
type Provider struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer

	invocationsTotal   metric.Int64Counter
	invocationDuration metric.Float64Histogram
	invocationSuccess  metric.Int64Counter
	invocationFailure  metric.Int64Counter
	nodeUpdatesTotal   metric.Int64Counter
	nodeUpdateDuration metric.Float64Histogram
	schedulingPasses   metric.Int64Counter
	schedulingPassSize metric.Int64Histogram

	mu sync.RWMutex
}

// Config holds telemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	EnableTracing  bool
	EnableMetrics  bool
}

// DefaultConfig returns the telemetry configuration flowdemo starts with.
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// NewProvider creates a telemetry provider with a Prometheus metrics
// exporter, per config.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	provider := &Provider{}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", config.ServiceName),
			attribute.String("service.version", config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create resource: %w", err)
	}

	if config.EnableMetrics {
		if err := provider.initMetrics(res); err != nil {
			return nil, fmt.Errorf("telemetry: init metrics: %w", err)
		}
	}
	if config.EnableTracing {
		provider.initTracing()
	}

	return provider, nil
}

func (p *Provider) initMetrics(res *resource.Resource) error {
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("create prometheus exporter: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(p.meterProvider)
	p.meter = p.meterProvider.Meter(serviceName)

	return p.createMetricInstruments()
}

func (p *Provider) initTracing() {
	p.tracerProvider = otel.GetTracerProvider()
	p.tracer = p.tracerProvider.Tracer(serviceName)
}

func (p *Provider) createMetricInstruments() error {
	var err error

	if p.invocationsTotal, err = p.meter.Int64Counter(
		metricInvocationsTotal,
		metric.WithDescription("Total number of TopoWithLoops.Invoke calls"),
	); err != nil {
		return err
	}
	if p.invocationDuration, err = p.meter.Float64Histogram(
		metricInvocationDuration,
		metric.WithDescription("Invoke wall-clock duration"),
		metric.WithUnit("ms"),
	); err != nil {
		return err
	}
	if p.invocationSuccess, err = p.meter.Int64Counter(
		metricInvocationSuccess,
		metric.WithDescription("Total number of invocations that returned no error"),
	); err != nil {
		return err
	}
	if p.invocationFailure, err = p.meter.Int64Counter(
		metricInvocationFailure,
		metric.WithDescription("Total number of invocations that returned an error"),
	); err != nil {
		return err
	}
	if p.nodeUpdatesTotal, err = p.meter.Int64Counter(
		metricNodeUpdatesTotal,
		metric.WithDescription("Total number of node OnUpdate calls"),
	); err != nil {
		return err
	}
	if p.nodeUpdateDuration, err = p.meter.Float64Histogram(
		metricNodeUpdateDuration,
		metric.WithDescription("Per-node OnUpdate duration"),
		metric.WithUnit("ms"),
	); err != nil {
		return err
	}
	if p.schedulingPasses, err = p.meter.Int64Counter(
		metricSchedulingPasses,
		metric.WithDescription("Total number of TopoWithLoops outer-loop passes"),
	); err != nil {
		return err
	}
	if p.schedulingPassSize, err = p.meter.Int64Histogram(
		metricSchedulingPassSize,
		metric.WithDescription("Number of nodes in a pass's topological order"),
	); err != nil {
		return err
	}
	return nil
}

// Tracer returns the tracer for creating spans.
func (p *Provider) Tracer() trace.Tracer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracer
}

// Meter returns the meter for recording metrics.
func (p *Provider) Meter() metric.Meter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meter
}

// RecordInvocation records one TopoWithLoops.Invoke call.
func (p *Provider) RecordInvocation(ctx context.Context, flowID string, duration time.Duration, success bool) {
	if p.meter == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("flow.id", flowID))
	p.invocationsTotal.Add(ctx, 1, attrs)
	p.invocationDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	if success {
		p.invocationSuccess.Add(ctx, 1, attrs)
	} else {
		p.invocationFailure.Add(ctx, 1, attrs)
	}
}

// RecordNodeUpdate records one node's OnUpdate call.
func (p *Provider) RecordNodeUpdate(ctx context.Context, nodeID string, duration time.Duration, pushedPorts int) {
	if p.meter == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("node.id", nodeID),
		attribute.Int("ports.pushed", pushedPorts),
	)
	p.nodeUpdatesTotal.Add(ctx, 1, attrs)
	p.nodeUpdateDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// RecordSchedulingPass records one outer-loop pass of TopoWithLoops.
func (p *Provider) RecordSchedulingPass(ctx context.Context, passLen int) {
	if p.meter == nil {
		return
	}
	p.schedulingPasses.Add(ctx, 1)
	p.schedulingPassSize.Record(ctx, int64(passLen))
}

// Shutdown gracefully shuts down the telemetry provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("telemetry: shutdown meter provider: %w", err)
		}
	}
	return nil
}
