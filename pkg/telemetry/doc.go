// Package telemetry wires flow execution into OpenTelemetry metrics,
// exported via Prometheus, and exposes a tracer from the global trace
// provider; the package itself creates no spans.
package telemetry
