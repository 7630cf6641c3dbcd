// Package telemetry provides observability instrumentation for crossbuild.
//
// It integrates structured logging (zerolog), distributed tracing
// (OpenTelemetry), metrics (Prometheus), and an in-process event bus into a
// unified system for monitoring settings resolution, triple parsing, and
// policy evaluation. The pieces can be used individually or bundled
// through Telemetry, which wires all of them from one Config and travels
// on a context.Context.
package telemetry
