// Package logging provides a minimal logging interface and adapters for the
// emergency coordination core.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that agents, the message bus and the tool executor use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - ZapAdapter wrapping go.uber.org/zap for high-throughput deployments
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.New(func(o *logging.Options) {
//		o.Level = logging.LogLevelDebug
//		o.Format = "json"
//	})
//	bus := comm.NewEmergencyBus(func(o *comm.BusOptions) {
//		o.Logger = logger
//	})
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
