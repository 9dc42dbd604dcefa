package pvec

import (
	"log/slog"

	"github.com/google/uuid"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	sessionID        uuid.UUID
}

// Option configures a Session (and a Builder, which owns one).
type Option func(*options)

// WithMetricsCollector configures a metrics collector for transient activity.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pvec.BasicMetricsCollector{}
//	s := pvec.NewSession(pvec.WithMetricsCollector(metrics))
//	// ... build vectors with s ...
//	stats := metrics.GetStats()
//	fmt.Printf("Freezes: %d, cloned nodes: %d\n", stats.FreezeCount, stats.ClonedNodes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for transient activity.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pvec.NewJSONLogger(slog.LevelDebug)
//	s := pvec.NewSession(pvec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithSessionID fixes the session identity instead of generating a random one.
func WithSessionID(id uuid.UUID) Option {
	return func(o *options) {
		o.sessionID = id
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
