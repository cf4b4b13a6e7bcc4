package jsondata

import "time"

// LogEvent describes a store operation for logging.
type LogEvent struct {
	Op       string
	Path     string
	Keys     string
	Duration time.Duration
	Err      error
}

// Logger records store events.
type Logger interface {
	LogStoreEvent(LogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(LogEvent)

// LogStoreEvent implements Logger.
func (f LoggerFunc) LogStoreEvent(event LogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogStoreEvent(LogEvent) {}

// WithLogger attaches an operation logger to the store.
func WithLogger(logger Logger) Option {
	return func(cfg *storeConfig) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}
