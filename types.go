package jsondata

import (
	"github.com/goliatone/go-jsondata/pkg/activity"
	"github.com/goliatone/go-jsondata/pkg/docfile"
)

// Option configures a Store at construction time.
type Option func(*storeConfig)

type storeConfig struct {
	source          docfile.Source
	logger          Logger
	activityHooks   activity.Hooks
	activityChannel string
}

func applyOptions(opts []Option) storeConfig {
	cfg := storeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

var defaultSource = docfile.NewFileSource()

func (s *Store) source() docfile.Source {
	if s.cfg.source != nil {
		return s.cfg.source
	}
	return defaultSource
}

func (s *Store) storeLogger() Logger {
	if s.cfg.logger != nil {
		return s.cfg.logger
	}
	return noopLogger{}
}

// WithSource overrides where documents are read from and written to. The
// default is a file source writing four-space indented UTF-8 JSON.
func WithSource(source docfile.Source) Option {
	return func(cfg *storeConfig) {
		cfg.source = source
	}
}
