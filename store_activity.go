package jsondata

import (
	"context"

	"github.com/goliatone/go-jsondata/pkg/activity"
)

// WithActivityHooks attaches activity hooks to the store configuration.
// Hooks are cloned and nil entries dropped to preserve immutability.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *storeConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityChannel overrides the channel stamped on emitted events.
func WithActivityChannel(channel string) Option {
	return func(cfg *storeConfig) {
		cfg.activityChannel = channel
	}
}

// ActivityHooks returns a cloned slice of the activity hooks configured on
// the store. The returned slice can be safely mutated by the caller.
func (s *Store) ActivityHooks() activity.Hooks {
	if s == nil {
		return nil
	}
	return cloneActivityHooks(s.cfg.activityHooks)
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}

// emit forwards an event to the configured hooks. Hook failures never break
// a store operation; they are logged instead.
func (s *Store) emit(event activity.Event) {
	if !s.emitter.Enabled() {
		return
	}
	if err := s.emitter.Emit(context.Background(), event); err != nil {
		s.storeLogger().LogStoreEvent(LogEvent{
			Op:   "activity",
			Path: s.path,
			Keys: s.keys.String(),
			Err:  err,
		})
	}
}
