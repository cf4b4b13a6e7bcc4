// Package logsink appends activity events to plain text log files.
//
// Lines follow the "[2006-01-02 15:04:05] verb object" shape with metadata
// rendered as key=value pairs. Writes are skipped once a log grows past the
// configured limit so a chatty store cannot fill the disk.
package logsink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-jsondata/pkg/activity"
)

// 50MB.
const defaultLimit = 50 * 1000 * 1024

// Hook adapts activity events to an append-only log file. Events whose
// metadata carries an error are mirrored to a separate error log when one
// is configured.
type Hook struct {
	path      string
	errorPath string
	limit     int64
	location  *time.Location

	mu sync.Mutex
}

// Option adjusts hook behavior.
type Option func(*Hook)

// WithErrorPath mirrors failure events to a second log file.
func WithErrorPath(path string) Option {
	return func(h *Hook) {
		h.errorPath = path
	}
}

// WithLimit caps log files at the given byte size. Zero or negative disables
// the cap.
func WithLimit(limit int64) Option {
	return func(h *Hook) {
		h.limit = limit
	}
}

// WithLocation renders timestamps in the given location instead of time.Local.
func WithLocation(loc *time.Location) Option {
	return func(h *Hook) {
		if loc != nil {
			h.location = loc
		}
	}
}

// New constructs a hook that appends to the log file at path.
func New(path string, opts ...Option) *Hook {
	h := &Hook{
		path:     path,
		limit:    defaultLimit,
		location: time.Local,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Notify formats the event as a log line and appends it.
func (h *Hook) Notify(_ context.Context, event activity.Event) error {
	if h == nil || h.path == "" {
		return nil
	}

	normalized := activity.NormalizeEvent(event)
	if normalized.Verb == "" || normalized.ObjectType == "" || normalized.ObjectID == "" {
		return nil
	}

	line := h.formatLine(normalized)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errorPath != "" {
		if _, failed := normalized.Metadata["error"]; failed {
			if err := h.append(h.errorPath, line); err != nil {
				return err
			}
		}
	}
	return h.append(h.path, line)
}

func (h *Hook) formatLine(event activity.Event) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(event.OccurredAt.In(h.location).Format("2006-01-02 15:04:05"))
	b.WriteString("] ")
	b.WriteString(event.Verb)
	b.WriteString(" ")
	b.WriteString(event.ObjectID)
	for _, key := range sortedKeys(event.Metadata) {
		fmt.Fprintf(&b, " %s=%v", key, event.Metadata[key])
	}
	b.WriteString("\n")
	return b.String()
}

func (h *Hook) append(path, line string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("logsink: create log directory %s: %w", dir, err)
		}
	}
	if h.limit > 0 {
		if info, err := os.Stat(path); err == nil && info.Size() >= h.limit {
			return nil
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("logsink: open log %s: %w", path, err)
	}
	if _, err := file.WriteString(line); err != nil {
		file.Close()
		return fmt.Errorf("logsink: write log %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("logsink: close log %s: %w", path, err)
	}
	return nil
}

func sortedKeys(meta map[string]any) []string {
	if len(meta) == 0 {
		return nil
	}
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
