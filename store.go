package jsondata

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-jsondata/document"
	"github.com/goliatone/go-jsondata/pkg/activity"
	"github.com/goliatone/go-jsondata/pkg/docfile"
)

// Store binds a single value inside a JSON document to a key path. The
// value is served from an in-memory cache; Load and Save reconcile the
// cache with the backing document while leaving sibling keys untouched.
type Store struct {
	keys document.Path
	def  document.Value
	path string

	cfg     storeConfig
	emitter *activity.Emitter

	mu         sync.RWMutex
	value      document.Value
	loadFailed bool
}

// IncrementResult reports the outcome of an Increment call. Reset is true
// when the previous value could not be read as an integer and the counter
// restarted from zero.
type IncrementResult struct {
	Value int64
	Reset bool
}

// New constructs a store for the value at keys inside the document at path
// and loads it immediately. Construction never fails: when the first load
// cannot complete, the store serves def and refuses saves until a clean
// Load. keys and def are cloned, later mutation of the originals does not
// leak in.
func New(keys document.Path, def document.Value, path string, opts ...Option) *Store {
	cfg := applyOptions(opts)
	s := &Store{
		keys: keys.Clone(),
		def:  def.Clone(),
		path: path,
		cfg:  cfg,
	}
	s.emitter = activity.NewEmitter(cfg.activityHooks, activity.Config{
		Enabled: len(cfg.activityHooks) > 0,
		Channel: cfg.activityChannel,
	})
	_ = s.Load()
	return s
}

// Load re-reads the backing document and refreshes the cached value. A
// missing document or key is not an error; the default applies and a later
// Save may create them. A malformed or unreadable document leaves the
// default in place and marks the store load-failed.
func (s *Store) Load() error {
	start := time.Now()
	err := s.load()
	s.storeLogger().LogStoreEvent(LogEvent{
		Op:       "load",
		Path:     s.path,
		Keys:     s.keys.String(),
		Duration: time.Since(start),
		Err:      err,
	})
	return err
}

func (s *Store) load() error {
	if err := s.keys.Validate(); err != nil {
		wrapped := wrapStoreError("load", s.path, s.keys, err)
		s.setValue(s.def, true)
		s.emit(activity.BuildValueLoadedEvent(activity.StoreEventInput{
			Path:    s.path,
			Keys:    s.keys.String(),
			Outcome: "failed",
			Reason:  "empty_keys",
			Err:     wrapped,
		}))
		return wrapped
	}

	doc, ok, err := s.source().Read(s.path)
	if err != nil {
		wrapped := wrapStoreError("load", s.path, s.keys, err)
		s.setValue(s.def, true)
		s.emit(activity.BuildValueLoadedEvent(activity.StoreEventInput{
			Path:    s.path,
			Keys:    s.keys.String(),
			Outcome: "failed",
			Reason:  readFailureReason(err),
			Err:     wrapped,
		}))
		return wrapped
	}
	if !ok {
		s.setValue(s.def, false)
		s.emit(activity.BuildValueLoadedEvent(activity.StoreEventInput{
			Path:    s.path,
			Keys:    s.keys.String(),
			Outcome: "default",
			Reason:  "file_absent",
		}))
		return nil
	}

	value, found := document.Lookup(doc, s.keys)
	if !found {
		s.setValue(s.def, false)
		s.emit(activity.BuildValueLoadedEvent(activity.StoreEventInput{
			Path:    s.path,
			Keys:    s.keys.String(),
			Outcome: "default",
			Reason:  "key_absent",
		}))
		return nil
	}

	s.setValue(value, false)
	s.emit(activity.BuildValueLoadedEvent(activity.StoreEventInput{
		Path:     s.path,
		Keys:     s.keys.String(),
		Outcome:  "resolved",
		NewValue: value.Interface(),
	}))
	return nil
}

func readFailureReason(err error) string {
	var parseErr *docfile.ParseError
	if errors.As(err, &parseErr) {
		return "malformed"
	}
	return "io"
}

func (s *Store) setValue(value document.Value, failed bool) {
	s.mu.Lock()
	s.value = value.Clone()
	s.loadFailed = failed
	s.mu.Unlock()
}

// Get returns a copy of the cached value.
func (s *Store) Get() document.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value.Clone()
}

// Set replaces the cached value. When persist is true the document is
// saved immediately and the save result returned.
func (s *Store) Set(value document.Value, persist bool) error {
	s.mu.Lock()
	old := s.value
	s.value = value.Clone()
	s.mu.Unlock()

	s.emit(activity.BuildValueUpdatedEvent(activity.StoreEventInput{
		Path:     s.path,
		Keys:     s.keys.String(),
		OldValue: old.Interface(),
		NewValue: value.Interface(),
	}))

	if !persist {
		return nil
	}
	return s.Save()
}

// Increment adds delta to the cached value, coercing integral numbers,
// numeric strings, and booleans first and truncating floats toward zero.
// A value that cannot be coerced is discarded and the counter restarts at
// zero before delta applies; the result reports the discard via Reset.
func (s *Store) Increment(delta int64, persist bool) (IncrementResult, error) {
	s.mu.Lock()
	old := s.value
	n, ok := coerceInt(old)
	if !ok {
		n = 0
	}
	n += delta
	s.value = document.Int(n)
	s.mu.Unlock()

	result := IncrementResult{Value: n, Reset: !ok}
	if result.Reset {
		s.emit(activity.BuildCounterResetEvent(activity.StoreEventInput{
			Path:     s.path,
			Keys:     s.keys.String(),
			OldValue: old.Interface(),
			NewValue: n,
			Reason:   "not an integer",
		}))
	}
	s.emit(activity.BuildValueUpdatedEvent(activity.StoreEventInput{
		Path:     s.path,
		Keys:     s.keys.String(),
		OldValue: old.Interface(),
		NewValue: n,
	}))

	if !persist {
		return result, nil
	}
	return result, s.Save()
}

// Save merges the cached value into the backing document and writes it,
// preserving every sibling key. An absent document is created and a
// malformed one regenerated from scratch; any other read failure aborts.
// Saves are refused while the store is load-failed.
func (s *Store) Save() error {
	start := time.Now()
	err := s.save()
	s.storeLogger().LogStoreEvent(LogEvent{
		Op:       "save",
		Path:     s.path,
		Keys:     s.keys.String(),
		Duration: time.Since(start),
		Err:      err,
	})
	return err
}

func (s *Store) save() error {
	s.mu.RLock()
	failed := s.loadFailed
	cached := s.value.Clone()
	s.mu.RUnlock()

	if failed {
		wrapped := wrapStoreError("save", s.path, s.keys, ErrSaveRefused)
		s.emit(activity.BuildSaveRefusedEvent(activity.StoreEventInput{
			Path: s.path,
			Keys: s.keys.String(),
			Err:  ErrSaveRefused,
		}))
		return wrapped
	}

	doc, ok, err := s.source().Read(s.path)
	if err != nil {
		var parseErr *docfile.ParseError
		if !errors.As(err, &parseErr) {
			return wrapStoreError("save", s.path, s.keys, err)
		}
		doc = document.Object(nil)
		s.emit(activity.BuildDocumentRegeneratedEvent(activity.StoreEventInput{
			Path:   s.path,
			Reason: "malformed",
		}))
	} else if !ok {
		doc = document.Object(nil)
	}

	merged, err := document.Merge(doc, s.keys, cached)
	if err != nil {
		wrapped := wrapStoreError("save", s.path, s.keys, err)
		var conflict *document.ConflictError
		if errors.As(err, &conflict) {
			s.emit(activity.BuildMergeConflictEvent(activity.StoreEventInput{
				Path: s.path,
				Keys: s.keys.String(),
				Err:  wrapped,
			}))
		}
		return wrapped
	}

	if err := s.source().Write(s.path, merged); err != nil {
		return wrapStoreError("save", s.path, s.keys, err)
	}

	s.emit(activity.BuildValueSavedEvent(activity.StoreEventInput{
		Path:    s.path,
		Keys:    s.keys.String(),
		Outcome: "written",
	}))
	return nil
}

// KeyPath returns the key path this store resolves inside the document.
func (s *Store) KeyPath() document.Path {
	return s.keys.Clone()
}

// Default returns the fallback value served when resolution misses.
func (s *Store) Default() document.Value {
	return s.def.Clone()
}

// Path returns the backing document path.
func (s *Store) Path() string {
	return s.path
}

// DocumentExists reports whether the backing document is present.
func (s *Store) DocumentExists() bool {
	return s.source().Exists(s.path)
}

// LoadFailed reports whether the last load left the store serving its
// default because the document was malformed or unreadable.
func (s *Store) LoadFailed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadFailed
}

// String renders the cached value as compact JSON.
func (s *Store) String() string {
	return s.Get().String()
}

// coerceInt reads a value the way a counter would: integral numbers pass
// through, floats truncate toward zero, strings parse as base 10 integers
// after trimming spaces, booleans map to 1 and 0.
func coerceInt(v document.Value) (int64, bool) {
	switch v.Kind() {
	case document.KindNumber:
		if n, ok := v.AsInt(); ok {
			return n, true
		}
		f, ok := v.AsFloat()
		if !ok || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case document.KindString:
		s, _ := v.AsString()
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case document.KindBool:
		b, _ := v.AsBool()
		if b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
