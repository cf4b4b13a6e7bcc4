package activity

import (
	"strings"
	"time"
)

// Object types attached to store lifecycle events.
const (
	ObjectTypeDocument = "document"
	ObjectTypeValue    = "document.value"
)

// StoreEventInput describes the common fields for store lifecycle events.
type StoreEventInput struct {
	Path       string
	Keys       string
	Channel    string
	OldValue   any
	NewValue   any
	Outcome    string
	Reason     string
	Err        error
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildValueLoadedEvent describes a value resolution against the backing document.
func BuildValueLoadedEvent(input StoreEventInput) Event {
	return buildStoreEvent("value.loaded", ObjectTypeValue, input)
}

// BuildValueUpdatedEvent describes an in-memory value replacement.
func BuildValueUpdatedEvent(input StoreEventInput) Event {
	return buildStoreEvent("value.updated", ObjectTypeValue, input)
}

// BuildValueSavedEvent describes a successful merge-and-write of the cached value.
func BuildValueSavedEvent(input StoreEventInput) Event {
	return buildStoreEvent("value.saved", ObjectTypeDocument, input)
}

// BuildDocumentRegeneratedEvent describes a malformed document being replaced
// with an empty one before a save.
func BuildDocumentRegeneratedEvent(input StoreEventInput) Event {
	return buildStoreEvent("document.regenerated", ObjectTypeDocument, input)
}

// BuildSaveRefusedEvent describes a save that was rejected because the store
// never loaded cleanly.
func BuildSaveRefusedEvent(input StoreEventInput) Event {
	return buildStoreEvent("save.refused", ObjectTypeDocument, input)
}

// BuildMergeConflictEvent describes a save aborted by a non-object ancestor.
func BuildMergeConflictEvent(input StoreEventInput) Event {
	return buildStoreEvent("merge.conflicted", ObjectTypeValue, input)
}

// BuildCounterResetEvent describes an increment that discarded a value it
// could not interpret as an integer.
func BuildCounterResetEvent(input StoreEventInput) Event {
	return buildStoreEvent("counter.reset", ObjectTypeValue, input)
}

// BuildDocumentChangedEvent describes an external modification observed by a watcher.
func BuildDocumentChangedEvent(input StoreEventInput) Event {
	return buildStoreEvent("document.changed", ObjectTypeDocument, input)
}

func buildStoreEvent(verb, objectType string, input StoreEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Outcome != "" {
		metadata = ensureMetadata(metadata)
		metadata["outcome"] = input.Outcome
	}
	if input.Reason != "" {
		metadata = ensureMetadata(metadata)
		metadata["reason"] = input.Reason
	}
	if input.Err != nil {
		metadata = ensureMetadata(metadata)
		metadata["error"] = input.Err.Error()
	}
	if input.OldValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["new_value"] = input.NewValue
	}

	path := strings.TrimSpace(input.Path)
	keys := strings.TrimSpace(input.Keys)

	objectID := path
	if objectType == ObjectTypeValue && keys != "" {
		if objectID != "" {
			objectID += "#" + keys
		} else {
			objectID = keys
		}
	}
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Path:       path,
		Keys:       keys,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
