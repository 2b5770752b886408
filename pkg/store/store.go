// Package store defines the per-field value persistence contract consumed by
// the mapper's persistence mutation. Values are keyed by (content record,
// field ULID); the stored value is a JSON-shaped blob. Failures are not
// retried, they propagate to the caller as-is.
package store

import "context"

// ValueStore reads and writes per-field value rows.
type ValueStore interface {
	// Get returns the stored value for the field, ok reporting presence.
	Get(ctx context.Context, recordKey, fieldULID string) (any, bool, error)
	// Upsert stores value under (recordKey, fieldULID), replacing any prior
	// row.
	Upsert(ctx context.Context, recordKey, fieldULID string, value any) error
	// Delete removes the value row if present. Deleting a missing row is not
	// an error.
	Delete(ctx context.Context, recordKey, fieldULID string) error
}

// MemoryStore is an in-memory ValueStore used by tests and the form preview
// path.
type MemoryStore struct {
	values map[string]map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]map[string]any{}}
}

func (s *MemoryStore) Get(ctx context.Context, recordKey, fieldULID string) (any, bool, error) {
	record, ok := s.values[recordKey]
	if !ok {
		return nil, false, nil
	}
	value, ok := record[fieldULID]
	return value, ok, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, recordKey, fieldULID string, value any) error {
	record, ok := s.values[recordKey]
	if !ok {
		record = map[string]any{}
		s.values[recordKey] = record
	}
	record[fieldULID] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, recordKey, fieldULID string) error {
	if record, ok := s.values[recordKey]; ok {
		delete(record, fieldULID)
	}
	return nil
}

// Values returns the record's current rows, never nil.
func (s *MemoryStore) Values(recordKey string) map[string]any {
	record, ok := s.values[recordKey]
	if !ok {
		return map[string]any{}
	}
	return record
}
