// Package store persists the application snapshot as one JSON blob under a
// single key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-fieldtrack/internal/domain"
)

// DefaultKey is the key the snapshot has always been stored under.
const DefaultKey = "truthface_db"

// ErrNotFound means nothing has been saved under the key yet.
var ErrNotFound = errors.New("snapshot not found")

// DecodeError reports a stored blob that could not be parsed.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode snapshot %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock
type Store interface {
	// Load returns the last saved snapshot, ErrNotFound, or a *DecodeError.
	Load(ctx context.Context) (domain.Snapshot, error)
	// Save replaces the stored snapshot with snap.
	Save(ctx context.Context, snap domain.Snapshot) error
}

func Encode(snap domain.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

func Decode(key string, payload []byte) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return domain.Snapshot{}, &DecodeError{Key: key, Err: err}
	}
	return snap, nil
}
