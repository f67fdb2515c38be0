// Package store persists per-user collections as whole JSON documents under
// keys of the form user_<ownerId>_<kind>.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// Kind selects which collection a store operation targets.
type Kind string

const (
	Categories Kind = "categorias"
	Products   Kind = "produtos"
)

var ErrKeyNotFound = errors.New("key not found")

// Backend is a raw key-value medium. Get returns ErrKeyNotFound for absent keys.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Locker serializes read-modify-write cycles on a single key.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func Key(ownerID string, kind Kind) string {
	return "user_" + ownerID + "_" + string(kind)
}

type Store struct {
	backend Backend
	locker  Locker
	logger  logger.ZapLogger
}

func New(backend Backend, locker Locker, log logger.ZapLogger) *Store {
	if locker == nil {
		locker = NewKeyedMutex()
	}
	return &Store{
		backend: backend,
		locker:  locker,
		logger:  log,
	}
}

// Load decodes the collection into dst, a pointer to a slice. An absent key
// leaves dst as an empty slice. Malformed data is a StorageReadError.
func (s *Store) Load(ctx context.Context, ownerID string, kind Kind, dst any) error {
	key := Key(ownerID, kind)

	raw, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		raw = nil
	} else if err != nil {
		return &apperror.StorageReadError{Key: key, Err: err}
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("[]")
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Error("malformed collection in storage", zap.String("key", key), zap.Error(err))
		return &apperror.StorageReadError{Key: key, Err: err}
	}
	return nil
}

// Save overwrites the collection with records.
func (s *Store) Save(ctx context.Context, ownerID string, kind Kind, records any) error {
	key := Key(ownerID, kind)

	data, err := json.Marshal(records)
	if err != nil {
		return &apperror.StorageWriteError{Key: key, Err: err}
	}
	if err := s.backend.Set(ctx, key, data); err != nil {
		return &apperror.StorageWriteError{Key: key, Err: err}
	}
	return nil
}

func (s *Store) lock(ctx context.Context, ownerID string, kind Kind) (func(), error) {
	unlock, err := s.locker.Lock(ctx, Key(ownerID, kind))
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", Key(ownerID, kind), err)
	}
	return unlock, nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// LoadAll reads the full collection in insertion order.
func LoadAll[T any](ctx context.Context, s *Store, ownerID string, kind Kind) ([]T, error) {
	records := []T{}
	if err := s.Load(ctx, ownerID, kind, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func SaveAll[T any](ctx context.Context, s *Store, ownerID string, kind Kind, records []T) error {
	if records == nil {
		records = []T{}
	}
	return s.Save(ctx, ownerID, kind, records)
}

// ErrUnchanged can be returned by a Modify callback to skip the write.
var ErrUnchanged = errors.New("collection unchanged")

// Modify runs lock, load, fn, save, unlock on one collection and returns the
// collection as persisted. If fn fails nothing is written.
func Modify[T any](ctx context.Context, s *Store, ownerID string, kind Kind, fn func([]T) ([]T, error)) ([]T, error) {
	unlock, err := s.lock(ctx, ownerID, kind)
	if err != nil {
		return nil, err
	}
	defer unlock()

	records, err := LoadAll[T](ctx, s, ownerID, kind)
	if err != nil {
		return nil, err
	}

	updated, err := fn(records)
	if errors.Is(err, ErrUnchanged) {
		return records, nil
	}
	if err != nil {
		return nil, err
	}

	if err := SaveAll(ctx, s, ownerID, kind, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
