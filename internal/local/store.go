package local

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eleven-am/taskdeck/internal/logger"
	"github.com/eleven-am/taskdeck/internal/model"
)

// Storage keys, one per entity type.
const (
	KeyProjects        = "projects"
	KeyAccounts        = "accounts"
	KeyTasks           = "tasks"
	KeyEmailTemplates  = "emailTemplates"
	KeyCodeComponents  = "codeComponents"
	KeyReportTemplates = "reportTemplates"
	KeySettings        = "settings"
)

type Store struct {
	kv    KV
	now   func() time.Time
	newID func() string
	log   logger.Logger

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
		log:   logger.Local(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Close() error {
	return s.kv.Close()
}

// load reads a collection; a key never written is an empty collection.
func load[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if !ok || len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func save[T any](ctx context.Context, s *Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, raw)
}

func list[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load[T](ctx, s, key)
}

// create stamps rec with a fresh id and timestamps and prepends it.
func create[T any](ctx context.Context, s *Store, key string, rec T, stamp func(*T, string, time.Time)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	items, err := load[T](ctx, s, key)
	if err != nil {
		return zero, err
	}
	stamp(&rec, s.newID(), s.now())
	items = append([]T{rec}, items...)
	if err := save(ctx, s, key, items); err != nil {
		return zero, err
	}
	s.log.Debug("created", "key", key, "count", len(items))
	return rec, nil
}

func update[T any](ctx context.Context, s *Store, key, id string, idOf func(*T) string, apply func(*T, time.Time)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	items, err := load[T](ctx, s, key)
	if err != nil {
		return zero, err
	}
	for i := range items {
		if idOf(&items[i]) != id {
			continue
		}
		apply(&items[i], s.now())
		if err := save(ctx, s, key, items); err != nil {
			return zero, err
		}
		return items[i], nil
	}
	return zero, fmt.Errorf("%s %s: %w", key, id, model.ErrNotFound)
}

// remove deletes the record with id after guard approves it. Callers hold
// s.mu.
func remove[T any](ctx context.Context, s *Store, key, id string, idOf func(*T) string, guard func(*T) error) error {
	items, err := load[T](ctx, s, key)
	if err != nil {
		return err
	}
	for i := range items {
		if idOf(&items[i]) != id {
			continue
		}
		if guard != nil {
			if err := guard(&items[i]); err != nil {
				return err
			}
		}
		items = append(items[:i], items[i+1:]...)
		return save(ctx, s, key, items)
	}
	return fmt.Errorf("%s %s: %w", key, id, model.ErrNotFound)
}

// put replaces the record with the same id, or prepends it.
func put[T any](ctx context.Context, s *Store, key string, rec T, idOf func(*T) string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := load[T](ctx, s, key)
	if err != nil {
		return err
	}
	id := idOf(&rec)
	for i := range items {
		if idOf(&items[i]) == id {
			items[i] = rec
			return save(ctx, s, key, items)
		}
	}
	return save(ctx, s, key, append([]T{rec}, items...))
}

// rewrite replaces a collection with fn(collection). Callers hold s.mu.
func rewrite[T any](ctx context.Context, s *Store, key string, fn func([]T) []T) error {
	items, err := load[T](ctx, s, key)
	if err != nil {
		return err
	}
	return save(ctx, s, key, fn(items))
}
