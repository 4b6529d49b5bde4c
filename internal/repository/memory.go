package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/hbnb/internal/model"
)

// MemoryOption configures a Memory repository.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	unique [][]string
}

// Unique declares a uniqueness constraint over one or more attributes.
// String attributes compare ignoring case.
func Unique(attrs ...string) MemoryOption {
	return func(c *memoryConfig) { c.unique = append(c.unique, attrs) }
}

// Memory is a Repository kept in process memory. It preserves insertion
// order and hands out copies so callers cannot mutate stored records.
type Memory[T any, P entityPtr[T]] struct {
	mu     sync.RWMutex
	items  map[string]*T
	order  []string
	unique [][]string
	now    func() time.Time
}

// NewMemory returns an empty in-memory repository.
func NewMemory[T any, P entityPtr[T]](opts ...MemoryOption) *Memory[T, P] {
	cfg := memoryConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	return &Memory[T, P]{
		items:  make(map[string]*T),
		unique: cfg.unique,
		now:    time.Now,
	}
}

func (m *Memory[T, P]) Add(_ context.Context, entity *T) error {
	id := P(entity).GetID()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	if err := m.conflict(entity, ""); err != nil {
		return err
	}
	m.items[id] = clone(entity)
	m.order = append(m.order, id)
	return nil
}

func (m *Memory[T, P]) Get(_ context.Context, id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(e), nil
}

func (m *Memory[T, P]) GetAll(_ context.Context) ([]*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, clone(m.items[id]))
	}
	return out, nil
}

func (m *Memory[T, P]) Update(_ context.Context, id string, patch Patch[T]) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := clone(stored)
	patch.Apply(next)
	restoreIdentity[T](P(next), P(stored))
	P(next).Touch(m.now())
	if err := m.conflict(next, id); err != nil {
		return nil, err
	}
	m.items[id] = next
	return clone(next), nil
}

func (m *Memory[T, P]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return nil
	}
	delete(m.items, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return nil
}

func (m *Memory[T, P]) GetByAttribute(_ context.Context, name string, value any) (*T, error) {
	if _, ok := P(new(T)).Attribute(name); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		e := m.items[id]
		if v, _ := P(e).Attribute(name); sameValue(v, value) {
			return clone(e), nil
		}
	}
	return nil, ErrNotFound
}

// conflict reports the first uniqueness constraint candidate would break
// against records other than skipID. Callers hold the write lock.
func (m *Memory[T, P]) conflict(candidate *T, skipID string) error {
	for _, attrs := range m.unique {
		for _, id := range m.order {
			if id == skipID {
				continue
			}
			if matchAll(P(candidate), P(m.items[id]), attrs) {
				return fmt.Errorf("%w: %s", ErrDuplicate, strings.Join(attrs, ","))
			}
		}
	}
	return nil
}

func matchAll(a, b model.Entity, attrs []string) bool {
	for _, name := range attrs {
		av, _ := a.Attribute(name)
		bv, _ := b.Attribute(name)
		if !sameValue(av, bv) {
			return false
		}
	}
	return true
}

// clone copies e, including slices owned by the entity.
func clone[T any](e *T) *T {
	c := *e
	if d, ok := any(&c).(interface{ Detach() }); ok {
		d.Detach()
	}
	return &c
}

// restoreIdentity puts back the id and creation time in case a patch
// touched them.
func restoreIdentity[T any, P entityPtr[T]](next, stored P) {
	nb, sb := next.Identity(), stored.Identity()
	nb.ID = sb.ID
	nb.CreatedAt = sb.CreatedAt
}
