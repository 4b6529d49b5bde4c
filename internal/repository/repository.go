package repository

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/iliyamo/hbnb/internal/model"
)

// Patch applies the provided fields of a partial update to an entity.
// Implementations must leave the id and creation time alone.
type Patch[T any] interface {
	Apply(*T)
}

// Repository is the storage contract for one entity type, keyed by id.
// Returned entities are copies; mutating them does not change the store.
type Repository[T any] interface {
	// Add stores a new entity whose id is already assigned.
	Add(ctx context.Context, entity *T) error
	Get(ctx context.Context, id string) (*T, error)
	GetAll(ctx context.Context) ([]*T, error)
	// Update merges patch into the stored entity, touches updated_at and
	// returns the result.
	Update(ctx context.Context, id string, patch Patch[T]) (*T, error)
	// Delete removes the entity; a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// GetByAttribute returns the first entity whose attribute equals value.
	// Strings compare ignoring case.
	GetByAttribute(ctx context.Context, name string, value any) (*T, error)
}

// entityPtr lets generic backends call model.Entity methods on *T.
type entityPtr[T any] interface {
	*T
	model.Entity
}

// Store bundles one repository per entity. It is built once at startup and
// handed to the service layer.
type Store struct {
	Users     Repository[model.User]
	Amenities Repository[model.Amenity]
	Places    Repository[model.Place]
	Reviews   Repository[model.Review]
}

// NewMemoryStore returns a Store backed by process memory, with the same
// uniqueness rules the SQL schema enforces.
func NewMemoryStore() Store {
	return Store{
		Users:     NewMemory[model.User](Unique("email")),
		Amenities: NewMemory[model.Amenity](Unique("name")),
		Places:    NewMemory[model.Place](),
		Reviews:   NewMemory[model.Review](Unique("user_id", "place_id")),
	}
}

// sameValue compares attribute values the way GetByAttribute promises:
// strings ignoring case, everything else by equality.
func sameValue(a, b any) bool {
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.EqualFold(as, bs)
	}
	if aok != bok || a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return a == b
}
