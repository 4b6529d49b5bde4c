// Package model holds the HBnB entities, their partial-update structs and
// the response views built from them.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every stored record. Attribute exposes the
// queryable columns by name so repositories can filter without
// reflection.
type Entity interface {
	GetID() string
	Attribute(name string) (any, bool)
	Touch(t time.Time)
	Identity() *Base
}

// Base carries the identity and timestamps shared by all entities.
//
// Fields:
//
//	ID        – UUID assigned at creation, never changed afterwards.
//	CreatedAt – creation time (UTC, microsecond precision).
//	UpdatedAt – time of the last successful update.
type Base struct {
	ID        string    `json:"id" db:"id" goqu:"skipupdate"`
	CreatedAt time.Time `json:"created_at" db:"created_at" goqu:"skipupdate"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewBase returns a Base with a fresh id and both timestamps set to now.
func NewBase(now time.Time) Base {
	now = Now(now)
	return Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// Now normalises t to the precision every backend can store.
func Now(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func (b *Base) GetID() string { return b.ID }

func (b *Base) Touch(t time.Time) { b.UpdatedAt = Now(t) }

// Identity returns the embedded Base so stores can guard id and created_at.
func (b *Base) Identity() *Base { return b }

func (b *Base) attribute(name string) (any, bool) {
	switch name {
	case "id":
		return b.ID, true
	case "created_at":
		return b.CreatedAt, true
	case "updated_at":
		return b.UpdatedAt, true
	}
	return nil, false
}
