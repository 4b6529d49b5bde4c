// Package repository defines the storage contract shared by every entity
// and its two backends: an in-memory map and a SQL store. The sentinel
// errors below are returned by both backends so the service layer can
// tell the failure cases apart without caring which store is in use.
package repository

import "errors"

// ErrNotFound is returned by Get, Update and GetByAttribute when no
// record matches.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateID is returned by Add when a record with the same id is
// already stored. Add never overwrites.
var ErrDuplicateID = errors.New("duplicate id")

// ErrDuplicate is returned when a write would break a uniqueness
// constraint (user email, amenity name, one review per user and place).
var ErrDuplicate = errors.New("duplicate record")

// ErrInvalidReference is returned when a foreign key points at a missing
// record. Only the SQL backend enforces references.
var ErrInvalidReference = errors.New("invalid reference")

// ErrUnknownAttribute is returned by GetByAttribute for a name the entity
// does not expose.
var ErrUnknownAttribute = errors.New("unknown attribute")
