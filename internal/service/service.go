// Package service implements the HBnB use cases on top of the repository
// contract. It owns the cross-entity rules: uniqueness, existence of
// referenced records, ownership and the review restrictions.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/hbnb/internal/access"
	"github.com/iliyamo/hbnb/internal/errs"
	"github.com/iliyamo/hbnb/internal/queue"
	"github.com/iliyamo/hbnb/internal/repository"
)

// Hasher hashes and verifies passwords. utils.Bcrypt implements it.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Publisher receives an event after every successful write.
type Publisher interface {
	Publish(ctx context.Context, ev queue.Event) error
}

// Service is the facade used by the HTTP handlers. It is safe for
// concurrent use as long as the injected store is.
type Service struct {
	store  repository.Store
	hasher Hasher
	events Publisher
	log    zerolog.Logger
	now    func() time.Time
}

// New wires a Service. A nil publisher disables events.
func New(store repository.Store, hasher Hasher, events Publisher, log zerolog.Logger) *Service {
	if events == nil {
		events = queue.Nop{}
	}
	return &Service{
		store:  store,
		hasher: hasher,
		events: events,
		log:    log.With().Str("component", "service").Logger(),
		now:    time.Now,
	}
}

// authorize converts an access decision into the matching error kind.
func authorize(actor *access.Identity, p access.Policy, ownerID string) error {
	switch access.Decide(actor, p, ownerID) {
	case access.Allow:
		return nil
	case access.Unauthenticated:
		return errs.NewAuthentication("Missing or invalid token")
	case access.Forbidden:
		return errs.NewAuthorization("Unauthorized action")
	}
	return errs.NewAuthorization("Unauthorized action")
}

// lookup maps a repository read failure to NotFound or Internal.
func lookup(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NewNotFound(what + " not found")
	}
	return errs.Wrap(err, "load "+what)
}

// exists reports whether GetByAttribute found a record, treating
// ErrNotFound as a normal miss.
func exists[T any](ctx context.Context, repo repository.Repository[T], attr string, value any) (*T, bool, error) {
	found, err := repo.GetByAttribute(ctx, attr, value)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(err, "lookup by "+attr)
	}
	return found, true, nil
}

func (s *Service) emit(ctx context.Context, t queue.EventType, entityID string, actor *access.Identity) {
	if err := s.events.Publish(ctx, queue.NewEvent(t, entityID, actorID(actor))); err != nil {
		s.log.Warn().Err(err).Str("event", string(t)).Str("entity_id", entityID).Msg("event not published")
	}
}

func actorID(actor *access.Identity) string {
	if actor == nil {
		return ""
	}
	return actor.UserID
}
