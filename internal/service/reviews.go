package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/hbnb/internal/access"
	"github.com/iliyamo/hbnb/internal/errs"
	"github.com/iliyamo/hbnb/internal/model"
	"github.com/iliyamo/hbnb/internal/queue"
	"github.com/iliyamo/hbnb/internal/repository"
	"github.com/iliyamo/hbnb/internal/validation"
)

const (
	msgOwnPlace      = "You cannot review your own place"
	msgAlreadyRated  = "You have already reviewed this place"
	reviewPlaceField = "place_id"
)

func notAllowed(field, msg string) error {
	return errs.NewValidationError([]errs.FieldError{{Field: field, Kind: errs.ViolationNotAllowed, Message: msg}})
}

// CreateReview records actor's review of a place. Owners cannot review
// their own place and each user reviews a place at most once.
func (s *Service) CreateReview(ctx context.Context, actor *access.Identity, in model.ReviewInput) (*model.Review, error) {
	if err := authorize(actor, access.Authenticated, ""); err != nil {
		return nil, err
	}
	if _, err := s.store.Users.Get(ctx, actor.UserID); err != nil {
		return nil, lookup(err, "User")
	}
	place, err := s.store.Places.Get(ctx, in.PlaceID)
	if err != nil {
		return nil, lookup(err, "Place")
	}
	if place.OwnerID == actor.UserID {
		return nil, notAllowed(reviewPlaceField, msgOwnPlace)
	}
	reviewed, err := s.hasReviewed(ctx, actor.UserID, place.ID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, notAllowed(reviewPlaceField, msgAlreadyRated)
	}

	r := &model.Review{
		Base:    model.NewBase(s.now()),
		Text:    strings.TrimSpace(in.Text),
		Rating:  in.Rating,
		UserID:  actor.UserID,
		PlaceID: place.ID,
	}
	if fields := validation.ValidateReview(r); len(fields) > 0 {
		return nil, errs.NewValidationError(fields)
	}
	if err := s.store.Reviews.Add(ctx, r); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, notAllowed(reviewPlaceField, msgAlreadyRated)
		case errors.Is(err, repository.ErrInvalidReference):
			return nil, errs.NewNotFound("Place not found")
		}
		return nil, errs.Wrap(err, "add review")
	}
	s.log.Info().Str("review_id", r.ID).Str("place_id", r.PlaceID).Int("rating", r.Rating).Msg("review created")
	s.emit(ctx, queue.ReviewCreated, r.ID, actor)
	return r, nil
}

func (s *Service) hasReviewed(ctx context.Context, userID, placeID string) (bool, error) {
	reviews, err := s.store.Reviews.GetAll(ctx)
	if err != nil {
		return false, errs.Wrap(err, "list reviews")
	}
	for _, r := range reviews {
		if r.UserID == userID && r.PlaceID == placeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) GetReview(ctx context.Context, id string) (*model.Review, error) {
	r, err := s.store.Reviews.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "Review")
	}
	return r, nil
}

func (s *Service) ListReviews(ctx context.Context) ([]*model.Review, error) {
	return s.filterReviews(ctx, func(*model.Review) bool { return true })
}

// UpdateReview changes the text or rating. Only the author or an admin
// may do so.
func (s *Service) UpdateReview(ctx context.Context, actor *access.Identity, id string, patch model.ReviewPatch) (*model.Review, error) {
	current, err := s.store.Reviews.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "Review")
	}
	if err := authorize(actor, access.OwnerOrAdmin, current.UserID); err != nil {
		return nil, err
	}
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		patch.Text = &text
	}

	candidate := *current
	patch.Apply(&candidate)
	if fields := validation.ValidateReview(&candidate); len(fields) > 0 {
		return nil, errs.NewValidationError(fields)
	}
	updated, err := s.store.Reviews.Update(ctx, id, patch)
	if err != nil {
		return nil, lookup(err, "Review")
	}
	s.emit(ctx, queue.ReviewUpdated, id, actor)
	return updated, nil
}

func (s *Service) DeleteReview(ctx context.Context, actor *access.Identity, id string) error {
	current, err := s.store.Reviews.Get(ctx, id)
	if err != nil {
		return lookup(err, "Review")
	}
	if err := authorize(actor, access.OwnerOrAdmin, current.UserID); err != nil {
		return err
	}
	if err := s.store.Reviews.Delete(ctx, id); err != nil {
		return errs.Wrap(err, "delete review")
	}
	s.log.Info().Str("review_id", id).Str("actor_id", actorID(actor)).Msg("review deleted")
	s.emit(ctx, queue.ReviewDeleted, id, actor)
	return nil
}

func (s *Service) ReviewsForPlace(ctx context.Context, placeID string) ([]*model.Review, error) {
	if _, err := s.store.Places.Get(ctx, placeID); err != nil {
		return nil, lookup(err, "Place")
	}
	return s.filterReviews(ctx, func(r *model.Review) bool { return r.PlaceID == placeID })
}

func (s *Service) ReviewsByUser(ctx context.Context, userID string) ([]*model.Review, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.filterReviews(ctx, func(r *model.Review) bool { return r.UserID == userID })
}

func (s *Service) filterReviews(ctx context.Context, keep func(*model.Review) bool) ([]*model.Review, error) {
	all, err := s.store.Reviews.GetAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list reviews")
	}
	out := make([]*model.Review, 0, len(all))
	for _, r := range all {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
