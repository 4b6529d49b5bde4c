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

// CreatePlace lists a new place owned by actor. The owner_id of the
// payload is ignored. Every amenity id must exist.
func (s *Service) CreatePlace(ctx context.Context, actor *access.Identity, in model.PlaceInput) (*model.PlaceDetail, error) {
	if err := authorize(actor, access.Authenticated, ""); err != nil {
		return nil, err
	}
	if _, err := s.store.Users.Get(ctx, actor.UserID); err != nil {
		return nil, lookup(err, "Owner")
	}
	amenities, err := s.checkAmenities(ctx, in.Amenities)
	if err != nil {
		return nil, err
	}

	p := &model.Place{
		Base:        model.NewBase(s.now()),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       in.Price,
		OwnerID:     actor.UserID,
		AmenityIDs:  amenities,
	}
	if in.Latitude != nil {
		p.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		p.Longitude = *in.Longitude
	}
	if fields := append(validation.ValidatePlaceInput(in), validation.ValidatePlace(p)...); len(fields) > 0 {
		return nil, errs.NewValidationError(fields)
	}
	if err := s.store.Places.Add(ctx, p); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, errs.NewNotFound("Owner or amenity not found")
		}
		return nil, errs.Wrap(err, "add place")
	}
	s.log.Info().Str("place_id", p.ID).Str("owner_id", p.OwnerID).Int("amenities", len(p.AmenityIDs)).Msg("place created")
	s.emit(ctx, queue.PlaceCreated, p.ID, actor)
	return s.detail(ctx, p)
}

// checkAmenities drops duplicate ids, keeping the first occurrence, and
// fails with NotFound on the first id that does not exist.
func (s *Service) checkAmenities(ctx context.Context, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, err := s.store.Amenities.Get(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, errs.NewNotFound("Amenity " + id + " not found")
			}
			return nil, errs.Wrap(err, "load amenity")
		}
		out = append(out, id)
	}
	return out, nil
}

func (s *Service) GetPlace(ctx context.Context, id string) (*model.PlaceDetail, error) {
	p, err := s.store.Places.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "Place")
	}
	return s.detail(ctx, p)
}

func (s *Service) ListPlaces(ctx context.Context) ([]model.PlaceSummary, error) {
	return s.placeSummaries(ctx, func(*model.Place) bool { return true })
}

// UpdatePlace applies patch for the owner or an admin. Only admins may
// hand the place to another user.
func (s *Service) UpdatePlace(ctx context.Context, actor *access.Identity, id string, patch model.PlacePatch) (*model.PlaceDetail, error) {
	current, err := s.store.Places.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "Place")
	}
	if err := authorize(actor, access.OwnerOrAdmin, current.OwnerID); err != nil {
		return nil, err
	}

	if patch.OwnerID != nil && *patch.OwnerID != current.OwnerID {
		if !actor.IsAdmin {
			return nil, errs.NewAuthorization("Only admins can change the owner of a place")
		}
		if _, err := s.store.Users.Get(ctx, *patch.OwnerID); err != nil {
			return nil, lookup(err, "Owner")
		}
	}
	if patch.Amenities != nil {
		ids, err := s.checkAmenities(ctx, *patch.Amenities)
		if err != nil {
			return nil, err
		}
		patch.Amenities = &ids
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}

	candidate := *current
	patch.Apply(&candidate)
	if fields := validation.ValidatePlace(&candidate); len(fields) > 0 {
		return nil, errs.NewValidationError(fields)
	}

	updated, err := s.store.Places.Update(ctx, id, patch)
	switch {
	case errors.Is(err, repository.ErrInvalidReference):
		return nil, errs.NewNotFound("Owner or amenity not found")
	case err != nil:
		return nil, lookup(err, "Place")
	}
	s.log.Info().Str("place_id", id).Str("actor_id", actorID(actor)).Msg("place updated")
	s.emit(ctx, queue.PlaceUpdated, id, actor)
	return s.detail(ctx, updated)
}

// PlacesOwnedBy lists the places of one user.
func (s *Service) PlacesOwnedBy(ctx context.Context, userID string) ([]model.PlaceSummary, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.placeSummaries(ctx, func(p *model.Place) bool { return p.OwnerID == userID })
}

// placeSummaries joins the matching places with their owners and
// amenities, loading each collection once.
func (s *Service) placeSummaries(ctx context.Context, keep func(*model.Place) bool) ([]model.PlaceSummary, error) {
	places, err := s.store.Places.GetAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list places")
	}
	owners, amenities, err := s.indexes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.PlaceSummary, 0, len(places))
	for _, p := range places {
		if !keep(p) {
			continue
		}
		owner := ownerView(p.OwnerID, owners[p.OwnerID])
		owner.Email = ""
		out = append(out, model.PlaceSummary{
			ID:        p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Owner:     owner,
			Amenities: amenityViews(p.AmenityIDs, amenities),
		})
	}
	return out, nil
}

func (s *Service) indexes(ctx context.Context) (map[string]*model.User, map[string]*model.Amenity, error) {
	users, err := s.store.Users.GetAll(ctx)
	if err != nil {
		return nil, nil, errs.Wrap(err, "list users")
	}
	all, err := s.store.Amenities.GetAll(ctx)
	if err != nil {
		return nil, nil, errs.Wrap(err, "list amenities")
	}
	owners := make(map[string]*model.User, len(users))
	for _, u := range users {
		owners[u.ID] = u
	}
	amenities := make(map[string]*model.Amenity, len(all))
	for _, a := range all {
		amenities[a.ID] = a
	}
	return owners, amenities, nil
}

func (s *Service) detail(ctx context.Context, p *model.Place) (*model.PlaceDetail, error) {
	var owner *model.User
	u, err := s.store.Users.Get(ctx, p.OwnerID)
	switch {
	case err == nil:
		owner = u
	case !errors.Is(err, repository.ErrNotFound):
		return nil, errs.Wrap(err, "load owner")
	}

	amenities := make(map[string]*model.Amenity, len(p.AmenityIDs))
	for _, id := range p.AmenityIDs {
		a, err := s.store.Amenities.Get(ctx, id)
		switch {
		case err == nil:
			amenities[id] = a
		case !errors.Is(err, repository.ErrNotFound):
			return nil, errs.Wrap(err, "load amenity")
		}
	}

	return &model.PlaceDetail{
		Base:        p.Base,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Owner:       ownerView(p.OwnerID, owner),
		Amenities:   amenityViews(p.AmenityIDs, amenities),
	}, nil
}

func ownerView(id string, u *model.User) model.OwnerView {
	if u == nil {
		return model.OwnerView{ID: id}
	}
	return model.OwnerView{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

// amenityViews keeps the attachment order and skips ids that no longer
// resolve.
func amenityViews(ids []string, known map[string]*model.Amenity) []model.AmenityView {
	out := make([]model.AmenityView, 0, len(ids))
	for _, id := range ids {
		if a, ok := known[id]; ok {
			out = append(out, model.AmenityView{ID: a.ID, Name: a.Name})
		}
	}
	return out
}
