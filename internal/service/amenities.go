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

func (s *Service) CreateAmenity(ctx context.Context, actor *access.Identity, in model.AmenityInput) (*model.Amenity, error) {
	if err := authorize(actor, access.AdminOnly, ""); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if _, taken, err := exists(ctx, s.store.Amenities, "name", name); err != nil {
		return nil, err
	} else if taken && name != "" {
		return nil, errs.NewDuplicate("Amenity already exists")
	}

	a := &model.Amenity{Base: model.NewBase(s.now()), Name: name}
	if fields := validation.ValidateAmenity(a); len(fields) > 0 {
		return nil, errs.NewValidationError(fields)
	}
	if err := s.store.Amenities.Add(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.NewDuplicate("Amenity already exists")
		}
		return nil, errs.Wrap(err, "add amenity")
	}
	s.log.Info().Str("amenity_id", a.ID).Msg("amenity created")
	s.emit(ctx, queue.AmenityCreated, a.ID, actor)
	return a, nil
}

func (s *Service) GetAmenity(ctx context.Context, id string) (*model.Amenity, error) {
	a, err := s.store.Amenities.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "Amenity")
	}
	return a, nil
}

func (s *Service) ListAmenities(ctx context.Context) ([]*model.Amenity, error) {
	all, err := s.store.Amenities.GetAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list amenities")
	}
	return all, nil
}

func (s *Service) UpdateAmenity(ctx context.Context, actor *access.Identity, id string, patch model.AmenityPatch) (*model.Amenity, error) {
	if err := authorize(actor, access.AdminOnly, ""); err != nil {
		return nil, err
	}
	current, err := s.store.Amenities.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "Amenity")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
		if !strings.EqualFold(name, current.Name) {
			other, taken, err := exists(ctx, s.store.Amenities, "name", name)
			if err != nil {
				return nil, err
			}
			if taken && other.ID != id {
				return nil, errs.NewDuplicate("Amenity already exists")
			}
		}
	}

	candidate := *current
	patch.Apply(&candidate)
	if fields := validation.ValidateAmenity(&candidate); len(fields) > 0 {
		return nil, errs.NewValidationError(fields)
	}

	updated, err := s.store.Amenities.Update(ctx, id, patch)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, errs.NewDuplicate("Amenity already exists")
	case err != nil:
		return nil, lookup(err, "Amenity")
	}
	s.emit(ctx, queue.AmenityUpdated, id, actor)
	return updated, nil
}

// PlacesWithAmenity lists the places offering the amenity.
func (s *Service) PlacesWithAmenity(ctx context.Context, amenityID string) ([]model.PlaceSummary, error) {
	if _, err := s.GetAmenity(ctx, amenityID); err != nil {
		return nil, err
	}
	return s.placeSummaries(ctx, func(p *model.Place) bool { return p.HasAmenity(amenityID) })
}
