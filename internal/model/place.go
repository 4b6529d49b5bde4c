package model

import "slices"

// Place is a rental listing owned by a user. AmenityIDs is kept in the
// order amenities were attached; the SQL backend stores it in the
// place_amenity junction table.
//
// Fields:
//
//	Title       – listing title, at most 100 characters.
//	Description – free text, required.
//	Price       – nightly price, strictly positive.
//	Latitude    – degrees in [-90, 90].
//	Longitude   – degrees in [-180, 180].
//	OwnerID     – id of the owning user.
//	AmenityIDs  – ids of attached amenities.
type Place struct {
	Base
	Title       string   `json:"title" db:"title" validate:"notblank,max=100"`
	Description string   `json:"description" db:"description" validate:"notblank"`
	Price       float64  `json:"price" db:"price" validate:"gt=0"`
	Latitude    float64  `json:"latitude" db:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64  `json:"longitude" db:"longitude" validate:"gte=-180,lte=180"`
	OwnerID     string   `json:"owner_id" db:"owner_id" validate:"required"`
	AmenityIDs  []string `json:"amenities" db:"-"`
}

func (p *Place) Attribute(name string) (any, bool) {
	switch name {
	case "title":
		return p.Title, true
	case "description":
		return p.Description, true
	case "price":
		return p.Price, true
	case "latitude":
		return p.Latitude, true
	case "longitude":
		return p.Longitude, true
	case "owner_id":
		return p.OwnerID, true
	}
	return p.Base.attribute(name)
}

// Detach gives the place its own copy of AmenityIDs.
func (p *Place) Detach() { p.AmenityIDs = slices.Clone(p.AmenityIDs) }

// HasAmenity reports whether id is attached to the place.
func (p *Place) HasAmenity(id string) bool { return slices.Contains(p.AmenityIDs, id) }

// PlaceInput is the create payload. OwnerID is accepted for compatibility
// but replaced by the authenticated user. The coordinates are pointers
// because 0 is a valid value and a missing one is not.
type PlaceInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	OwnerID     string   `json:"owner_id"`
	Amenities   []string `json:"amenities"`
}

type PlacePatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	OwnerID     *string   `json:"owner_id"`
	Amenities   *[]string `json:"amenities"`
}

func (p PlacePatch) Apply(pl *Place) {
	if p.Title != nil {
		pl.Title = *p.Title
	}
	if p.Description != nil {
		pl.Description = *p.Description
	}
	if p.Price != nil {
		pl.Price = *p.Price
	}
	if p.Latitude != nil {
		pl.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		pl.Longitude = *p.Longitude
	}
	if p.OwnerID != nil {
		pl.OwnerID = *p.OwnerID
	}
	if p.Amenities != nil {
		pl.AmenityIDs = slices.Clone(*p.Amenities)
	}
}

// PlaceSummary is one element of the place list.
type PlaceSummary struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Price     float64       `json:"price"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Owner     OwnerView     `json:"owner"`
	Amenities []AmenityView `json:"amenities"`
}

// PlaceDetail is the single-place response with its owner and amenities
// inlined.
type PlaceDetail struct {
	Base
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	Owner       OwnerView     `json:"owner"`
	Amenities   []AmenityView `json:"amenities"`
}
