package repository

import (
	"slices"

	"github.com/iliyamo/hbnb/internal/model"
)

var baseColumns = []string{"id", "created_at", "updated_at"}

var userSchema = Schema[model.User]{
	Table:   "users",
	Columns: append(slices.Clone(baseColumns), "first_name", "last_name", "email", "is_admin"),
}

var amenitySchema = Schema[model.Amenity]{
	Table:   "amenities",
	Columns: append(slices.Clone(baseColumns), "name"),
}

var placeSchema = Schema[model.Place]{
	Table:   "places",
	Columns: append(slices.Clone(baseColumns), "title", "description", "price", "latitude", "longitude", "owner_id"),
	Links: &Links[model.Place]{
		Table:        "place_amenity",
		OwnerColumn:  "place_id",
		TargetColumn: "amenity_id",
		Get:          func(p *model.Place) []string { return p.AmenityIDs },
		Set:          func(p *model.Place, ids []string) { p.AmenityIDs = ids },
	},
}

var reviewSchema = Schema[model.Review]{
	Table:   "reviews",
	Columns: append(slices.Clone(baseColumns), "text", "rating", "user_id", "place_id"),
}
