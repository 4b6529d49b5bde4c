package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hbnb/internal/errs"
	"github.com/iliyamo/hbnb/internal/model"
)

func validPlace() *model.Place {
	return &model.Place{
		Title:       "Cozy flat",
		Description: "Two rooms near the station",
		Price:       80,
		Latitude:    48.85,
		Longitude:   2.35,
		OwnerID:     "owner-1",
	}
}

func TestValidateUser(t *testing.T) {
	ok := &model.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	assert.Empty(t, ValidateUser(ok))

	bad := &model.User{FirstName: "   ", LastName: strings.Repeat("x", 51), Email: "not-an-email"}
	got := ValidateUser(bad)
	require.Len(t, got, 3)
	assert.Equal(t, errs.FieldError{Field: "first_name", Kind: errs.ViolationRequired, Message: "First name is required"}, got[0])
	assert.Equal(t, "last_name", got[1].Field)
	assert.Equal(t, errs.ViolationTooLong, got[1].Kind)
	assert.Equal(t, "email", got[2].Field)
	assert.Equal(t, errs.ViolationInvalidFormat, got[2].Kind)
}

func TestValidateUserEmailLength(t *testing.T) {
	u := &model.User{FirstName: "A", LastName: "B", Email: strings.Repeat("a", 115) + "@x.com"}
	got := ValidateUser(u)
	require.Len(t, got, 1)
	assert.Equal(t, errs.ViolationTooLong, got[0].Kind)
}

func TestValidatePlacePrice(t *testing.T) {
	for _, price := range []float64{0, -5} {
		p := validPlace()
		p.Price = price
		got := ValidatePlace(p)
		require.Len(t, got, 1, "price %v", price)
		assert.Equal(t, "price", got[0].Field)
		assert.Equal(t, errs.ViolationOutOfRange, got[0].Kind)
		assert.Equal(t, "Price must be a positive number", got[0].Message)
	}

	p := validPlace()
	p.Price = 0.01
	assert.Empty(t, ValidatePlace(p))
}

func TestValidatePlaceCoordinates(t *testing.T) {
	cases := []struct {
		lat, lon float64
		field    string
	}{
		{lat: 90.5, lon: 0, field: "latitude"},
		{lat: -91, lon: 0, field: "latitude"},
		{lat: 0, lon: 180.1, field: "longitude"},
		{lat: 0, lon: -181, field: "longitude"},
	}
	for _, tc := range cases {
		p := validPlace()
		p.Latitude, p.Longitude = tc.lat, tc.lon
		got := ValidatePlace(p)
		require.Len(t, got, 1)
		assert.Equal(t, tc.field, got[0].Field)
	}

	edge := validPlace()
	edge.Latitude, edge.Longitude = -90, 180
	assert.Empty(t, ValidatePlace(edge))
}

func TestValidatePlaceRequiresOwnerAndText(t *testing.T) {
	p := validPlace()
	p.OwnerID = ""
	p.Title = strings.Repeat("t", 101)
	p.Description = " "

	fields := map[string]string{}
	for _, fe := range ValidatePlace(p) {
		fields[fe.Field] = fe.Kind
	}
	assert.Equal(t, map[string]string{
		"title":       errs.ViolationTooLong,
		"description": errs.ViolationRequired,
		"owner_id":    errs.ViolationRequired,
	}, fields)
}

func TestValidateReviewRating(t *testing.T) {
	for rating := 0; rating <= 6; rating++ {
		r := &model.Review{Text: "Great", Rating: rating, UserID: "u", PlaceID: "p"}
		got := ValidateReview(r)
		if rating >= 1 && rating <= 5 {
			assert.Empty(t, got, "rating %d", rating)
			continue
		}
		require.Len(t, got, 1, "rating %d", rating)
		assert.Equal(t, "rating", got[0].Field)
	}
}

func TestValidateAmenityAndPassword(t *testing.T) {
	assert.Empty(t, ValidateAmenity(&model.Amenity{Name: "WiFi"}))
	assert.Len(t, ValidateAmenity(&model.Amenity{Name: "  "}), 1)

	assert.Empty(t, ValidatePassword("secret"))
	got := ValidatePassword("")
	require.Len(t, got, 1)
	assert.Equal(t, "password", got[0].Field)

	assert.Empty(t, ValidatePassword(strings.Repeat("p", MaxPasswordBytes)))
	got = ValidatePassword(strings.Repeat("p", MaxPasswordBytes+8))
	require.Len(t, got, 1)
	assert.Equal(t, errs.ViolationTooLong, got[0].Kind)

	// multi-byte runes count by byte
	got = ValidatePassword(strings.Repeat("é", 40))
	require.Len(t, got, 1)
	assert.Equal(t, errs.ViolationTooLong, got[0].Kind)
}

func TestValidatePlaceInputRequiresCoordinates(t *testing.T) {
	zero := 0.0
	assert.Empty(t, ValidatePlaceInput(model.PlaceInput{Latitude: &zero, Longitude: &zero}))

	got := ValidatePlaceInput(model.PlaceInput{Latitude: &zero})
	require.Len(t, got, 1)
	assert.Equal(t, errs.FieldError{Field: "longitude", Kind: errs.ViolationRequired, Message: "Longitude is required"}, got[0])

	assert.Len(t, ValidatePlaceInput(model.PlaceInput{}), 2)
}
