package model

// Review is a rating left by a user on a place. A user reviews a given
// place at most once and never a place they own.
type Review struct {
	Base
	Text    string `json:"text" db:"text" validate:"notblank"`
	Rating  int    `json:"rating" db:"rating" validate:"gte=1,lte=5"`
	UserID  string `json:"user_id" db:"user_id" validate:"required"`
	PlaceID string `json:"place_id" db:"place_id" validate:"required"`
}

func (r *Review) Attribute(name string) (any, bool) {
	switch name {
	case "text":
		return r.Text, true
	case "rating":
		return r.Rating, true
	case "user_id":
		return r.UserID, true
	case "place_id":
		return r.PlaceID, true
	}
	return r.Base.attribute(name)
}

// ReviewInput is the create payload. UserID is overridden by the
// authenticated user.
type ReviewInput struct {
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	UserID  string `json:"user_id"`
	PlaceID string `json:"place_id"`
}

type ReviewPatch struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

func (p ReviewPatch) Apply(r *Review) {
	if p.Text != nil {
		r.Text = *p.Text
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
}
