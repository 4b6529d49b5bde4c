package model

// Amenity is a feature a place can offer (WiFi, pool, parking). Names are
// unique ignoring case.
type Amenity struct {
	Base
	Name string `json:"name" db:"name" validate:"notblank,max=50"`
}

func (a *Amenity) Attribute(name string) (any, bool) {
	if name == "name" {
		return a.Name, true
	}
	return a.Base.attribute(name)
}

type AmenityInput struct {
	Name string `json:"name"`
}

type AmenityPatch struct {
	Name *string `json:"name"`
}

func (p AmenityPatch) Apply(a *Amenity) {
	if p.Name != nil {
		a.Name = *p.Name
	}
}

// AmenityView is the nested amenity shown inside place responses.
type AmenityView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
