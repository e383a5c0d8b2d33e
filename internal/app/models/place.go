package models

import "time"

// Place is a catalogued point of interest, independent of any trip.
// Lat/Lon of 0/0 means the coordinates were never set.
type Place struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VisitLater  bool      `json:"visit_later"`
	Liked       bool      `json:"liked"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePlaceParams holds the fields of a new place.
type CreatePlaceParams struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	VisitLater  bool    `json:"visit_later"`
	Liked       bool    `json:"liked"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// NewCreatePlaceParams returns params carrying the column defaults.
func NewCreatePlaceParams(name string) CreatePlaceParams {
	return CreatePlaceParams{Name: name, VisitLater: true}
}

// UpdatePlaceParams is a patch: nil fields keep their stored value.
type UpdatePlaceParams struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	VisitLater  *bool    `json:"visit_later,omitempty"`
	Liked       *bool    `json:"liked,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p UpdatePlaceParams) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.VisitLater == nil &&
		p.Liked == nil && p.Lat == nil && p.Lon == nil
}

// PlaceWithMedia is a place with its photos and recordings loaded.
type PlaceWithMedia struct {
	Place
	Photos     []*PlacePhoto `json:"photos"`
	Recordings []*Recording  `json:"recordings"`
}
