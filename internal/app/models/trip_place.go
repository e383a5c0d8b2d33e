package models

// TripPlace is one itinerary entry: a place inside a specific trip.
// Order is caller-assigned and need not be unique or contiguous.
type TripPlace struct {
	ID        int64   `json:"id"`
	TripID    int64   `json:"trip_id"`
	PlaceID   int64   `json:"place_id"`
	Order     int     `json:"order"`
	Visited   bool    `json:"visited"`
	VisitDate *string `json:"visit_date"`
	Notes     string  `json:"notes"`
}

// CreateTripPlaceParams adds a place to a trip.
//
// VisitDate is stored as given. Visited=true alone leaves it NULL; only
// UpdateTripPlace stamps today's date.
type CreateTripPlaceParams struct {
	TripID    int64   `json:"trip_id"`
	PlaceID   int64   `json:"place_id"`
	Order     int     `json:"order"`
	Visited   bool    `json:"visited"`
	VisitDate *string `json:"visit_date,omitempty"`
	Notes     string  `json:"notes"`
}

// UpdateTripPlaceParams is a patch over an itinerary entry.
//
// Visited=true without VisitDate stamps today's date when the entry was not
// visited before. Visited=false keeps the stored date; set ClearVisitDate to
// null it.
type UpdateTripPlaceParams struct {
	Order          *int    `json:"order,omitempty"`
	Visited        *bool   `json:"visited,omitempty"`
	VisitDate      *string `json:"visit_date,omitempty"`
	ClearVisitDate bool    `json:"clear_visit_date,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func (p UpdateTripPlaceParams) IsEmpty() bool {
	return p.Order == nil && p.Visited == nil && p.VisitDate == nil &&
		!p.ClearVisitDate && p.Notes == nil
}

// TripPlaceWithDetails is an itinerary entry with its place, photos and
// recordings. Place is nil when the referenced place no longer exists.
type TripPlaceWithDetails struct {
	TripPlace
	Place      *Place            `json:"place,omitempty"`
	Photos     []*TripPlacePhoto `json:"photos"`
	Recordings []*Recording      `json:"recordings"`
}

// NextPlace answers "where to go next" for the current trip.
type NextPlace struct {
	Trip      *Trip      `json:"trip"`
	TripPlace *TripPlace `json:"trip_place"`
	Place     *Place     `json:"place"`
}
