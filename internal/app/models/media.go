package models

import "time"

type PlacePhoto struct {
	ID      int64  `json:"id"`
	PlaceID int64  `json:"place_id"`
	FileURI string `json:"file_uri"`
}

type TripPlacePhoto struct {
	ID          int64  `json:"id"`
	TripPlaceID int64  `json:"trip_place_id"`
	FileURI     string `json:"file_uri"`
}

// PhotoSource tells which owner table a gallery photo came from.
type PhotoSource string

const (
	PhotoSourcePlace     PhotoSource = "place"
	PhotoSourceTripPlace PhotoSource = "trip_place"
)

// PhotoItem is a gallery entry across both photo tables.
type PhotoItem struct {
	ID      int64       `json:"id" db:"id"`
	FileURI string      `json:"file_uri" db:"file_uri"`
	Source  PhotoSource `json:"source" db:"source"`
	OwnerID int64       `json:"owner_id" db:"owner_id"`
}

// Recording is a voice memo owned by exactly one of a place or a trip stop.
type Recording struct {
	ID              int64     `json:"id"`
	AudioURI        string    `json:"audio_uri"`
	TranscribedText *string   `json:"transcribed_text"`
	CreatedAt       time.Time `json:"created_at"`
	PlaceID         *int64    `json:"place_id"`
	TripPlaceID     *int64    `json:"trip_place_id"`
}

type CreateRecordingParams struct {
	AudioURI        string  `json:"audio_uri"`
	TranscribedText *string `json:"transcribed_text,omitempty"`
	PlaceID         *int64  `json:"place_id,omitempty"`
	TripPlaceID     *int64  `json:"trip_place_id,omitempty"`
}

// HasSingleOwner reports whether exactly one owner id is set.
func (p CreateRecordingParams) HasSingleOwner() bool {
	return (p.PlaceID == nil) != (p.TripPlaceID == nil)
}
