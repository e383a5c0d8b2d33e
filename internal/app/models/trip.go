package models

import "time"

// DateLayout is the storage format of trip and visit dates.
const DateLayout = "2006-01-02"

// Trip is a dated travel plan. At most one trip is current at a time.
type Trip struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Current     bool      `json:"current"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateTripParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Current     bool   `json:"current"`
}

// UpdateTripParams is a patch: nil fields keep their stored value.
type UpdateTripParams struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Current     *bool   `json:"current,omitempty"`
}

func (p UpdateTripParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.StartDate == nil &&
		p.EndDate == nil && p.Current == nil
}
