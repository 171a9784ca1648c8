package models

import "time"

type Trip struct {
	ID          ID             `json:"id"`
	UserID      ID             `json:"user_id"`
	Name        string         `json:"name"`
	Destination string         `json:"destination"`
	Description string         `json:"description,omitempty"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	Activities  []TripActivity `json:"activities"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
}

type TripActivity struct {
	BusinessID    ID     `json:"business_id"`
	BusinessName  string `json:"business_name"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// TripDraft is a trip planner form saved before it is submitted.
type TripDraft struct {
	ID         string             `json:"id" bson:"_id"`
	OwnerID    string             `json:"owner_id" bson:"owner_id"`
	Trip       TripForm           `json:"trip" bson:"trip"`
	Activities []TripActivityForm `json:"activities" bson:"activities"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
