package models

import "time"

type Business struct {
	ID          ID         `json:"id"`
	OwnerID     ID         `json:"owner_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    Location   `json:"location"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"review_count"`
	Views       int        `json:"views"`
	PriceLevel  int        `json:"price_level"`
	Images      []string   `json:"images"`
	Tags        []string   `json:"tags"`
	Phone       string     `json:"phone,omitempty"`
	Website     string     `json:"website,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

type Location struct {
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// OwnerAnalytics is the dashboard summary of an owner's listings.
type OwnerAnalytics struct {
	TotalBusinesses int     `json:"total_businesses"`
	AverageRating   float64 `json:"average_rating"`
	TotalReviews    int     `json:"total_reviews"`
	TotalViews      int     `json:"total_views"`
}

// Categories offered by the explore sidebar.
var Categories = []string{
	"Restaurantes",
	"Actividades",
	"Atracciones",
	"Naturaleza",
	"Cultural",
	"Entretenimiento",
	"Compras",
	"Vida Nocturna",
}
