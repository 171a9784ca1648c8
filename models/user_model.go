package models

import "time"

type User struct {
	ID         ID         `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name,omitempty"`
	Name       string     `json:"name,omitempty"`
	Role       string     `json:"role,omitempty"`
	IsBusiness bool       `json:"is_business"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`

	// traveler profile
	Country     string   `json:"country,omitempty"`
	BirthDate   string   `json:"birth_date,omitempty"`
	Language    string   `json:"language,omitempty"`
	Preferences []string `json:"preferences,omitempty"`

	// business profile
	BusinessType string `json:"business_type,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Hours        string `json:"hours,omitempty"`
	Description  string `json:"description,omitempty"`
	PriceRange   string `json:"price_range,omitempty"`
	TaxNumber    string `json:"tax_number,omitempty"`
}

const (
	RoleClient   = "client"
	RoleBusiness = "business"
)

// IsBusinessAccount reports whether the user registered as a business.
// Older accounts carry only the flag, newer ones only the role.
func (u User) IsBusinessAccount() bool {
	return u.IsBusiness || u.Role == RoleBusiness
}

func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Name
}

// AuthResponse is what the backend returns from login and signup.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
