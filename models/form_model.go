package models

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupForm covers both the traveler and the business signup screens.
type SignupForm struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password,omitempty" validate:"omitempty,eqfield=Password"`
	IsBusiness      bool   `json:"is_business"`

	Country     string   `json:"country,omitempty"`
	BirthDate   string   `json:"birth_date,omitempty"`
	DateOfBirth string   `json:"date_of_birth,omitempty"`
	Language    string   `json:"language,omitempty"`
	Preferences []string `json:"preferences,omitempty"`

	BusinessType string `json:"business_type,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Hours        string `json:"hours,omitempty"`
	Description  string `json:"description,omitempty"`
	PriceRange   string `json:"price_range,omitempty"`
	TaxNumber    string `json:"tax_number,omitempty"`
}

func (f SignupForm) birthDate() string {
	if f.BirthDate != "" {
		return f.BirthDate
	}
	return f.DateOfBirth
}

// Check applies the rules that depend on the account type.
func (f SignupForm) Check() map[string]string {
	errs := map[string]string{}
	if f.IsBusiness {
		if strings.TrimSpace(f.BusinessType) == "" {
			errs["business_type"] = "required"
		}
		return errs
	}
	if strings.TrimSpace(f.Country) == "" {
		errs["country"] = "required"
	}
	switch bd := f.birthDate(); {
	case bd == "":
		errs["birth_date"] = "required"
	case !isDate(bd):
		errs["birth_date"] = "datetime"
	}
	return errs
}

// BackendPayload is the body forwarded to the backend signup route.
func (f SignupForm) BackendPayload() map[string]any {
	role := RoleClient
	if f.IsBusiness {
		role = RoleBusiness
	}
	body := map[string]any{
		"name":        f.Name,
		"full_name":   f.Name,
		"email":       f.Email,
		"password":    f.Password,
		"is_business": f.IsBusiness,
		"role":        role,
	}
	if f.IsBusiness {
		putIfSet(body, "business_type", f.BusinessType)
		putIfSet(body, "phone", f.Phone)
		putIfSet(body, "address", f.Address)
		putIfSet(body, "hours", f.Hours)
		putIfSet(body, "description", f.Description)
		putIfSet(body, "price_range", f.PriceRange)
		putIfSet(body, "tax_number", f.TaxNumber)
		return body
	}
	putIfSet(body, "country", f.Country)
	putIfSet(body, "birth_date", f.birthDate())
	language := f.Language
	if language == "" {
		language = "es"
	}
	body["language"] = language
	preferences := f.Preferences
	if preferences == nil {
		preferences = []string{}
	}
	body["preferences"] = preferences
	return body
}

// ProfileForm is a partial profile edit. Nil fields are left as they are.
type ProfileForm struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1"`

	Country           *string  `json:"country,omitempty" validate:"omitempty,min=1"`
	BirthDate         *string  `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateOfBirth       *string  `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Language          *string  `json:"language,omitempty"`
	Preferences       []string `json:"preferences,omitempty"`
	TravelPreferences []string `json:"travel_preferences,omitempty"`

	BusinessType *string `json:"business_type,omitempty" validate:"omitempty,min=1"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	Hours        *string `json:"hours,omitempty"`
	PriceRange   *string `json:"price_range,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// HasTravelerFields reports whether the edit touches the traveler profile.
func (f ProfileForm) HasTravelerFields() bool {
	return f.Country != nil || f.BirthDate != nil || f.DateOfBirth != nil || f.Language != nil ||
		f.Preferences != nil || f.TravelPreferences != nil
}

// HasBusinessFields reports whether the edit touches the business profile.
func (f ProfileForm) HasBusinessFields() bool {
	return f.BusinessType != nil || f.Phone != nil || f.Address != nil || f.Hours != nil ||
		f.PriceRange != nil || f.Description != nil
}

// ApplyTo merges the set fields into u. Identity fields (id, email, role)
// are never touched.
func (f ProfileForm) ApplyTo(u *User) {
	if f.Name != nil {
		u.Name = strings.TrimSpace(*f.Name)
		u.FullName = u.Name
	}
	setString(&u.Country, f.Country)
	setString(&u.BirthDate, f.DateOfBirth)
	setString(&u.BirthDate, f.BirthDate)
	setString(&u.Language, f.Language)
	if f.TravelPreferences != nil {
		u.Preferences = append([]string{}, f.TravelPreferences...)
	}
	if f.Preferences != nil {
		u.Preferences = append([]string{}, f.Preferences...)
	}

	setString(&u.BusinessType, f.BusinessType)
	setString(&u.Phone, f.Phone)
	setString(&u.Address, f.Address)
	setString(&u.Hours, f.Hours)
	setString(&u.PriceRange, f.PriceRange)
	setString(&u.Description, f.Description)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

type BusinessForm struct {
	Name        string       `json:"name" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Category    string       `json:"category" validate:"required"`
	Location    LocationForm `json:"location"`
	Phone       string       `json:"phone,omitempty"`
	Website     string       `json:"website,omitempty" validate:"omitempty,url"`
	PriceLevel  int          `json:"price_level" validate:"required,min=1,max=4"`
	Images      StringList   `json:"images" validate:"dive,required"`
	Tags        StringList   `json:"tags"`
}

type LocationForm struct {
	Address   string   `json:"address" validate:"required"`
	City      string   `json:"city" validate:"required"`
	State     string   `json:"state" validate:"required"`
	Country   string   `json:"country" validate:"required"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
}

type ReviewForm struct {
	BusinessID ID         `json:"business_id" validate:"required"`
	Rating     int        `json:"rating" validate:"required,min=1,max=5"`
	Title      string     `json:"title" validate:"required,max=200"`
	Text       string     `json:"text" validate:"required"`
	Images     StringList `json:"images" validate:"dive,required"`
}

type TripForm struct {
	Name        string `json:"name" bson:"name" validate:"required"`
	Destination string `json:"destination" bson:"destination" validate:"required"`
	StartDate   string `json:"start_date" bson:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" bson:"end_date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Check rejects trips that end before they start.
func (f TripForm) Check() map[string]string {
	start, errStart := time.Parse(DateLayout, f.StartDate)
	end, errEnd := time.Parse(DateLayout, f.EndDate)
	if errStart != nil || errEnd != nil {
		return nil
	}
	if end.Before(start) {
		return map[string]string{"end_date": "gtefield"}
	}
	return nil
}

type TripActivityForm struct {
	BusinessID    ID     `json:"business_id" bson:"business_id" validate:"required"`
	BusinessName  string `json:"business_name" bson:"business_name"`
	ScheduledDate string `json:"scheduled_date,omitempty" bson:"scheduled_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string `json:"notes,omitempty" bson:"notes,omitempty"`
}

func isDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func putIfSet(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
