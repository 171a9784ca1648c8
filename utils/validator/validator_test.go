package validator

import (
	"testing"

	"explorerhub/models"

	"github.com/stretchr/testify/assert"
)

func validBusiness() models.BusinessForm {
	return models.BusinessForm{
		Name:        "Cafe Tortoni",
		Description: "Historic coffee house",
		Category:    "Restaurantes",
		Location: models.LocationForm{
			Address: "Av. de Mayo 825",
			City:    "Buenos Aires",
			State:   "CABA",
			Country: "Argentina",
		},
		PriceLevel: 2,
	}
}

func TestValidate_BusinessForm(t *testing.T) {
	assert.Nil(t, Validate(validBusiness()))

	form := validBusiness()
	form.PriceLevel = 5
	form.Location.City = ""
	form.Website = "not a url"
	lat := 123.0
	form.Location.Latitude = &lat

	errs := Validate(form)
	assert.Equal(t, "max", errs["price_level"])
	assert.Equal(t, "required", errs["location.city"])
	assert.Equal(t, "url", errs["website"])
	assert.Equal(t, "max", errs["location.latitude"])
}

func TestValidate_MissingPriceLevel(t *testing.T) {
	form := validBusiness()
	form.PriceLevel = 0
	assert.Equal(t, map[string]string{"price_level": "required"}, Validate(form))
}

func TestValidate_SignupTraveler(t *testing.T) {
	form := models.SignupForm{
		Name:            "Juan",
		Email:           "viajero@test.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		Country:         "Argentina",
		BirthDate:       "1990-01-01",
	}
	assert.Nil(t, Validate(form))

	form.Password = "short"
	form.ConfirmPassword = "different"
	form.Country = ""
	form.BirthDate = "01/01/1990"

	errs := Validate(form)
	assert.Equal(t, "min", errs["password"])
	assert.Equal(t, "eqfield", errs["confirm_password"])
	assert.Equal(t, "required", errs["country"])
	assert.Equal(t, "datetime", errs["birth_date"])
}

func TestValidate_SignupBusiness(t *testing.T) {
	form := models.SignupForm{
		Name:       "Hotel Paradise",
		Email:      "negocio@test.com",
		Password:   "password123",
		IsBusiness: true,
	}
	assert.Equal(t, map[string]string{"business_type": "required"}, Validate(form))

	form.BusinessType = "hotel"
	assert.Nil(t, Validate(form))
}

func TestValidate_Review(t *testing.T) {
	form := models.ReviewForm{BusinessID: "7", Rating: 0, Title: "Great", Text: "Loved it"}
	assert.Equal(t, map[string]string{"rating": "required"}, Validate(form))

	form.Rating = 6
	assert.Equal(t, map[string]string{"rating": "max"}, Validate(form))

	form.Rating = 5
	assert.Nil(t, Validate(form))
}

func TestValidate_TripDates(t *testing.T) {
	form := models.TripForm{Name: "Patagonia", Destination: "Bariloche", StartDate: "2026-03-10", EndDate: "2026-03-01"}
	assert.Equal(t, map[string]string{"end_date": "gtefield"}, Validate(form))

	form.EndDate = "2026-03-10"
	assert.Nil(t, Validate(form))

	form.StartDate = "March 10"
	assert.Equal(t, map[string]string{"start_date": "datetime"}, Validate(form))
}

func TestValidate_PointerForm(t *testing.T) {
	form := &models.TripForm{Name: "x", Destination: "y", StartDate: "2026-01-02", EndDate: "2026-01-01"}
	assert.Equal(t, "gtefield", Validate(form)["end_date"])
}
