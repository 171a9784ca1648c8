package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"explorerhub/models"
	"explorerhub/utils/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBusinessService(t *testing.T, fb *fakeBackend) (*BusinessService, *SessionService) {
	t.Helper()
	_, client := newTestRedis(t)
	tokens := NewTokenInspector("")
	sessions := NewSessionService(client, tokens, time.Hour)
	auth := NewAuthService(fb.client(), sessions)
	cache := NewListingCache(client, time.Minute)
	return NewBusinessService(fb.client(), cache, auth, 50), sessions
}

func validBusinessForm() models.BusinessForm {
	return models.BusinessForm{
		Name:        "Cafe Tortoni",
		Description: "Historic coffee house",
		Category:    "Restaurantes",
		Location:    models.LocationForm{Address: "Av. de Mayo 825", City: "Buenos Aires", State: "CABA", Country: "Argentina"},
		PriceLevel:  2,
	}
}

func TestBusinessService_ListIsCached(t *testing.T) {
	fb := newFakeBackend(t)
	fb.on(http.MethodGet, "/api/businesses/", http.StatusOK, `[{"id":"1","name":"A","is_active":true}]`)
	svc, _ := newBusinessService(t, fb)
	ctx := context.Background()

	q := url.Values{"category": {"Restaurantes"}}
	first, err := svc.List(ctx, q)
	require.NoError(t, err)
	second, err := svc.List(ctx, q)
	require.NoError(t, err)

	assert.JSONEq(t, string(first.Body), string(second.Body))
	assert.Len(t, fb.requests(), 1)

	_, err = svc.List(ctx, url.Values{"category": {"Compras"}})
	require.NoError(t, err)
	assert.Len(t, fb.requests(), 2)
}

func TestBusinessService_ErrorsAreNotCached(t *testing.T) {
	fb := newFakeBackend(t)
	fb.on(http.MethodGet, "/api/businesses/", http.StatusServiceUnavailable, `{"detail":"down"}`)
	svc, _ := newBusinessService(t, fb)

	for i := 0; i < 2; i++ {
		resp, err := svc.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
	}
	assert.Len(t, fb.requests(), 2)
}

func TestBusinessService_CreateInvalidatesCache(t *testing.T) {
	fb := newFakeBackend(t)
	fb.on(http.MethodGet, "/api/businesses/", http.StatusOK, `[]`)
	fb.on(http.MethodPost, "/api/businesses/", http.StatusOK, `{"id":"10"}`)
	svc, _ := newBusinessService(t, fb)
	ctx := context.Background()

	_, err := svc.List(ctx, nil)
	require.NoError(t, err)

	resp, err := svc.Create(ctx, "tok", validBusinessForm())
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "Bearer tok", fb.requests()[1].Auth)

	_, err = svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, fb.requests(), 3)
}

func TestBusinessService_CreateValidates(t *testing.T) {
	fb := newFakeBackend(t)
	svc, _ := newBusinessService(t, fb)

	form := validBusinessForm()
	form.Name = ""
	_, err := svc.Create(context.Background(), "tok", form)

	apiErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "required", apiErr.Fields["name"])
	assert.Empty(t, fb.requests())
}

func TestBusinessService_CreateRejectsTravelerSession(t *testing.T) {
	fb := newFakeBackend(t)
	svc, sessions := newBusinessService(t, fb)
	ctx := context.Background()

	_, err := sessions.Save(ctx, models.AuthResponse{AccessToken: "traveler", User: models.User{ID: "1", Role: models.RoleClient}})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "traveler", validBusinessForm())
	assert.ErrorIs(t, err, ErrNotBusiness)
	assert.Empty(t, fb.requests())
}

func TestBusinessService_DeleteReturnsNoContent(t *testing.T) {
	fb := newFakeBackend(t)
	fb.on(http.MethodDelete, "/api/businesses/5", http.StatusOK, `null`)
	svc, _ := newBusinessService(t, fb)

	resp, err := svc.Delete(context.Background(), "tok", "5")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Empty(t, resp.Body)
}

func TestBusinessService_AnalyticsRelay(t *testing.T) {
	fb := newFakeBackend(t)
	fb.on(http.MethodGet, "/api/businesses/owner/analytics", http.StatusOK, `{"total_businesses":3,"average_rating":4.1,"total_reviews":20,"total_views":99}`)
	svc, _ := newBusinessService(t, fb)

	resp, err := svc.Analytics(context.Background(), "tok")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_businesses":3,"average_rating":4.1,"total_reviews":20,"total_views":99}`, string(resp.Body))
}

func TestBusinessService_AnalyticsFallback(t *testing.T) {
	fb := newFakeBackend(t)
	fb.on(http.MethodGet, "/api/businesses/owner/my-businesses", http.StatusOK,
		`[{"id":"1","rating":4.5,"review_count":10,"views":100},{"id":"2","rating":3.833,"review_count":5,"views":7}]`)
	svc, _ := newBusinessService(t, fb)

	resp, err := svc.Analytics(context.Background(), "tok")
	require.NoError(t, err)

	var got models.OwnerAnalytics
	require.NoError(t, json.Unmarshal(resp.Body, &got))
	assert.Equal(t, models.OwnerAnalytics{TotalBusinesses: 2, AverageRating: 4.17, TotalReviews: 15, TotalViews: 107}, got)
}

func TestSummarizeBusinesses_Empty(t *testing.T) {
	assert.Equal(t, models.OwnerAnalytics{}, SummarizeBusinesses(nil))
}

func TestBusinessService_Explore(t *testing.T) {
	fb := newFakeBackend(t)
	fb.on(http.MethodGet, "/api/businesses/", http.StatusOK, `[
		{"id":1,"name":"A","category":"Restaurantes","rating":4.0,"price_level":2,"is_active":true,"location":{"city":"Salta"}},
		{"id":2,"name":"B","category":"Compras","rating":4.9,"price_level":1,"is_active":true,"location":{"city":"Salta"}},
		{"id":3,"name":"C","category":"Compras","rating":5.0,"price_level":1,"is_active":false,"location":{"city":"Salta"}}
	]`)
	svc, _ := newBusinessService(t, fb)

	f := DefaultListingFilter()
	f.Sort = SortRating
	result, err := svc.Explore(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []string{"2", "1"}, ids(result.Results))
	assert.Equal(t, "limit=50", fb.requests()[0].Query)
}

func TestBusinessService_ExploreRelaysBackendError(t *testing.T) {
	fb := newFakeBackend(t)
	fb.on(http.MethodGet, "/api/businesses/", http.StatusInternalServerError, `{"detail":"db down"}`)
	svc, _ := newBusinessService(t, fb)

	_, err := svc.Explore(context.Background(), DefaultListingFilter())
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.Response.Status)
}

func TestBusinessService_Gallery(t *testing.T) {
	fb := newFakeBackend(t)
	fb.on(http.MethodGet, "/api/businesses/7", http.StatusOK, `{"id":"7","images":["a.jpg","b.jpg","c.jpg"]}`)
	svc, _ := newBusinessService(t, fb)
	ctx := context.Background()

	view, err := svc.Gallery(ctx, "7", 2, "next")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, "a.jpg", view.Current)

	view, err = svc.Gallery(ctx, "7", 0, "prev")
	require.NoError(t, err)
	assert.Equal(t, "c.jpg", view.Current)

	_, err = svc.Gallery(ctx, "7", 5, "")
	apiErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
