package services

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"explorerhub/models"
	"explorerhub/utils/validator"
)

type BusinessService struct {
	backend      Backend
	cache        *ListingCache
	auth         *AuthService
	exploreLimit int
}

func NewBusinessService(backend Backend, cache *ListingCache, auth *AuthService, exploreLimit int) *BusinessService {
	return &BusinessService{backend: backend, cache: cache, auth: auth, exploreLimit: exploreLimit}
}

// List relays the backend listing query, served from cache when possible.
func (s *BusinessService) List(ctx context.Context, query url.Values) (*BackendResponse, error) {
	if body, ok := s.cache.Get(ctx, query); ok {
		return &BackendResponse{Status: http.StatusOK, Body: body}, nil
	}
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodGet, Path: "/api/businesses/", Query: query})
	if err != nil {
		return nil, err
	}
	if resp.OK() && len(resp.Body) > 0 {
		s.cache.Put(ctx, query, resp.Body)
	}
	return resp, nil
}

func (s *BusinessService) Get(ctx context.Context, id string) (*BackendResponse, error) {
	return s.backend.Do(ctx, BackendRequest{Method: http.MethodGet, Path: "/api/businesses/" + url.PathEscape(id)})
}

// Find fetches one business and decodes it.
func (s *BusinessService) Find(ctx context.Context, id string) (*models.Business, error) {
	resp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Upstream(resp); err != nil {
		return nil, err
	}
	var b models.Business
	if err := resp.Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BusinessService) Create(ctx context.Context, token string, form models.BusinessForm) (*BackendResponse, error) {
	if fields := validator.Validate(form); fields != nil {
		return nil, invalidForm(fields)
	}
	if user, ok := s.auth.CachedUser(ctx, token); ok && !user.IsBusinessAccount() {
		return nil, ErrNotBusiness
	}
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodPost, Path: "/api/businesses/", Token: token, Body: form})
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		resp.Status = http.StatusCreated
		s.cache.Invalidate(ctx)
	}
	return resp, nil
}

func (s *BusinessService) Update(ctx context.Context, token, id string, form models.BusinessForm) (*BackendResponse, error) {
	if fields := validator.Validate(form); fields != nil {
		return nil, invalidForm(fields)
	}
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodPut, Path: "/api/businesses/" + url.PathEscape(id), Token: token, Body: form})
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		s.cache.Invalidate(ctx)
	}
	return resp, nil
}

// Delete deactivates a listing. Successful replies carry no body.
func (s *BusinessService) Delete(ctx context.Context, token, id string) (*BackendResponse, error) {
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodDelete, Path: "/api/businesses/" + url.PathEscape(id), Token: token})
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		s.cache.Invalidate(ctx)
		return &BackendResponse{Status: http.StatusNoContent}, nil
	}
	return resp, nil
}

func (s *BusinessService) RecordView(ctx context.Context, id string) (*BackendResponse, error) {
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodPost, Path: "/api/businesses/" + url.PathEscape(id) + "/view"})
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		return &BackendResponse{Status: http.StatusNoContent}, nil
	}
	return resp, nil
}

func (s *BusinessService) Mine(ctx context.Context, token string) (*BackendResponse, error) {
	return s.backend.Do(ctx, BackendRequest{Method: http.MethodGet, Path: "/api/businesses/owner/my-businesses", Token: token})
}

// Analytics relays the owner analytics. Backends without the route get the
// same summary computed from the owner's listings.
func (s *BusinessService) Analytics(ctx context.Context, token string) (*BackendResponse, error) {
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodGet, Path: "/api/businesses/owner/analytics", Token: token})
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusNotFound {
		return resp, nil
	}

	mine, err := s.Mine(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := Upstream(mine); err != nil {
		return nil, err
	}
	var businesses []models.Business
	if err := mine.Decode(&businesses); err != nil {
		return nil, err
	}
	body, err := json.Marshal(SummarizeBusinesses(businesses))
	if err != nil {
		return nil, err
	}
	return &BackendResponse{Status: http.StatusOK, Body: body}, nil
}

// SummarizeBusinesses computes owner analytics; the average rating is
// rounded to two decimals.
func SummarizeBusinesses(businesses []models.Business) models.OwnerAnalytics {
	out := models.OwnerAnalytics{TotalBusinesses: len(businesses)}
	var ratingSum float64
	for _, b := range businesses {
		out.TotalReviews += b.ReviewCount
		out.TotalViews += b.Views
		ratingSum += b.Rating
	}
	if len(businesses) > 0 {
		out.AverageRating = math.Round(ratingSum/float64(len(businesses))*100) / 100
	}
	return out
}

type ExploreResult struct {
	Results []models.Business `json:"results"`
	Count   int               `json:"count"`
	Total   int               `json:"total"`
	Filter  ListingFilter     `json:"filter"`
}

// Explore loads the listing page the explore screen works on and applies
// the filter in memory.
func (s *BusinessService) Explore(ctx context.Context, f ListingFilter) (*ExploreResult, error) {
	resp, err := s.List(ctx, url.Values{"limit": {strconv.Itoa(s.exploreLimit)}})
	if err != nil {
		return nil, err
	}
	if err := Upstream(resp); err != nil {
		return nil, err
	}
	var all []models.Business
	if err := resp.Decode(&all); err != nil {
		return nil, err
	}
	results := ApplyListingFilter(all, f)
	return &ExploreResult{Results: results, Count: len(results), Total: len(all), Filter: f}, nil
}

// Gallery builds the carousel for a business positioned at index, then
// moved one step when step is "next" or "prev".
func (s *BusinessService) Gallery(ctx context.Context, id string, index int, step string) (*GalleryView, error) {
	b, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	g := NewGallery(b.Images)
	if err := g.GoTo(index); err != nil {
		return nil, err
	}
	switch step {
	case "next":
		g.Next()
	case "prev", "previous":
		g.Previous()
	}
	view := g.View()
	return &view, nil
}
