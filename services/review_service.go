package services

import (
	"context"
	"net/http"
	"net/url"

	"explorerhub/models"
	"explorerhub/utils/validator"
)

type ReviewService struct {
	backend Backend
	cache   *ListingCache
}

func NewReviewService(backend Backend, cache *ListingCache) *ReviewService {
	return &ReviewService{backend: backend, cache: cache}
}

// Create submits a review. The backend recomputes the business rating, so
// cached listings are dropped on success.
func (s *ReviewService) Create(ctx context.Context, token string, form models.ReviewForm) (*BackendResponse, error) {
	if fields := validator.Validate(form); fields != nil {
		return nil, invalidForm(fields)
	}
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodPost, Path: "/api/reviews/", Token: token, Body: form})
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		resp.Status = http.StatusCreated
		s.cache.Invalidate(ctx)
	}
	return resp, nil
}

func (s *ReviewService) ForBusiness(ctx context.Context, businessID string, query url.Values) (*BackendResponse, error) {
	return s.backend.Do(ctx, BackendRequest{Method: http.MethodGet, Path: "/api/reviews/business/" + url.PathEscape(businessID), Query: pageQuery(query)})
}

func (s *ReviewService) Mine(ctx context.Context, token string) (*BackendResponse, error) {
	return s.backend.Do(ctx, BackendRequest{Method: http.MethodGet, Path: "/api/reviews/user/my-reviews", Token: token})
}

func (s *ReviewService) Update(ctx context.Context, token, id string, form models.ReviewForm) (*BackendResponse, error) {
	if fields := validator.Validate(form); fields != nil {
		return nil, invalidForm(fields)
	}
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodPut, Path: "/api/reviews/" + url.PathEscape(id), Token: token, Body: form})
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		s.cache.Invalidate(ctx)
	}
	return resp, nil
}

func (s *ReviewService) Delete(ctx context.Context, token, id string) (*BackendResponse, error) {
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodDelete, Path: "/api/reviews/" + url.PathEscape(id), Token: token})
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		s.cache.Invalidate(ctx)
		return &BackendResponse{Status: http.StatusNoContent}, nil
	}
	return resp, nil
}

func (s *ReviewService) MarkHelpful(ctx context.Context, token, id string) (*BackendResponse, error) {
	return s.backend.Do(ctx, BackendRequest{Method: http.MethodPost, Path: "/api/reviews/" + url.PathEscape(id) + "/helpful", Token: token})
}

// pageQuery keeps only the pagination parameters the backend understands.
func pageQuery(q url.Values) url.Values {
	out := url.Values{}
	for _, key := range []string{"skip", "limit"} {
		if v := q.Get(key); v != "" {
			out.Set(key, v)
		}
	}
	return out
}
