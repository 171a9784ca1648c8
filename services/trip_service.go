package services

import (
	"context"
	"net/http"
	"net/url"

	"explorerhub/models"
	"explorerhub/utils/validator"
)

type TripService struct {
	backend Backend
}

func NewTripService(backend Backend) *TripService {
	return &TripService{backend: backend}
}

func (s *TripService) Create(ctx context.Context, token string, form models.TripForm) (*BackendResponse, error) {
	if fields := validator.Validate(form); fields != nil {
		return nil, invalidForm(fields)
	}
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodPost, Path: "/api/trips/", Token: token, Body: form})
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		resp.Status = http.StatusCreated
	}
	return resp, nil
}

func (s *TripService) List(ctx context.Context, token string) (*BackendResponse, error) {
	return s.backend.Do(ctx, BackendRequest{Method: http.MethodGet, Path: "/api/trips/", Token: token})
}

func (s *TripService) Get(ctx context.Context, token, id string) (*BackendResponse, error) {
	return s.backend.Do(ctx, BackendRequest{Method: http.MethodGet, Path: "/api/trips/" + url.PathEscape(id), Token: token})
}

func (s *TripService) Update(ctx context.Context, token, id string, form models.TripForm) (*BackendResponse, error) {
	if fields := validator.Validate(form); fields != nil {
		return nil, invalidForm(fields)
	}
	return s.backend.Do(ctx, BackendRequest{Method: http.MethodPut, Path: "/api/trips/" + url.PathEscape(id), Token: token, Body: form})
}

func (s *TripService) Delete(ctx context.Context, token, id string) (*BackendResponse, error) {
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodDelete, Path: "/api/trips/" + url.PathEscape(id), Token: token})
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		return &BackendResponse{Status: http.StatusNoContent}, nil
	}
	return resp, nil
}

func (s *TripService) AddActivity(ctx context.Context, token, tripID string, form models.TripActivityForm) (*BackendResponse, error) {
	if fields := validator.Validate(form); fields != nil {
		return nil, invalidForm(fields)
	}
	return s.backend.Do(ctx, BackendRequest{Method: http.MethodPost, Path: "/api/trips/" + url.PathEscape(tripID) + "/activities", Token: token, Body: form})
}

func (s *TripService) RemoveActivity(ctx context.Context, token, tripID, businessID string) (*BackendResponse, error) {
	path := "/api/trips/" + url.PathEscape(tripID) + "/activities/" + url.PathEscape(businessID)
	return s.backend.Do(ctx, BackendRequest{Method: http.MethodDelete, Path: path, Token: token})
}
