package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"explorerhub/models"
	"explorerhub/utils/errors"
	"explorerhub/utils/validator"

	"github.com/google/uuid"
)

// DraftService keeps the trip planner's unfinished form and turns it into
// a backend trip on submit.
type DraftService struct {
	store DraftStore
	trips *TripService
	now   func() time.Time
}

func NewDraftService(store DraftStore, trips *TripService) *DraftService {
	return &DraftService{store: store, trips: trips, now: time.Now}
}

type DraftInput struct {
	Trip       models.TripForm           `json:"trip"`
	Activities []models.TripActivityForm `json:"activities"`
}

func (s *DraftService) Get(ctx context.Context, ownerID string) (*models.TripDraft, error) {
	return s.store.Get(ctx, ownerID)
}

// Save replaces the owner's draft. Trip fields may be incomplete; every
// planned activity must name a business.
func (s *DraftService) Save(ctx context.Context, ownerID string, in DraftInput) (*models.TripDraft, error) {
	fields := map[string]string{}
	for i, a := range in.Activities {
		if a.BusinessID == "" {
			fields[fmt.Sprintf("activities[%d].business_id", i)] = "required"
		}
	}
	if len(fields) > 0 {
		return nil, invalidForm(fields)
	}

	now := s.now().UTC()
	draft := &models.TripDraft{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Trip:       in.Trip,
		Activities: in.Activities,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if draft.Activities == nil {
		draft.Activities = []models.TripActivityForm{}
	}
	return s.store.Save(ctx, draft)
}

func (s *DraftService) Discard(ctx context.Context, ownerID string) error {
	return s.store.Delete(ctx, ownerID)
}

// Submit creates the trip on the backend, adds the planned activities in
// order and removes the draft. On any failure the draft is kept and the
// failing backend reply is returned as the error.
func (s *DraftService) Submit(ctx context.Context, ownerID, token string) (*BackendResponse, error) {
	draft, err := s.store.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if fields := validator.Validate(draft.Trip); fields != nil {
		return nil, invalidForm(fields)
	}
	for i, a := range draft.Activities {
		if fields := validator.Validate(a); fields != nil {
			prefixed := make(map[string]string, len(fields))
			for k, v := range fields {
				prefixed[fmt.Sprintf("activities[%d].%s", i, k)] = v
			}
			return nil, invalidForm(prefixed)
		}
	}

	resp, err := s.trips.Create(ctx, token, draft.Trip)
	if err != nil {
		return nil, err
	}
	if err := Upstream(resp); err != nil {
		return nil, err
	}
	var trip models.Trip
	if err := resp.Decode(&trip); err != nil {
		return nil, err
	}
	if trip.ID == "" {
		return nil, errors.NewAPIError("BACKEND_DECODE_ERROR", "Internal server error", http.StatusInternalServerError, "created trip has no id")
	}

	for _, a := range draft.Activities {
		resp, err = s.trips.AddActivity(ctx, token, trip.ID.String(), a)
		if err != nil {
			return nil, err
		}
		if err := Upstream(resp); err != nil {
			log.Printf("draft_submit_partial owner=%s trip=%s business=%s status=%d", ownerID, trip.ID, a.BusinessID, resp.Status)
			return nil, err
		}
		resp.Status = http.StatusCreated
	}

	if err := s.store.Delete(ctx, ownerID); err != nil {
		log.Printf("draft_delete_failed owner=%s error=%q", ownerID, err)
	}
	return resp, nil
}
