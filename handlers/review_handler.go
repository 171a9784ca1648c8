package handlers

import (
	"explorerhub/middleware"
	"explorerhub/models"
	"explorerhub/services"
	"net/http"

	"github.com/gorilla/mux"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.ReviewForm
	if !decodeJSON(w, r, &input) {
		return
	}
	resp, err := h.reviewService.Create(r.Context(), middleware.TokenFromContext(r.Context()), input)
	respond(w, resp, err)
}

func (h *ReviewHandler) ForBusiness(w http.ResponseWriter, r *http.Request) {
	resp, err := h.reviewService.ForBusiness(r.Context(), mux.Vars(r)["id"], r.URL.Query())
	respond(w, resp, err)
}

func (h *ReviewHandler) Mine(w http.ResponseWriter, r *http.Request) {
	resp, err := h.reviewService.Mine(r.Context(), middleware.TokenFromContext(r.Context()))
	respond(w, resp, err)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input models.ReviewForm
	if !decodeJSON(w, r, &input) {
		return
	}
	resp, err := h.reviewService.Update(r.Context(), middleware.TokenFromContext(r.Context()), mux.Vars(r)["id"], input)
	respond(w, resp, err)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	resp, err := h.reviewService.Delete(r.Context(), middleware.TokenFromContext(r.Context()), mux.Vars(r)["id"])
	respond(w, resp, err)
}

func (h *ReviewHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	resp, err := h.reviewService.MarkHelpful(r.Context(), middleware.TokenFromContext(r.Context()), mux.Vars(r)["id"])
	respond(w, resp, err)
}
