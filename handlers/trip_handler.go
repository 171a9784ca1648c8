package handlers

import (
	"explorerhub/middleware"
	"explorerhub/models"
	"explorerhub/services"
	"net/http"

	"github.com/gorilla/mux"
)

type TripHandler struct {
	tripService *services.TripService
}

func NewTripHandler(tripService *services.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.TripForm
	if !decodeJSON(w, r, &input) {
		return
	}
	resp, err := h.tripService.Create(r.Context(), middleware.TokenFromContext(r.Context()), input)
	respond(w, resp, err)
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.tripService.List(r.Context(), middleware.TokenFromContext(r.Context()))
	respond(w, resp, err)
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.tripService.Get(r.Context(), middleware.TokenFromContext(r.Context()), mux.Vars(r)["id"])
	respond(w, resp, err)
}

func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input models.TripForm
	if !decodeJSON(w, r, &input) {
		return
	}
	resp, err := h.tripService.Update(r.Context(), middleware.TokenFromContext(r.Context()), mux.Vars(r)["id"], input)
	respond(w, resp, err)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	resp, err := h.tripService.Delete(r.Context(), middleware.TokenFromContext(r.Context()), mux.Vars(r)["id"])
	respond(w, resp, err)
}

func (h *TripHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	var input models.TripActivityForm
	if !decodeJSON(w, r, &input) {
		return
	}
	resp, err := h.tripService.AddActivity(r.Context(), middleware.TokenFromContext(r.Context()), mux.Vars(r)["id"], input)
	respond(w, resp, err)
}

func (h *TripHandler) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resp, err := h.tripService.RemoveActivity(r.Context(), middleware.TokenFromContext(r.Context()), vars["id"], vars["business_id"])
	respond(w, resp, err)
}
