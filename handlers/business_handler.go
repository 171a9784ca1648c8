package handlers

import (
	"explorerhub/middleware"
	"explorerhub/models"
	"explorerhub/services"
	"explorerhub/utils/errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type BusinessHandler struct {
	businessService *services.BusinessService
}

func NewBusinessHandler(businessService *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

func (h *BusinessHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.businessService.List(r.Context(), r.URL.Query())
	respond(w, resp, err)
}

func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.businessService.Get(r.Context(), mux.Vars(r)["id"])
	respond(w, resp, err)
}

func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.BusinessForm
	if !decodeJSON(w, r, &input) {
		return
	}
	resp, err := h.businessService.Create(r.Context(), middleware.TokenFromContext(r.Context()), input)
	respond(w, resp, err)
}

func (h *BusinessHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input models.BusinessForm
	if !decodeJSON(w, r, &input) {
		return
	}
	resp, err := h.businessService.Update(r.Context(), middleware.TokenFromContext(r.Context()), mux.Vars(r)["id"], input)
	respond(w, resp, err)
}

func (h *BusinessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	resp, err := h.businessService.Delete(r.Context(), middleware.TokenFromContext(r.Context()), mux.Vars(r)["id"])
	respond(w, resp, err)
}

func (h *BusinessHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	resp, err := h.businessService.RecordView(r.Context(), mux.Vars(r)["id"])
	respond(w, resp, err)
}

func (h *BusinessHandler) Mine(w http.ResponseWriter, r *http.Request) {
	resp, err := h.businessService.Mine(r.Context(), middleware.TokenFromContext(r.Context()))
	respond(w, resp, err)
}

func (h *BusinessHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.businessService.Analytics(r.Context(), middleware.TokenFromContext(r.Context()))
	respond(w, resp, err)
}

func (h *BusinessHandler) Explore(w http.ResponseWriter, r *http.Request) {
	filter, fields := services.ParseListingFilter(r.URL.Query())
	if fields != nil {
		middleware.WriteError(w, errors.ErrInvalidInput.WithFields(fields))
		return
	}
	result, err := h.businessService.Explore(r.Context(), filter)
	if err != nil {
		respond(w, nil, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BusinessHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	index := 0
	if raw := r.URL.Query().Get("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.WriteError(w, errors.ErrInvalidInput.WithFields(map[string]string{"index": "numeric"}))
			return
		}
		index = n
	}
	view, err := h.businessService.Gallery(r.Context(), mux.Vars(r)["id"], index, r.URL.Query().Get("step"))
	if err != nil {
		respond(w, nil, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *BusinessHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"categories": models.Categories})
}
