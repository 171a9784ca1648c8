package handlers

import (
	"explorerhub/middleware"
	"explorerhub/services"
	"net/http"
)

type DraftHandler struct {
	draftService *services.DraftService
	authService  *services.AuthService
}

func NewDraftHandler(draftService *services.DraftService, authService *services.AuthService) *DraftHandler {
	return &DraftHandler{draftService: draftService, authService: authService}
}

// owner resolves the draft owner, writing the error response itself.
func (h *DraftHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID, err := h.authService.OwnerID(r.Context(), middleware.TokenFromContext(r.Context()), middleware.SubjectFromContext(r.Context()))
	if err != nil {
		respond(w, nil, err)
		return "", false
	}
	return ownerID, true
}

func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	draft, err := h.draftService.Get(r.Context(), ownerID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	var input services.DraftInput
	if !decodeJSON(w, r, &input) {
		return
	}
	draft, err := h.draftService.Save(r.Context(), ownerID, input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *DraftHandler) Discard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	if err := h.draftService.Discard(r.Context(), ownerID); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DraftHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	resp, err := h.draftService.Submit(r.Context(), ownerID, middleware.TokenFromContext(r.Context()))
	respond(w, resp, err)
}
