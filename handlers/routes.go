package handlers

import (
	"explorerhub/middleware"
	"explorerhub/services"
	"explorerhub/utils/errors"
	"net/http"

	"github.com/gorilla/mux"
)

type Router struct {
	Auth           *AuthHandler
	Businesses     *BusinessHandler
	Reviews        *ReviewHandler
	Trips          *TripHandler
	Drafts         *DraftHandler
	Tokens         *services.TokenInspector
	AllowedOrigins []string
}

func (rt Router) Build() *mux.Router {
	r := mux.NewRouter()

	chain := []mux.MiddlewareFunc{
		middleware.RequestLogger(),
		middleware.ErrorMiddleware(),
		middleware.CORSMiddleware(rt.AllowedOrigins),
	}
	r.Use(chain...)

	// mux skips route middleware when nothing matches, so the fallbacks are
	// wrapped by hand.
	notFound := wrap(chain, func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, errors.ErrNotFound)
	})
	methodNotAllowed := wrap(chain, func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, errMethodNotAllowed)
	})
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = methodNotAllowed

	bearer := middleware.BearerAuth(rt.Tokens)
	auth := func(fn http.HandlerFunc) http.Handler { return bearer(fn) }

	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = notFound
	api.MethodNotAllowedHandler = methodNotAllowed

	// Auth routes
	api.HandleFunc("/auth/signup", rt.Auth.Signup).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", rt.Auth.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/logout", rt.Auth.Logout).Methods("POST", "OPTIONS")
	api.Handle("/auth/me", auth(rt.Auth.Me)).Methods("GET", "OPTIONS")
	api.Handle("/auth/me", auth(rt.Auth.UpdateMe)).Methods("PATCH")

	// Listing routes
	api.HandleFunc("/explore", rt.Businesses.Explore).Methods("GET", "OPTIONS")
	api.HandleFunc("/categories", rt.Businesses.Categories).Methods("GET", "OPTIONS")
	api.Handle("/businesses/owner/my-businesses", auth(rt.Businesses.Mine)).Methods("GET", "OPTIONS")
	api.Handle("/businesses/owner/analytics", auth(rt.Businesses.Analytics)).Methods("GET", "OPTIONS")
	api.HandleFunc("/businesses", rt.Businesses.List).Methods("GET", "OPTIONS")
	api.Handle("/businesses", auth(rt.Businesses.Create)).Methods("POST")
	api.HandleFunc("/businesses/{id}", rt.Businesses.Get).Methods("GET", "OPTIONS")
	api.Handle("/businesses/{id}", auth(rt.Businesses.Update)).Methods("PUT")
	api.Handle("/businesses/{id}", auth(rt.Businesses.Delete)).Methods("DELETE")
	api.HandleFunc("/businesses/{id}/view", rt.Businesses.RecordView).Methods("POST", "OPTIONS")
	api.HandleFunc("/businesses/{id}/gallery", rt.Businesses.Gallery).Methods("GET", "OPTIONS")

	// Review routes
	api.Handle("/reviews", auth(rt.Reviews.Create)).Methods("POST", "OPTIONS")
	api.HandleFunc("/reviews/business/{id}", rt.Reviews.ForBusiness).Methods("GET", "OPTIONS")
	api.Handle("/reviews/user/my-reviews", auth(rt.Reviews.Mine)).Methods("GET", "OPTIONS")
	api.Handle("/reviews/{id}", auth(rt.Reviews.Update)).Methods("PUT", "OPTIONS")
	api.Handle("/reviews/{id}", auth(rt.Reviews.Delete)).Methods("DELETE")
	api.Handle("/reviews/{id}/helpful", auth(rt.Reviews.MarkHelpful)).Methods("POST", "OPTIONS")

	// Trip routes
	api.Handle("/trips", auth(rt.Trips.List)).Methods("GET", "OPTIONS")
	api.Handle("/trips", auth(rt.Trips.Create)).Methods("POST")
	api.Handle("/trips/{id}", auth(rt.Trips.Get)).Methods("GET", "OPTIONS")
	api.Handle("/trips/{id}", auth(rt.Trips.Update)).Methods("PUT")
	api.Handle("/trips/{id}", auth(rt.Trips.Delete)).Methods("DELETE")
	api.Handle("/trips/{id}/activities", auth(rt.Trips.AddActivity)).Methods("POST", "OPTIONS")
	api.Handle("/trips/{id}/activities/{business_id}", auth(rt.Trips.RemoveActivity)).Methods("DELETE", "OPTIONS")

	// Trip planner drafts
	api.Handle("/drafts/trip", auth(rt.Drafts.Get)).Methods("GET", "OPTIONS")
	api.Handle("/drafts/trip", auth(rt.Drafts.Save)).Methods("PUT")
	api.Handle("/drafts/trip", auth(rt.Drafts.Discard)).Methods("DELETE")
	api.Handle("/drafts/trip/submit", auth(rt.Drafts.Submit)).Methods("POST", "OPTIONS")

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	return r
}

var errMethodNotAllowed = errors.NewAPIError("METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)

func wrap(chain []mux.MiddlewareFunc, fn http.HandlerFunc) http.Handler {
	var h http.Handler = fn
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}
