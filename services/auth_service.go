package services

import (
	"context"
	stderrors "errors"
	"log"
	"net/http"

	"explorerhub/models"
	"explorerhub/utils/errors"
	"explorerhub/utils/validator"
)

// AuthService relays login and signup to the backend and keeps the
// resulting session.
type AuthService struct {
	backend  Backend
	sessions *SessionService
}

func NewAuthService(backend Backend, sessions *SessionService) *AuthService {
	return &AuthService{backend: backend, sessions: sessions}
}

// Login forwards the credentials. The backend reply is returned unchanged
// whatever its status.
func (s *AuthService) Login(ctx context.Context, form models.LoginForm) (*BackendResponse, error) {
	if fields := validator.Validate(form); fields != nil {
		return nil, invalidForm(fields)
	}
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodPost, Path: "/api/auth/login", Body: form})
	if err != nil {
		return nil, err
	}
	s.remember(ctx, resp)
	return resp, nil
}

func (s *AuthService) Signup(ctx context.Context, form models.SignupForm) (*BackendResponse, error) {
	if fields := validator.Validate(form); fields != nil {
		return nil, invalidForm(fields)
	}
	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodPost, Path: "/api/auth/signup", Body: form.BackendPayload()})
	if err != nil {
		return nil, err
	}
	s.remember(ctx, resp)
	return resp, nil
}

// remember caches a successful auth reply. A cache failure does not fail
// the login; the session is rebuilt from /api/auth/me on demand.
func (s *AuthService) remember(ctx context.Context, resp *BackendResponse) {
	if !resp.OK() {
		return
	}
	var auth models.AuthResponse
	if err := resp.Decode(&auth); err != nil {
		log.Printf("session_cache_skip reason=decode error=%q", err)
		return
	}
	if _, err := s.sessions.Save(ctx, auth); err != nil {
		log.Printf("session_cache_skip reason=save error=%q", err)
	}
}

// CurrentUser returns the user behind token, from the session cache or
// from the backend.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	session, err := s.sessions.Get(ctx, token)
	if err == nil {
		return &session.User, nil
	}
	if !stderrors.Is(err, ErrSessionNotFound) {
		log.Printf("session_lookup_failed error=%q", err)
	}

	resp, err := s.backend.Do(ctx, BackendRequest{Method: http.MethodGet, Path: "/api/auth/me", Token: token})
	if err != nil {
		return nil, err
	}
	if err := Upstream(resp); err != nil {
		return nil, err
	}
	var user models.User
	if err := resp.Decode(&user); err != nil {
		return nil, err
	}
	if _, err := s.sessions.Save(ctx, models.AuthResponse{AccessToken: token, TokenType: "bearer", User: user}); err != nil {
		log.Printf("session_cache_skip reason=save error=%q", err)
	}
	return &user, nil
}

// CachedUser returns the cached user without contacting the backend.
func (s *AuthService) CachedUser(ctx context.Context, token string) (*models.User, bool) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, false
	}
	return &session.User, true
}

// OwnerID resolves the id under which per-user gateway data is stored:
// the session user id, else subject (the token's sub claim, already read by
// the auth middleware), else the id the backend reports for token.
func (s *AuthService) OwnerID(ctx context.Context, token, subject string) (string, error) {
	if user, ok := s.CachedUser(ctx, token); ok && user.ID != "" {
		return user.ID.String(), nil
	}
	if subject != "" {
		return subject, nil
	}
	user, err := s.CurrentUser(ctx, token)
	if err != nil {
		if isUnauthorized(err) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	if user.ID == "" {
		return "", ErrSessionNotFound
	}
	return user.ID.String(), nil
}

// UpdateProfile merges a profile edit into the session user, the copy the
// web client reads back from /api/auth/me. Travelers cannot set business
// fields and business accounts cannot set traveler fields.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, form models.ProfileForm) (*models.User, error) {
	if fields := validator.Validate(form); fields != nil {
		return nil, invalidForm(fields)
	}
	edit := func(u *models.User) error {
		if u.IsBusinessAccount() && form.HasTravelerFields() {
			return errors.ErrForbidden
		}
		if !u.IsBusinessAccount() && form.HasBusinessFields() {
			return errors.ErrForbidden
		}
		form.ApplyTo(u)
		return nil
	}

	session, err := s.sessions.UpdateUser(ctx, token, edit)
	if stderrors.Is(err, ErrSessionNotFound) {
		// rebuild the session from the backend, then retry once
		if _, err = s.CurrentUser(ctx, token); err != nil {
			if isUnauthorized(err) {
				return nil, ErrSessionNotFound
			}
			return nil, err
		}
		session, err = s.sessions.UpdateUser(ctx, token, edit)
	}
	if err != nil {
		return nil, err
	}
	log.Printf("profile_updated user=%s business=%t", session.User.ID, session.User.IsBusinessAccount())
	return &session.User, nil
}

func isUnauthorized(err error) bool {
	var upstream *UpstreamError
	return stderrors.As(err, &upstream) && upstream.Response.Status == http.StatusUnauthorized
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return errors.ErrUnauthorized
	}
	return s.sessions.Delete(ctx, token)
}
