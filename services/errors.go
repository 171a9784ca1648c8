package services

import (
	stderrors "errors"
	"net/http"

	"explorerhub/utils/errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSessionNotFound = errors.NewAPIError("SESSION_NOT_FOUND", "Session not found", http.StatusUnauthorized)
	ErrDraftNotFound   = errors.NewAPIError("DRAFT_NOT_FOUND", "Trip draft not found", http.StatusNotFound)
	ErrNotBusiness     = errors.NewAPIError("NOT_BUSINESS_ACCOUNT", "Only business accounts can create businesses", http.StatusForbidden)
)

// invalidForm builds the 400 returned for failed form validation.
func invalidForm(fields map[string]string) error {
	return errors.ErrInvalidInput.WithFields(fields)
}

func errorsIsExpired(err error) bool {
	return err != nil && stderrors.Is(err, jwt.ErrTokenExpired)
}
