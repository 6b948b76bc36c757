package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/core/domain"
)

// DomainStatus maps a known domain error to its HTTP status and public
// message. ok is false for anything unexpected.
func DomainStatus(err error) (code int, msg string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": "), true
	case errors.Is(err, domain.ErrInvalidScore):
		return http.StatusBadRequest, domain.ErrInvalidScore.Error(), true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials", true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", true
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found", true
	case errors.Is(err, domain.ErrStoreNotFound):
		return http.StatusNotFound, "store not found", true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists", true
	case errors.Is(err, domain.ErrStoreExists):
		return http.StatusConflict, "store already exists", true
	}
	return 0, "", false
}

// respondError writes known domain errors directly and hands the rest to
// the HTTP error handler, which logs them.
func respondError(c echo.Context, err error) error {
	if code, msg, ok := DomainStatus(err); ok {
		return c.JSON(code, map[string]string{"error": msg})
	}
	return err
}

func badPayload(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
}
