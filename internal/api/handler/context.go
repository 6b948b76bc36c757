package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/api/middleware"
	"github.com/storerating/store-rating/internal/core/domain"
)

type claims struct {
	UserID  string
	Role    domain.Role
	TokenID string
}

// ctxClaims reads what the Auth middleware injected. A missing subject or
// role means the middleware did not run, which is reported as 401.
func ctxClaims(c echo.Context) (claims, error) {
	var cl claims
	cl.UserID, _ = c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	cl.Role = domain.Role(role)
	cl.TokenID, _ = c.Get(middleware.CtxTokenID).(string)

	if cl.UserID == "" || cl.Role == "" {
		return claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return cl, nil
}
