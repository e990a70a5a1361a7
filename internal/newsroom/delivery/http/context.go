package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Headers carrying the authenticated identity. Authentication happens
// upstream; by the time a request reaches these handlers they are trusted.
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

// tenantID extracts the tenant id from the request headers. Returns an echo
// HTTP error when the header is absent.
func tenantID(c echo.Context) (string, error) {
	userID := c.Request().Header.Get(headerUserID)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing "+headerUserID+" header")
	}
	return userID, nil
}

// requireRole rejects the request with 403 unless the caller carries one of
// the given roles.
func requireRole(c echo.Context, roles ...string) error {
	role := c.Request().Header.Get(headerUserRole)
	for _, allowed := range roles {
		if role == allowed {
			return nil
		}
	}
	return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
}
