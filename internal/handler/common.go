// Package handler contains the HTTP handlers of the box-office API.
// Handlers bind requests, delegate to the services and repositories
// and translate domain errors into HTTP responses; no business rule
// lives here.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// errUnauthenticated signals that no identity is present in the
// request context, i.e. JWTAuth did not run or the claims were
// malformed.
var errUnauthenticated = errors.New("unauthenticated")

// getUsername extracts the authenticated username stored in the
// context by the JWTAuth middleware.
func getUsername(c echo.Context) (string, error) {
	username, ok := c.Get("username").(string)
	if !ok || username == "" {
		return "", errUnauthenticated
	}
	return username, nil
}

// parseID parses a decimal id path or query parameter.
func parseID(s string) (int, error) {
	return strconv.Atoi(s)
}
