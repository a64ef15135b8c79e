package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
	"github.com/carlosargenal/enlaceibabackend/internal/middleware"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
)

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("Invalid id")
	}
	return id, nil
}

// bindFields decodes a JSON object body into a field map.  Only the body is
// read; path and query parameters never leak into the record.
func bindFields(c echo.Context) (model.Fields, error) {
	var f model.Fields
	if err := (&echo.DefaultBinder{}).BindBody(c, &f); err != nil {
		return nil, apperror.Validation("Invalid request body")
	}
	if f == nil {
		f = model.Fields{}
	}
	return f, nil
}

// bindJSON decodes the body into a typed request struct.
func bindJSON(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return nil
}

// queryBool parses an optional boolean query parameter; absent means nil.
func queryBool(c echo.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.Validation("Invalid " + name + " parameter")
	}
	return &b, nil
}

// queryUint parses an optional unsigned query parameter; absent means 0.
func queryUint(c echo.Context, name string) (uint64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperror.Validation("Invalid " + name + " parameter")
	}
	return n, nil
}

// requester returns the authenticated user id.  Routes that need it sit
// behind JWTAuth, so a missing id means the middleware was not applied.
func requester(c echo.Context) (uint64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, apperror.Authentication("Authentication token is required")
	}
	return id, nil
}

// bindFlag reads a single boolean field from the body, as sent to the
// featured, home and active mutators.
func bindFlag(c echo.Context, name string) (bool, error) {
	var raw map[string]any
	if err := bindJSON(c, &raw); err != nil {
		return false, err
	}
	v, ok := raw[name]
	if !ok {
		return false, apperror.MissingFields(name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, apperror.Validation(name + " must be a boolean")
	}
	return b, nil
}
