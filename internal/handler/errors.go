package handler // package handler contains the HTTP handlers of the API

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
)

// statusFor maps an error classification to its HTTP status.
func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindAuthentication:
		return http.StatusUnauthorized
	case apperror.KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError is the only place an error becomes a status code.  Database
// failures are logged with their cause and rendered with a generic message.
func respondError(c echo.Context, err error) error {
	err = apperror.Normalize(err)
	kind := apperror.KindOf(err)
	if kind == apperror.KindDatabase {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}

	body := echo.Map{
		"error": apperror.PublicMessage(err),
		"type":  kind,
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	return c.JSON(statusFor(kind), body)
}

// HTTPErrorHandler renders errors returned by handlers and middleware.
// Classified errors go through respondError; echo's own errors (unknown
// route, method not allowed, bad body) keep echo's rendering.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		c.Echo().DefaultHTTPErrorHandler(err, c)
		return
	}
	if rerr := respondError(c, err); rerr != nil {
		c.Logger().Error(rerr)
	}
}
