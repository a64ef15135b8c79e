package middleware // reusable HTTP middleware: auth, roles, cache, rate limiting, metrics

import (
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/carlosargenal/enlaceibabackend/internal/apperror"
    "github.com/carlosargenal/enlaceibabackend/internal/utils"
)

// bearerToken extracts the token from an "Authorization: Bearer <jwt>"
// header.  The scheme is matched case-insensitively.
func bearerToken(c echo.Context) (string, bool) {
    auth := c.Request().Header.Get(echo.HeaderAuthorization)
    if len(auth) < 7 || !strings.EqualFold(auth[:7], "Bearer ") {
        return "", false
    }
    raw := strings.TrimSpace(auth[7:])
    return raw, raw != ""
}

// JWTAuth validates a Bearer access token and stores its claims in the
// request context (see UserID, Role, Claims).  Requests without a valid
// token fail with AUTHENTICATION_ERROR, which the error handler renders as
// 401.
func JWTAuth(tokens *utils.TokenIssuer) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, ok := bearerToken(c)
            if !ok {
                return apperror.Authentication("Authentication token is required")
            }
            claims, err := tokens.ParseAccessToken(raw)
            if err != nil {
                return apperror.Authentication("Invalid or expired token")
            }
            setIdentity(c, claims)
            return next(c)
        }
    }
}

// OptionalJWT is JWTAuth for public routes: a valid token sets the identity,
// a missing or bad one leaves the request anonymous.
func OptionalJWT(tokens *utils.TokenIssuer) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if raw, ok := bearerToken(c); ok {
                if claims, err := tokens.ParseAccessToken(raw); err == nil {
                    setIdentity(c, claims)
                }
            }
            return next(c)
        }
    }
}
