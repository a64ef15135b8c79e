package middleware

// identity.go holds the context keys written by JWTAuth and the helpers
// handlers and other middleware use to read the caller's identity back.

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/carlosargenal/enlaceibabackend/internal/model"
    "github.com/carlosargenal/enlaceibabackend/internal/utils"
)

const (
    ctxUserID = "user_id"
    ctxRole   = "role"
)

func setIdentity(c echo.Context, claims *utils.AccessClaims) {
    c.Set(ctxUserID, claims.ID)
    c.Set(ctxRole, claims.Role)
}

// UserID returns the authenticated caller's id, or false for anonymous
// requests.
func UserID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(ctxUserID).(uint64)
    return id, ok && id != 0
}

// Role returns the caller's role claim, or "" when anonymous.
func Role(c echo.Context) string {
    r, _ := c.Get(ctxRole).(string)
    return r
}

func IsAdmin(c echo.Context) bool { return Role(c) == model.RoleAdmin }

// rateIdentity is the user part of a rate-limit key; "anon" when the request
// is not authenticated.
func rateIdentity(c echo.Context) string {
    if id, ok := UserID(c); ok {
        return strconv.FormatUint(id, 10)
    }
    return "anon"
}
