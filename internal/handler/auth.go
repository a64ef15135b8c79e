package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
	"github.com/carlosargenal/enlaceibabackend/internal/service"
	"github.com/carlosargenal/enlaceibabackend/internal/utils"
)

// AuthService is the part of service.AuthService the handlers need.
type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Logout(ctx context.Context, userID uint64) error
	RefreshToken(ctx context.Context, raw string) (*utils.SignedToken, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID uint64, current, next string) error
	GetProfile(ctx context.Context, userID uint64) (*model.User, error)
}

// forgotPasswordMessage is returned whether or not the email is registered.
const forgotPasswordMessage = "If the email is registered, a password reset link has been sent"

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	Auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type registerRequest struct {
	service.RegisterInput
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	u, err := h.Auth.Register(c.Request().Context(), req.RegisterInput, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered successfully", "user": u})
}

// Login handles POST /auth/login and returns the token pair with the user.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	res, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Auth.Logout(c.Request().Context(), uid); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// RefreshToken handles POST /auth/refresh-token.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req refreshRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	tok, err := h.Auth.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"access_token": tok})
}

// ForgotPassword handles POST /auth/forgot-password.  The response does not
// reveal whether the email matched an account; the token only travels
// through the mail queue.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if _, err := h.Auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil &&
		!apperror.Is(err, apperror.KindNotFound) {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": forgotPasswordMessage})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := h.Auth.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password has been reset successfully"})
}

// ChangePassword handles POST /auth/change-password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	var req changePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := h.Auth.ChangePassword(c.Request().Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}

// Me handles GET /auth/me and returns the caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	u, err := h.Auth.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
