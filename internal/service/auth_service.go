package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
	"github.com/carlosargenal/enlaceibabackend/internal/observability"
	"github.com/carlosargenal/enlaceibabackend/internal/queue"
	"github.com/carlosargenal/enlaceibabackend/internal/repository"
	"github.com/carlosargenal/enlaceibabackend/internal/utils"
)

type UserStore interface {
	CreateWithCredential(ctx context.Context, u *model.User, passwordHash string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLogin(ctx context.Context, id uint64, refreshHash string, at time.Time) error
	ClearRefreshToken(ctx context.Context, id uint64) error
	FindByRefreshToken(ctx context.Context, id uint64, refreshHash string) (*model.User, error)
}

type CredentialStore interface {
	GetByUserID(ctx context.Context, userID uint64) (*model.Credential, error)
	SetResetToken(ctx context.Context, userID uint64, tokenHash string, expires time.Time) error
	GetByResetToken(ctx context.Context, tokenHash string) (*model.Credential, error)
	ResetPassword(ctx context.Context, tokenHash, newHash string, now time.Time) (bool, error)
	UpdatePassword(ctx context.Context, userID uint64, newHash string) error
}

// ResetNotifier hands a reset token to whatever delivers it to the user.
type ResetNotifier interface {
	PublishPasswordReset(ctx context.Context, ev queue.PasswordResetRequested) error
}

const (
	msgInvalidCredentials = "Invalid email or password"
	msgInvalidResetToken  = "Invalid or expired reset token"
	msgEmailTaken         = "Email already registered"
	msgPasswordTooLong    = "password must be at most 72 bytes"
)

// AuthService implements registration, login, token refresh and password
// management.  Now and the token issuer are injectable for tests.
type AuthService struct {
	Users       UserStore
	Credentials CredentialStore
	Notifier    ResetNotifier
	Tokens      *utils.TokenIssuer
	BcryptCost  int
	ResetTTL    time.Duration
	Now         func() time.Time
}

func NewAuthService(users UserStore, creds CredentialStore, notifier ResetNotifier, tokens *utils.TokenIssuer, bcryptCost int, resetTTL time.Duration) *AuthService {
	return &AuthService{
		Users:       users,
		Credentials: creds,
		Notifier:    notifier,
		Tokens:      tokens,
		BcryptCost:  bcryptCost,
		ResetTTL:    resetTTL,
		Now:         time.Now,
	}
}

// RegisterInput is the profile part of a registration; the password travels
// separately so it never sits next to profile data.
type RegisterInput struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profile_image"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User         *model.User       `json:"user"`
	AccessToken  utils.SignedToken `json:"access_token"`
	RefreshToken utils.SignedToken `json:"refresh_token"`
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// hashPassword maps an over-long password to a validation error; any other
// hashing failure is unexpected.
func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password, s.BcryptCost)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return "", apperror.Validation(msgPasswordTooLong)
	}
	if err != nil {
		return "", apperror.Database(fmt.Errorf("hash password: %w", err))
	}
	return hash, nil
}

func (s *AuthService) resetTTL() time.Duration {
	if s.ResetTTL <= 0 {
		return time.Hour
	}
	return s.ResetTTL
}

// Register creates an active user with role "user".  The user row and its
// credential row are written in one transaction.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, password string) (u *model.User, err error) {
	defer func() { observability.RecordAuth("register", err) }()

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = repository.NormalizeEmail(in.Email)
	if err := requireFields(model.Fields{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
		"password":   password,
	}, "first_name", "last_name", "email", "password"); err != nil {
		return nil, err
	}

	exists, err := s.Users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Validation(msgEmailTaken)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u = &model.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        strings.TrimSpace(in.Phone),
		Status:       model.UserStatusActive,
		Role:         model.RoleUser,
		ProfileImage: strings.TrimSpace(in.ProfileImage),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	id, err := s.Users.CreateWithCredential(ctx, u, hash)
	if err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Validation(msgEmailTaken)
		}
		return nil, err
	}
	u.ID = id
	return u, nil
}

// Login verifies credentials and issues an access and refresh token pair.
// Every credential failure yields the same AuthenticationError.
func (s *AuthService) Login(ctx context.Context, email, password string) (res *LoginResult, err error) {
	defer func() { observability.RecordAuth("login", err) }()

	email = repository.NormalizeEmail(email)
	if err := requireFields(model.Fields{"email": email, "password": password}, "email", "password"); err != nil {
		return nil, err
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if apperror.Is(err, apperror.KindNotFound) {
		utils.BurnPasswordCheck(password)
		return nil, apperror.Authentication(msgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}

	cred, err := s.Credentials.GetByUserID(ctx, u.ID)
	if apperror.Is(err, apperror.KindNotFound) {
		utils.BurnPasswordCheck(password)
		return nil, apperror.Authentication(msgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(cred.PasswordHash, password) || u.Status != model.UserStatusActive {
		return nil, apperror.Authentication(msgInvalidCredentials)
	}

	access, err := s.Tokens.NewAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, apperror.Database(err)
	}
	refresh, err := s.Tokens.NewRefreshToken(u.ID)
	if err != nil {
		return nil, apperror.Database(err)
	}

	now := s.now()
	if err := s.Users.UpdateLogin(ctx, u.ID, utils.HashToken(refresh.Token), now); err != nil {
		return nil, err
	}
	u.LastLogin = &now
	u.RefreshToken = nil
	return &LoginResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

// Logout forgets the stored refresh token.  Logging out twice is fine.
func (s *AuthService) Logout(ctx context.Context, userID uint64) error {
	err := s.Users.ClearRefreshToken(ctx, userID)
	observability.RecordAuth("logout", err)
	return err
}

// RefreshToken exchanges a valid refresh token for a new access token.  The
// refresh token itself is not rotated.
func (s *AuthService) RefreshToken(ctx context.Context, raw string) (tok *utils.SignedToken, err error) {
	defer func() { observability.RecordAuth("refresh", err) }()

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperror.MissingFields("refresh_token")
	}
	claims, err := s.Tokens.ParseRefreshToken(raw)
	if err != nil {
		return nil, apperror.Authentication("Invalid refresh token")
	}

	u, err := s.Users.FindByRefreshToken(ctx, claims.ID, utils.HashToken(raw))
	if apperror.Is(err, apperror.KindNotFound) {
		return nil, apperror.Authentication("Invalid refresh token")
	}
	if err != nil {
		return nil, err
	}
	if u.Status != model.UserStatusActive {
		return nil, apperror.Authentication("Invalid refresh token")
	}

	access, err := s.Tokens.NewAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, apperror.Database(err)
	}
	return &access, nil
}

// RequestPasswordReset stores the hash of a fresh reset token and returns
// the raw token.  Delivery through the notifier is best effort.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = repository.NormalizeEmail(email)
	if email == "" {
		return "", apperror.MissingFields("email")
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	raw, hash, err := utils.NewResetToken()
	if err != nil {
		return "", apperror.Database(fmt.Errorf("generate reset token: %w", err))
	}
	now := s.now()
	expires := now.Add(s.resetTTL())
	if err := s.Credentials.SetResetToken(ctx, u.ID, hash, expires); err != nil {
		return "", err
	}

	if s.Notifier != nil {
		ev := queue.PasswordResetRequested{
			UserID:      u.ID,
			Email:       u.Email,
			FirstName:   u.FirstName,
			Token:       raw,
			ExpiresAt:   expires,
			RequestedAt: now,
		}
		if err := s.Notifier.PublishPasswordReset(ctx, ev); err != nil {
			log.Printf("auth: reset mail for user %d not queued: %v", u.ID, err)
		}
	}
	observability.RecordAuth("reset_request", nil)
	return raw, nil
}

// ResetPassword sets a new password using a reset token.  Unknown and
// expired tokens fail the same way and leave the stored hash untouched.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (err error) {
	defer func() { observability.RecordAuth("reset", err) }()

	token = strings.TrimSpace(token)
	if err := requireFields(model.Fields{"token": token, "password": newPassword}, "token", "password"); err != nil {
		return err
	}

	tokenHash := utils.HashToken(token)
	cred, err := s.Credentials.GetByResetToken(ctx, tokenHash)
	if apperror.Is(err, apperror.KindNotFound) {
		return apperror.Validation(msgInvalidResetToken)
	}
	if err != nil {
		return err
	}
	now := s.now()
	if cred.ResetTokenExpires == nil || !now.Before(*cred.ResetTokenExpires) {
		return apperror.Validation(msgInvalidResetToken)
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	ok, err := s.Credentials.ResetPassword(ctx, tokenHash, hash, now)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Validation(msgInvalidResetToken)
	}
	return nil
}

// ChangePassword replaces the password of a logged-in user after checking
// the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint64, current, next string) (err error) {
	defer func() { observability.RecordAuth("change_password", err) }()

	if err := requireFields(model.Fields{"current_password": current, "new_password": next},
		"current_password", "new_password"); err != nil {
		return err
	}

	cred, err := s.Credentials.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(cred.PasswordHash, current) {
		return apperror.Validation("Current password is incorrect")
	}

	hash, err := s.hashPassword(next)
	if err != nil {
		return err
	}
	return s.Credentials.UpdatePassword(ctx, userID, hash)
}

// ValidateToken checks an access token and returns its claims.
func (s *AuthService) ValidateToken(raw string) (*utils.AccessClaims, error) {
	claims, err := s.Tokens.ParseAccessToken(strings.TrimSpace(raw))
	if err != nil {
		return nil, apperror.Authentication("Invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint64) (*model.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.RefreshToken = nil
	return u, nil
}
