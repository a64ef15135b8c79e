package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
)

const credentialSelect = `SELECT id, user_id, password_hash, reset_token, reset_token_expires, created_at, updated_at
	FROM auth_credentials`

// CredentialRepo manages the auth_credentials table (password hash and the
// hashed reset token).
type CredentialRepo struct{ DB *sql.DB }

func NewCredentialRepo(db *sql.DB) *CredentialRepo { return &CredentialRepo{DB: db} }

func (r *CredentialRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Credential, error) {
	c, err := scanCredential(r.DB.QueryRowContext(ctx, credentialSelect+" WHERE user_id=? LIMIT 1", userID))
	if err != nil {
		return nil, wrap("Credentials", err)
	}
	return c, nil
}

// SetResetToken stores the hash of a reset token and its expiry.
func (r *CredentialRepo) SetResetToken(ctx context.Context, userID uint64, tokenHash string, expires time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE auth_credentials SET reset_token=?, reset_token_expires=?, updated_at=CURRENT_TIMESTAMP
		 WHERE user_id=?`,
		tokenHash, expires, userID)
	if err != nil {
		return wrap("Credentials", err)
	}
	return requireAffected(res, "Credentials")
}

// GetByResetToken looks a credential up by reset token hash.  Expiry is not
// checked here.
func (r *CredentialRepo) GetByResetToken(ctx context.Context, tokenHash string) (*model.Credential, error) {
	c, err := scanCredential(r.DB.QueryRowContext(ctx, credentialSelect+" WHERE reset_token=? LIMIT 1", tokenHash))
	if err != nil {
		return nil, wrap("Reset token", err)
	}
	return c, nil
}

// ResetPassword replaces the password hash and clears the reset token, but
// only while the token is still unexpired at now.  It reports false when no
// row matched, which happens if the token was consumed or expired between
// lookup and update.
func (r *CredentialRepo) ResetPassword(ctx context.Context, tokenHash, newHash string, now time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE auth_credentials
		 SET password_hash=?, reset_token=NULL, reset_token_expires=NULL, updated_at=CURRENT_TIMESTAMP
		 WHERE reset_token=? AND reset_token_expires > ?`,
		newHash, tokenHash, now)
	if err != nil {
		return false, wrap("Credentials", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrap("Credentials", err)
	}
	return n > 0, nil
}

func (r *CredentialRepo) UpdatePassword(ctx context.Context, userID uint64, newHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE auth_credentials SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE user_id=?",
		newHash, userID)
	if err != nil {
		return wrap("Credentials", err)
	}
	return requireAffected(res, "Credentials")
}

func scanCredential(row *sql.Row) (*model.Credential, error) {
	var (
		c       model.Credential
		token   sql.NullString
		expires sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.PasswordHash, &token, &expires, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if token.Valid {
		c.ResetToken = &token.String
	}
	if expires.Valid {
		c.ResetTokenExpires = &expires.Time
	}
	return &c, nil
}

// requireAffected turns a zero-row UPDATE or DELETE into NOT_FOUND.
func requireAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(resource, err)
	}
	if n == 0 {
		return apperror.NotFound(resource)
	}
	return nil
}
