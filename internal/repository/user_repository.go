package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/carlosargenal/enlaceibabackend/internal/database"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
)

const userSelect = `SELECT id, first_name, last_name, email, phone, status, role,
		profile_image, refresh_token, last_login, created_at, updated_at
	FROM users`

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// NormalizeEmail trims and lower-cases an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateWithCredential inserts the user row and its auth_credentials row in
// one transaction and returns the new user id.  If either insert fails nothing
// is left behind.
func (r *UserRepo) CreateWithCredential(ctx context.Context, u *model.User, passwordHash string) (uint64, error) {
	var id uint64
	err := database.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO users (first_name, last_name, email, phone, status, role, profile_image)
			 VALUES (?,?,?,?,?,?,?)`,
			u.FirstName, u.LastName, NormalizeEmail(u.Email), nullString(u.Phone),
			u.Status, u.Role, nullString(u.ProfileImage))
		if err != nil {
			return err
		}
		lastID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		id = uint64(lastID)
		_, err = tx.ExecContext(ctx,
			"INSERT INTO auth_credentials (user_id, password_hash) VALUES (?,?)",
			id, passwordHash)
		return err
	})
	if err != nil {
		return 0, wrap("User", err)
	}
	return id, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, userSelect+" WHERE email=? LIMIT 1", NormalizeEmail(email)))
	if err != nil {
		return nil, wrap("User", err)
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, userSelect+" WHERE id=? LIMIT 1", id))
	if err != nil {
		return nil, wrap("User", err)
	}
	return u, nil
}

// EmailExists reports whether an account already uses email.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email=?", NormalizeEmail(email)).Scan(&n)
	if err != nil {
		return false, wrap("User", err)
	}
	return n > 0, nil
}

// UpdateLogin stores the hash of the freshly issued refresh token and the
// login time.
func (r *UserRepo) UpdateLogin(ctx context.Context, id uint64, refreshHash string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=?, last_login=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		refreshHash, at, id)
	return wrap("User", err)
}

// ClearRefreshToken drops the stored refresh token.  Clearing an already
// empty token or an unknown id is not an error.
func (r *UserRepo) ClearRefreshToken(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=NULL, updated_at=CURRENT_TIMESTAMP WHERE id=?", id)
	return wrap("User", err)
}

// FindByRefreshToken returns the user with id whose stored refresh token hash
// equals refreshHash.
func (r *UserRepo) FindByRefreshToken(ctx context.Context, id uint64, refreshHash string) (*model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		userSelect+" WHERE id=? AND refresh_token=? LIMIT 1", id, refreshHash))
	if err != nil {
		return nil, wrap("User", err)
	}
	return u, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var (
		u                     model.User
		phone, image, refresh sql.NullString
		lastLogin             sql.NullTime
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &phone, &u.Status, &u.Role,
		&image, &refresh, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Phone = phone.String
	u.ProfileImage = image.String
	if refresh.Valid {
		u.RefreshToken = &refresh.String
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
