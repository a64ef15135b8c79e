package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
)

func newCredentialMock(t *testing.T) (*CredentialRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCredentialRepo(db), mock
}

func TestResetPasswordGuardsOnExpiry(t *testing.T) {
	repo, mock := newCredentialMock(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("WHERE reset_token=? AND reset_token_expires > ?")).
		WithArgs("newhash", "tokhash", now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.ResetPassword(context.Background(), "tokhash", "newhash", now)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordClearsToken(t *testing.T) {
	repo, mock := newCredentialMock(t)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("SET password_hash=?, reset_token=NULL, reset_token_expires=NULL")).
		WithArgs("newhash", "tokhash", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ResetPassword(context.Background(), "tokhash", "newhash", now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetByResetTokenUnknown(t *testing.T) {
	repo, mock := newCredentialMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM auth_credentials WHERE reset_token=?")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByResetToken(context.Background(), "nope")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestGetByUserIDScansResetColumns(t *testing.T) {
	repo, mock := newCredentialMock(t)
	exp := time.Now().Add(time.Hour).UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM auth_credentials WHERE user_id=?")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "password_hash", "reset_token", "reset_token_expires", "created_at", "updated_at"}).
			AddRow(1, 4, "pw", "tok", exp, exp, exp))

	c, err := repo.GetByUserID(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, c.ResetToken)
	assert.Equal(t, "tok", *c.ResetToken)
	require.NotNil(t, c.ResetTokenExpires)
	assert.Equal(t, exp, *c.ResetTokenExpires)
}

func TestUpdatePasswordMissingRow(t *testing.T) {
	repo, mock := newCredentialMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE auth_credentials SET password_hash=?")).
		WithArgs("h", uint64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), 8, "h")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
