package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFieldsListsEveryField(t *testing.T) {
	err := MissingFields("event_name", "event_date", "location")

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, []string{"event_name", "event_date", "location"}, err.Fields)
	assert.Equal(t, "Missing required fields: event_name, event_date, location", err.Message)
}

func TestNormalize(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Normalize(nil))
	})

	t.Run("classified error passes through unchanged", func(t *testing.T) {
		orig := NotFound("Event")
		got := Normalize(orig)
		assert.Same(t, orig, got)
	})

	t.Run("wrapped classified error passes through", func(t *testing.T) {
		orig := fmt.Errorf("load event: %w", Authorization("nope"))
		got := Normalize(orig)
		assert.Equal(t, orig, got)
		assert.Equal(t, KindAuthorization, KindOf(got))
	})

	t.Run("unclassified error becomes database error", func(t *testing.T) {
		cause := errors.New("dial tcp 127.0.0.1:3306: connection refused")
		got := Normalize(cause)

		var appErr *Error
		require.ErrorAs(t, got, &appErr)
		assert.Equal(t, KindDatabase, appErr.Kind)
		assert.ErrorIs(t, got, cause)
		assert.Contains(t, got.Error(), "connection refused")
	})
}

func TestPublicMessageHidesDatabaseCause(t *testing.T) {
	err := Database(sql.ErrConnDone)

	assert.Equal(t, "A database error occurred", PublicMessage(err))
	assert.Equal(t, "A database error occurred", PublicMessage(errors.New("raw")))
	assert.Equal(t, "Blog not found", PublicMessage(NotFound("Blog")))
}

func TestIs(t *testing.T) {
	assert.True(t, Is(Validation("bad"), KindValidation))
	assert.False(t, Is(Validation("bad"), KindNotFound))
	assert.False(t, Is(errors.New("plain"), KindValidation))
	assert.Equal(t, KindDatabase, KindOf(errors.New("plain")))
}
