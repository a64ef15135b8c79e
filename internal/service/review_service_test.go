package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
	"github.com/carlosargenal/enlaceibabackend/internal/repository"
)

func TestReviewCreateValidatesRating(t *testing.T) {
	svc := NewReviewService(noopReviewStore())

	for _, rating := range []any{float64(0), float64(6), float64(3.5), "five"} {
		_, err := svc.Create(context.Background(), model.Fields{
			"property_id": float64(1), "rating": rating, "content": "ok",
		}, 1)
		assert.True(t, apperror.Is(err, apperror.KindValidation), "rating %v", rating)
	}
}

func TestReviewCreateAssignsOwner(t *testing.T) {
	store := noopReviewStore()
	var got model.Fields
	store.createFn = func(_ context.Context, f model.Fields) (uint64, error) { got = f; return 1, nil }

	_, err := NewReviewService(store).Create(context.Background(), model.Fields{
		"property_id": float64(12), "rating": "4", "content": "Great stay",
		"likes": float64(1000), "user_id": float64(77),
	}, 5)
	require.NoError(t, err)

	assert.Equal(t, model.Fields{
		"property_id": uint64(12),
		"rating":      4,
		"content":     "Great stay",
		"user_id":     uint64(5),
	}, got)
}

func TestReviewCreateMissingFields(t *testing.T) {
	_, err := NewReviewService(noopReviewStore()).Create(context.Background(), model.Fields{}, 1)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"property_id", "rating", "content"}, appErr.Fields)
}

func TestReviewUpdateOwnerOnly(t *testing.T) {
	store := noopReviewStore()
	store.getByIDFn = func(_ context.Context, id uint64) (*model.Review, error) {
		return &model.Review{ID: id, UserID: 1}, nil
	}
	svc := NewReviewService(store)

	_, err := svc.Update(context.Background(), 2, model.Fields{"content": "edit"}, 9)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))

	_, err = svc.Update(context.Background(), 2, model.Fields{"likes": float64(5)}, 1)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	store.deleteFn = func(context.Context, uint64) error {
		t.Fatalf("non-owner delete must not reach the store")
		return nil
	}
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(svc.Delete(context.Background(), 2, 9)))
}

func TestReviewContentKeepsCharacters(t *testing.T) {
	store := noopReviewStore()
	var got model.Fields
	store.createFn = func(_ context.Context, f model.Fields) (uint64, error) { got = f; return 1, nil }

	_, err := NewReviewService(store).Create(context.Background(), model.Fields{
		"property_id": float64(1), "rating": float64(5), "content": "5 > 3 & it's <b>great</b>",
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, "5 > 3 & it's great", got["content"])

	_, err = NewReviewService(store).Create(context.Background(), model.Fields{
		"property_id": float64(1), "rating": float64(5), "content": "<script></script>",
	}, 2)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestReviewListMinRatingMessage(t *testing.T) {
	_, err := NewReviewService(noopReviewStore()).List(context.Background(), ReviewFilter{MinRating: -1})
	require.Error(t, err)
	assert.Equal(t, "min_rating must be between 0 and 5", apperror.PublicMessage(err))
}

func TestReviewLikeMissing(t *testing.T) {
	store := noopReviewStore()
	store.likeFn = func(context.Context, uint64) error { return apperror.NotFound("Review") }

	_, err := NewReviewService(store).Like(context.Background(), 3)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = NewReviewService(store).Dislike(context.Background(), 0)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestReviewListFilters(t *testing.T) {
	store := noopReviewStore()
	var q repository.ReviewQuery
	store.listFn = func(_ context.Context, got repository.ReviewQuery) ([]model.Review, error) { q = got; return nil, nil }
	svc := NewReviewService(store)

	_, err := svc.List(context.Background(), ReviewFilter{PropertyID: 4, MinRating: 3, Page: Page{Limit: 500}})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), q.PropertyID)
	assert.Equal(t, 3, q.MinRating)
	assert.Equal(t, MaxPageLimit, q.Limit)

	_, err = svc.List(context.Background(), ReviewFilter{MinRating: 9})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
