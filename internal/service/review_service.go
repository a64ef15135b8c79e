package service

import (
	"context"

	"github.com/microcosm-cc/bluemonday"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
	"github.com/carlosargenal/enlaceibabackend/internal/repository"
)

type ReviewStore interface {
	Create(ctx context.Context, f model.Fields) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.Review, error)
	Update(ctx context.Context, id uint64, f model.Fields) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, q repository.ReviewQuery) ([]model.Review, error)
	Count(ctx context.Context, q repository.ReviewQuery) (int64, error)
	IncrementLikes(ctx context.Context, id uint64) error
	IncrementDislikes(ctx context.Context, id uint64) error
}

// likes and dislikes are counters owned by the server and never editable.
var reviewEditable = []string{"property_id", "rating", "content"}

const (
	minRating = 1
	maxRating = 5
)

type ReviewFilter struct {
	PropertyID uint64
	UserID     uint64
	MinRating  int
	Page       Page
}

type ReviewService struct {
	Reviews ReviewStore

	plain *bluemonday.Policy
}

func NewReviewService(reviews ReviewStore) *ReviewService {
	return &ReviewService{Reviews: reviews, plain: bluemonday.StrictPolicy()}
}

func (s *ReviewService) normalizeReview(f model.Fields) error {
	if v, ok := f["property_id"]; ok {
		id, err := toInt("property_id", v)
		if err != nil {
			return err
		}
		if id <= 0 {
			return apperror.Validation("property_id must be a positive integer")
		}
		f["property_id"] = uint64(id)
	}
	if v, ok := f["rating"]; ok {
		r, err := toInt("rating", v)
		if err != nil {
			return err
		}
		if r < minRating || r > maxRating {
			return apperror.Validation("rating must be between 1 and 5")
		}
		f["rating"] = int(r)
	}
	if v, ok := f["content"]; ok {
		f["content"] = plainText(s.plain, v)
	}
	return rejectBlank(f, "content")
}

// Create stores a review written by userID.
func (s *ReviewService) Create(ctx context.Context, data model.Fields, userID uint64) (uint64, error) {
	if err := requireFields(data, "property_id", "rating", "content"); err != nil {
		return 0, err
	}
	f := sanitizePatch(data, reviewEditable, "user_id")
	if err := s.normalizeReview(f); err != nil {
		return 0, err
	}
	f["user_id"] = userID
	return s.Reviews.Create(ctx, f)
}

func (s *ReviewService) owned(ctx context.Context, id, requesterID uint64) (*model.Review, error) {
	if err := requireID(id, "Review"); err != nil {
		return nil, err
	}
	rv, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(rv.UserID, requesterID, "review"); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) Update(ctx context.Context, id uint64, data model.Fields, requesterID uint64) (*model.Review, error) {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return nil, err
	}
	f := sanitizePatch(data, reviewEditable, "user_id")
	if len(f) == 0 {
		return nil, apperror.Validation("No valid fields to update")
	}
	if err := s.normalizeReview(f); err != nil {
		return nil, err
	}
	if err := s.Reviews.Update(ctx, id, f); err != nil {
		return nil, err
	}
	return s.Reviews.GetByID(ctx, id)
}

func (s *ReviewService) Delete(ctx context.Context, id, requesterID uint64) error {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return err
	}
	return s.Reviews.Delete(ctx, id)
}

func (s *ReviewService) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	if err := requireID(id, "Review"); err != nil {
		return nil, err
	}
	return s.Reviews.GetByID(ctx, id)
}

func (s *ReviewService) List(ctx context.Context, f ReviewFilter) (*model.ListResult[model.Review], error) {
	if f.MinRating < 0 || f.MinRating > maxRating {
		return nil, apperror.Validation("min_rating must be between 0 and 5")
	}
	p := f.Page.normalized()
	q := repository.ReviewQuery{
		PropertyID: f.PropertyID,
		UserID:     f.UserID,
		MinRating:  f.MinRating,
		Limit:      p.Limit,
		Offset:     p.Offset,
	}
	items, err := s.Reviews.List(ctx, q)
	if err != nil {
		return nil, err
	}
	total, err := s.Reviews.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	return newListResult(items, total, p), nil
}

// Like adds one anonymous like and returns the updated review.
func (s *ReviewService) Like(ctx context.Context, id uint64) (*model.Review, error) {
	if err := requireID(id, "Review"); err != nil {
		return nil, err
	}
	if err := s.Reviews.IncrementLikes(ctx, id); err != nil {
		return nil, err
	}
	return s.Reviews.GetByID(ctx, id)
}

func (s *ReviewService) Dislike(ctx context.Context, id uint64) (*model.Review, error) {
	if err := requireID(id, "Review"); err != nil {
		return nil, err
	}
	if err := s.Reviews.IncrementDislikes(ctx, id); err != nil {
		return nil, err
	}
	return s.Reviews.GetByID(ctx, id)
}
