package repository

import (
	"context"
	"database/sql"

	"github.com/carlosargenal/enlaceibabackend/internal/model"
)

// ReviewQuery defines filters and pagination for listing reviews.
type ReviewQuery struct {
	PropertyID uint64
	UserID     uint64
	MinRating  int
	Limit      int
	Offset     int
}

const reviewSelect = `SELECT id, property_id, user_id, rating, content, likes, dislikes, created_at, updated_at
	FROM reviews`

type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

func (r *ReviewRepo) Create(ctx context.Context, f model.Fields) (uint64, error) {
	q, args, err := buildInsert("reviews", f, reviewColumns)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, wrap("Review", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrap("Review", err)
	}
	return uint64(id), nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	rv, err := scanReview(r.DB.QueryRowContext(ctx, reviewSelect+" WHERE id=? LIMIT 1", id))
	if err != nil {
		return nil, wrap("Review", err)
	}
	return rv, nil
}

func (r *ReviewRepo) Update(ctx context.Context, id uint64, f model.Fields) error {
	q, args, err := buildUpdate("reviews", id, f, reviewColumns)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, q, args...)
	return wrap("Review", err)
}

func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	if err != nil {
		return wrap("Review", err)
	}
	return requireAffected(res, "Review")
}

// IncrementLikes bumps the like counter atomically in the database.
func (r *ReviewRepo) IncrementLikes(ctx context.Context, id uint64) error {
	return r.increment(ctx, id, "UPDATE reviews SET likes = likes + 1 WHERE id=?")
}

func (r *ReviewRepo) IncrementDislikes(ctx context.Context, id uint64) error {
	return r.increment(ctx, id, "UPDATE reviews SET dislikes = dislikes + 1 WHERE id=?")
}

func (r *ReviewRepo) increment(ctx context.Context, id uint64, stmt string) error {
	res, err := r.DB.ExecContext(ctx, stmt, id)
	if err != nil {
		return wrap("Review", err)
	}
	return requireAffected(res, "Review")
}

func (q ReviewQuery) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.PropertyID != 0 {
		conds = append(conds, "property_id = ?")
		args = append(args, q.PropertyID)
	}
	if q.UserID != 0 {
		conds = append(conds, "user_id = ?")
		args = append(args, q.UserID)
	}
	if q.MinRating > 0 {
		conds = append(conds, "rating >= ?")
		args = append(args, q.MinRating)
	}
	return whereClause(conds), args
}

// List returns one page of reviews matching q, newest first.
func (r *ReviewRepo) List(ctx context.Context, q ReviewQuery) ([]model.Review, error) {
	cond, args := q.where()
	rows, err := r.DB.QueryContext(ctx,
		reviewSelect+" WHERE "+cond+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, wrap("Review", err)
	}
	defer rows.Close()

	out := make([]model.Review, 0, q.Limit)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, wrap("Review", err)
		}
		out = append(out, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("Review", err)
	}
	return out, nil
}

func (r *ReviewRepo) Count(ctx context.Context, q ReviewQuery) (int64, error) {
	cond, args := q.where()
	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews WHERE "+cond, args...).Scan(&total); err != nil {
		return 0, wrap("Review", err)
	}
	return total, nil
}

func scanReview(s scanner) (*model.Review, error) {
	var rv model.Review
	err := s.Scan(&rv.ID, &rv.PropertyID, &rv.UserID, &rv.Rating, &rv.Content,
		&rv.Likes, &rv.Dislikes, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
