package repository

import (
	"context"
	"database/sql"

	"github.com/carlosargenal/enlaceibabackend/internal/model"
)

// BlogQuery defines filters and pagination for listing blogs.
type BlogQuery struct {
	Active   *bool
	Category string
	Featured *bool
	AuthorID uint64
	Search   string
	Limit    int
	Offset   int
}

const blogSelect = `SELECT id, title, category, content, COALESCE(excerpt, ''), COALESCE(image_url, ''),
		author_id, is_featured, is_active, created_at, updated_at
	FROM blogs`

type BlogRepo struct{ DB *sql.DB }

func NewBlogRepo(db *sql.DB) *BlogRepo { return &BlogRepo{DB: db} }

func (r *BlogRepo) Create(ctx context.Context, f model.Fields) (uint64, error) {
	q, args, err := buildInsert("blogs", f, blogColumns)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, wrap("Blog", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrap("Blog", err)
	}
	return uint64(id), nil
}

func (r *BlogRepo) GetByID(ctx context.Context, id uint64) (*model.Blog, error) {
	b, err := scanBlog(r.DB.QueryRowContext(ctx, blogSelect+" WHERE id=? LIMIT 1", id))
	if err != nil {
		return nil, wrap("Blog", err)
	}
	return b, nil
}

func (r *BlogRepo) Update(ctx context.Context, id uint64, f model.Fields) error {
	q, args, err := buildUpdate("blogs", id, f, blogColumns)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, q, args...)
	return wrap("Blog", err)
}

func (r *BlogRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM blogs WHERE id=?", id)
	if err != nil {
		return wrap("Blog", err)
	}
	return requireAffected(res, "Blog")
}

func (q BlogQuery) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.Active != nil {
		conds = append(conds, "is_active = ?")
		args = append(args, boolPtrArg(q.Active))
	}
	if q.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, q.Category)
	}
	if q.Featured != nil {
		conds = append(conds, "is_featured = ?")
		args = append(args, boolPtrArg(q.Featured))
	}
	if q.AuthorID != 0 {
		conds = append(conds, "author_id = ?")
		args = append(args, q.AuthorID)
	}
	if q.Search != "" {
		p := likePattern(q.Search)
		conds = append(conds, "(LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?)")
		args = append(args, p, p)
	}
	return whereClause(conds), args
}

// List returns one page of blogs matching q, newest first.
func (r *BlogRepo) List(ctx context.Context, q BlogQuery) ([]model.Blog, error) {
	cond, args := q.where()
	rows, err := r.DB.QueryContext(ctx,
		blogSelect+" WHERE "+cond+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, wrap("Blog", err)
	}
	defer rows.Close()

	out := make([]model.Blog, 0, q.Limit)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, wrap("Blog", err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("Blog", err)
	}
	return out, nil
}

func (r *BlogRepo) Count(ctx context.Context, q BlogQuery) (int64, error) {
	cond, args := q.where()
	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM blogs WHERE "+cond, args...).Scan(&total); err != nil {
		return 0, wrap("Blog", err)
	}
	return total, nil
}

func scanBlog(s scanner) (*model.Blog, error) {
	var b model.Blog
	err := s.Scan(&b.ID, &b.Title, &b.Category, &b.Content, &b.Excerpt, &b.ImageURL,
		&b.AuthorID, &b.IsFeatured, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
