package repository

import (
	"context"
	"database/sql"

	"github.com/carlosargenal/enlaceibabackend/internal/model"
)

// EventQuery defines filters and pagination for listing events.  Nil
// pointers and empty strings mean "no filter".
type EventQuery struct {
	Status     string
	EventType  string
	Featured   *bool
	ShowOnHome *bool
	Search     string
	DateFrom   string
	Limit      int
	Offset     int
}

const eventSelect = `SELECT id, event_name, COALESCE(description, ''),
		DATE_FORMAT(event_date, '%Y-%m-%d'), TIME_FORMAT(event_time, '%H:%i:%s'),
		location, event_type, COALESCE(image_url, ''), created_by, status,
		is_featured, show_on_home, created_at, updated_at
	FROM events`

type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

// Create inserts the allowed columns of f and returns the new id.
func (r *EventRepo) Create(ctx context.Context, f model.Fields) (uint64, error) {
	q, args, err := buildInsert("events", f, eventColumns)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, wrap("Event", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrap("Event", err)
	}
	return uint64(id), nil
}

func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, eventSelect+" WHERE id=? LIMIT 1", id))
	if err != nil {
		return nil, wrap("Event", err)
	}
	return e, nil
}

// Update writes the allowed columns of f to event id.
func (r *EventRepo) Update(ctx context.Context, id uint64, f model.Fields) error {
	q, args, err := buildUpdate("events", id, f, eventColumns)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, q, args...)
	return wrap("Event", err)
}

func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	if err != nil {
		return wrap("Event", err)
	}
	return requireAffected(res, "Event")
}

func (q EventQuery) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, q.Status)
	}
	if q.EventType != "" {
		conds = append(conds, "event_type = ?")
		args = append(args, q.EventType)
	}
	if q.Featured != nil {
		conds = append(conds, "is_featured = ?")
		args = append(args, boolPtrArg(q.Featured))
	}
	if q.ShowOnHome != nil {
		conds = append(conds, "show_on_home = ?")
		args = append(args, boolPtrArg(q.ShowOnHome))
	}
	if q.Search != "" {
		p := likePattern(q.Search)
		conds = append(conds, "(LOWER(event_name) LIKE ? OR LOWER(location) LIKE ?)")
		args = append(args, p, p)
	}
	if q.DateFrom != "" {
		conds = append(conds, "event_date >= ?")
		args = append(args, q.DateFrom)
	}
	return whereClause(conds), args
}

// List returns one page of events matching q, soonest first.
func (r *EventRepo) List(ctx context.Context, q EventQuery) ([]model.Event, error) {
	cond, args := q.where()
	rows, err := r.DB.QueryContext(ctx,
		eventSelect+" WHERE "+cond+" ORDER BY event_date ASC, event_time ASC, id ASC LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, wrap("Event", err)
	}
	defer rows.Close()

	out := make([]model.Event, 0, q.Limit)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, wrap("Event", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("Event", err)
	}
	return out, nil
}

// Count returns the size of the whole filtered set, ignoring pagination.
func (r *EventRepo) Count(ctx context.Context, q EventQuery) (int64, error) {
	cond, args := q.where()
	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM events WHERE "+cond, args...).Scan(&total); err != nil {
		return 0, wrap("Event", err)
	}
	return total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*model.Event, error) {
	var e model.Event
	err := s.Scan(&e.ID, &e.EventName, &e.Description, &e.EventDate, &e.EventTime,
		&e.Location, &e.EventType, &e.ImageURL, &e.CreatedBy, &e.Status,
		&e.IsFeatured, &e.ShowOnHome, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
