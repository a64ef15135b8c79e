package service

import (
	"context"
	"strings"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
	"github.com/carlosargenal/enlaceibabackend/internal/repository"
)

type EventStore interface {
	Create(ctx context.Context, f model.Fields) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
	Update(ctx context.Context, id uint64, f model.Fields) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, q repository.EventQuery) ([]model.Event, error)
	Count(ctx context.Context, q repository.EventQuery) (int64, error)
}

// eventEditable are the columns a client may set.  created_by is assigned
// from the caller's identity.
var eventEditable = []string{
	"event_name", "description", "event_date", "event_time", "location",
	"event_type", "image_url", "status", "is_featured", "show_on_home",
}

// EventFilter narrows an event listing.
type EventFilter struct {
	Status     string
	EventType  string
	Featured   *bool
	ShowOnHome *bool
	Search     string
	DateFrom   string
	Page       Page
}

type EventService struct {
	Events EventStore
}

func NewEventService(events EventStore) *EventService {
	return &EventService{Events: events}
}

func validEventStatus(status string) error {
	if !contains(model.EventStatuses, status) {
		return apperror.Validation("Invalid status. Must be one of: " + strings.Join(model.EventStatuses, ", "))
	}
	return nil
}

// normalizeEvent validates and rewrites the event fields present in f.
func normalizeEvent(f model.Fields) error {
	if v, ok := f["event_time"]; ok {
		t, err := normalizeTime(v)
		if err != nil {
			return err
		}
		f["event_time"] = t
	}
	if v, ok := f["event_date"]; ok {
		d, err := normalizeDate(v)
		if err != nil {
			return err
		}
		f["event_date"] = d
	}
	if v, ok := f["status"]; ok {
		s, _ := v.(string)
		s = strings.ToLower(strings.TrimSpace(s))
		if err := validEventStatus(s); err != nil {
			return err
		}
		f["status"] = s
	}
	return coerceBools(f, "is_featured", "show_on_home")
}

// Create stores a new event owned by ownerID and returns its id.
func (s *EventService) Create(ctx context.Context, data model.Fields, ownerID uint64) (uint64, error) {
	if err := requireFields(data, "event_name", "event_date", "event_time", "location", "event_type"); err != nil {
		return 0, err
	}
	f := sanitizePatch(data, eventEditable, "created_by")
	if err := normalizeEvent(f); err != nil {
		return 0, err
	}
	if _, ok := f["status"]; !ok {
		f["status"] = model.EventStatusActive
	}
	f["created_by"] = ownerID
	return s.Events.Create(ctx, f)
}

// owned loads event id and checks that requesterID created it.
func (s *EventService) owned(ctx context.Context, id, requesterID uint64) (*model.Event, error) {
	if err := requireID(id, "Event"); err != nil {
		return nil, err
	}
	ev, err := s.Events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(ev.CreatedBy, requesterID, "event"); err != nil {
		return nil, err
	}
	return ev, nil
}

// Update applies a partial update and returns the stored event.
func (s *EventService) Update(ctx context.Context, id uint64, data model.Fields, requesterID uint64) (*model.Event, error) {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return nil, err
	}
	f := sanitizePatch(data, eventEditable, "created_by")
	if len(f) == 0 {
		return nil, apperror.Validation("No valid fields to update")
	}
	if err := normalizeEvent(f); err != nil {
		return nil, err
	}
	if err := s.Events.Update(ctx, id, f); err != nil {
		return nil, err
	}
	return s.Events.GetByID(ctx, id)
}

func (s *EventService) Delete(ctx context.Context, id, requesterID uint64) error {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return err
	}
	return s.Events.Delete(ctx, id)
}

// GetByID returns an event.  Events that are not active are only visible to
// privileged callers; everyone else gets NOT_FOUND.
func (s *EventService) GetByID(ctx context.Context, id uint64, privileged bool) (*model.Event, error) {
	if err := requireID(id, "Event"); err != nil {
		return nil, err
	}
	ev, err := s.Events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.Status != model.EventStatusActive && !privileged {
		return nil, apperror.NotFound("Event")
	}
	return ev, nil
}

// List is the public listing: only active events.
func (s *EventService) List(ctx context.Context, f EventFilter) (*model.ListResult[model.Event], error) {
	f.Status = model.EventStatusActive
	return s.list(ctx, f)
}

// ListAdmin lists events of every status, optionally filtered by one.
func (s *EventService) ListAdmin(ctx context.Context, f EventFilter) (*model.ListResult[model.Event], error) {
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	if f.Status != "" {
		if err := validEventStatus(f.Status); err != nil {
			return nil, err
		}
	}
	return s.list(ctx, f)
}

func (s *EventService) list(ctx context.Context, f EventFilter) (*model.ListResult[model.Event], error) {
	p := f.Page.normalized()
	q := repository.EventQuery{
		Status:     f.Status,
		EventType:  strings.TrimSpace(f.EventType),
		Featured:   f.Featured,
		ShowOnHome: f.ShowOnHome,
		Search:     strings.TrimSpace(f.Search),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}
	if f.DateFrom != "" {
		d, err := normalizeDate(f.DateFrom)
		if err != nil {
			return nil, err
		}
		q.DateFrom = d
	}
	items, err := s.Events.List(ctx, q)
	if err != nil {
		return nil, err
	}
	total, err := s.Events.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	return newListResult(items, total, p), nil
}

func (s *EventService) patch(ctx context.Context, id, requesterID uint64, f model.Fields) (*model.Event, error) {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return nil, err
	}
	if err := s.Events.Update(ctx, id, f); err != nil {
		return nil, err
	}
	return s.Events.GetByID(ctx, id)
}

func (s *EventService) UpdateFeaturedStatus(ctx context.Context, id uint64, featured bool, requesterID uint64) (*model.Event, error) {
	return s.patch(ctx, id, requesterID, model.Fields{"is_featured": featured})
}

func (s *EventService) UpdateHomeStatus(ctx context.Context, id uint64, showOnHome bool, requesterID uint64) (*model.Event, error) {
	return s.patch(ctx, id, requesterID, model.Fields{"show_on_home": showOnHome})
}

// UpdateStatus moves an event to another lifecycle status.  The value is
// checked before the event is loaded.
func (s *EventService) UpdateStatus(ctx context.Context, id uint64, status string, requesterID uint64) (*model.Event, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return nil, apperror.MissingFields("status")
	}
	if err := validEventStatus(status); err != nil {
		return nil, err
	}
	return s.patch(ctx, id, requesterID, model.Fields{"status": status})
}
