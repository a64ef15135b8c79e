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

func ownedEvent(owner uint64, status string) func(context.Context, uint64) (*model.Event, error) {
	return func(_ context.Context, id uint64) (*model.Event, error) {
		return &model.Event{ID: id, CreatedBy: owner, Status: status}, nil
	}
}

func TestEventCreateMissingFields(t *testing.T) {
	svc := NewEventService(noopEventStore())

	_, err := svc.Create(context.Background(), model.Fields{"event_name": "Fair", "location": ""}, 1)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"event_date", "event_time", "location", "event_type"}, appErr.Fields)
}

func TestEventCreateNormalizes(t *testing.T) {
	store := noopEventStore()
	var got model.Fields
	store.createFn = func(_ context.Context, f model.Fields) (uint64, error) {
		got = f
		return 8, nil
	}
	svc := NewEventService(store)

	id, err := svc.Create(context.Background(), model.Fields{
		"event_name":  "Fair",
		"event_date":  "2024-06-01",
		"event_time":  "14:30",
		"location":    "Plaza",
		"event_type":  "fair",
		"is_featured": "true",
		"created_by":  float64(99),
		"id":          float64(5),
	}, 3)
	require.NoError(t, err)

	assert.Equal(t, uint64(8), id)
	assert.Equal(t, "14:30:00", got["event_time"])
	assert.Equal(t, true, got["is_featured"])
	assert.Equal(t, model.EventStatusActive, got["status"])
	assert.Equal(t, uint64(3), got["created_by"])
	assert.NotContains(t, got, "id")
}

func TestEventCreateRejectsBadTime(t *testing.T) {
	_, err := NewEventService(noopEventStore()).Create(context.Background(), model.Fields{
		"event_name": "Fair", "event_date": "2024-06-01", "event_time": "25:99",
		"location": "Plaza", "event_type": "fair",
	}, 1)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestEventUpdateByNonOwner(t *testing.T) {
	store := noopEventStore()
	store.getByIDFn = ownedEvent(1, model.EventStatusActive)
	store.updateFn = func(context.Context, uint64, model.Fields) error {
		t.Fatalf("non-owner update must not persist")
		return nil
	}
	svc := NewEventService(store)

	_, err := svc.Update(context.Background(), 4, model.Fields{"event_name": "x"}, 2)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))

	err = svc.Delete(context.Background(), 4, 2)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))
}

func TestEventUpdateStripsServerFields(t *testing.T) {
	store := noopEventStore()
	store.getByIDFn = ownedEvent(1, model.EventStatusActive)
	var got model.Fields
	store.updateFn = func(_ context.Context, _ uint64, f model.Fields) error {
		got = f
		return nil
	}
	svc := NewEventService(store)

	_, err := svc.Update(context.Background(), 4, model.Fields{
		"event_time": "09:05",
		"created_by": 7,
		"updated_at": "now",
		"bogus":      1,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, model.Fields{"event_time": "09:05:00"}, got)

	_, err = svc.Update(context.Background(), 4, model.Fields{"created_by": 7}, 1)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestEventUpdateValidation(t *testing.T) {
	svc := NewEventService(noopEventStore())

	_, err := svc.Update(context.Background(), 0, model.Fields{"event_name": "x"}, 1)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	store := noopEventStore()
	store.getByIDFn = func(context.Context, uint64) (*model.Event, error) { return nil, apperror.NotFound("Event") }
	_, err = NewEventService(store).Update(context.Background(), 3, model.Fields{"event_name": "x"}, 1)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestEventUpdateStatusRejectsUnknown(t *testing.T) {
	store := noopEventStore()
	store.getByIDFn = func(context.Context, uint64) (*model.Event, error) {
		t.Fatalf("status must be checked before loading the event")
		return nil, nil
	}

	_, err := NewEventService(store).UpdateStatus(context.Background(), 1, "archived", 1)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, apperror.PublicMessage(err), "active, cancelled, postponed, completed")
}

func TestEventUpdateStatusAccepted(t *testing.T) {
	store := noopEventStore()
	store.getByIDFn = ownedEvent(1, model.EventStatusActive)
	var got model.Fields
	store.updateFn = func(_ context.Context, _ uint64, f model.Fields) error { got = f; return nil }

	_, err := NewEventService(store).UpdateStatus(context.Background(), 1, "Postponed", 1)
	require.NoError(t, err)
	assert.Equal(t, model.Fields{"status": "postponed"}, got)
}

func TestEventGetByIDHidesInactive(t *testing.T) {
	store := noopEventStore()
	store.getByIDFn = ownedEvent(1, model.EventStatusCancelled)
	svc := NewEventService(store)

	_, err := svc.GetByID(context.Background(), 2, false)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	ev, err := svc.GetByID(context.Background(), 2, true)
	require.NoError(t, err)
	assert.Equal(t, model.EventStatusCancelled, ev.Status)
}

func TestEventListPagination(t *testing.T) {
	store := noopEventStore()
	var listQ, countQ repository.EventQuery
	store.listFn = func(_ context.Context, q repository.EventQuery) ([]model.Event, error) {
		listQ = q
		return []model.Event{{ID: 11}, {ID: 12}, {ID: 13}, {ID: 14}, {ID: 15}}, nil
	}
	store.countFn = func(_ context.Context, q repository.EventQuery) (int64, error) {
		countQ = q
		return 23, nil
	}
	svc := NewEventService(store)

	res, err := svc.List(context.Background(), EventFilter{Status: "cancelled", Page: NewPage("5", "10")})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Page)
	assert.Equal(t, int64(23), res.Total)
	assert.Equal(t, 5, res.TotalPages)
	assert.Len(t, res.Items, 5)
	assert.Equal(t, model.EventStatusActive, listQ.Status)
	assert.Equal(t, listQ, countQ)
	assert.Equal(t, 5, listQ.Limit)
	assert.Equal(t, 10, listQ.Offset)
}

func TestEventListAdminStatusFilter(t *testing.T) {
	store := noopEventStore()
	var q repository.EventQuery
	store.listFn = func(_ context.Context, got repository.EventQuery) ([]model.Event, error) { q = got; return nil, nil }
	svc := NewEventService(store)

	res, err := svc.ListAdmin(context.Background(), EventFilter{})
	require.NoError(t, err)
	assert.Equal(t, "", q.Status)
	assert.NotNil(t, res.Items)

	_, err = svc.ListAdmin(context.Background(), EventFilter{Status: "archived"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestEventFlagMutatorsCheckOwner(t *testing.T) {
	store := noopEventStore()
	store.getByIDFn = ownedEvent(1, model.EventStatusActive)
	var got model.Fields
	store.updateFn = func(_ context.Context, _ uint64, f model.Fields) error { got = f; return nil }
	svc := NewEventService(store)

	_, err := svc.UpdateFeaturedStatus(context.Background(), 1, true, 1)
	require.NoError(t, err)
	assert.Equal(t, model.Fields{"is_featured": true}, got)

	_, err = svc.UpdateHomeStatus(context.Background(), 1, true, 2)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))
}
