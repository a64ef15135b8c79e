package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carlosargenal/enlaceibabackend/internal/middleware"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
	"github.com/carlosargenal/enlaceibabackend/internal/service"
)

type EventService interface {
	Create(ctx context.Context, data model.Fields, ownerID uint64) (uint64, error)
	Update(ctx context.Context, id uint64, data model.Fields, requesterID uint64) (*model.Event, error)
	Delete(ctx context.Context, id, requesterID uint64) error
	GetByID(ctx context.Context, id uint64, privileged bool) (*model.Event, error)
	List(ctx context.Context, f service.EventFilter) (*model.ListResult[model.Event], error)
	ListAdmin(ctx context.Context, f service.EventFilter) (*model.ListResult[model.Event], error)
	UpdateFeaturedStatus(ctx context.Context, id uint64, featured bool, requesterID uint64) (*model.Event, error)
	UpdateHomeStatus(ctx context.Context, id uint64, showOnHome bool, requesterID uint64) (*model.Event, error)
	UpdateStatus(ctx context.Context, id uint64, status string, requesterID uint64) (*model.Event, error)
}

// EventHandler serves the /events endpoints.
type EventHandler struct {
	Events EventService
}

func NewEventHandler(events EventService) *EventHandler {
	return &EventHandler{Events: events}
}

func eventFilterFrom(c echo.Context) (service.EventFilter, error) {
	featured, err := queryBool(c, "featured")
	if err != nil {
		return service.EventFilter{}, err
	}
	home, err := queryBool(c, "show_on_home")
	if err != nil {
		return service.EventFilter{}, err
	}
	return service.EventFilter{
		Status:     strings.TrimSpace(c.QueryParam("status")),
		EventType:  strings.TrimSpace(c.QueryParam("event_type")),
		Featured:   featured,
		ShowOnHome: home,
		Search:     strings.TrimSpace(c.QueryParam("search")),
		DateFrom:   strings.TrimSpace(c.QueryParam("date_from")),
		Page:       service.NewPage(c.QueryParam("limit"), c.QueryParam("offset")),
	}, nil
}

// List handles GET /events; only active events are returned.
func (h *EventHandler) List(c echo.Context) error {
	f, err := eventFilterFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.Events.List(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ListAdmin handles GET /events/admin/all with any status.
func (h *EventHandler) ListAdmin(c echo.Context) error {
	f, err := eventFilterFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.Events.ListAdmin(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Get handles GET /events/:id.  Admins also see events that are not active.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	ev, err := h.Events.GetByID(c.Request().Context(), id, middleware.IsAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) Create(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := bindFields(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := h.Events.Create(c.Request().Context(), data, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "Event created successfully"})
}

func (h *EventHandler) Update(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := bindFields(c)
	if err != nil {
		return respondError(c, err)
	}
	ev, err := h.Events.Update(c.Request().Context(), id, data, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) Delete(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Events.Delete(c.Request().Context(), id, uid); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event deleted successfully"})
}

// SetFeatured handles PATCH /events/:id/featured with {"is_featured": bool}.
func (h *EventHandler) SetFeatured(c echo.Context) error {
	return h.flag(c, "is_featured", h.Events.UpdateFeaturedStatus)
}

// SetHome handles PATCH /events/:id/home with {"show_on_home": bool}.
func (h *EventHandler) SetHome(c echo.Context) error {
	return h.flag(c, "show_on_home", h.Events.UpdateHomeStatus)
}

type eventFlagFunc func(ctx context.Context, id uint64, v bool, requesterID uint64) (*model.Event, error)

func (h *EventHandler) flag(c echo.Context, name string, apply eventFlagFunc) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	v, err := bindFlag(c, name)
	if err != nil {
		return respondError(c, err)
	}
	ev, err := apply(c.Request().Context(), id, v, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// SetStatus handles PATCH /events/:id/status with {"status": "..."}.
func (h *EventHandler) SetStatus(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := bindJSON(c, &body); err != nil {
		return respondError(c, err)
	}
	ev, err := h.Events.UpdateStatus(c.Request().Context(), id, body.Status, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}
