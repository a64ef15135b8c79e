package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
	"github.com/carlosargenal/enlaceibabackend/internal/service"
)

type ReviewService interface {
	Create(ctx context.Context, data model.Fields, userID uint64) (uint64, error)
	Update(ctx context.Context, id uint64, data model.Fields, requesterID uint64) (*model.Review, error)
	Delete(ctx context.Context, id, requesterID uint64) error
	GetByID(ctx context.Context, id uint64) (*model.Review, error)
	List(ctx context.Context, f service.ReviewFilter) (*model.ListResult[model.Review], error)
	Like(ctx context.Context, id uint64) (*model.Review, error)
	Dislike(ctx context.Context, id uint64) (*model.Review, error)
}

// ReviewHandler serves the /reviews endpoints.
type ReviewHandler struct {
	Reviews ReviewService
}

func NewReviewHandler(reviews ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

func reviewFilterFrom(c echo.Context) (service.ReviewFilter, error) {
	property, err := queryUint(c, "property_id")
	if err != nil {
		return service.ReviewFilter{}, err
	}
	user, err := queryUint(c, "user_id")
	if err != nil {
		return service.ReviewFilter{}, err
	}
	minRating := 0
	if raw := strings.TrimSpace(c.QueryParam("min_rating")); raw != "" {
		if minRating, err = strconv.Atoi(raw); err != nil {
			return service.ReviewFilter{}, apperror.Validation("Invalid min_rating parameter")
		}
	}
	return service.ReviewFilter{
		PropertyID: property,
		UserID:     user,
		MinRating:  minRating,
		Page:       service.NewPage(c.QueryParam("limit"), c.QueryParam("offset")),
	}, nil
}

func (h *ReviewHandler) List(c echo.Context) error {
	f, err := reviewFilterFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.Reviews.List(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ReviewHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	r, err := h.Reviews.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReviewHandler) Create(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := bindFields(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := h.Reviews.Create(c.Request().Context(), data, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "Review created successfully"})
}

func (h *ReviewHandler) Update(c echo.Context) error {
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
	r, err := h.Reviews.Update(c.Request().Context(), id, data, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Reviews.Delete(c.Request().Context(), id, uid); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Review deleted successfully"})
}

// Like handles POST /reviews/:id/like.  Voting is anonymous.
func (h *ReviewHandler) Like(c echo.Context) error {
	return h.vote(c, h.Reviews.Like)
}

// Dislike handles POST /reviews/:id/dislike.
func (h *ReviewHandler) Dislike(c echo.Context) error {
	return h.vote(c, h.Reviews.Dislike)
}

func (h *ReviewHandler) vote(c echo.Context, apply func(context.Context, uint64) (*model.Review, error)) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	r, err := apply(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}
