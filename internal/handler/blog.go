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

type BlogService interface {
	Create(ctx context.Context, data model.Fields, authorID uint64) (uint64, error)
	Update(ctx context.Context, id uint64, data model.Fields, requesterID uint64) (*model.Blog, error)
	Delete(ctx context.Context, id, requesterID uint64) error
	GetByID(ctx context.Context, id uint64) (*model.Blog, error)
	List(ctx context.Context, f service.BlogFilter) (*model.ListResult[model.Blog], error)
	ListAdmin(ctx context.Context, f service.BlogFilter) (*model.ListResult[model.Blog], error)
	UpdateBlogStatus(ctx context.Context, id uint64, active bool, requesterID uint64) (*model.Blog, error)
	UpdateFeaturedStatus(ctx context.Context, id uint64, featured bool, requesterID uint64, requesterIsAdmin bool) (*model.Blog, error)
}

// BlogHandler serves the /blogs endpoints.
type BlogHandler struct {
	Blogs BlogService
}

func NewBlogHandler(blogs BlogService) *BlogHandler {
	return &BlogHandler{Blogs: blogs}
}

func blogFilterFrom(c echo.Context) (service.BlogFilter, error) {
	featured, err := queryBool(c, "featured")
	if err != nil {
		return service.BlogFilter{}, err
	}
	active, err := queryBool(c, "active")
	if err != nil {
		return service.BlogFilter{}, err
	}
	author, err := queryUint(c, "author_id")
	if err != nil {
		return service.BlogFilter{}, err
	}
	return service.BlogFilter{
		Category: strings.TrimSpace(c.QueryParam("category")),
		Featured: featured,
		Active:   active,
		AuthorID: author,
		Search:   strings.TrimSpace(c.QueryParam("search")),
		Page:     service.NewPage(c.QueryParam("limit"), c.QueryParam("offset")),
	}, nil
}

// List handles GET /blogs; inactive posts are never listed here.
func (h *BlogHandler) List(c echo.Context) error {
	f, err := blogFilterFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.Blogs.List(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ListAdmin handles GET /blogs/admin/all and honours ?active=.
func (h *BlogHandler) ListAdmin(c echo.Context) error {
	f, err := blogFilterFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.Blogs.ListAdmin(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *BlogHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	b, err := h.Blogs.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BlogHandler) Create(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	data, err := bindFields(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := h.Blogs.Create(c.Request().Context(), data, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "Blog created successfully"})
}

func (h *BlogHandler) Update(c echo.Context) error {
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
	b, err := h.Blogs.Update(c.Request().Context(), id, data, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BlogHandler) Delete(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.Blogs.Delete(c.Request().Context(), id, uid); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Blog deleted successfully"})
}

// SetStatus handles PATCH /blogs/:id/status with {"is_active": bool}.
func (h *BlogHandler) SetStatus(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	active, err := bindFlag(c, "is_active")
	if err != nil {
		return respondError(c, err)
	}
	b, err := h.Blogs.UpdateBlogStatus(c.Request().Context(), id, active, uid)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// SetFeatured handles PATCH /blogs/:id/featured with {"is_featured": bool}.
// Admins may feature any post.
func (h *BlogHandler) SetFeatured(c echo.Context) error {
	uid, err := requester(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	featured, err := bindFlag(c, "is_featured")
	if err != nil {
		return respondError(c, err)
	}
	b, err := h.Blogs.UpdateFeaturedStatus(c.Request().Context(), id, featured, uid, middleware.IsAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
