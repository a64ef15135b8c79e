package service

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/carlosargenal/enlaceibabackend/internal/apperror"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
	"github.com/carlosargenal/enlaceibabackend/internal/repository"
)

type BlogStore interface {
	Create(ctx context.Context, f model.Fields) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.Blog, error)
	Update(ctx context.Context, id uint64, f model.Fields) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, q repository.BlogQuery) ([]model.Blog, error)
	Count(ctx context.Context, q repository.BlogQuery) (int64, error)
}

var blogEditable = []string{
	"title", "category", "content", "excerpt", "image_url", "is_featured", "is_active",
}

// BlogFilter narrows a blog listing.  Active is ignored by the public list.
type BlogFilter struct {
	Category string
	Featured *bool
	Active   *bool
	AuthorID uint64
	Search   string
	Page     Page
}

// BlogService manages blog posts.  Post bodies may carry user-generated HTML
// and are passed through a UGC policy; titles and excerpts are plain text.
type BlogService struct {
	Blogs BlogStore

	html  *bluemonday.Policy
	plain *bluemonday.Policy
}

func NewBlogService(blogs BlogStore) *BlogService {
	return &BlogService{
		Blogs: blogs,
		html:  bluemonday.UGCPolicy(),
		plain: bluemonday.StrictPolicy(),
	}
}

// normalizeBlog sanitizes the text fields present in f and coerces flags.
// Required columns that end up blank are rejected, on create and on patch.
func (s *BlogService) normalizeBlog(f model.Fields) error {
	for _, k := range []string{"title", "category", "excerpt", "image_url"} {
		if v, ok := f[k]; ok {
			f[k] = plainText(s.plain, v)
		}
	}
	if v, ok := f["content"]; ok {
		str, _ := v.(string)
		f["content"] = strings.TrimSpace(s.html.Sanitize(str))
	}
	if err := rejectBlank(f, "title", "category", "content"); err != nil {
		return err
	}
	return coerceBools(f, "is_featured", "is_active")
}

// Create stores a new post authored by authorID.  Posts are active unless
// the payload says otherwise.
func (s *BlogService) Create(ctx context.Context, data model.Fields, authorID uint64) (uint64, error) {
	if err := requireFields(data, "title", "category", "content"); err != nil {
		return 0, err
	}
	f := sanitizePatch(data, blogEditable, "author_id")
	if err := s.normalizeBlog(f); err != nil {
		return 0, err
	}
	if _, ok := f["is_active"]; !ok {
		f["is_active"] = true
	}
	f["author_id"] = authorID
	return s.Blogs.Create(ctx, f)
}

func (s *BlogService) owned(ctx context.Context, id, requesterID uint64) (*model.Blog, error) {
	if err := requireID(id, "Blog"); err != nil {
		return nil, err
	}
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(b.AuthorID, requesterID, "blog"); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BlogService) Update(ctx context.Context, id uint64, data model.Fields, requesterID uint64) (*model.Blog, error) {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return nil, err
	}
	f := sanitizePatch(data, blogEditable, "author_id")
	if len(f) == 0 {
		return nil, apperror.Validation("No valid fields to update")
	}
	if err := s.normalizeBlog(f); err != nil {
		return nil, err
	}
	if err := s.Blogs.Update(ctx, id, f); err != nil {
		return nil, err
	}
	return s.Blogs.GetByID(ctx, id)
}

func (s *BlogService) Delete(ctx context.Context, id, requesterID uint64) error {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return err
	}
	return s.Blogs.Delete(ctx, id)
}

func (s *BlogService) GetByID(ctx context.Context, id uint64) (*model.Blog, error) {
	if err := requireID(id, "Blog"); err != nil {
		return nil, err
	}
	return s.Blogs.GetByID(ctx, id)
}

// List is the public listing: only active posts.
func (s *BlogService) List(ctx context.Context, f BlogFilter) (*model.ListResult[model.Blog], error) {
	active := true
	f.Active = &active
	return s.list(ctx, f)
}

func (s *BlogService) ListAdmin(ctx context.Context, f BlogFilter) (*model.ListResult[model.Blog], error) {
	return s.list(ctx, f)
}

func (s *BlogService) list(ctx context.Context, f BlogFilter) (*model.ListResult[model.Blog], error) {
	p := f.Page.normalized()
	q := repository.BlogQuery{
		Active:   f.Active,
		Category: strings.TrimSpace(f.Category),
		Featured: f.Featured,
		AuthorID: f.AuthorID,
		Search:   strings.TrimSpace(f.Search),
		Limit:    p.Limit,
		Offset:   p.Offset,
	}
	items, err := s.Blogs.List(ctx, q)
	if err != nil {
		return nil, err
	}
	total, err := s.Blogs.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	return newListResult(items, total, p), nil
}

// UpdateBlogStatus activates or deactivates a post.  Only the author may.
func (s *BlogService) UpdateBlogStatus(ctx context.Context, id uint64, active bool, requesterID uint64) (*model.Blog, error) {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return nil, err
	}
	if err := s.Blogs.Update(ctx, id, model.Fields{"is_active": active}); err != nil {
		return nil, err
	}
	return s.Blogs.GetByID(ctx, id)
}

// UpdateFeaturedStatus toggles the featured flag.  Unlike every other
// mutation, an admin may do this on a post they did not write.
func (s *BlogService) UpdateFeaturedStatus(ctx context.Context, id uint64, featured bool, requesterID uint64, requesterIsAdmin bool) (*model.Blog, error) {
	if err := requireID(id, "Blog"); err != nil {
		return nil, err
	}
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requesterIsAdmin {
		if err := authorizeOwner(b.AuthorID, requesterID, "blog"); err != nil {
			return nil, err
		}
	}
	if err := s.Blogs.Update(ctx, id, model.Fields{"is_featured": featured}); err != nil {
		return nil, err
	}
	return s.Blogs.GetByID(ctx, id)
}
