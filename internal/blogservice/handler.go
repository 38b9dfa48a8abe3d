package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrNotPermitted = errors.New("you do not have permission to modify this blog")
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

// CreateBlog stores a new blog owned by userID. Likes default to zero.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest, userID int) (*Blog, error) {
	blog := &Blog{
		Title:  sanitizeText(req.Title),
		Author: sanitizeText(req.Author),
		URL:    req.URL,
		UserID: OwnerFor(userID),
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	v := common.NewValidator()
	validateBlog(v, blog)
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.insert(ctx, blog)
	if err != nil {
		return nil, err
	}

	s.invalidateStats()

	return s.m.getBlogByID(ctx, blog.ID)
}

// GetBlogByID returns a blog with its owner.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogByID(ctx, id)
}

// GetBlogs returns a page of blogs. A limit below 1 falls back to DefaultLimit.
func (s *BlogService) GetBlogs(ctx context.Context, limit, offset int) ([]Blog, error) {
	if limit < 1 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	if offset < 0 {
		offset = 0
	}

	return s.m.getBlogs(ctx, limit, offset)
}

// UpdateLikes sets the like count of a blog and returns the updated blog.
func (s *BlogService) UpdateLikes(ctx context.Context, id, likes int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateLikes(v, likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.updateLikes(ctx, id, likes)
	if err != nil {
		return nil, err
	}

	s.invalidateStats()

	return s.m.getBlogByID(ctx, id)
}

// DeleteBlog removes a blog when userID owns it, and returns ErrNotPermitted otherwise.
func (s *BlogService) DeleteBlog(ctx context.Context, blogID, userID int) error {
	v := common.NewValidator()
	validateInt(v, blogID, "id")
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.getBlogByID(ctx, blogID)
	if err != nil {
		return err
	}

	if !CanDelete(userID, blog) {
		return ErrNotPermitted
	}

	err = s.m.deleteBlog(ctx, blogID, userID)
	if err != nil {
		return err
	}

	s.invalidateStats()

	return nil
}

// GetStats summarizes all blogs. The result is cached until the next write.
func (s *BlogService) GetStats(ctx context.Context) (*Stats, error) {
	if stats, ok := common.Lookup[Stats](s.c, common.CacheKeyBlogStats); ok {
		return &stats, nil
	}

	gen := s.statsGen.Load()

	blogs, err := s.m.getAllBlogs(ctx)
	if err != nil {
		return nil, err
	}

	stats := Summarize(blogs)
	if s.statsGen.Load() == gen {
		s.c.Set(common.CacheKeyBlogStats, stats)
	}

	return &stats, nil
}

func (s *BlogService) invalidateStats() {
	s.statsGen.Add(1)
	s.c.Delete(common.CacheKeyBlogStats)
}
