package services

import (
	"context"

	"blogapi/app/models"
	"blogapi/app/repositories"
	"blogapi/app/validation"
)

// BlogService handles business logic for blogs
type BlogService struct {
	blogRepo  repositories.BlogRepository
	validator *validation.Validator
}

// NewBlogService creates a new BlogService
func NewBlogService(blogRepo repositories.BlogRepository, validator *validation.Validator) *BlogService {
	return &BlogService{
		blogRepo:  blogRepo,
		validator: validator,
	}
}

// ListBlogs returns every blog
func (s *BlogService) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	return s.blogRepo.List(ctx)
}

// GetBlog retrieves a blog by ID
func (s *BlogService) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	return s.blogRepo.GetByID(ctx, id)
}

// CreateBlog validates in and stores it as a new blog
func (s *BlogService) CreateBlog(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	if err := s.validator.Blog(ctx, &in); err != nil {
		return nil, err
	}
	return s.blogRepo.Create(ctx, in)
}

// UpdateBlog validates in and overwrites the blog. Input is checked before
// the blog is looked up, so a bad body on a missing id is a validation error.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, in models.BlogInput) error {
	if err := s.validator.Blog(ctx, &in); err != nil {
		return err
	}
	return s.blogRepo.Update(ctx, id, in)
}

// DeleteBlog deletes a blog. Posts referencing it are left in place.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	return s.blogRepo.Delete(ctx, id)
}
