package services

import (
	"context"

	"blogapi/app/models"
	"blogapi/app/repositories"
	"blogapi/app/validation"
)

// PostService handles business logic for posts
type PostService struct {
	postRepo  repositories.PostRepository
	validator *validation.Validator
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, validator *validation.Validator) *PostService {
	return &PostService{
		postRepo:  postRepo,
		validator: validator,
	}
}

// ListPosts returns every post
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost validates in and stores it with the current name of its blog
func (s *PostService) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	if err := s.validator.Post(ctx, &in); err != nil {
		return nil, err
	}
	return s.postRepo.Create(ctx, in)
}

// UpdatePost validates in and overwrites the post, refreshing its blogName
func (s *PostService) UpdatePost(ctx context.Context, id string, in models.PostInput) error {
	if err := s.validator.Post(ctx, &in); err != nil {
		return err
	}
	return s.postRepo.Update(ctx, id, in)
}

// DeletePost deletes a post by ID
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	return s.postRepo.Delete(ctx, id)
}
