package services

import (
	"context"
	"fmt"

	"blogapi/app/repositories"
)

// DataService wipes stored data. It backs the testing route.
type DataService struct {
	blogRepo repositories.BlogRepository
	postRepo repositories.PostRepository
}

func NewDataService(blogRepo repositories.BlogRepository, postRepo repositories.PostRepository) *DataService {
	return &DataService{blogRepo: blogRepo, postRepo: postRepo}
}

// ClearAll removes every post and then every blog.
func (s *DataService) ClearAll(ctx context.Context) error {
	if err := s.postRepo.Clear(ctx); err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	if err := s.blogRepo.Clear(ctx); err != nil {
		return fmt.Errorf("clear blogs: %w", err)
	}
	return nil
}
