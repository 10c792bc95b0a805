package repositories

import (
	"context"

	"blogapi/app/models"
)

// BlogRepository defines the interface for blog data access
type BlogRepository interface {
	List(ctx context.Context) ([]models.Blog, error)
	Create(ctx context.Context, in models.BlogInput) (*models.Blog, error)
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id string, in models.BlogInput) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	Create(ctx context.Context, in models.PostInput) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, id string, in models.PostInput) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}
