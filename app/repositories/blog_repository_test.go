package repositories

import (
	"context"
	"testing"
	"time"

	"blogapi/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerBlogRepository(setupTestDB(t))

	t.Run("list empty", func(t *testing.T) {
		blogs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, blogs)
		assert.Empty(t, blogs)
	})

	var created *models.Blog
	t.Run("create and get blog", func(t *testing.T) {
		var err error
		created, err = repo.Create(ctx, models.BlogInput{
			Name:        "New blog 1",
			Description: "New description 1",
			WebsiteURL:  "https://website1.com",
		})
		require.NoError(t, err)
		assert.Len(t, created.ID, 24)
		assert.False(t, created.IsMembership)
		_, err = time.Parse(time.RFC3339, created.CreatedAt)
		assert.NoError(t, err)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)

		ok, err := repo.Exists(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("get missing and malformed ids", func(t *testing.T) {
		for _, id := range []string{"aaaaa1111111111111111111", "bad", ""} {
			_, err := repo.GetByID(ctx, id)
			assert.ErrorIs(t, err, ErrNotFound, id)

			ok, err := repo.Exists(ctx, id)
			assert.NoError(t, err)
			assert.False(t, ok)
		}
	})

	t.Run("update blog", func(t *testing.T) {
		err := repo.Update(ctx, created.ID, models.BlogInput{
			Name:        "New blog 2",
			Description: "New description 2",
			WebsiteURL:  "https://website2.com",
		})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "New blog 2", got.Name)
		assert.Equal(t, "New description 2", got.Description)
		assert.Equal(t, "https://website2.com", got.WebsiteURL)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.CreatedAt, got.CreatedAt)
	})

	t.Run("update missing blog", func(t *testing.T) {
		err := repo.Update(ctx, "aaaaa1111111111111111111", models.BlogInput{Name: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
		err = repo.Update(ctx, "bad", models.BlogInput{Name: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		second, err := repo.Create(ctx, models.BlogInput{Name: "second", Description: "d", WebsiteURL: "https://b.io"})
		require.NoError(t, err)
		third, err := repo.Create(ctx, models.BlogInput{Name: "third", Description: "d", WebsiteURL: "https://c.io"})
		require.NoError(t, err)

		blogs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, blogs, 3)
		assert.Equal(t, []string{created.ID, second.ID, third.ID}, []string{blogs[0].ID, blogs[1].ID, blogs[2].ID})
	})

	t.Run("delete blog", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, "aaaaa1111111111111111111"), ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "bad"), ErrNotFound)

		require.NoError(t, repo.Delete(ctx, created.ID))
		_, err := repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, repo.Clear(ctx))
		blogs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, blogs)
	})
}
