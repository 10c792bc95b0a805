package repositories

import (
	"context"
	"errors"

	"blogapi/app/models"

	"github.com/dgraph-io/badger/v4"
)

var _ PostRepository = (*BadgerPostRepository)(nil)

// BadgerPostRepository implements PostRepository using BadgerDB. Blogs are
// read from the same database to snapshot their names onto posts.
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// List returns every post in insertion order
func (r *BadgerPostRepository) List(ctx context.Context) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			doc, err := readPost(it.Item())
			if err != nil {
				return err
			}
			posts = append(posts, models.ToPost(doc))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Create stores a new post under the blog named by in.BlogID
func (r *BadgerPostRepository) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	var doc models.PostDocument
	err := update(ctx, r.db, func(txn *badger.Txn) error {
		blog, err := getBlog(txn, in.BlogID)
		if errors.Is(err, ErrNotFound) {
			return ErrBlogNotFound
		}
		if err != nil {
			return err
		}

		doc = models.NewPostDocument(in, blog.Name)
		data, err := marshalEntity(doc)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(PostKeyPrefix, doc.ID), data)
	})
	if err != nil {
		return nil, err
	}
	post := models.ToPost(doc)
	return &post, nil
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var doc models.PostDocument
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		doc, err = getPost(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	post := models.ToPost(doc)
	return &post, nil
}

// Update overwrites the mutable fields of an existing post
func (r *BadgerPostRepository) Update(ctx context.Context, id string, in models.PostInput) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		doc, err := getPost(txn, id)
		if err != nil {
			return err
		}

		blog, err := getBlog(txn, in.BlogID)
		if errors.Is(err, ErrNotFound) {
			return ErrBlogNotFound
		}
		if err != nil {
			return err
		}
		doc.Apply(in, blog.Name)

		data, err := marshalEntity(doc)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(PostKeyPrefix, doc.ID), data)
	})
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(ctx context.Context, id string) error {
	return deleteEntity(ctx, r.db, PostKeyPrefix, id)
}

// Clear removes every post
func (r *BadgerPostRepository) Clear(ctx context.Context) error {
	return clearPrefix(r.db, PostKeyPrefix)
}

func getPost(txn *badger.Txn, id string) (models.PostDocument, error) {
	oid, ok := ParseID(id)
	if !ok {
		return models.PostDocument{}, ErrNotFound
	}
	item, err := txn.Get(entityKey(PostKeyPrefix, oid))
	if err == badger.ErrKeyNotFound {
		return models.PostDocument{}, ErrNotFound
	}
	if err != nil {
		return models.PostDocument{}, err
	}
	return readPost(item)
}

func readPost(item *badger.Item) (models.PostDocument, error) {
	var doc models.PostDocument
	id, err := idFromKey(PostKeyPrefix, item.Key())
	if err != nil {
		return doc, err
	}
	err = item.Value(func(val []byte) error {
		return unmarshalEntity(val, &doc)
	})
	doc.ID = id
	return doc, err
}
