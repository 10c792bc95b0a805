package repositories

import (
	"context"
	"errors"

	"blogapi/app/models"

	"github.com/dgraph-io/badger/v4"
)

var _ BlogRepository = (*BadgerBlogRepository)(nil)

// BadgerBlogRepository implements BlogRepository using BadgerDB
type BadgerBlogRepository struct {
	db *badger.DB
}

// NewBadgerBlogRepository creates a new BadgerBlogRepository
func NewBadgerBlogRepository(db *badger.DB) *BadgerBlogRepository {
	return &BadgerBlogRepository{db: db}
}

// List returns every blog in insertion order
func (r *BadgerBlogRepository) List(ctx context.Context) ([]models.Blog, error) {
	blogs := make([]models.Blog, 0)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(BlogKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			doc, err := readBlog(it.Item())
			if err != nil {
				return err
			}
			blogs = append(blogs, models.ToBlog(doc))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

// Create stores a new blog
func (r *BadgerBlogRepository) Create(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	doc := models.NewBlogDocument(in)
	data, err := marshalEntity(doc)
	if err != nil {
		return nil, err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entityKey(BlogKeyPrefix, doc.ID), data)
	})
	if err != nil {
		return nil, err
	}
	blog := models.ToBlog(doc)
	return &blog, nil
}

// GetByID retrieves a blog by ID
func (r *BadgerBlogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	var doc models.BlogDocument
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		doc, err = getBlog(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	blog := models.ToBlog(doc)
	return &blog, nil
}

// Exists reports whether a blog with the given ID is stored
func (r *BadgerBlogRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update overwrites the mutable fields of an existing blog
func (r *BadgerBlogRepository) Update(ctx context.Context, id string, in models.BlogInput) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		doc, err := getBlog(txn, id)
		if err != nil {
			return err
		}
		doc.Apply(in)

		data, err := marshalEntity(doc)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(BlogKeyPrefix, doc.ID), data)
	})
}

// Delete deletes a blog by ID
func (r *BadgerBlogRepository) Delete(ctx context.Context, id string) error {
	return deleteEntity(ctx, r.db, BlogKeyPrefix, id)
}

// Clear removes every blog
func (r *BadgerBlogRepository) Clear(ctx context.Context) error {
	return clearPrefix(r.db, BlogKeyPrefix)
}

func getBlog(txn *badger.Txn, id string) (models.BlogDocument, error) {
	oid, ok := ParseID(id)
	if !ok {
		return models.BlogDocument{}, ErrNotFound
	}
	item, err := txn.Get(entityKey(BlogKeyPrefix, oid))
	if err == badger.ErrKeyNotFound {
		return models.BlogDocument{}, ErrNotFound
	}
	if err != nil {
		return models.BlogDocument{}, err
	}
	return readBlog(item)
}

func readBlog(item *badger.Item) (models.BlogDocument, error) {
	var doc models.BlogDocument
	id, err := idFromKey(BlogKeyPrefix, item.Key())
	if err != nil {
		return doc, err
	}
	err = item.Value(func(val []byte) error {
		return unmarshalEntity(val, &doc)
	})
	doc.ID = id
	return doc, err
}

func deleteEntity(ctx context.Context, db *badger.DB, prefix, id string) error {
	oid, ok := ParseID(id)
	if !ok {
		return ErrNotFound
	}
	return update(ctx, db, func(txn *badger.Txn) error {
		key := entityKey(prefix, oid)

		// Verify the record exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

func clearPrefix(db *badger.DB, prefix string) error {
	var keys [][]byte
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}

	wb := db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return err
		}
	}
	return wb.Flush()
}
