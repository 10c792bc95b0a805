package mock

import (
	"context"
	"sync"

	"blogapi/app/models"
	"blogapi/app/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ repositories.BlogRepository = (*BlogRepository)(nil)
	_ repositories.PostRepository = (*PostRepository)(nil)
)

type BlogRepository struct {
	blogs map[primitive.ObjectID]models.BlogDocument
	order []primitive.ObjectID
	mutex sync.RWMutex
	// Err, when set, is returned by every method
	Err error
}

type PostRepository struct {
	posts map[primitive.ObjectID]models.PostDocument
	order []primitive.ObjectID
	blogs *BlogRepository
	mutex sync.RWMutex
	Err   error
}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{blogs: make(map[primitive.ObjectID]models.BlogDocument)}
}

// NewPostRepository creates a post repository that resolves blog names
// through blogs.
func NewPostRepository(blogs *BlogRepository) *PostRepository {
	return &PostRepository{
		posts: make(map[primitive.ObjectID]models.PostDocument),
		blogs: blogs,
	}
}

// BlogRepository implementation
func (m *BlogRepository) List(ctx context.Context) ([]models.Blog, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	blogs := make([]models.Blog, 0, len(m.order))
	for _, id := range m.order {
		blogs = append(blogs, models.ToBlog(m.blogs[id]))
	}
	return blogs, nil
}

func (m *BlogRepository) Create(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	doc := models.NewBlogDocument(in)
	m.blogs[doc.ID] = doc
	m.order = append(m.order, doc.ID)
	blog := models.ToBlog(doc)
	return &blog, nil
}

func (m *BlogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	doc, err := m.get(id)
	if err != nil {
		return nil, err
	}
	blog := models.ToBlog(doc)
	return &blog, nil
}

func (m *BlogRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, err := m.get(id)
	if err == repositories.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *BlogRepository) Update(ctx context.Context, id string, in models.BlogInput) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	oid, ok := repositories.ParseID(id)
	if !ok {
		return repositories.ErrNotFound
	}
	doc, exists := m.blogs[oid]
	if !exists {
		return repositories.ErrNotFound
	}
	doc.Apply(in)
	m.blogs[oid] = doc
	return nil
}

func (m *BlogRepository) Delete(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	oid, ok := repositories.ParseID(id)
	if !ok {
		return repositories.ErrNotFound
	}
	if _, exists := m.blogs[oid]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.blogs, oid)
	m.order = without(m.order, oid)
	return nil
}

func (m *BlogRepository) Clear(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	m.blogs = make(map[primitive.ObjectID]models.BlogDocument)
	m.order = nil
	return nil
}

func (m *BlogRepository) get(id string) (models.BlogDocument, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return models.BlogDocument{}, m.Err
	}

	oid, ok := repositories.ParseID(id)
	if !ok {
		return models.BlogDocument{}, repositories.ErrNotFound
	}
	doc, exists := m.blogs[oid]
	if !exists {
		return models.BlogDocument{}, repositories.ErrNotFound
	}
	return doc, nil
}

// PostRepository implementation
func (m *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	posts := make([]models.Post, 0, len(m.order))
	for _, id := range m.order {
		posts = append(posts, models.ToPost(m.posts[id]))
	}
	return posts, nil
}

func (m *PostRepository) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	name, err := m.blogName(in.BlogID)
	if err != nil {
		return nil, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	doc := models.NewPostDocument(in, name)
	m.posts[doc.ID] = doc
	m.order = append(m.order, doc.ID)
	post := models.ToPost(doc)
	return &post, nil
}

func (m *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	oid, ok := repositories.ParseID(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	doc, exists := m.posts[oid]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post := models.ToPost(doc)
	return &post, nil
}

func (m *PostRepository) Update(ctx context.Context, id string, in models.PostInput) error {
	if _, err := m.GetByID(ctx, id); err != nil {
		return err
	}
	name, err := m.blogName(in.BlogID)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	oid, ok := repositories.ParseID(id)
	if !ok {
		return repositories.ErrNotFound
	}
	doc, exists := m.posts[oid]
	if !exists {
		return repositories.ErrNotFound
	}
	doc.Apply(in, name)
	m.posts[oid] = doc
	return nil
}

func (m *PostRepository) Delete(ctx context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	oid, ok := repositories.ParseID(id)
	if !ok {
		return repositories.ErrNotFound
	}
	if _, exists := m.posts[oid]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, oid)
	m.order = without(m.order, oid)
	return nil
}

func (m *PostRepository) Clear(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	m.posts = make(map[primitive.ObjectID]models.PostDocument)
	m.order = nil
	return nil
}

func (m *PostRepository) blogName(blogID string) (string, error) {
	doc, err := m.blogs.get(blogID)
	if err == repositories.ErrNotFound {
		return "", repositories.ErrBlogNotFound
	}
	if err != nil {
		return "", err
	}
	return doc.Name, nil
}

func without(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
