// Package mongostore implements the blog and post repositories on MongoDB,
// one collection per entity.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"blogapi/app/models"
	"blogapi/app/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BlogsCollection = "blogs"
	PostsCollection = "posts"
)

var (
	_ repositories.BlogRepository = (*BlogRepository)(nil)
	_ repositories.PostRepository = (*PostRepository)(nil)
)

// Connect dials uri and pings the server.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// BlogRepository implements repositories.BlogRepository.
type BlogRepository struct {
	coll *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{coll: db.Collection(BlogsCollection)}
}

func (r *BlogRepository) List(ctx context.Context) ([]models.Blog, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	var docs []models.BlogDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	blogs := make([]models.Blog, 0, len(docs))
	for _, doc := range docs {
		blogs = append(blogs, models.ToBlog(doc))
	}
	return blogs, nil
}

func (r *BlogRepository) Create(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	doc := models.NewBlogDocument(in)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	blog := models.ToBlog(doc)
	return &blog, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	doc, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	blog := models.ToBlog(doc)
	return &blog, nil
}

func (r *BlogRepository) Exists(ctx context.Context, id string) (bool, error) {
	oid, ok := repositories.ParseID(id)
	if !ok {
		return false, nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count blogs: %w", err)
	}
	return n > 0, nil
}

func (r *BlogRepository) Update(ctx context.Context, id string, in models.BlogInput) error {
	oid, ok := repositories.ParseID(id)
	if !ok {
		return repositories.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        in.Name,
		"description": in.Description,
		"websiteUrl":  in.WebsiteURL,
	}})
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.coll, id)
}

func (r *BlogRepository) Clear(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return err
}

func (r *BlogRepository) find(ctx context.Context, id string) (models.BlogDocument, error) {
	var doc models.BlogDocument
	oid, ok := repositories.ParseID(id)
	if !ok {
		return doc, repositories.ErrNotFound
	}
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, repositories.ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("find blog: %w", err)
	}
	return doc, nil
}

// PostRepository implements repositories.PostRepository. The blog lookup
// and the post write are separate round trips; a blog removed in between is
// reported as repositories.ErrBlogNotFound.
type PostRepository struct {
	coll  *mongo.Collection
	blogs *BlogRepository
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		coll:  db.Collection(PostsCollection),
		blogs: NewBlogRepository(db),
	}
}

func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	var docs []models.PostDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, models.ToPost(doc))
	}
	return posts, nil
}

func (r *PostRepository) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	blogName, err := r.blogName(ctx, in.BlogID)
	if err != nil {
		return nil, err
	}
	doc := models.NewPostDocument(in, blogName)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	post := models.ToPost(doc)
	return &post, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var doc models.PostDocument
	oid, ok := repositories.ParseID(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	post := models.ToPost(doc)
	return &post, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, in models.PostInput) error {
	oid, ok := repositories.ParseID(id)
	if !ok {
		return repositories.ErrNotFound
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("find post: %w", err)
	}
	if n == 0 {
		return repositories.ErrNotFound
	}
	blogName, err := r.blogName(ctx, in.BlogID)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":            in.Title,
		"shortDescription": in.ShortDescription,
		"content":          in.Content,
		"blogId":           in.BlogID,
		"blogName":         blogName,
	}})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, r.coll, id)
}

func (r *PostRepository) Clear(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return err
}

func (r *PostRepository) blogName(ctx context.Context, blogID string) (string, error) {
	blog, err := r.blogs.find(ctx, blogID)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", repositories.ErrBlogNotFound
	}
	if err != nil {
		return "", err
	}
	return blog.Name, nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string) error {
	oid, ok := repositories.ParseID(id)
	if !ok {
		return repositories.ErrNotFound
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
