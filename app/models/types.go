package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogDocument is a blog as it is persisted.
type BlogDocument struct {
	ID           primitive.ObjectID `bson:"_id" cbor:"-"`
	Name         string             `bson:"name" cbor:"name"`
	Description  string             `bson:"description" cbor:"description"`
	WebsiteURL   string             `bson:"websiteUrl" cbor:"websiteUrl"`
	CreatedAt    time.Time          `bson:"createdAt" cbor:"createdAt"`
	IsMembership bool               `bson:"isMembership" cbor:"isMembership"`
}

// PostDocument is a post as it is persisted. BlogName is a snapshot of the
// referenced blog's name taken when the post was last written.
type PostDocument struct {
	ID               primitive.ObjectID `bson:"_id" cbor:"-"`
	Title            string             `bson:"title" cbor:"title"`
	ShortDescription string             `bson:"shortDescription" cbor:"shortDescription"`
	Content          string             `bson:"content" cbor:"content"`
	BlogID           string             `bson:"blogId" cbor:"blogId"`
	BlogName         string             `bson:"blogName" cbor:"blogName"`
	CreatedAt        time.Time          `bson:"createdAt" cbor:"createdAt"`
}

// Blog is the API representation of a blog.
type Blog struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	WebsiteURL   string `json:"websiteUrl"`
	CreatedAt    string `json:"createdAt"`
	IsMembership bool   `json:"isMembership"`
}

// Post is the API representation of a post.
type Post struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Content          string `json:"content"`
	BlogID           string `json:"blogId"`
	BlogName         string `json:"blogName"`
	CreatedAt        string `json:"createdAt"`
}

// BlogInput carries the client-settable blog fields for create and update.
type BlogInput struct {
	Name        string `json:"name" validate:"required,max=15"`
	Description string `json:"description" validate:"required,max=500"`
	WebsiteURL  string `json:"websiteUrl" validate:"required,max=100,websiteurl"`
}

// PostInput carries the client-settable post fields for create and update.
type PostInput struct {
	Title            string `json:"title" validate:"required,max=30"`
	ShortDescription string `json:"shortDescription" validate:"required,max=100"`
	Content          string `json:"content" validate:"required,max=1000"`
	BlogID           string `json:"blogId" validate:"required"`
}
