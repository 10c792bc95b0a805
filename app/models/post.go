package models

import (
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewPostDocument builds a fresh document for in, snapshotting the name of
// the blog it belongs to.
func NewPostDocument(in PostInput, blogName string) PostDocument {
	return PostDocument{
		ID:               primitive.NewObjectID(),
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		Content:          in.Content,
		BlogID:           in.BlogID,
		BlogName:         blogName,
		CreatedAt:        Now(),
	}
}

// Apply overwrites the mutable fields of d with in and re-snapshots the
// blog name.
func (d *PostDocument) Apply(in PostInput, blogName string) {
	d.Title = in.Title
	d.ShortDescription = in.ShortDescription
	d.Content = in.Content
	d.BlogID = in.BlogID
	d.BlogName = blogName
}

// ToPost maps a stored post to its API shape.
func ToPost(d PostDocument) Post {
	return Post{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		ShortDescription: d.ShortDescription,
		Content:          d.Content,
		BlogID:           d.BlogID,
		BlogName:         d.BlogName,
		CreatedAt:        d.CreatedAt.UTC().Format(TimeLayout),
	}
}

// Sanitize trims every field.
func (in *PostInput) Sanitize() {
	in.Title = strings.TrimSpace(in.Title)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
	in.Content = strings.TrimSpace(in.Content)
	in.BlogID = strings.TrimSpace(in.BlogID)
}

func (in *PostInput) UnmarshalJSON(data []byte) error {
	return decodeText(data, map[string]*string{
		"title":            &in.Title,
		"shortDescription": &in.ShortDescription,
		"content":          &in.Content,
		"blogId":           &in.BlogID,
	})
}

func decodeText(data []byte, fields map[string]*string) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for name, dst := range fields {
		if s, ok := raw[name].(string); ok {
			*dst = s
		}
	}
	return nil
}
