package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeLayout renders timestamps the way clients expect them: UTC with
// millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Now returns the current time truncated to what every store can round-trip.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NewBlogDocument builds a fresh document for in with a new id.
func NewBlogDocument(in BlogInput) BlogDocument {
	return BlogDocument{
		ID:           primitive.NewObjectID(),
		Name:         in.Name,
		Description:  in.Description,
		WebsiteURL:   in.WebsiteURL,
		CreatedAt:    Now(),
		IsMembership: false,
	}
}

// Apply overwrites the mutable fields of d with in.
func (d *BlogDocument) Apply(in BlogInput) {
	d.Name = in.Name
	d.Description = in.Description
	d.WebsiteURL = in.WebsiteURL
}

// ToBlog maps a stored blog to its API shape.
func ToBlog(d BlogDocument) Blog {
	return Blog{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Description:  d.Description,
		WebsiteURL:   d.WebsiteURL,
		CreatedAt:    d.CreatedAt.UTC().Format(TimeLayout),
		IsMembership: d.IsMembership,
	}
}

// Sanitize trims the free-text fields. WebsiteURL is left untouched.
func (in *BlogInput) Sanitize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

// UnmarshalJSON accepts any JSON object. Fields holding something other
// than a string are left empty so validation reports them.
func (in *BlogInput) UnmarshalJSON(data []byte) error {
	return decodeText(data, map[string]*string{
		"name":        &in.Name,
		"description": &in.Description,
		"websiteUrl":  &in.WebsiteURL,
	})
}
