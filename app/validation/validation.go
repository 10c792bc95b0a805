// Package validation checks client input for blogs and posts before any
// write reaches a repository.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"blogapi/app/models"

	"github.com/go-playground/validator/v10"
)

var websiteURLPattern = regexp.MustCompile(`^https://([a-zA-Z0-9_-]+\.)+[a-zA-Z0-9_-]+(\/[a-zA-Z0-9_-]+)*\/?$`)

// FieldError describes one rejected field.
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// Error lists every rejected field of one input, in declaration order.
type Error struct {
	Errors []FieldError `json:"errorsMessages"`
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}

// Has reports whether field is among the rejected fields.
func (e *Error) Has(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Invalid builds the entry reported for a rejected field.
func Invalid(field string) FieldError {
	return FieldError{Message: "Invalid " + field, Field: field}
}

// BlogLookup resolves whether a blog id refers to a stored blog.
type BlogLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Validator runs the field rules for blogs and posts.
type Validator struct {
	validate *validator.Validate
	blogs    BlogLookup
}

// New creates a Validator. blogs is consulted for the blogId rule of posts.
func New(blogs BlogLookup) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Only fails for an empty tag name, which is a programming error.
	if err := v.RegisterValidation("websiteurl", func(fl validator.FieldLevel) bool {
		return websiteURLPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Validator{validate: v, blogs: blogs}
}

// Blog trims in and checks it. It returns *Error when any field is rejected.
func (v *Validator) Blog(ctx context.Context, in *models.BlogInput) error {
	in.Sanitize()
	verr, err := v.check(ctx, in)
	if err != nil {
		return err
	}
	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}

// Post trims in and checks it, including that blogId names a stored blog.
// It returns *Error when any field is rejected and the lookup error when the
// blog store could not be queried.
func (v *Validator) Post(ctx context.Context, in *models.PostInput) error {
	in.Sanitize()
	verr, err := v.check(ctx, in)
	if err != nil {
		return err
	}
	if !verr.Has("blogId") {
		ok, err := v.blogs.Exists(ctx, in.BlogID)
		if err != nil {
			return fmt.Errorf("look up blog %q: %w", in.BlogID, err)
		}
		if !ok {
			verr.Errors = append(verr.Errors, Invalid("blogId"))
		}
	}
	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}

func (v *Validator) check(ctx context.Context, in any) (*Error, error) {
	verr := &Error{}
	err := v.validate.StructCtx(ctx, in)
	if err == nil {
		return verr, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}
	for _, fe := range fieldErrs {
		verr.Errors = append(verr.Errors, Invalid(fe.Field()))
	}
	return verr, nil
}
