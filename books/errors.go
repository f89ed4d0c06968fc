package books

import (
	"errors"
	"fmt"
)

var (
	ErrSlugRequired  = errors.New("books: slug is required")
	ErrSlugInvalid   = errors.New("books: slug contains invalid characters")
	ErrSlugExists    = errors.New("books: slug already exists")
	ErrTitleRequired = errors.New("books: title is required")
	ErrBookNotFound  = errors.New("books: book not found")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrBookNotFound
}
