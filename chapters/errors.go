package chapters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrBookRequired       = errors.New("chapters: book does not exist")
	ErrTitleRequired      = errors.New("chapters: front matter title is required")
	ErrSourcePathRequired = errors.New("chapters: source path is required")
	ErrOrderUnknown       = errors.New("chapters: source path carries no chapter number")
	ErrSlugInvalid        = errors.New("chapters: slug contains invalid characters")
	ErrDuplicateSlug      = errors.New("chapters: unable to determine unique slug")
	ErrUserRequired       = errors.New("chapters: user id is required")
	ErrChapterNotFound    = errors.New("chapters: chapter not found")
	ErrPurchaseRequired   = errors.New("chapters: bookmarking requires a purchase of the book")
	ErrFrontMatterInvalid = errors.New("chapters: front matter payload is invalid")
)

// NotFoundError represents missing records from repository lookups. Callers
// can match it with errors.As or errors.Is(err, ErrChapterNotFound).
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
	return ErrChapterNotFound
}

// PermissionError captures access denials such as bookmarking without a
// purchase of the chapter's book.
type PermissionError struct {
	UserID uuid.UUID
	BookID uuid.UUID
	Reason string
}

func (e *PermissionError) Error() string {
	if e == nil {
		return ErrPurchaseRequired.Error()
	}
	reason := strings.TrimSpace(e.Reason)
	if reason == "" {
		return ErrPurchaseRequired.Error()
	}
	return fmt.Sprintf("%s: %s", ErrPurchaseRequired.Error(), reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrPurchaseRequired
}
