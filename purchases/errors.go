package purchases

import (
	"errors"
	"fmt"
)

var (
	ErrUserRequired     = errors.New("purchases: user id is required")
	ErrBookRequired     = errors.New("purchases: book id is required")
	ErrPurchaseNotFound = errors.New("purchases: purchase not found")
	ErrPurchaseExists   = errors.New("purchases: purchase already recorded")
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
	return ErrPurchaseNotFound
}
