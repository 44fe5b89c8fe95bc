package tagcmp

import "errors"

// Sentinel errors for component operations.
var (
	ErrResourceNotFound   = errors.New("tagcmp: resource not found")
	ErrResourceUnreadable = errors.New("tagcmp: resource unreadable")
	ErrMarkupRead         = errors.New("tagcmp: reading markup failed")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrResourceNotFound)
}

// IsResourceError checks if err came from loading an external resource.
func IsResourceError(err error) bool {
	return errors.Is(err, ErrResourceNotFound) || errors.Is(err, ErrResourceUnreadable)
}
