package account

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateUsername is returned by stores when the username is taken.
	ErrDuplicateUsername = errors.New("account: username already exists")
	// ErrInvalidUsername is returned when the username policy cannot produce
	// a usable username.
	ErrInvalidUsername = errors.New("account: username contains invalid characters")
	// ErrUnknownPolicy is returned by ParsePolicy.
	ErrUnknownPolicy = errors.New("account: unknown username policy")
	// ErrNoStore is returned by Create when the materializer has no store.
	ErrNoStore = errors.New("account: no store configured")
)

// StorageError wraps a failure reported by a Store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("account: storage: %v", e.Err)
	}
	return fmt.Sprintf("account: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
