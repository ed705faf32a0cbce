package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrEmptyTitle is the cause carried by the ValidationError returned when a
	// note title is blank after trimming.
	ErrEmptyTitle = errors.New("note title cannot be empty")

	// ErrInvalidCategory marks a category rejected by a repository because it
	// violates the entity constraints.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrCategoryExists is returned by Add when the ID is already taken.
	ErrCategoryExists = errors.New("category already exists")
)

// ValidationError reports input rejected before it reaches storage.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StorageError wraps any failure raised by a repository implementation.
type StorageError struct {
	Op  string // e.g. "save note"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err for operation op. It returns nil if err is nil and
// returns err unchanged if it already is a StorageError.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is, or wraps, a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
