package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrIndexNotFound is returned when an index is not found
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexAlreadyExists is returned when trying to create an index that already exists
	ErrIndexAlreadyExists = errors.New("index already exists")

	// ErrTermNotFound is returned when a term has never been added to an index
	ErrTermNotFound = errors.New("term not found")

	// ErrCorruptData is returned when a stored posting list cannot be decoded
	ErrCorruptData = errors.New("corrupt posting data")

	// ErrStoreUnavailable is returned when the backing key-value store fails
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// IndexNotFoundError represents an index not found error with context
type IndexNotFoundError struct {
	IndexName string
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("index named '%s' not found", e.IndexName)
}

func (e *IndexNotFoundError) Is(target error) bool {
	return target == ErrIndexNotFound
}

// NewIndexNotFoundError creates a new IndexNotFoundError
func NewIndexNotFoundError(indexName string) *IndexNotFoundError {
	return &IndexNotFoundError{IndexName: indexName}
}

// IndexAlreadyExistsError represents an index already exists error with context
type IndexAlreadyExistsError struct {
	IndexName string
}

func (e *IndexAlreadyExistsError) Error() string {
	return fmt.Sprintf("index named '%s' already exists", e.IndexName)
}

func (e *IndexAlreadyExistsError) Is(target error) bool {
	return target == ErrIndexAlreadyExists
}

// NewIndexAlreadyExistsError creates a new IndexAlreadyExistsError
func NewIndexAlreadyExistsError(indexName string) *IndexAlreadyExistsError {
	return &IndexAlreadyExistsError{IndexName: indexName}
}

// TermNotFoundError represents a term not found error with context
type TermNotFoundError struct {
	Term      string
	IndexName string
}

func (e *TermNotFoundError) Error() string {
	if e.IndexName != "" {
		return fmt.Sprintf("term '%s' not found in index '%s'", e.Term, e.IndexName)
	}
	return fmt.Sprintf("term '%s' not found", e.Term)
}

func (e *TermNotFoundError) Is(target error) bool {
	return target == ErrTermNotFound
}

// NewTermNotFoundError creates a new TermNotFoundError
func NewTermNotFoundError(term string, indexName ...string) *TermNotFoundError {
	err := &TermNotFoundError{Term: term}
	if len(indexName) > 0 {
		err.IndexName = indexName[0]
	}
	return err
}

// CorruptDataError reports a stored posting-list buffer that is shorter than
// its declared length
type CorruptDataError struct {
	Declared int
	Actual   int
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt posting data: buffer declares %d bytes but holds %d", e.Declared, e.Actual)
}

func (e *CorruptDataError) Is(target error) bool {
	return target == ErrCorruptData
}

// NewCorruptDataError creates a new CorruptDataError
func NewCorruptDataError(declared, actual int) *CorruptDataError {
	return &CorruptDataError{Declared: declared, Actual: actual}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
