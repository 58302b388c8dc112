package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidName is returned when a corpus name could escape the samples directory
	ErrInvalidName = errors.New("invalid corpus name")

	// ErrCorpusNotFound is returned when no backing file (or cache entry) exists for a corpus
	ErrCorpusNotFound = errors.New("corpus not found")

	// ErrInvalidQuery is returned for an empty or blank query string
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidPage is returned when the requested page is out of range
	ErrInvalidPage = errors.New("invalid page")

	// ErrLoadFailed is returned when an existing corpus file cannot be read or decoded
	ErrLoadFailed = errors.New("corpus load failed")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidNameError represents a rejected corpus name
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("corpus name '%s' is invalid: %s", e.Name, e.Reason)
}

func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidName
}

// NewInvalidNameError creates a new InvalidNameError
func NewInvalidNameError(name, reason string) *InvalidNameError {
	return &InvalidNameError{Name: name, Reason: reason}
}

// CorpusNotFoundError represents a corpus not found error with context
type CorpusNotFoundError struct {
	CorpusName string
	// Cached is set when the lookup was against the cache rather than the samples directory.
	Cached bool
}

func (e *CorpusNotFoundError) Error() string {
	if e.Cached {
		return fmt.Sprintf("corpus '%s' is not cached", e.CorpusName)
	}
	return fmt.Sprintf("corpus '%s' not found", e.CorpusName)
}

func (e *CorpusNotFoundError) Is(target error) bool {
	return target == ErrCorpusNotFound
}

// NewCorpusNotFoundError creates a new CorpusNotFoundError
func NewCorpusNotFoundError(corpusName string) *CorpusNotFoundError {
	return &CorpusNotFoundError{CorpusName: corpusName}
}

// NewCorpusNotCachedError creates a CorpusNotFoundError for a cache lookup
func NewCorpusNotCachedError(corpusName string) *CorpusNotFoundError {
	return &CorpusNotFoundError{CorpusName: corpusName, Cached: true}
}

// InvalidQueryError represents a rejected query string
type InvalidQueryError struct {
	Query string
}

func (e *InvalidQueryError) Error() string {
	return "query cannot be empty"
}

func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// NewInvalidQueryError creates a new InvalidQueryError
func NewInvalidQueryError(query string) *InvalidQueryError {
	return &InvalidQueryError{Query: query}
}

// InvalidPageError represents a page request beyond the available pages
type InvalidPageError struct {
	Page       int
	TotalPages int
}

func (e *InvalidPageError) Error() string {
	if e.Page < 1 {
		return fmt.Sprintf("page %d is invalid: pages start at 1", e.Page)
	}
	return fmt.Sprintf("page %d is out of range (total pages: %d)", e.Page, e.TotalPages)
}

func (e *InvalidPageError) Is(target error) bool {
	return target == ErrInvalidPage
}

// NewInvalidPageError creates a new InvalidPageError
func NewInvalidPageError(page, totalPages int) *InvalidPageError {
	return &InvalidPageError{Page: page, TotalPages: totalPages}
}

// LoadError wraps an I/O or decoding failure for an existing corpus file
type LoadError struct {
	CorpusName string
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading corpus '%s': %v", e.CorpusName, e.Err)
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoadFailed
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError
func NewLoadError(corpusName string, err error) *LoadError {
	return &LoadError{CorpusName: corpusName, Err: err}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
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
