// Package api provides validation utilities for API request handling.
package api

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateCorpusName validates a corpus name parameter. Path checks are left
// to the engine, which rejects unsafe names before touching the filesystem.
func ValidateCorpusName(corpusName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if corpusName == "" {
		result.AddError("corpus", "Corpus name is required")
		return result
	}

	if strings.TrimSpace(corpusName) != corpusName {
		result.AddError("corpus", "Corpus name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// SearchRequest holds the query parameters of a KWIC search.
type SearchRequest struct {
	Corpus      string `form:"corpus"`
	Query       string `form:"query"`
	ContextSize *int   `form:"context_size"`
	Page        *int   `form:"page"`
	PageSize    *int   `form:"page_size"`
}

// ValidatePagination applies defaults to absent pagination parameters.
// Range checks against the configured maximum happen in the engine.
func ValidatePagination(page, pageSize *int) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	resolvedPage := 1
	if page != nil {
		resolvedPage = *page
	}

	resolvedSize := 0 // engine default
	if pageSize != nil {
		resolvedSize = *pageSize
		if resolvedSize < 1 {
			result.AddError("page_size", "Page size must be greater than 0")
		}
	}

	return resolvedPage, resolvedSize, result
}

// ParseBoolParam reads an optional boolean query parameter.
func ParseBoolParam(c *gin.Context, name string, defaultValue bool) (bool, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return defaultValue, result
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		result.AddError(name, "Must be a boolean (true or false)")
		return defaultValue, result
	}
	return value, result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error.
// An empty body is accepted and leaves target untouched.
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil && !errors.Is(err, io.EOF) {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}

// ValidateQueryBinding validates query parameter binding
func ValidateQueryBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindQuery(target); err != nil {
		result.AddError("query_parameters", "Invalid query parameters: "+err.Error())
	}

	return result
}
