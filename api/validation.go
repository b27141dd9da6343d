// Package api provides the HTTP surface of the posting index service along
// with validation utilities for request handling.
package api

import (
	"strings"
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

// ValidateIndexName validates an index name parameter
func ValidateIndexName(indexName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if indexName == "" {
		result.AddError("name", "Index name is required")
		return result
	}
	if strings.TrimSpace(indexName) != indexName {
		result.AddError("name", "Index name cannot have leading or trailing whitespace")
		return result
	}
	if strings.ContainsAny(indexName, "/\\") {
		result.AddError("name", "Index name cannot contain path separators")
		return result
	}

	return result
}

// ValidateTerm validates a term string. Terms pass through verbatim: no case
// folding and no tokenization, that is the caller's responsibility.
func ValidateTerm(term string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if term == "" {
		result.AddError("term", "Term is required")
		return result
	}

	return result
}
