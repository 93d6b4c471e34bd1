package models

import "fmt"

// Error code constants returned in the "code" field of error responses
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeBusinessRule  = "BUSINESS_RULE_ERROR"
	ErrCodeNotFound      = "RESOURCE_NOT_FOUND"
	ErrCodeDatabase      = "DATABASE_ERROR"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
)

// APIError is the standardized error response body for the API
type APIError struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewAPIError creates a new API error response with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Error: message,
		Code:  code,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// ValidationError is returned when input fails structural validation.
// Details carries per-field messages keyed by field name.
type ValidationError struct {
	Message string
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with optional per-field details
func NewValidationError(message string, details ...map[string]interface{}) *ValidationError {
	err := &ValidationError{Message: message}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// BusinessRuleError is returned when a request is well-formed but violates a
// business rule (missing catalog references, order ceiling, FK restrictions).
type BusinessRuleError struct {
	Message string
	Details map[string]interface{}
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

// NewBusinessRuleError creates a BusinessRuleError with optional details
func NewBusinessRuleError(message string, details ...map[string]interface{}) *BusinessRuleError {
	err := &BusinessRuleError{Message: message}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// ResourceNotFoundError is returned when a requested resource does not exist
type ResourceNotFoundError struct {
	Resource string
	ID       interface{}
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
}

// NewResourceNotFoundError creates a ResourceNotFoundError for the given
// resource type and identifier
func NewResourceNotFoundError(resource string, id interface{}) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: resource, ID: id}
}

// DatabaseError wraps an unexpected storage failure. The wrapped error is
// logged server-side; clients only ever see a generic message.
type DatabaseError struct {
	Message string
	Err     error
}

func (e *DatabaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// NewDatabaseError wraps err as a DatabaseError
func NewDatabaseError(message string, err error) *DatabaseError {
	return &DatabaseError{Message: message, Err: err}
}
