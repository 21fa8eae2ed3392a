package errors

import (
	"errors"
	"fmt"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDuplicateNameError creates an error for a project name that already exists
func NewDuplicateNameError(name string) *AppError {
	return &AppError{
		Type:    ErrorTypeDuplicate,
		Message: fmt.Sprintf("a project named %q already exists", name),
		Code:    "DUPLICATE_NAME",
		Context: map[string]interface{}{
			"name": name,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewProjectVanishedError signals that the project a timer run was attached to
// no longer exists. The run's data is intentionally discarded; this is a
// business outcome, not a defect.
func NewProjectVanishedError(projectID int64) *AppError {
	return &AppError{
		Type:    ErrorTypeVanished,
		Message: "the project was deleted while the timer was running; time entry not saved",
		Code:    "PROJECT_VANISHED",
		Context: map[string]interface{}{
			"project_id": projectID,
		},
	}
}

// NewInvalidFormatError creates an error for a malformed import document
func NewInvalidFormatError(reason string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidFormat,
		Message: fmt.Sprintf("invalid file format: %s", reason),
		Code:    "INVALID_FILE_FORMAT",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeDuplicate,
			ErrorTypeVanished, ErrorTypeInvalidFormat, ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A storage error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}
