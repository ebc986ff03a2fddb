// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"calorie-workers/internal/nutrition"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Calculation errors raised by the nutrition core.
	ErrCodeDimensionMismatch  ErrorCode = "DIMENSION_MISMATCH"
	ErrCodeInvalidMeasurement ErrorCode = "INVALID_MEASUREMENT"

	// Input errors.
	ErrCodeParseError             ErrorCode = "PARSE_ERROR"
	ErrCodeSchemaValidationFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeInvalidAction          ErrorCode = "INVALID_ACTION"

	// Storage and delivery errors.
	ErrCodeDatabaseInsertFailed   ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeCacheOperationFailed   ErrorCode = "CACHE_OPERATION_FAILED"
	ErrCodeSearchIndexFailed      ErrorCode = "SEARCH_INDEX_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	// Generic.
	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout          ErrorCode = "TIMEOUT_ERROR"
	ErrCodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewDimensionMismatchError is returned when a selection does not line up with its catalog.
func NewDimensionMismatchError(details string) *StandardError {
	return newError(ErrCodeDimensionMismatch, "Selection length does not match catalog", details, false)
}

// NewInvalidMeasurementError covers non-positive heights, negative inputs and unknown units.
func NewInvalidMeasurementError(details string) *StandardError {
	return newError(ErrCodeInvalidMeasurement, "Invalid measurement", details, false)
}

// NewParseError is returned when job variables cannot be decoded.
func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Failed to parse job variables", err.Error(), false)
}

// NewSchemaValidationFailedError wraps JSON schema violations.
func NewSchemaValidationFailedError(details string) *StandardError {
	return newError(ErrCodeSchemaValidationFailed, "Input schema validation failed", details, false)
}

// NewInvalidActionError is returned for selection adjustments the tally does not understand.
func NewInvalidActionError(details string) *StandardError {
	return newError(ErrCodeInvalidAction, "Unsupported selection action", details, false)
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert operation failed", err.Error(), true)
}

// NewCacheOperationFailedError creates a retryable Redis error.
func NewCacheOperationFailedError(operation string, err error) *StandardError {
	return newError(ErrCodeCacheOperationFailed, "Cache operation failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

// NewSearchIndexFailedError creates a retryable Elasticsearch indexing error.
func NewSearchIndexFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchIndexFailed, "Search indexing failed",
		fmt.Sprintf("index: %s, error: %s", index, err.Error()), true)
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()), true)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeResourceNotFound, fmt.Sprintf("Resource not found in %s", service), details, false)
}

// FromCalculationError maps the nutrition core's sentinel errors onto standard errors.
// Anything else becomes a non-retryable INTERNAL_ERROR.
func FromCalculationError(err error) *StandardError {
	var stdErr *StandardError
	switch {
	case err == nil:
		return nil
	case stderrors.As(err, &stdErr):
		return stdErr
	case stderrors.Is(err, nutrition.ErrDimensionMismatch):
		return NewDimensionMismatchError(err.Error())
	case stderrors.Is(err, nutrition.ErrInvalidMeasurement):
		return NewInvalidMeasurementError(err.Error())
	default:
		return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes. Codes missing here are thrown as-is.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeDimensionMismatch:      "DIMENSION_MISMATCH",
	ErrCodeInvalidMeasurement:     "INVALID_MEASUREMENT",
	ErrCodeParseError:             "INVALID_INPUT",
	ErrCodeSchemaValidationFailed: "INVALID_INPUT",
	ErrCodeInvalidAction:          "INVALID_INPUT",
	ErrCodeDatabaseInsertFailed:   "SUMMARY_PERSIST_FAILED",
	ErrCodeSearchIndexFailed:      "SUMMARY_PERSIST_FAILED",
	ErrCodeCacheOperationFailed:   "TALLY_UNAVAILABLE",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseInsertFailed,
		ErrCodeSearchIndexFailed,
		ErrCodeCacheOperationFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeTimeout:
		return 2

	default:
		return 0 // business and input errors are never retried
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case code == ErrCodeDimensionMismatch || code == ErrCodeInvalidMeasurement:
		return "CALCULATION"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
