// internal/common/errors/errors.go
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// Error Codes
// ==========================

type ErrorCode string

const (
	// Request validation
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeMalformedRequest   ErrorCode = "MALFORMED_REQUEST"
	ErrCodePayloadTooLarge    ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrCodeApplicationInvalid ErrorCode = "APPLICATION_VALIDATION_FAILED"
	ErrCodeResumeUnreadable   ErrorCode = "RESUME_EXTRACTION_FAILED"

	// OTP state
	ErrCodeOTPNotFound         ErrorCode = "OTP_NOT_FOUND"
	ErrCodeOTPExpired          ErrorCode = "OTP_EXPIRED"
	ErrCodeOTPAttemptsExceeded ErrorCode = "OTP_ATTEMPTS_EXCEEDED"
	ErrCodeOTPInvalid          ErrorCode = "OTP_INVALID"
	ErrCodeOTPStoreFailed      ErrorCode = "OTP_STORE_FAILED"

	// Infrastructure
	ErrCodeCatalogLoadFailed             ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed          ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeNotificationSendFailed        ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeInternal                      ErrorCode = "INTERNAL_ERROR"
)

// ==========================
// Standard Error
// ==========================

// StandardError is the error shape shared by services and the HTTP layer.
// Message is safe to return to clients; Details is for logs only.
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

// WithMetadata returns the error with an extra metadata entry.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// Constructors
// ==========================

func NewValidationError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequiredFieldError produces the "<field> is required" message clients match on.
func NewRequiredFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   fmt.Sprintf("%s is required", field),
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewMalformedRequestError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedRequest,
		Message:   "Request body could not be parsed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewPayloadTooLargeError(limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadTooLarge,
		Message:   "Uploaded file is too large",
		Details:   fmt.Sprintf("limit: %d bytes", limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotFoundError(resource, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   "not found",
		Details:   fmt.Sprintf("%s: %s", resource, id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewRateLimitedError(key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests. Please try again later",
		Details:   fmt.Sprintf("key: %s", key),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewApplicationValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationInvalid,
		Message:   "Application data validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewResumeUnreadableError(filename string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResumeUnreadable,
		Message:   "Resume content could not be extracted",
		Details:   fmt.Sprintf("file: %s, error: %s", filename, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewOTPNotFoundError() *StandardError {
	return &StandardError{
		Code:      ErrCodeOTPNotFound,
		Message:   "OTP not found or expired",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewOTPExpiredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeOTPExpired,
		Message:   "OTP has expired",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewOTPAttemptsExceededError() *StandardError {
	return &StandardError{
		Code:      ErrCodeOTPAttemptsExceeded,
		Message:   "Too many attempts. Please request a new OTP",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewOTPInvalidError(attemptsRemaining int) *StandardError {
	return (&StandardError{
		Code:      ErrCodeOTPInvalid,
		Message:   "Invalid OTP",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}).WithMetadata("attempts_remaining", attemptsRemaining)
}

func NewOTPStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOTPStoreFailed,
		Message:   "OTP store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Internship catalog could not be loaded",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeElasticsearchConnectionFailed,
		Message:   "Elasticsearch connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Elasticsearch query error",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   err.Error(),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Status Mapping
// ==========================

var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeValidationFailed:    http.StatusBadRequest,
	ErrCodeMalformedRequest:    http.StatusBadRequest,
	ErrCodeApplicationInvalid:  http.StatusBadRequest,
	ErrCodeResumeUnreadable:    http.StatusBadRequest,
	ErrCodePayloadTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeRateLimited:         http.StatusTooManyRequests,
	ErrCodeOTPNotFound:         http.StatusBadRequest,
	ErrCodeOTPExpired:          http.StatusBadRequest,
	ErrCodeOTPAttemptsExceeded: http.StatusBadRequest,
	ErrCodeOTPInvalid:          http.StatusBadRequest,
	ErrCodeOTPStoreFailed:      http.StatusServiceUnavailable,
}

// HTTPStatus maps a code to a response status; anything unmapped is a 500.
func HTTPStatus(code ErrorCode) int {
	if status, ok := HTTPStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeCatalogLoadFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeOTPStoreFailed,
		ErrCodeRateLimited:
		return true
	default:
		return false
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "OTP"):
		return "OTP"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "MALFORMED") ||
		strings.Contains(codeStr, "NOT_FOUND") || strings.Contains(codeStr, "TOO_LARGE") ||
		strings.Contains(codeStr, "EXTRACTION"):
		return "CLIENT"
	case codeStr == string(ErrCodeRateLimited):
		return "THROTTLE"
	default:
		return "OTHER"
	}
}
