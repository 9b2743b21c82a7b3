package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Input errors
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("authentication required")

	// Model provider errors
	ErrUpstreamTimeout    = errors.New("model provider timed out")
	ErrUpstream           = errors.New("model provider request failed")
	ErrEmptyModelResponse = errors.New("model returned an empty response")

	// Persistence errors
	ErrPersistence    = errors.New("failed to persist report")
	ErrReportNotFound = errors.New("report not found")

	// Access control errors
	ErrAccessDenied = errors.New("access denied")
)

// Context keys for error values
const (
	ReportIDKey = "report_id"
	UserIDKey   = "user_id"
)
