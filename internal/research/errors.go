package research

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
)

// DefaultTransportFailure is shown when a transport failure carries no
// diagnostic text at all.
const DefaultTransportFailure = "An error occurred"

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the request timed out
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the endpoint
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates the endpoint host could not be resolved
	ErrTypeDNS
	// ErrTypeCanceled indicates the caller's context was canceled
	ErrTypeCanceled
	// ErrTypeHTTP indicates a non-2xx status code
	ErrTypeHTTP
	// ErrTypeParse indicates an undecodable response body
	ErrTypeParse
	// ErrTypeValidation indicates invalid request parameters
	ErrTypeValidation
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeCanceled:
		return "Canceled"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is a transport or validation failure talking to the research service.
type Error struct {
	Type       ErrorType // Category of error
	Message    string    // The transport's own description
	StatusCode int       // HTTP status code (if applicable)
	Detail     string    // Diagnostic supplied by the server, if any
	Endpoint   string    // Endpoint URL (for context)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes an error from the HTTP round trip and
// returns a more specific error type.
func ClassifyNetworkError(err error, endpoint string) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Type: ErrTypeCanceled, Message: "Request canceled", Err: err, Endpoint: endpoint}
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &Error{Type: ErrTypeTimeout, Message: "Request timed out", Err: err, Endpoint: endpoint}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{
			Type:     ErrTypeDNS,
			Message:  fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:      err,
			Endpoint: endpoint,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &Error{Type: ErrTypeConnectionRefused, Message: "Service refused connection", Err: err, Endpoint: endpoint}
	}

	return &Error{Type: ErrTypeNetwork, Message: "Network error occurred", Err: err, Endpoint: endpoint}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *Error {
	classified := ClassifyNetworkError(err, "")
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &Error{Type: ErrTypeNetwork, Message: message, Err: err}
}

// NewHTTPError creates an HTTP-level error. detail is the server-provided
// diagnostic and may be empty.
func NewHTTPError(statusCode int, detail string) *Error {
	return &Error{
		Type:       ErrTypeHTTP,
		Message:    fmt.Sprintf("Request failed with status code %d", statusCode),
		StatusCode: statusCode,
		Detail:     detail,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *Error {
	return &Error{Type: ErrTypeParse, Message: message, Err: err}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *Error {
	return &Error{Type: ErrTypeValidation, Message: message}
}

func asError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS, etc.)
func IsNetworkError(err error) bool {
	if e, ok := asError(err); ok {
		return e.Type == ErrTypeNetwork ||
			e.Type == ErrTypeTimeout ||
			e.Type == ErrTypeConnectionRefused ||
			e.Type == ErrTypeDNS
	}
	return false
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeHTTP
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeParse
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeValidation
}

// FailureMessage picks the message shown for a transport failure: the
// server-provided detail when there is one, otherwise the transport's own
// error text, otherwise DefaultTransportFailure.
func FailureMessage(err error) string {
	if err == nil {
		return DefaultTransportFailure
	}
	if e, ok := asError(err); ok {
		if e.Detail != "" {
			return e.Detail
		}
		if e.Message != "" && e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		if e.Message != "" {
			return e.Message
		}
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return DefaultTransportFailure
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	e, ok := asError(err)
	if !ok {
		return err.Error()
	}

	switch e.Type {
	case ErrTypeTimeout:
		return "Research service not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Research service refused connection - is it running?"
	case ErrTypeDNS:
		return "Cannot resolve research service hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeCanceled:
		return "Request canceled"
	case ErrTypeHTTP:
		return fmt.Sprintf("Research service error (HTTP %d)", e.StatusCode)
	case ErrTypeParse:
		return "Failed to parse research service response"
	default:
		return e.Message
	}
}

// TroubleshootingHint returns troubleshooting advice for an error, or nil
// when there is nothing useful to add.
func TroubleshootingHint(err error) []string {
	e, ok := asError(err)
	if !ok {
		return nil
	}

	switch e.Type {
	case ErrTypeConnectionRefused, ErrTypeNetwork:
		return []string{
			"Check that the research service is running",
			"Verify the endpoint with --endpoint or 'research-agent config show'",
			"Use 'research-agent scan' to find services on the local network",
		}
	case ErrTypeDNS:
		return []string{
			"Use an IP address instead of a hostname",
			"Check your network DNS settings",
		}
	case ErrTypeTimeout:
		return []string{
			"Large sample sizes take a while; raise --timeout or set it to 0",
		}
	case ErrTypeHTTP:
		if e.StatusCode == 422 {
			return []string{
				"The service rejected the request parameters",
				fmt.Sprintf("Sample size must be %d-%d, questions per interview %d-%d",
					MinSampleSize, MaxSampleSize, MinQuestionsPerInterview, MaxQuestionsPerInterview),
			}
		}
		if e.StatusCode >= 500 {
			return []string{
				"The service failed while running the research workflow",
				"Check the API key and the service logs",
			}
		}
	case ErrTypeParse:
		return []string{
			"The endpoint answered with something that is not a research response",
			"Verify the endpoint points at the research service",
		}
	}
	return nil
}
