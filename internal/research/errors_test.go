package research

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"canceled", context.Canceled, ErrTypeCanceled},
		{"deadline", context.DeadlineExceeded, ErrTypeTimeout},
		{"wrapped deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), ErrTypeTimeout},
		{"os timeout", os.ErrDeadlineExceeded, ErrTypeTimeout},
		{"dns", &net.DNSError{Err: "no such host", Name: "research.invalid"}, ErrTypeDNS},
		{
			"refused",
			&net.OpError{Op: "dial", Net: "tcp", Err: &os.SyscallError{Syscall: "connect", Err: syscall.ECONNREFUSED}},
			ErrTypeConnectionRefused,
		},
		{"other", errors.New("broken pipe"), ErrTypeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err, "http://x")
			if got.Type != tt.want {
				t.Errorf("Type = %v, want %v", got.Type, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error should wrap the original")
			}
			if got.Endpoint != "http://x" {
				t.Errorf("Endpoint = %q", got.Endpoint)
			}
		})
	}

	if ClassifyNetworkError(nil, "") != nil {
		t.Error("ClassifyNetworkError(nil) should be nil")
	}
}

func TestErrorType_String(t *testing.T) {
	if ErrTypeHTTP.String() != "HTTP Error" {
		t.Errorf("String() = %q", ErrTypeHTTP.String())
	}
	if got := ErrorType(99).String(); got != "ErrorType(99)" {
		t.Errorf("String() = %q", got)
	}
}

func TestError_Error(t *testing.T) {
	err := NewParseError("bad body", errors.New("eof"))
	if got := err.Error(); got != "Parse Error: bad body (caused by: eof)" {
		t.Errorf("Error() = %q", got)
	}
	if got := NewValidationError("topic is required").Error(); got != "Validation Error: topic is required" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, DefaultTransportFailure},
		{"detail wins", NewHTTPError(500, "Research failed: boom"), "Research failed: boom"},
		{"status text", NewHTTPError(404, ""), "Request failed with status code 404"},
		{"with cause", NewParseError("invalid response", errors.New("eof")), "invalid response: eof"},
		{"plain error", errors.New("socket closed"), "socket closed"},
		{"blank error", errors.New("  "), DefaultTransportFailure},
		{"wrapped", fmt.Errorf("submit: %w", NewHTTPError(500, "inner")), "inner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FailureMessage(tt.err); got != tt.want {
				t.Errorf("FailureMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	if !IsNetworkError(ClassifyNetworkError(errors.New("x"), "")) {
		t.Error("IsNetworkError should match network errors")
	}
	if IsNetworkError(NewHTTPError(500, "")) {
		t.Error("IsNetworkError should not match HTTP errors")
	}
	if IsNetworkError(ClassifyNetworkError(context.Canceled, "")) {
		t.Error("cancellation is not a network error")
	}
	if !IsValidationError(NewValidationError("x")) {
		t.Error("IsValidationError should match")
	}
	if IsHTTPError(errors.New("x")) {
		t.Error("plain errors are not HTTP errors")
	}
}

func TestShortMessage(t *testing.T) {
	if got := ShortMessage(NewHTTPError(503, "")); got != "Research service error (HTTP 503)" {
		t.Errorf("ShortMessage() = %q", got)
	}
	if got := ShortMessage(errors.New("plain")); got != "plain" {
		t.Errorf("ShortMessage() = %q", got)
	}
}

func TestTroubleshootingHint(t *testing.T) {
	hints := TroubleshootingHint(NewHTTPError(422, ""))
	if len(hints) == 0 || !strings.Contains(strings.Join(hints, " "), "1-20") {
		t.Errorf("422 hints should mention the sample size range, got %v", hints)
	}
	if TroubleshootingHint(NewHTTPError(404, "")) != nil {
		t.Error("404 should have no hints")
	}
	if TroubleshootingHint(errors.New("x")) != nil {
		t.Error("plain errors should have no hints")
	}
}
