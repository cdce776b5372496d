package research

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultFailureReason is shown when the service reports failure without
// saying why.
const DefaultFailureReason = "Research failed"

// Response is a decoded reply from the research endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`

	Result
}

// FailureReason returns the service's error text, or DefaultFailureReason
// when it sent none. It is only meaningful when Success is false.
func (r *Response) FailureReason() string {
	if r == nil || r.Error == "" {
		return DefaultFailureReason
	}
	return r.Error
}

// DecodeResponse parses a response body. Persona traits are normalized here.
func DecodeResponse(data []byte) (*Response, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal research response: %w", err)
	}
	return &resp, nil
}

// errorBody is the shape of error payloads on non-2xx responses.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// validationIssue is one entry of a request-validation error list.
type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// extractDetail pulls a human-readable diagnostic out of an error body.
//
// The service answers with {"detail": "..."} for workflow errors and with
// {"detail": [{"loc": [...], "msg": "..."}]} when it rejects the request
// itself. Returns "" when the body carries no usable detail.
func extractDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}

	var issues []validationIssue
	if err := json.Unmarshal(eb.Detail, &issues); err == nil {
		parts := make([]string, 0, len(issues))
		for _, issue := range issues {
			if issue.Msg == "" {
				continue
			}
			if field := issueField(issue.Loc); field != "" {
				parts = append(parts, field+": "+issue.Msg)
			} else {
				parts = append(parts, issue.Msg)
			}
		}
		return strings.Join(parts, "; ")
	}

	if bytes.Equal(eb.Detail, []byte("null")) {
		return ""
	}
	return string(eb.Detail)
}

// issueField returns the last element of a validation location path, which
// is the offending field name ("body", "sample_size" -> "sample_size").
func issueField(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok && s != "body" {
		return s
	}
	return ""
}
