package research

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testParams() RequestParameters {
	return RequestParameters{
		Credential:            "sk-test-0000",
		Topic:                 "coffee habits",
		TargetDemographic:     "students",
		SampleSize:            NewCount(2),
		QuestionsPerInterview: NewCount(3),
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:9000/")

	if client.BaseURL != "http://localhost:9000" {
		t.Errorf("BaseURL = %s, want http://localhost:9000", client.BaseURL)
	}
	if client.Endpoint() != "http://localhost:9000/api/research" {
		t.Errorf("Endpoint() = %s", client.Endpoint())
	}
	if client.HTTPClient == nil {
		t.Fatal("HTTPClient should not be nil")
	}
	if client.HTTPClient.Timeout != 0 {
		t.Errorf("Timeout = %v, want no timeout", client.HTTPClient.Timeout)
	}
}

func TestNewClient_Default(t *testing.T) {
	if got := NewClient("").BaseURL; got != DefaultBaseURL {
		t.Errorf("BaseURL = %s, want %s", got, DefaultBaseURL)
	}
}

func TestSetTimeout(t *testing.T) {
	client := NewClient("")
	client.SetTimeout(5 * time.Second)

	if client.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", client.HTTPClient.Timeout)
	}
}

func TestPing_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"message": "Research Agent API is running"}`))
	}))
	defer server.Close()

	if err := NewClient(server.URL).Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v, want nil", err)
	}
}

func TestPing_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := NewClient(server.URL).Ping(context.Background())
	if !IsHTTPError(err) {
		t.Errorf("Ping() error should be HTTP error, got %v", err)
	}
}

func TestPing_Unreachable(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	err = NewClient("http://" + addr).Ping(context.Background())
	if !IsNetworkError(err) {
		t.Errorf("Ping() error should be network error, got %v", err)
	}
}

func TestResearch_SendsRequest(t *testing.T) {
	var (
		calls     int
		gotBody   map[string]any
		gotMethod string
		gotPath   string
		gotType   string
		gotID     string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotID = r.Header.Get(RequestIDHeader)

		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mockSuccessResponse))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Research(context.Background(), testParams())
	if err != nil {
		t.Fatalf("Research() error = %v", err)
	}

	if calls != 1 {
		t.Errorf("server saw %d requests, want 1", calls)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotPath != ResearchPath {
		t.Errorf("path = %s, want %s", gotPath, ResearchPath)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %s, want application/json", gotType)
	}
	if _, err := uuid.Parse(gotID); err != nil {
		t.Errorf("%s = %q is not a UUID", RequestIDHeader, gotID)
	}

	want := map[string]any{
		"api_key":            "sk-test-0000",
		"research_topic":     "coffee habits",
		"target_demographic": "students",
		"sample_size":        float64(2),
		"num_questions":      float64(3),
	}
	if len(gotBody) != len(want) {
		t.Errorf("body has %d fields, want %d: %v", len(gotBody), len(want), gotBody)
	}
	for k, v := range want {
		if gotBody[k] != v {
			t.Errorf("body[%s] = %v, want %v", k, gotBody[k], v)
		}
	}

	if !resp.Success || len(resp.Interviews) != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestResearch_NotANumberSentAsNull(t *testing.T) {
	var raw string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		raw = string(data)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","sample_size"],"msg":"Input should be a valid integer"}]}`))
	}))
	defer server.Close()

	params := testParams()
	params.SampleSize = ParseCount("lots")

	_, err := NewClient(server.URL).Research(context.Background(), params)
	if !strings.Contains(raw, `"sample_size":null`) {
		t.Errorf("body = %s, want sample_size null", raw)
	}
	if !IsHTTPError(err) {
		t.Fatalf("Research() error should be HTTP error, got %v", err)
	}
	if got := FailureMessage(err); got != "sample_size: Input should be a valid integer" {
		t.Errorf("FailureMessage() = %q", got)
	}
}

func TestResearch_ApplicationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "bad topic"}`))
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Research(context.Background(), testParams())
	if err != nil {
		t.Fatalf("Research() error = %v, want nil", err)
	}
	if resp.Success {
		t.Error("Success = true, want false")
	}
	if resp.FailureReason() != "bad topic" {
		t.Errorf("FailureReason() = %q, want bad topic", resp.FailureReason())
	}
}

func TestResearch_ServerErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "Research failed: invalid API key"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Research(context.Background(), testParams())
	if !IsHTTPError(err) {
		t.Fatalf("Research() error should be HTTP error, got %v", err)
	}

	var rerr *Error
	rerr, _ = asError(err)
	if rerr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", rerr.StatusCode)
	}
	if got := FailureMessage(err); got != "Research failed: invalid API key" {
		t.Errorf("FailureMessage() = %q", got)
	}
}

func TestResearch_ServerErrorWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream down`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Research(context.Background(), testParams())
	if got := FailureMessage(err); got != "Request failed with status code 502" {
		t.Errorf("FailureMessage() = %q", got)
	}
}

func TestResearch_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Research(context.Background(), testParams())
	if !IsParseError(err) {
		t.Errorf("Research() error should be parse error, got %v", err)
	}
}

func TestResearch_Canceled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(server.URL).Research(ctx, testParams())
	if err == nil {
		t.Fatal("Research() should fail when the context expires")
	}

	rerr, ok := asError(err)
	if !ok || rerr.Type != ErrTypeTimeout {
		t.Errorf("Research() error = %v, want timeout", err)
	}
	if FailureMessage(err) == "" {
		t.Error("FailureMessage() should not be empty")
	}
}
