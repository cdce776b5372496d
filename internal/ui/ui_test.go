package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/research-agent/internal/form"
	"github.com/muurk/research-agent/internal/research"
)

type stubSubmitter struct {
	resp *research.Response
	err  error
}

func (s stubSubmitter) Research(ctx context.Context, params research.RequestParameters) (*research.Response, error) {
	return s.resp, s.err
}

func newController() *form.Controller {
	ctrl := form.NewController()
	ctrl.UpdateField(form.FieldCredential, "sk-test-0123456789abcd")
	ctrl.UpdateField(form.FieldTopic, "Remote work")
	ctrl.UpdateField(form.FieldTargetDemographic, "Engineers")
	return ctrl
}

func TestResearchParams_OrderAndHiddenKey(t *testing.T) {
	params := ResearchParams("http://localhost:8000", newController().Parameters())

	keys := []string{"Endpoint", "API key", "Topic", "Demographic", "Sample size", "Questions"}
	if len(params) != len(keys) {
		t.Fatalf("got %d params, want %d", len(params), len(keys))
	}
	for i, key := range keys {
		if params[i].Key != key {
			t.Errorf("params[%d].Key = %q, want %q", i, params[i].Key, key)
		}
	}
	if params[1].Value != CredentialHidden {
		t.Errorf("API key shown as %q, want %q", params[1].Value, CredentialHidden)
	}
	if strings.Contains(params[1].Value, "abcd") {
		t.Errorf("API key display leaks a suffix: %q", params[1].Value)
	}
	if params[4].Value != "4" || params[5].Value != "4" {
		t.Errorf("default counts = %q/%q, want 4/4", params[4].Value, params[5].Value)
	}
}

func TestResearchParams_CredentialNeverShown(t *testing.T) {
	tests := []struct {
		name       string
		credential string
		want       string
	}{
		{"empty", "", CredentialMissing},
		{"blank", "   ", CredentialMissing},
		{"short", "sk-1", CredentialHidden},
		{"long", "sk-live-SECRETxyz9", CredentialHidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResearchParams("http://x", research.RequestParameters{Credential: tt.credential})[1].Value
			if got != tt.want {
				t.Errorf("API key = %q, want %q", got, tt.want)
			}
			if len(tt.credential) >= 4 && strings.Contains(got, tt.credential[len(tt.credential)-4:]) {
				t.Errorf("API key display %q reveals part of the key", got)
			}
		})
	}
}

func TestHeader_RenderKeepsParamOrder(t *testing.T) {
	h := NewHeader("Research Run", "research-agent run", []Param{
		{Key: "Zeta", Value: "last"},
		{Key: "Alpha", Value: "first"},
	}).SetWidth(80)

	out := h.Render()
	if !strings.Contains(out, "RESEARCH RUN") {
		t.Error("header title should be upper-cased")
	}
	if strings.Index(out, "Zeta") > strings.Index(out, "Alpha") {
		t.Error("params rendered out of order")
	}
}

func TestResult_Render(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   []string
	}{
		{
			name:   "success",
			result: NewSuccessResult("Research complete", []Param{{Key: "Interviews", Value: "3"}}),
			want:   []string{"SUCCESS", "Research complete", "Interviews:", "3"},
		},
		{
			name:   "failure with tips",
			result: NewFailureResult("Research failed", errors.New("boom"), []string{"Check the service"}),
			want:   []string{"FAILED", "Error: boom", "Troubleshooting:", "Check the service"},
		},
		{
			name:   "warning",
			result: NewWarningResult("No services found", nil),
			want:   []string{"WARNING", "No services found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.result.SetWidth(80).Render()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Render() missing %q", want)
				}
			}
		})
	}
}

func TestRunner_Success(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner(RunnerConfig{Title: "Research Run", Command: "research-agent run", Endpoint: "http://x", Output: &buf})

	resp := &research.Response{Success: true, Message: "Research completed successfully"}
	resp.Synthesis = "Insight"
	resp.Questions = []string{"Q1"}

	phase := runner.Run(context.Background(), newController(), stubSubmitter{resp: resp})
	if _, ok := phase.(form.Succeeded); !ok {
		t.Fatalf("phase = %v, want Succeeded", phase.Name())
	}

	out := buf.String()
	for _, want := range []string{"RESEARCH RUN", "Research complete", "Research completed successfully", "Duration:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "sk-test-0123456789abcd") {
		t.Error("output leaked the credential")
	}
}

func TestRunner_TransportFailure(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner(RunnerConfig{Title: "Research Run", Output: &buf})

	err := research.NewHTTPError(500, "Research workflow failed: quota")
	phase := runner.Run(context.Background(), newController(), stubSubmitter{err: err})

	failed, ok := phase.(form.Failed)
	if !ok {
		t.Fatalf("phase = %v, want Failed", phase.Name())
	}
	if failed.Message != "Research workflow failed: quota" {
		t.Errorf("Message = %q", failed.Message)
	}
	out := buf.String()
	if !strings.Contains(out, "Troubleshooting:") {
		t.Error("expected troubleshooting tips for a 500")
	}
	if !strings.Contains(out, "Research service error") {
		t.Errorf("failure box should be titled for an HTTP error:\n%s", out)
	}
}

func TestFailureTitle(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"application failure", nil, "Research failed"},
		{"network", research.NewNetworkError("dial failed", errors.New("refused")), "Research service unreachable"},
		{"http", research.NewHTTPError(502, ""), "Research service error"},
		{"parse", research.NewParseError("bad json", errors.New("eof")), "Invalid response from research service"},
		{"validation", research.NewValidationError("topic is required"), "Invalid research request"},
		{"plain error", errors.New("boom"), "Research failed"},
	}

	for _, tt := range tests {
		if got := FailureTitle(tt.err); got != tt.want {
			t.Errorf("%s: FailureTitle() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRunner_Quiet(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner(RunnerConfig{Quiet: true, Output: &buf})

	phase := runner.Run(context.Background(), newController(), stubSubmitter{resp: &research.Response{Success: false}})
	if failed, ok := phase.(form.Failed); !ok || failed.Message != research.DefaultFailureReason {
		t.Errorf("phase = %#v, want Failed{%q}", phase, research.DefaultFailureReason)
	}
	if buf.Len() != 0 {
		t.Errorf("quiet runner wrote %q", buf.String())
	}
}

func TestPrompter(t *testing.T) {
	var out bytes.Buffer

	p := NewPrompter(strings.NewReader("  sk-secret  \n"), &out)
	got, err := p.Secret("API key")
	if err != nil || got != "sk-secret" {
		t.Errorf("Secret() = %q, %v", got, err)
	}

	p = NewPrompter(strings.NewReader(""), &out)
	if _, err := p.Secret("API key"); !errors.Is(err, ErrNoInput) {
		t.Errorf("Secret() on empty input err = %v, want ErrNoInput", err)
	}

	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "": false} {
		p = NewPrompter(strings.NewReader(input), &out)
		if got := p.Confirm("Overwrite?"); got != want {
			t.Errorf("Confirm(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestClampWidth(t *testing.T) {
	if clampWidth(10) != MinTerminalWidth || clampWidth(500) != MaxContentWidth || clampWidth(80) != 80 {
		t.Error("clampWidth() bounds wrong")
	}
}
