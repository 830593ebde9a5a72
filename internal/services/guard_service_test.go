package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"nodetours/pkg/llm"
)

// stubClient scripts LLM responses for tests. Responses are consumed in
// order; the last one repeats.
type stubClient struct {
	responses []string
	err       error
	calls     int
}

func (s *stubClient) Complete(_ context.Context, _, _ string, _ []llm.Message) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	response := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return response, nil
}

func (s *stubClient) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidateInput_Accepts(t *testing.T) {
	client := &stubClient{responses: []string{`{"is_valid": true, "reason": ""}`}}
	guard := NewGuardService(client, testLogger())

	valid, reason := guard.ValidateInput(context.Background(), "Plan a trip to Paris.")
	if !valid {
		t.Fatalf("expected valid input, got rejection: %q", reason)
	}
}

func TestValidateInput_RejectsWithReason(t *testing.T) {
	client := &stubClient{responses: []string{`{"is_valid": false, "reason": "Not travel related"}`}}
	guard := NewGuardService(client, testLogger())

	valid, reason := guard.ValidateInput(context.Background(), "Write me a poem about cats.")
	if valid {
		t.Fatal("expected rejection")
	}
	if reason != "Not travel related" {
		t.Fatalf("expected model reason, got %q", reason)
	}
}

func TestValidateInput_FailsClosedOnGarbage(t *testing.T) {
	client := &stubClient{responses: []string{"sure, that looks fine to me!"}}
	guard := NewGuardService(client, testLogger())

	valid, reason := guard.ValidateInput(context.Background(), "Plan a trip to Paris.")
	if valid {
		t.Fatal("unparseable verdict must reject the input")
	}
	if reason != "Failed to validate input" {
		t.Fatalf("expected fail-closed reason, got %q", reason)
	}
}

func TestValidateInput_FailsClosedOnError(t *testing.T) {
	client := &stubClient{err: errors.New("model unavailable")}
	guard := NewGuardService(client, testLogger())

	valid, reason := guard.ValidateInput(context.Background(), "Plan a trip to Paris.")
	if valid {
		t.Fatal("completion error must reject the input")
	}
	if reason != "Failed to validate input" {
		t.Fatalf("expected fail-closed reason, got %q", reason)
	}
}
