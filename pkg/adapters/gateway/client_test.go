package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"gatelab/pkg/domain"
)

func newTestClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()

	c, err := NewClient(&Config{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		ProbeModel: "openai/gpt-4o-mini",
		Timeout:    timeout,
		Logger:     zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestSendSuccess(t *testing.T) {
	RegisterTestingT(t)

	var seen wirePayload
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&seen)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"output": "hello there",
			"usage": map[string]int{
				"prompt_tokens":     12,
				"completion_tokens": 5,
				"total_tokens":      17,
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 5*time.Second)

	resp, err := client.Send(context.Background(), domain.Request{
		ID:          "req-1",
		Model:       "openai/gpt-4o-mini",
		Prompt:      "Say hello",
		Temperature: 0.7,
		MaxTokens:   64,
	})

	Expect(err).To(BeNil())
	Expect(resp.Text).To(Equal("hello there"))
	Expect(resp.Usage.PromptTokens).To(Equal(12))
	Expect(resp.Usage.CompletionTokens).To(Equal(5))
	Expect(resp.Usage.TotalTokens).To(Equal(17))
	Expect(resp.Latency).To(BeNumerically(">=", 0))
	Expect(resp.StatusCode).To(Equal(http.StatusOK))

	// provider prefix is stripped on the wire
	Expect(seen.Model).To(Equal("gpt-4o-mini"))
	Expect(seen.Input).To(Equal("Say hello"))
	Expect(authHeader).To(Equal("Bearer test-key"))
}

func TestSendUsageFallbacks(t *testing.T) {
	RegisterTestingT(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// anthropic-style field names, no total
		_ = json.NewEncoder(w).Encode(map[string]any{
			"text": "fallback text",
			"usage": map[string]int{
				"input_tokens":  8,
				"output_tokens": 3,
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 5*time.Second)

	resp, err := client.Send(context.Background(), domain.Request{
		ID:          "req-1",
		Model:       "anthropic/claude-haiku-3",
		Prompt:      "hi",
		Temperature: 0.7,
		MaxTokens:   64,
	})

	Expect(err).To(BeNil())
	Expect(resp.Text).To(Equal("fallback text"))
	Expect(resp.Usage.PromptTokens).To(Equal(8))
	Expect(resp.Usage.CompletionTokens).To(Equal(3))
	Expect(resp.Usage.TotalTokens).To(Equal(11))
}

func TestSendErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		errType string
		errMsg  string
		want    domain.ErrorKind
	}{
		{"not found is invalid model", http.StatusNotFound, "not_found", "no such route", domain.ErrInvalidModel},
		{"model error type", http.StatusBadRequest, "model_not_found", "unknown model", domain.ErrInvalidModel},
		{"bad request", http.StatusBadRequest, "invalid_request_error", "temperature out of range", domain.ErrMalformedRequest},
		{"unauthorized", http.StatusUnauthorized, "auth_error", "bad key", domain.ErrMalformedRequest},
		{"server error", http.StatusInternalServerError, "server_error", "boom", domain.ErrUnknown},
		{"server error mentioning model", http.StatusInternalServerError, "server_error", "model overloaded", domain.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RegisterTestingT(t)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]string{"message": tt.errMsg, "type": tt.errType},
				})
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, 5*time.Second)

			_, err := client.Send(context.Background(), domain.Request{
				ID:          "req-1",
				Model:       "openai/gpt-4o-mini",
				Prompt:      "hi",
				Temperature: 0.7,
				MaxTokens:   64,
			})

			Expect(err).To(HaveOccurred())
			Expect(domain.KindOf(err)).To(Equal(tt.want))
			Expect(err.Error()).To(ContainSubstring(tt.errMsg))
		})
	}
}

func TestSendTimeout(t *testing.T) {
	RegisterTestingT(t)

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server.URL, 50*time.Millisecond)

	_, err := client.Send(context.Background(), domain.Request{
		ID:          "req-1",
		Model:       "openai/gpt-4o-mini",
		Prompt:      "hi",
		Temperature: 0.7,
		MaxTokens:   64,
	})

	Expect(err).To(HaveOccurred())
	Expect(domain.KindOf(err)).To(Equal(domain.ErrTimeout))
}

func TestSendTransportError(t *testing.T) {
	RegisterTestingT(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(t, server.URL, time.Second)

	_, err := client.Send(context.Background(), domain.Request{
		ID:          "req-1",
		Model:       "openai/gpt-4o-mini",
		Prompt:      "hi",
		Temperature: 0.7,
		MaxTokens:   64,
	})

	Expect(err).To(HaveOccurred())
	Expect(domain.KindOf(err)).To(Equal(domain.ErrTransport))
}

func TestSendUnparseableBody(t *testing.T) {
	RegisterTestingT(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, time.Second)

	_, err := client.Send(context.Background(), domain.Request{
		ID:          "req-1",
		Model:       "openai/gpt-4o-mini",
		Prompt:      "hi",
		Temperature: 0.7,
		MaxTokens:   64,
	})

	Expect(err).To(HaveOccurred())
	Expect(domain.KindOf(err)).To(Equal(domain.ErrUnknown))
}

func TestNewClientRequiresCredentials(t *testing.T) {
	RegisterTestingT(t)

	_, err := NewClient(&Config{BaseURL: "http://localhost", Logger: zap.NewNop()})
	Expect(err).To(HaveOccurred())

	_, err = NewClient(&Config{APIKey: "k", Logger: zap.NewNop()})
	Expect(err).To(HaveOccurred())
}

func TestProbe(t *testing.T) {
	RegisterTestingT(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"output": "hello"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, time.Second)
	Expect(client.Probe(context.Background())).To(Succeed())

	server.Close()
	Expect(client.Probe(context.Background())).NotTo(Succeed())
}

func TestModelName(t *testing.T) {
	RegisterTestingT(t)

	Expect(modelName("openai/gpt-4o-mini")).To(Equal("gpt-4o-mini"))
	Expect(modelName("gpt-4o-mini")).To(Equal("gpt-4o-mini"))
	Expect(modelName("a/b/c")).To(Equal("c"))
}
