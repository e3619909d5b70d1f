package domain

import (
	"time"
)

// Request describes a single chat-completion call to the gateway.
// A Request is immutable once constructed.
type Request struct {
	// ID identifies the request within a run
	ID string `json:"id"`

	// Model is a provider-prefixed identifier, e.g. "openai/gpt-4o-mini"
	Model string `json:"model"`

	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`

	// TopP is optional; zero means "not set" and is omitted on the wire
	TopP float64 `json:"top_p,omitempty"`
}

// Usage holds token counts reported by the gateway
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the successful outcome of a gateway call
type Response struct {
	Text       string        `json:"text"`
	Usage      Usage         `json:"usage"`
	Latency    time.Duration `json:"latency_ms"`
	StatusCode int           `json:"status_code"`
}

// ErrorRecord captures a failed call without aborting its experiment
type ErrorRecord struct {
	RequestID string    `json:"request_id"`
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
}

// CallRecord pairs a dispatched Request with exactly one outcome:
// either a Response or an ErrorRecord, never both and never neither.
type CallRecord struct {
	Request  Request      `json:"request"`
	Response *Response    `json:"response,omitempty"`
	Error    *ErrorRecord `json:"error,omitempty"`
}

// Succeeded reports whether the call produced a Response
func (r CallRecord) Succeeded() bool {
	return r.Response != nil
}

// Summary holds per-experiment aggregate metrics. MeanLatency is computed
// over successful calls only.
type Summary struct {
	Calls       int           `json:"calls"`
	Successes   int           `json:"successes"`
	Failures    int           `json:"failures"`
	MeanLatency time.Duration `json:"mean_latency_ms"`
	TotalTokens int           `json:"total_tokens"`
}

// ExperimentResult records one experiment's full set of call outcomes.
// Records preserve submission order. Immutable after assembly.
type ExperimentResult struct {
	Name     string         `json:"experiment"`
	Records  []CallRecord   `json:"records"`
	Summary  Summary        `json:"summary"`
	Started  time.Time      `json:"started_at"`
	Duration time.Duration  `json:"duration_ms"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Report is the top-level artifact produced once per run
type Report struct {
	RunID       string             `json:"run_id"`
	Timestamp   time.Time          `json:"timestamp"`
	Experiments []ExperimentResult `json:"experiments"`
	Metadata    ReportMetadata     `json:"metadata"`
}

// ReportMetadata describes the run itself
type ReportMetadata struct {
	Endpoint    string   `json:"endpoint"`
	Models      []string `json:"models"`
	TotalCalls  int      `json:"total_calls"`
	Successes   int      `json:"successes"`
	Failures    int      `json:"failures"`
	Interrupted bool     `json:"interrupted,omitempty"`
}
