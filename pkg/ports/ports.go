package ports

import (
	"context"
	"time"

	"gatelab/pkg/domain"
)

// GatewayClient sends chat-completion requests to the remote gateway.
// Implementations perform exactly one outbound call per Send invocation
// and never retry internally.
type GatewayClient interface {
	Send(ctx context.Context, req domain.Request) (*domain.Response, error)
	Probe(ctx context.Context) error
}

// ReportSink persists the final run artifact
type ReportSink interface {
	Write(ctx context.Context, report *domain.Report) (string, error)
}

// EventHandler processes a single progress event
type EventHandler func(ctx context.Context, event domain.Event) error

// EventBus carries run progress events between the runner and observers
type EventBus interface {
	Publish(ctx context.Context, topic string, event domain.Event) error
	Subscribe(ctx context.Context, topic string, handler EventHandler) error
	Close() error
}

// MetricsCollector records call and experiment level metrics
type MetricsCollector interface {
	RecordCall(model, status string, latency time.Duration)
	RecordTokens(model, tokenType string, count int)
	RecordExperiment(name string, duration time.Duration)
	SetInflightCalls(count int)
}
