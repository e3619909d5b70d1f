package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gatelab/pkg/domain"
	"gatelab/pkg/ports"
	"gatelab/pkg/prompts"
)

// Event bus topic carrying run progress events
const TopicRunEvents = "run.events"

// Options holds the experiment parameters supplied by configuration
type Options struct {
	OpenAIModels    []string
	AnthropicModels []string

	// RequestPause is the fixed delay between sequential calls
	RequestPause time.Duration

	// PerfRequests is N for both phases of the performance experiment
	PerfRequests int
	PerfPause    time.Duration
}

// Runner orchestrates the five experiment kinds against the gateway
type Runner struct {
	client    ports.GatewayClient
	library   *prompts.Library
	metrics   ports.MetricsCollector
	bus       ports.EventBus
	validator *Validator
	logger    *zap.Logger
	opts      Options

	runID    string
	progress *Progress
}

// New creates a runner for a single run
func New(
	client ports.GatewayClient,
	library *prompts.Library,
	metrics ports.MetricsCollector,
	bus ports.EventBus,
	logger *zap.Logger,
	opts Options,
) *Runner {
	return &Runner{
		client:    client,
		library:   library,
		metrics:   metrics,
		bus:       bus,
		validator: NewValidator(),
		logger:    logger,
		opts:      opts,
		runID:     uuid.New().String(),
		progress:  NewProgress(),
	}
}

// RunID returns the identifier assigned to this run
func (r *Runner) RunID() string {
	return r.runID
}

// Progress returns the live progress tracker for this run
func (r *Runner) Progress() *Progress {
	return r.progress
}

// RunAll executes the five experiments in order and returns their results.
// Per-call failures are recorded inside the results; an error return means
// a malformed experiment definition, which is a programming defect.
func (r *Runner) RunAll(ctx context.Context) ([]domain.ExperimentResult, error) {
	r.publish(ctx, domain.EventTypeRunStarted, "", nil)
	r.logger.Info("starting experiment run", zap.String("run_id", r.runID))

	experiments := []func(context.Context) (domain.ExperimentResult, error){
		r.MultiProviderComparison,
		r.ParameterExploration,
		r.ReasoningComparison,
		r.EdgeCases,
		r.PerformanceTesting,
	}

	results := make([]domain.ExperimentResult, 0, len(experiments))
	for _, experiment := range experiments {
		result, err := experiment(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	r.publish(ctx, domain.EventTypeRunCompleted, "", map[string]any{
		"experiments": len(results),
	})
	r.logger.Info("experiment run completed",
		zap.String("run_id", r.runID),
		zap.Int("experiments", len(results)))

	return results, nil
}

// Execute performs a full run: connectivity probe, all five experiments,
// aggregation and report write. A probe failure is fatal and nothing is
// written; once the probe has passed a report is always written, even for a
// run that was interrupted or failed every call.
func (r *Runner) Execute(ctx context.Context, sink ports.ReportSink, endpoint string, models []string) (*domain.Report, string, error) {
	if err := r.client.Probe(ctx); err != nil {
		return nil, "", fmt.Errorf("gateway connectivity check failed: %w", err)
	}
	r.logger.Info("gateway connection verified",
		zap.String("endpoint", endpoint),
		zap.String("run_id", r.runID))

	results, runErr := r.RunAll(ctx)

	report := Aggregate(r.runID, results, endpoint, models)
	report.Metadata.Interrupted = runErr != nil || ctx.Err() != nil

	location, err := sink.Write(context.Background(), report)
	if err != nil {
		return nil, "", fmt.Errorf("failed to write report: %w", err)
	}

	return report, location, runErr
}

// runSequential executes a validated request table one call at a time,
// pausing between calls. Every request yields exactly one record.
func (r *Runner) runSequential(ctx context.Context, name string, reqs []domain.Request, pause time.Duration) ([]domain.CallRecord, error) {
	if err := r.validator.ValidatePlan(name, reqs); err != nil {
		return nil, fmt.Errorf("invalid experiment definition: %w", err)
	}

	records := make([]domain.CallRecord, 0, len(reqs))
	for i, req := range reqs {
		records = append(records, r.call(ctx, name, req))
		if i < len(reqs)-1 {
			r.pause(ctx, pause)
		}
	}
	return records, nil
}

// call dispatches one request and pairs it with its single outcome
func (r *Runner) call(ctx context.Context, experiment string, req domain.Request) domain.CallRecord {
	record := domain.CallRecord{Request: req}

	resp, err := r.client.Send(ctx, req)
	if err != nil {
		kind := domain.KindOf(err)
		record.Error = &domain.ErrorRecord{
			RequestID: req.ID,
			Kind:      kind,
			Message:   err.Error(),
		}

		r.metrics.RecordCall(req.Model, "error", 0)
		r.progress.RecordCall(false)
		r.publish(ctx, domain.EventTypeCallFailed, experiment, map[string]any{
			"request_id": req.ID,
			"model":      req.Model,
			"kind":       string(kind),
		})
		r.logger.Warn("call failed",
			zap.String("experiment", experiment),
			zap.String("request_id", req.ID),
			zap.String("model", req.Model),
			zap.String("kind", string(kind)))
		return record
	}

	record.Response = resp

	r.metrics.RecordCall(req.Model, "success", resp.Latency)
	r.metrics.RecordTokens(req.Model, "prompt", resp.Usage.PromptTokens)
	r.metrics.RecordTokens(req.Model, "completion", resp.Usage.CompletionTokens)
	r.progress.RecordCall(true)
	r.publish(ctx, domain.EventTypeCallCompleted, experiment, map[string]any{
		"request_id":   req.ID,
		"model":        req.Model,
		"latency_ms":   resp.Latency.Milliseconds(),
		"total_tokens": resp.Usage.TotalTokens,
	})

	return record
}

// finish assembles an immutable ExperimentResult and emits its metrics
func (r *Runner) finish(ctx context.Context, name string, started time.Time, records []domain.CallRecord, metadata map[string]any) domain.ExperimentResult {
	duration := time.Since(started)
	result := domain.ExperimentResult{
		Name:     name,
		Records:  records,
		Summary:  summarize(records),
		Started:  started,
		Duration: duration,
		Metadata: metadata,
	}

	r.metrics.RecordExperiment(name, duration)
	r.progress.FinishExperiment()
	r.publish(ctx, domain.EventTypeExperimentCompleted, name, map[string]any{
		"calls":     result.Summary.Calls,
		"successes": result.Summary.Successes,
		"failures":  result.Summary.Failures,
	})
	r.logger.Info("experiment completed",
		zap.String("experiment", name),
		zap.Int("calls", result.Summary.Calls),
		zap.Int("successes", result.Summary.Successes),
		zap.Int("failures", result.Summary.Failures),
		zap.Duration("duration", duration))

	return result
}

// begin marks the start of an experiment
func (r *Runner) begin(ctx context.Context, name string) time.Time {
	r.progress.StartExperiment(name)
	r.publish(ctx, domain.EventTypeExperimentStarted, name, nil)
	r.logger.Info("starting experiment", zap.String("experiment", name))
	return time.Now()
}

func (r *Runner) publish(ctx context.Context, eventType domain.EventType, experiment string, data map[string]any) {
	event := domain.Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		RunID:      r.runID,
		Experiment: experiment,
		Timestamp:  time.Now(),
		Data:       data,
	}

	if err := r.bus.Publish(ctx, TopicRunEvents, event); err != nil {
		r.logger.Error("failed to publish event",
			zap.String("event_type", string(eventType)),
			zap.Error(err))
	}
}

// pause sleeps for the fixed inter-call delay, honoring cancellation
func (r *Runner) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// newRequest constructs an immutable request with a fresh ID
func (r *Runner) newRequest(model, prompt string, temperature float64, maxTokens int) domain.Request {
	return domain.Request{
		ID:          uuid.New().String(),
		Model:       model,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}
