package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"gatelab/pkg/domain"
	"gatelab/pkg/prompts"
)

// Experiment names as recorded in results and metrics
const (
	ExperimentMultiProvider = "multi_provider_comparison"
	ExperimentParameters    = "parameter_exploration"
	ExperimentReasoning     = "reasoning_comparison"
	ExperimentEdgeCases     = "edge_cases"
	ExperimentPerformance   = "performance_testing"
)

// Fixed parameter grids for the parameter exploration experiment
var (
	explorationTemperatures = []float64{0.0, 0.5, 1.0, 1.5}
	explorationMaxTokens    = []int{50, 150, 300}
)

// invalidModel is deliberately unroutable; the edge-case experiment expects
// the gateway to reject it
const invalidModel = "invalid/model-name"

// MultiProviderComparison sends the simple QA prompts to up to two models
// per provider and records every outcome.
func (r *Runner) MultiProviderComparison(ctx context.Context) (domain.ExperimentResult, error) {
	started := r.begin(ctx, ExperimentMultiProvider)

	models := append(capModels(r.opts.OpenAIModels, 2), capModels(r.opts.AnthropicModels, 2)...)
	qa := r.library.Set(prompts.SetSimpleQA)

	var reqs []domain.Request
	for _, prompt := range qa {
		for _, model := range models {
			reqs = append(reqs, r.newRequest(model, prompt.Content, 0.7, 256))
		}
	}

	records, err := r.runSequential(ctx, ExperimentMultiProvider, reqs, r.opts.RequestPause)
	if err != nil {
		return domain.ExperimentResult{}, err
	}

	return r.finish(ctx, ExperimentMultiProvider, started, records, map[string]any{
		"models":  models,
		"prompts": len(qa),
	}), nil
}

// ParameterExploration sweeps the fixed temperature and max-token grids
// against one model, one grid dimension at a time.
func (r *Runner) ParameterExploration(ctx context.Context) (domain.ExperimentResult, error) {
	started := r.begin(ctx, ExperimentParameters)

	model := r.primaryModel()
	creative := r.library.Set(prompts.SetCreative)
	analysis := r.library.Set(prompts.SetAnalysis)
	storyPrompt := promptByName(creative, "robot_painter")
	explainPrompt := promptByName(analysis, "ml_explainer")

	var reqs []domain.Request
	for _, temp := range explorationTemperatures {
		reqs = append(reqs, r.newRequest(model, storyPrompt, temp, 200))
	}
	for _, maxTokens := range explorationMaxTokens {
		reqs = append(reqs, r.newRequest(model, explainPrompt, 0.7, maxTokens))
	}

	records, err := r.runSequential(ctx, ExperimentParameters, reqs, r.opts.RequestPause)
	if err != nil {
		return domain.ExperimentResult{}, err
	}

	return r.finish(ctx, ExperimentParameters, started, records, map[string]any{
		"model":        model,
		"temperatures": explorationTemperatures,
		"max_tokens":   explorationMaxTokens,
	}), nil
}

// ReasoningComparison sends the reasoning test cases to up to four models
// at a low temperature; reasoning favors determinism.
func (r *Runner) ReasoningComparison(ctx context.Context) (domain.ExperimentResult, error) {
	started := r.begin(ctx, ExperimentReasoning)

	models := append(capModels(r.opts.OpenAIModels, 2), capModels(r.opts.AnthropicModels, 2)...)
	cases := r.library.Set(prompts.SetReasoning)

	var reqs []domain.Request
	for _, testCase := range cases {
		for _, model := range models {
			reqs = append(reqs, r.newRequest(model, testCase.Content, 0.3, 512))
		}
	}

	records, err := r.runSequential(ctx, ExperimentReasoning, reqs, r.opts.RequestPause)
	if err != nil {
		return domain.ExperimentResult{}, err
	}

	return r.finish(ctx, ExperimentReasoning, started, records, map[string]any{
		"models": models,
		"cases":  len(cases),
	}), nil
}

// EdgeCases sends degenerate inputs plus a deliberately invalid model
// identifier. A mix of successes and error records is the expected outcome.
func (r *Runner) EdgeCases(ctx context.Context) (domain.ExperimentResult, error) {
	started := r.begin(ctx, ExperimentEdgeCases)

	model := r.primaryModel()
	cases := r.library.Set(prompts.SetEdgeCases)

	var reqs []domain.Request
	for _, edgeCase := range cases {
		reqs = append(reqs, r.newRequest(model, edgeCase.Content, 0.7, 256))
	}
	reqs = append(reqs, r.newRequest(invalidModel, "Test", 0.7, 256))

	records, err := r.runSequential(ctx, ExperimentEdgeCases, reqs, r.opts.RequestPause)
	if err != nil {
		return domain.ExperimentResult{}, err
	}

	return r.finish(ctx, ExperimentEdgeCases, started, records, map[string]any{
		"model": model,
		"cases": len(reqs),
	}), nil
}

// PerformanceTesting issues N identical requests sequentially and then the
// same N concurrently, recording the wall-clock total of each phase.
func (r *Runner) PerformanceTesting(ctx context.Context) (domain.ExperimentResult, error) {
	started := r.begin(ctx, ExperimentPerformance)

	model := r.primaryModel()
	n := r.opts.PerfRequests
	buildReqs := func() []domain.Request {
		reqs := make([]domain.Request, 0, n)
		for i := 0; i < n; i++ {
			reqs = append(reqs, r.newRequest(model, "Count from 1 to 10.", 0.7, 50))
		}
		return reqs
	}

	seqStart := time.Now()
	seqRecords, err := r.runSequential(ctx, ExperimentPerformance, buildReqs(), r.opts.PerfPause)
	if err != nil {
		return domain.ExperimentResult{}, err
	}
	// pauses between calls are not throughput, subtract them from the
	// total; cancellation cuts pauses short, so clamp at zero
	seqTotal := time.Since(seqStart) - time.Duration(n-1)*r.opts.PerfPause
	if seqTotal < 0 {
		seqTotal = 0
	}

	concurrentReqs := buildReqs()
	if err := r.validator.ValidatePlan(ExperimentPerformance, concurrentReqs); err != nil {
		return domain.ExperimentResult{}, fmt.Errorf("invalid experiment definition: %w", err)
	}
	concStart := time.Now()
	concRecords := r.dispatchParallel(ctx, ExperimentPerformance, concurrentReqs)
	concTotal := time.Since(concStart)

	records := append(seqRecords, concRecords...)

	return r.finish(ctx, ExperimentPerformance, started, records, map[string]any{
		"model":                 model,
		"requests_per_phase":    n,
		"sequential_total_ms":   seqTotal.Milliseconds(),
		"sequential_latency_ms": latenciesMS(seqRecords),
		"concurrent_total_ms":   concTotal.Milliseconds(),
		"concurrent_latency_ms": latenciesMS(concRecords),
	}), nil
}

// primaryModel is the model used by single-model experiments
func (r *Runner) primaryModel() string {
	if len(r.opts.OpenAIModels) > 0 {
		return r.opts.OpenAIModels[0]
	}
	if len(r.opts.AnthropicModels) > 0 {
		return r.opts.AnthropicModels[0]
	}
	return "openai/gpt-4o-mini"
}

func capModels(models []string, max int) []string {
	if len(models) > max {
		return models[:max]
	}
	return models
}

func promptByName(set []prompts.Prompt, name string) string {
	for _, p := range set {
		if p.Name == name {
			return p.Content
		}
	}
	if len(set) > 0 {
		return set[0].Content
	}
	return ""
}

func latenciesMS(records []domain.CallRecord) []int64 {
	return lo.FilterMap(records, func(rec domain.CallRecord, _ int) (int64, bool) {
		if !rec.Succeeded() {
			return 0, false
		}
		return rec.Response.Latency.Milliseconds(), true
	})
}
