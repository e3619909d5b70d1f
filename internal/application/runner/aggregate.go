package runner

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"gatelab/pkg/domain"
)

// Aggregate wraps the experiment results into the run's Report. Pure
// function of its input apart from the run timestamp; serialization is the
// sink's concern.
func Aggregate(runID string, results []domain.ExperimentResult, endpoint string, models []string) *domain.Report {
	if runID == "" {
		runID = uuid.New().String()
	}

	return &domain.Report{
		RunID:       runID,
		Timestamp:   time.Now(),
		Experiments: results,
		Metadata: domain.ReportMetadata{
			Endpoint:   endpoint,
			Models:     models,
			TotalCalls: lo.SumBy(results, func(r domain.ExperimentResult) int { return r.Summary.Calls }),
			Successes:  lo.SumBy(results, func(r domain.ExperimentResult) int { return r.Summary.Successes }),
			Failures:   lo.SumBy(results, func(r domain.ExperimentResult) int { return r.Summary.Failures }),
		},
	}
}

// summarize computes per-experiment metrics. Mean latency is taken over
// successful calls only; failed calls contribute no latency sample.
func summarize(records []domain.CallRecord) domain.Summary {
	successes := lo.Filter(records, func(rec domain.CallRecord, _ int) bool {
		return rec.Succeeded()
	})

	var mean time.Duration
	if len(successes) > 0 {
		total := lo.SumBy(successes, func(rec domain.CallRecord) time.Duration {
			return rec.Response.Latency
		})
		mean = total / time.Duration(len(successes))
	}

	return domain.Summary{
		Calls:       len(records),
		Successes:   len(successes),
		Failures:    len(records) - len(successes),
		MeanLatency: mean,
		TotalTokens: lo.SumBy(successes, func(rec domain.CallRecord) int {
			return rec.Response.Usage.TotalTokens
		}),
	}
}
