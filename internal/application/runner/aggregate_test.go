package runner

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"gatelab/pkg/domain"
)

func successRecord(latency time.Duration, tokens int) domain.CallRecord {
	return domain.CallRecord{
		Request: domain.Request{ID: "r", Model: "openai/gpt-4o-mini"},
		Response: &domain.Response{
			Latency: latency,
			Usage:   domain.Usage{TotalTokens: tokens},
		},
	}
}

func failedRecord(kind domain.ErrorKind) domain.CallRecord {
	return domain.CallRecord{
		Request: domain.Request{ID: "r", Model: "openai/gpt-4o-mini"},
		Error:   &domain.ErrorRecord{RequestID: "r", Kind: kind, Message: "failed"},
	}
}

func TestSummarizeMeanExcludesFailures(t *testing.T) {
	RegisterTestingT(t)

	records := []domain.CallRecord{
		successRecord(100*time.Millisecond, 10),
		failedRecord(domain.ErrTimeout),
		successRecord(300*time.Millisecond, 20),
		failedRecord(domain.ErrTransport),
	}

	s := summarize(records)

	Expect(s.Calls).To(Equal(4))
	Expect(s.Successes).To(Equal(2))
	Expect(s.Failures).To(Equal(2))
	// mean over the two successful latencies only
	Expect(s.MeanLatency).To(Equal(200 * time.Millisecond))
	Expect(s.TotalTokens).To(Equal(30))
}

func TestSummarizeAllFailed(t *testing.T) {
	RegisterTestingT(t)

	s := summarize([]domain.CallRecord{
		failedRecord(domain.ErrUnknown),
		failedRecord(domain.ErrUnknown),
	})

	Expect(s.Successes).To(Equal(0))
	Expect(s.Failures).To(Equal(2))
	Expect(s.MeanLatency).To(Equal(time.Duration(0)))
	Expect(s.TotalTokens).To(Equal(0))
}

func TestSummarizeEmpty(t *testing.T) {
	RegisterTestingT(t)

	s := summarize(nil)
	Expect(s.Calls).To(Equal(0))
	Expect(s.MeanLatency).To(Equal(time.Duration(0)))
}

func TestAggregateTotals(t *testing.T) {
	RegisterTestingT(t)

	results := []domain.ExperimentResult{
		{
			Name:    ExperimentMultiProvider,
			Summary: domain.Summary{Calls: 6, Successes: 5, Failures: 1},
		},
		{
			Name:    ExperimentEdgeCases,
			Summary: domain.Summary{Calls: 4, Successes: 2, Failures: 2},
		},
	}

	models := []string{"openai/gpt-4o-mini", "anthropic/claude-haiku-3"}
	report := Aggregate("run-1", results, "https://gateway.example/v1", models)

	Expect(report.RunID).To(Equal("run-1"))
	Expect(report.Experiments).To(HaveLen(2))
	Expect(report.Metadata.TotalCalls).To(Equal(10))
	Expect(report.Metadata.Successes).To(Equal(7))
	Expect(report.Metadata.Failures).To(Equal(3))
	Expect(report.Metadata.Models).To(Equal(models))
	Expect(report.Timestamp).To(BeTemporally("~", time.Now(), time.Minute))
}

func TestAggregateAssignsRunID(t *testing.T) {
	RegisterTestingT(t)

	report := Aggregate("", nil, "https://gateway.example/v1", nil)
	Expect(report.RunID).NotTo(BeEmpty())
}
