package memory

import (
	"context"
	"sync"

	"gatelab/pkg/domain"
)

// ReportSink implements ReportSink in memory.
// This is for testing purposes only.
type ReportSink struct {
	mu      sync.Mutex
	reports []*domain.Report
}

// NewReportSink creates a new in-memory report sink
func NewReportSink() *ReportSink {
	return &ReportSink{}
}

// Write stores the report and returns its run ID as the artifact reference
func (s *ReportSink) Write(ctx context.Context, report *domain.Report) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append(s.reports, report)
	return report.RunID, nil
}

// Reports returns all stored reports in write order
func (s *ReportSink) Reports() []*domain.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Report, len(s.reports))
	copy(out, s.reports)
	return out
}
