package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"gatelab/pkg/domain"
)

// ReportSink writes each run's report as a timestamped JSON document
type ReportSink struct {
	dir    string
	logger *zap.Logger
}

// NewReportSink creates a file sink rooted at dir, creating it if needed
func NewReportSink(dir string, logger *zap.Logger) (*ReportSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &ReportSink{dir: dir, logger: logger}, nil
}

// Write serializes the report and returns the artifact path
func (s *ReportSink) Write(ctx context.Context, report *domain.Report) (string, error) {
	name := fmt.Sprintf("experiment_results_%s.json", report.Timestamp.Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	s.logger.Info("report written",
		zap.String("path", path),
		zap.Int("experiments", len(report.Experiments)))

	return path, nil
}
