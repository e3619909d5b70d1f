package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gatelab/pkg/domain"
)

const keyPrefix = "gatelab:report:"

// ReportSink stores run reports in Redis with a TTL
type ReportSink struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewReportSink creates a new Redis report sink
func NewReportSink(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ReportSink {
	return &ReportSink{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Write serializes the report under its run-ID key and returns the key
func (s *ReportSink) Write(ctx context.Context, report *domain.Report) (string, error) {
	key := keyPrefix + report.RunID

	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store report: %w", err)
	}

	s.logger.Info("report stored in redis",
		zap.String("key", key),
		zap.Duration("ttl", s.ttl))

	return key, nil
}

// Load retrieves a previously stored report by run ID
func (s *ReportSink) Load(ctx context.Context, runID string) (*domain.Report, error) {
	data, err := s.client.Get(ctx, keyPrefix+runID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("report not found: %s", runID)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}
