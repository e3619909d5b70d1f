package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"gatelab/internal/application/runner"
	eventsmemory "gatelab/pkg/adapters/events/memory"
	"gatelab/pkg/domain"
	"gatelab/pkg/prompts"
)

type stubGateway struct{}

func (stubGateway) Send(ctx context.Context, req domain.Request) (*domain.Response, error) {
	return &domain.Response{Text: "ok", Latency: time.Millisecond, StatusCode: 200}, nil
}

func (stubGateway) Probe(ctx context.Context) error { return nil }

type stubMetrics struct{}

func (stubMetrics) RecordCall(string, string, time.Duration) {}
func (stubMetrics) RecordTokens(string, string, int)         {}
func (stubMetrics) RecordExperiment(string, time.Duration)   {}
func (stubMetrics) SetInflightCalls(int)                     {}

func newTestServer() (*Server, *runner.Runner) {
	r := runner.New(stubGateway{}, prompts.Default(), stubMetrics{}, eventsmemory.NewEventBus(), zap.NewNop(), runner.Options{
		OpenAIModels: []string{"openai/gpt-4o-mini"},
		PerfRequests: 1,
	})
	return NewServer(&Config{Port: 0, Runner: r, Logger: zap.NewNop()}), r
}

func TestHandleHealth(t *testing.T) {
	RegisterTestingT(t)

	s, _ := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	s.router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Body.String()).To(ContainSubstring("healthy"))
}

func TestHandleRunStatus(t *testing.T) {
	RegisterTestingT(t)

	s, r := newTestServer()

	_, err := r.MultiProviderComparison(context.Background())
	Expect(err).To(BeNil())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/run", nil)
	s.router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))

	var status RunStatusResponse
	Expect(json.Unmarshal(w.Body.Bytes(), &status)).To(Succeed())
	Expect(status.RunID).To(Equal(r.RunID()))
	Expect(status.ExperimentsCompleted).To(Equal(1))
	Expect(status.Calls).To(Equal(3))
	Expect(status.Failures).To(Equal(0))
}

func TestMetricsEndpointIsRegistered(t *testing.T) {
	RegisterTestingT(t)

	s, _ := newTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	s.router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))
}
