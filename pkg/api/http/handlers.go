package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RunStatusResponse is the progress snapshot of the current run
type RunStatusResponse struct {
	RunID                string `json:"run_id"`
	CurrentExperiment    string `json:"current_experiment,omitempty"`
	ExperimentsCompleted int    `json:"experiments_completed"`
	Calls                int    `json:"calls"`
	Successes            int    `json:"successes"`
	Failures             int    `json:"failures"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleRunStatus reports progress of the run in flight
func (s *Server) handleRunStatus(c *gin.Context) {
	snap := s.runner.Progress().Snapshot()

	c.JSON(http.StatusOK, RunStatusResponse{
		RunID:                s.runner.RunID(),
		CurrentExperiment:    snap.CurrentExperiment,
		ExperimentsCompleted: snap.ExperimentsCompleted,
		Calls:                snap.Calls,
		Successes:            snap.Successes,
		Failures:             snap.Failures,
	})
}
