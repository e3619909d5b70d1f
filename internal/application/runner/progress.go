package runner

import "sync"

// Progress tracks a run's live state for the status API. Counters are
// written by the runner (including the concurrent dispatch goroutines) and
// read by HTTP handlers.
type Progress struct {
	mu sync.RWMutex

	currentExperiment    string
	experimentsCompleted int
	calls                int
	successes            int
	failures             int
}

// Snapshot is an immutable view of run progress
type Snapshot struct {
	CurrentExperiment    string `json:"current_experiment,omitempty"`
	ExperimentsCompleted int    `json:"experiments_completed"`
	Calls                int    `json:"calls"`
	Successes            int    `json:"successes"`
	Failures             int    `json:"failures"`
}

// NewProgress creates an empty progress tracker
func NewProgress() *Progress {
	return &Progress{}
}

// StartExperiment records the experiment now in flight
func (p *Progress) StartExperiment(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentExperiment = name
}

// FinishExperiment marks the in-flight experiment as done
func (p *Progress) FinishExperiment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentExperiment = ""
	p.experimentsCompleted++
}

// RecordCall counts one completed call
func (p *Progress) RecordCall(success bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if success {
		p.successes++
	} else {
		p.failures++
	}
}

// Snapshot returns the current progress
func (p *Progress) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{
		CurrentExperiment:    p.currentExperiment,
		ExperimentsCompleted: p.experimentsCompleted,
		Calls:                p.calls,
		Successes:            p.successes,
		Failures:             p.failures,
	}
}
