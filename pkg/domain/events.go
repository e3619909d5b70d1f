package domain

import "time"

// EventType identifies run progress events
type EventType string

const (
	EventTypeRunStarted          EventType = "run.started"
	EventTypeRunCompleted        EventType = "run.completed"
	EventTypeExperimentStarted   EventType = "experiment.started"
	EventTypeExperimentCompleted EventType = "experiment.completed"
	EventTypeCallCompleted       EventType = "call.completed"
	EventTypeCallFailed          EventType = "call.failed"
)

// Event is published on the event bus as a run progresses
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	RunID      string         `json:"run_id"`
	Experiment string         `json:"experiment,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	Data       map[string]any `json:"data,omitempty"`
}
