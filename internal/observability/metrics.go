package observability

import (
	"fmt"
	"time"
)

// Metrics holds activity counts derived from the event log.
type Metrics struct {
	TasksAdded      int        `json:"tasks_added" yaml:"tasks_added" toml:"tasks_added"`
	TasksCompleted  int        `json:"tasks_completed" yaml:"tasks_completed" toml:"tasks_completed"`
	TasksReopened   int        `json:"tasks_reopened" yaml:"tasks_reopened" toml:"tasks_reopened"`
	Clears          int        `json:"clears" yaml:"clears" toml:"clears"`
	TasksCleared    int        `json:"tasks_cleared" yaml:"tasks_cleared" toml:"tasks_cleared"`
	PersistFailures int        `json:"persist_failures" yaml:"persist_failures" toml:"persist_failures"`
	LoadFailures    int        `json:"load_failures" yaml:"load_failures" toml:"load_failures"`
	EventCount      int        `json:"event_count" yaml:"event_count" toml:"event_count"`
	OldestEvent     *time.Time `json:"oldest_event,omitempty" yaml:"oldest_event,omitempty" toml:"oldest_event,omitempty"`
	NewestEvent     *time.Time `json:"newest_event,omitempty" yaml:"newest_event,omitempty" toml:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}
	return Summarize(events), nil
}

// Summarize aggregates events into metrics.
func Summarize(events []Event) *Metrics {
	m := &Metrics{EventCount: len(events)}

	for i, event := range events {
		t := event.Time
		if i == 0 {
			m.OldestEvent = &t
		}
		m.NewestEvent = &t

		switch event.Type {
		case EventTaskAdded:
			m.TasksAdded++
		case EventTaskToggled:
			if done, ok := event.Data["done"].(bool); ok && done {
				m.TasksCompleted++
			} else {
				m.TasksReopened++
			}
		case EventTasksCleared:
			m.Clears++
			// Data round-trips through JSON, so numbers come back as float64.
			switch n := event.Data["removed"].(type) {
			case float64:
				m.TasksCleared += int(n)
			case int:
				m.TasksCleared += n
			}
		case EventPersistFailure:
			m.PersistFailures++
		case EventStoreLoadFail:
			m.LoadFailures++
		}
	}

	return m
}
