package observability

import (
	"testing"
	"time"
)

func TestMetricsCalculator_Calculate(t *testing.T) {
	el := newTestEventLog(t)

	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	events := []Event{
		{Time: base, Type: "custom.thing", Data: map[string]any{"k": "v"}},
		{Time: base.Add(time.Minute), Type: EventTaskAdded, Data: map[string]any{"id": "a"}},
		{Time: base.Add(2 * time.Minute), Type: EventTaskAdded, Data: map[string]any{"id": "b"}},
		{Time: base.Add(3 * time.Minute), Type: EventTaskToggled, Data: map[string]any{"id": "a", "done": true}},
		{Time: base.Add(4 * time.Minute), Type: EventTaskToggled, Data: map[string]any{"id": "a", "done": false}},
		{Time: base.Add(5 * time.Minute), Type: EventTaskToggled, Data: map[string]any{"id": "b", "done": true}},
		{Time: base.Add(6 * time.Minute), Type: EventTasksCleared, Data: map[string]any{"removed": 2}},
		{Time: base.Add(7 * time.Minute), Type: EventPersistFailure, Data: map[string]any{"error": "disk full"}},
		{Time: base.Add(8 * time.Minute), Type: EventStoreLoadFail},
	}
	for _, e := range events {
		if err := el.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	m, err := NewMetricsCalculator(el).Calculate(base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}

	if m.TasksAdded != 2 {
		t.Errorf("TasksAdded = %d, want 2", m.TasksAdded)
	}
	if m.TasksCompleted != 2 {
		t.Errorf("TasksCompleted = %d, want 2", m.TasksCompleted)
	}
	if m.TasksReopened != 1 {
		t.Errorf("TasksReopened = %d, want 1", m.TasksReopened)
	}
	if m.Clears != 1 || m.TasksCleared != 2 {
		t.Errorf("Clears = %d, TasksCleared = %d, want 1, 2", m.Clears, m.TasksCleared)
	}
	if m.PersistFailures != 1 || m.LoadFailures != 1 {
		t.Errorf("PersistFailures = %d, LoadFailures = %d", m.PersistFailures, m.LoadFailures)
	}
	if m.EventCount != len(events) {
		t.Errorf("EventCount = %d, want %d", m.EventCount, len(events))
	}
	if m.OldestEvent == nil || !m.OldestEvent.Equal(base) {
		t.Errorf("OldestEvent = %v, want %v", m.OldestEvent, base)
	}
	if m.NewestEvent == nil || !m.NewestEvent.Equal(base.Add(8*time.Minute)) {
		t.Errorf("NewestEvent = %v", m.NewestEvent)
	}
}

func TestMetricsCalculator_SinceExcludesOlderEvents(t *testing.T) {
	el := newTestEventLog(t)

	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	_ = el.Write(Event{Time: base, Type: EventTaskAdded})
	_ = el.Write(Event{Time: base.Add(48 * time.Hour), Type: EventTaskAdded})

	m, err := NewMetricsCalculator(el).Calculate(base.Add(24 * time.Hour))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}
	if m.TasksAdded != 1 || m.EventCount != 1 {
		t.Errorf("TasksAdded = %d, EventCount = %d, want 1, 1", m.TasksAdded, m.EventCount)
	}
}

func TestMetricsCalculator_EmptyLog(t *testing.T) {
	el := newTestEventLog(t)

	m, err := NewMetricsCalculator(el).Calculate(time.Time{})
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}
	if m.EventCount != 0 || m.OldestEvent != nil || m.NewestEvent != nil {
		t.Errorf("metrics = %+v, want zero", m)
	}
}

func TestSummarize_RemovedAsInt(t *testing.T) {
	m := Summarize([]Event{{Type: EventTasksCleared, Data: map[string]any{"removed": 3}}})
	if m.TasksCleared != 3 {
		t.Errorf("TasksCleared = %d, want 3", m.TasksCleared)
	}
}

func TestSummarize_ToggleWithoutDoneCountsAsReopened(t *testing.T) {
	m := Summarize([]Event{{Type: EventTaskToggled}})
	if m.TasksReopened != 1 || m.TasksCompleted != 0 {
		t.Errorf("metrics = %+v", m)
	}
}
