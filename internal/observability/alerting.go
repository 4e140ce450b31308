package observability

import (
	"fmt"
	"time"

	"github.com/valter-silva-au/today/pkg/models"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert represents a triggered alert condition.
type Alert struct {
	ID          string        `json:"id" yaml:"id" toml:"id"`
	Condition   string        `json:"condition" yaml:"condition" toml:"condition"`
	Severity    AlertSeverity `json:"severity" yaml:"severity" toml:"severity"`
	Message     string        `json:"message" yaml:"message" toml:"message"`
	TriggeredAt time.Time     `json:"triggered_at" yaml:"triggered_at" toml:"triggered_at"`
}

// AlertThresholds configures when alerts should fire.
type AlertThresholds struct {
	// Window is how far back failure events are considered.
	Window time.Duration
	// MaxPending fires a backlog alert when the pending count exceeds it.
	// Zero disables the check.
	MaxPending int
}

// DefaultAlertThresholds returns the thresholds used by the stats command.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		Window:     24 * time.Hour,
		MaxPending: 20,
	}
}

// AlertEngine evaluates alert conditions against the event log and the
// current list.
type AlertEngine interface {
	Evaluate(counts models.TaskCounts) ([]Alert, error)
}

type alertEngine struct {
	eventLog   EventLog
	thresholds AlertThresholds
	now        func() time.Time
}

// NewAlertEngine creates a new AlertEngine with the given EventLog and
// thresholds. eventLog may be nil, in which case only the backlog check runs.
func NewAlertEngine(eventLog EventLog, thresholds AlertThresholds) AlertEngine {
	return &alertEngine{
		eventLog:   eventLog,
		thresholds: thresholds,
		now:        time.Now,
	}
}

// Evaluate checks all alert conditions, returning any triggered alerts.
func (ae *alertEngine) Evaluate(counts models.TaskCounts) ([]Alert, error) {
	now := ae.now().UTC()
	var alerts []Alert

	failureAlerts, err := ae.checkFailures(now)
	if err != nil {
		return nil, fmt.Errorf("checking storage failures: %w", err)
	}
	alerts = append(alerts, failureAlerts...)
	alerts = append(alerts, ae.checkBacklog(now, counts)...)

	return alerts, nil
}

// checkFailures looks for persist and load failures inside the window.
func (ae *alertEngine) checkFailures(now time.Time) ([]Alert, error) {
	if ae.eventLog == nil {
		return nil, nil
	}
	since := now.Add(-ae.thresholds.Window)
	events, err := ae.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, err
	}

	var persistFailures, loadFailures int
	var lastErr string
	for _, event := range events {
		switch event.Type {
		case EventPersistFailure:
			persistFailures++
			if msg, ok := event.Data["error"].(string); ok {
				lastErr = msg
			}
		case EventStoreLoadFail:
			loadFailures++
		}
	}

	var alerts []Alert
	if persistFailures > 0 {
		msg := fmt.Sprintf("%d save(s) failed in the last %s", persistFailures, ae.thresholds.Window)
		if lastErr != "" {
			msg += ": " + lastErr
		}
		alerts = append(alerts, Alert{
			ID:          "persist-failures",
			Condition:   "persist_failed",
			Severity:    SeverityHigh,
			Message:     msg,
			TriggeredAt: now,
		})
	}
	if loadFailures > 0 {
		alerts = append(alerts, Alert{
			ID:          "load-failures",
			Condition:   "stored_list_unreadable",
			Severity:    SeverityMedium,
			Message:     fmt.Sprintf("stored list could not be read %d time(s) in the last %s", loadFailures, ae.thresholds.Window),
			TriggeredAt: now,
		})
	}
	return alerts, nil
}

// checkBacklog fires when there are more pending tasks than the threshold.
func (ae *alertEngine) checkBacklog(now time.Time, counts models.TaskCounts) []Alert {
	if ae.thresholds.MaxPending <= 0 || counts.Pending <= ae.thresholds.MaxPending {
		return nil
	}
	return []Alert{{
		ID:          "backlog-size",
		Condition:   "backlog_too_large",
		Severity:    SeverityLow,
		Message:     fmt.Sprintf("%d pending tasks exceeds the limit of %d", counts.Pending, ae.thresholds.MaxPending),
		TriggeredAt: now,
	}}
}
