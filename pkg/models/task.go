package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Task is a single to-do entry. ID is generated when the task enters the
// process (on add or on load) and is never persisted.
type Task struct {
	ID   string `json:"id" yaml:"id" toml:"id"`
	Text string `json:"text" yaml:"text" toml:"text"`
	Done bool   `json:"done" yaml:"done" toml:"done"`
}

// Filter selects which tasks are displayed. It is view state only.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// Filters returns every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterCompleted, FilterPending}
}

// ParseFilter converts user input into a Filter. Matching is
// case-insensitive; "done" and "todo" are accepted as aliases. An empty
// string parses as FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "completed", "complete", "done":
		return FilterCompleted, nil
	case "pending", "todo", "open":
		return FilterPending, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, completed or pending)", s)
}

// Matches reports whether the task is visible under the filter.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Done
	case FilterPending:
		return !t.Done
	default:
		return true
	}
}

// Label returns the display name, e.g. "Completed".
func (f Filter) Label() string {
	return cases.Title(language.English).String(string(f))
}

func (f Filter) String() string {
	return string(f)
}

// TaskCounts summarizes a task list by completion state.
type TaskCounts struct {
	Total     int `json:"total" yaml:"total" toml:"total"`
	Completed int `json:"completed" yaml:"completed" toml:"completed"`
	Pending   int `json:"pending" yaml:"pending" toml:"pending"`
}
