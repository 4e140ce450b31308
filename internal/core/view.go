package core

import (
	"iter"

	"github.com/valter-silva-au/today/pkg/models"
)

// ViewController derives the filtered view over a TaskStore and routes user
// intents to it. Positions it accepts are positions in the filtered view;
// they are resolved to task IDs before reaching the store.
type ViewController struct {
	store  *TaskStore
	filter models.Filter
}

// NewViewController returns a controller showing tasks through filter.
func NewViewController(store *TaskStore, filter models.Filter) *ViewController {
	if filter == "" {
		filter = models.FilterAll
	}
	return &ViewController{store: store, filter: filter}
}

// Store returns the underlying TaskStore.
func (v *ViewController) Store() *TaskStore { return v.store }

// Filter returns the active filter.
func (v *ViewController) Filter() models.Filter { return v.filter }

// SetFilter changes the active filter. Nothing is persisted.
func (v *ViewController) SetFilter(f models.Filter) { v.filter = f }

// VisibleTasks yields the tasks that pass the active filter, in list order.
// The sequence reads the store each time it is ranged over.
func (v *ViewController) VisibleTasks() iter.Seq[models.Task] {
	return func(yield func(models.Task) bool) {
		for _, t := range v.store.tasks {
			if !v.filter.Matches(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Visible collects VisibleTasks into a slice.
func (v *ViewController) Visible() []models.Task {
	out := []models.Task{}
	for t := range v.VisibleTasks() {
		out = append(out, t)
	}
	return out
}

// VisibleAt returns the task at pos in the filtered view.
func (v *ViewController) VisibleAt(pos int) (models.Task, bool) {
	if pos < 0 {
		return models.Task{}, false
	}
	i := 0
	for t := range v.VisibleTasks() {
		if i == pos {
			return t, true
		}
		i++
	}
	return models.Task{}, false
}

// OnAdd adds a task from the entry field.
func (v *ViewController) OnAdd(text string) bool {
	_, ok := v.store.Add(text)
	return ok
}

// OnToggle toggles the task shown at pos in the filtered view.
func (v *ViewController) OnToggle(pos int) bool {
	t, ok := v.VisibleAt(pos)
	if !ok {
		return false
	}
	return v.store.Toggle(t.ID)
}

// OnToggleID toggles the task with the given ID.
func (v *ViewController) OnToggleID(id string) bool {
	return v.store.Toggle(id)
}

// OnClearAll removes every task.
func (v *ViewController) OnClearAll() {
	v.store.ClearAll()
}
