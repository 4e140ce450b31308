package core

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/valter-silva-au/today/internal/storage"
	"pgregory.net/rapid"
)

// =============================================================================
// Generators
// =============================================================================

// genText draws non-blank text that may hold any bytes, including
// invalid UTF-8.
func genText(t *rapid.T, label string) string {
	body := rapid.SliceOfN(rapid.Byte(), 0, 16).Draw(t, label+"Body")
	return string(body) + rapid.StringMatching(`[A-Za-z]`).Draw(t, label+"Tail")
}

func genBlank(t *rapid.T, label string) string {
	return rapid.StringMatching(`[ \t\r\n]{0,6}`).Draw(t, label)
}

// genStore builds a store holding a random list with random completion flags.
func genStore(t *rapid.T, p TaskPersister) *TaskStore {
	s := NewTaskStore(p, nil, nil)
	n := rapid.IntRange(0, 15).Draw(t, "n")
	for i := 0; i < n; i++ {
		s.Add(genText(t, "text"))
		if rapid.Bool().Draw(t, "done") {
			s.ToggleAt(i)
		}
	}
	return s
}

// =============================================================================
// Properties
// =============================================================================

// Adding non-blank text grows the list by one pending task at the end and
// leaves the existing tasks untouched.
func TestAddAppendsPendingTask(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genStore(t, nil)
		before := s.Tasks()
		text := genText(t, "new")

		if _, ok := s.Add(text); !ok {
			t.Fatalf("Add(%q) rejected", text)
		}
		after := s.Tasks()
		if len(after) != len(before)+1 {
			t.Fatalf("len = %d, want %d", len(after), len(before)+1)
		}
		last := after[len(after)-1]
		if last.Text != strings.ToValidUTF8(text, "\uFFFD") || last.Done {
			t.Fatalf("appended %+v", last)
		}
		for i := range before {
			if after[i] != before[i] {
				t.Fatalf("task %d changed: %+v -> %+v", i, before[i], after[i])
			}
		}
	})
}

// Blank text never changes the list.
func TestAddRejectsBlankText(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genStore(t, nil)
		before := s.Tasks()

		if _, ok := s.Add(genBlank(t, "blank")); ok {
			t.Fatal("blank text accepted")
		}
		after := s.Tasks()
		if len(after) != len(before) {
			t.Fatalf("len changed from %d to %d", len(before), len(after))
		}
	})
}

// Toggling flips exactly one flag; toggling twice restores the list.
func TestToggleIsLocalAndInvolutive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genStore(t, nil)
		if s.Len() == 0 {
			s.Add("seed")
		}
		before := s.Tasks()
		idx := rapid.IntRange(0, s.Len()-1).Draw(t, "idx")

		s.ToggleAt(idx)
		mid := s.Tasks()
		for i := range before {
			if i == idx {
				if mid[i].Done == before[i].Done || mid[i].Text != before[i].Text || mid[i].ID != before[i].ID {
					t.Fatalf("task %d not flipped: %+v -> %+v", i, before[i], mid[i])
				}
				continue
			}
			if mid[i] != before[i] {
				t.Fatalf("task %d changed by toggling %d", i, idx)
			}
		}

		s.ToggleAt(idx)
		after := s.Tasks()
		for i := range before {
			if after[i] != before[i] {
				t.Fatalf("double toggle did not restore task %d", i)
			}
		}
	})
}

// Out-of-range toggles never change the list.
func TestToggleOutOfRangeIsNoop(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genStore(t, nil)
		before := s.Tasks()
		idx := rapid.OneOf(rapid.IntRange(-100, -1), rapid.IntRange(s.Len(), s.Len()+100)).Draw(t, "idx")

		if s.ToggleAt(idx) {
			t.Fatalf("ToggleAt(%d) reported success on a list of %d", idx, len(before))
		}
		after := s.Tasks()
		for i := range before {
			if after[i] != before[i] {
				t.Fatalf("task %d changed", i)
			}
		}
	})
}

// ClearAll always leaves an empty list.
func TestClearAllEmptiesList(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := genStore(t, nil)
		s.ClearAll()
		if s.Len() != 0 {
			t.Fatalf("Len() = %d after ClearAll", s.Len())
		}
	})
}

// After any sequence of operations and a flush, the persisted blob decodes
// to the in-memory list.
func TestPersistedBlobMatchesMemory(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		kv := storage.NewMemoryKeyValueStore()
		p := storage.NewPersister(kv, storage.DefaultKey, nil, nil)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		defer p.Close(ctx)

		s := NewTaskStore(p, nil, nil)
		ops := rapid.IntRange(1, 25).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0, 1:
				s.Add(genText(t, "text"))
			case 2:
				s.ToggleAt(rapid.IntRange(-1, s.Len()).Draw(t, "idx"))
			case 3:
				if rapid.IntRange(0, 4).Draw(t, "clear") == 0 {
					s.ClearAll()
				}
			}
		}
		if err := p.Flush(ctx); err != nil {
			t.Fatalf("flush: %v", err)
		}

		stored, err := p.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		mem := s.Tasks()
		if len(stored) != len(mem) {
			t.Fatalf("stored %d tasks, memory has %d", len(stored), len(mem))
		}
		for i := range mem {
			if stored[i].Text != mem[i].Text || stored[i].Done != mem[i].Done {
				t.Fatalf("task %d: stored %+v, memory %+v", i, stored[i], mem[i])
			}
		}
	})
}

// A store reloaded from the persisted blob shows the same list.
func TestReloadRestoresList(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		kv := storage.NewMemoryKeyValueStore()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		p := storage.NewPersister(kv, storage.DefaultKey, nil, nil)
		s := genStore(t, p)
		want := s.Tasks()
		if err := p.Close(ctx); err != nil {
			t.Fatal(err)
		}

		p2 := storage.NewPersister(kv, storage.DefaultKey, nil, nil)
		defer p2.Close(ctx)
		reloaded := NewTaskStore(p2, nil, nil)
		reloaded.Load(ctx)

		got := reloaded.Tasks()
		if len(got) != len(want) {
			t.Fatalf("reloaded %d tasks, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i].Text != want[i].Text || got[i].Done != want[i].Done {
				t.Fatalf("task %d: got %+v, want %+v", i, got[i], want[i])
			}
			if got[i].ID == "" {
				t.Fatalf("task %d reloaded without an ID", i)
			}
		}
	})
}

var _ TaskPersister = (*storage.Persister)(nil)
