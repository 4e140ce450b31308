package storage

import (
	"strings"
	"testing"

	"github.com/valter-silva-au/today/pkg/models"
	"pgregory.net/rapid"
)

// genTaskText generates task text that survives the blank-text check:
// arbitrary bytes, not necessarily valid UTF-8, plus one letter.
func genTaskText(t *rapid.T, label string) string {
	body := rapid.SliceOf(rapid.Byte()).Draw(t, label+"Body")
	tail := rapid.StringMatching(`[a-zA-Z]`).Draw(t, label+"Tail")
	return string(body) + tail
}

func genTask(t *rapid.T) models.Task {
	return models.Task{
		Text: genTaskText(t, "text"),
		Done: rapid.Bool().Draw(t, "done"),
	}
}

// Property: decoding an encoded list yields the same texts and flags in
// the same order, with invalid UTF-8 replaced.
func TestTaskCodecRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tasks := rapid.SliceOfN(rapid.Custom(genTask), 0, 30).Draw(t, "tasks")

		data, err := EncodeTasks(tasks)
		if err != nil {
			t.Fatal(err)
		}
		decoded, err := DecodeTasks(data)
		if err != nil {
			t.Fatal(err)
		}

		if len(decoded) != len(tasks) {
			t.Fatalf("length mismatch: got %d, want %d", len(decoded), len(tasks))
		}
		for i := range tasks {
			want := strings.ToValidUTF8(tasks[i].Text, "\uFFFD")
			if decoded[i].Text != want || decoded[i].Done != tasks[i].Done {
				t.Fatalf("task %d: got %+v, want text %q", i, decoded[i], want)
			}
		}
	})
}
