// Package storage holds the persistence side of the task list: the blob
// codec, the key-value backends, and the background persister.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/valter-silva-au/today/pkg/models"
)

// ErrCorruptBlob is returned when a stored blob cannot be decoded into a
// task list.
var ErrCorruptBlob = errors.New("corrupt task blob")

// taskListSchema describes the stored blob: an array of {text, done}
// objects. Unknown properties are tolerated.
const taskListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text", "done"],
    "properties": {
      "text": {"type": "string"},
      "done": {"type": "boolean"}
    }
  }
}`

var compiledTaskListSchema = jsonschema.MustCompileString("today://schemas/tasks.json", taskListSchema)

// taskRecord is the wire shape of one task. IDs are not part of it.
type taskRecord struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// EncodeTasks serializes the full list into the stored blob format. Each
// run of invalid UTF-8 in a text becomes a single U+FFFD.
func EncodeTasks(tasks []models.Task) ([]byte, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, taskRecord{Text: strings.ToValidUTF8(t.Text, "\uFFFD"), Done: t.Done})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return data, nil
}

// DecodeTasks validates and deserializes a stored blob. Returned tasks have
// no ID. Entries whose text is blank are dropped since they could never
// have been added.
func DecodeTasks(data []byte) ([]models.Task, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}
	if err := compiledTaskListSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptBlob, schemaErrorMessage(err))
	}

	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}

	tasks := make([]models.Task, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		tasks = append(tasks, models.Task{Text: r.Text, Done: r.Done})
	}
	return tasks, nil
}

// schemaErrorMessage returns the first leaf cause of a validation error,
// which names the offending location in the blob.
func schemaErrorMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}
