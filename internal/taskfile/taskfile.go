// Package taskfile reads and writes task definition files. A tasks file is a
// JSON object carrying a "tasks" array plus an arbitrary envelope (version,
// project, whatever else the producer put there). Loading keeps the envelope
// and the top-level key order intact, so reflecting a file and saving it back
// rewrites only the tasks array and the reflection bookkeeping under "meta".
package taskfile

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"time"

	"github.com/taskreflect/taskreflect/internal/errors"
	"github.com/taskreflect/taskreflect/internal/reflection"
)

// File is a parsed tasks file.
type File struct {
	// Tasks is the decoded tasks array.
	Tasks []reflection.Task
	// Meta holds the "meta" object with unrecognized keys preserved raw.
	Meta map[string]json.RawMessage

	keys  []string                   // top-level key order as encountered
	extra map[string]json.RawMessage // top-level keys other than tasks and meta
	path  string
}

// New builds an in-memory tasks file around a task list.
func New(tasks []reflection.Task) *File {
	return &File{
		Tasks: tasks,
		keys:  []string{"tasks"},
		extra: make(map[string]json.RawMessage),
	}
}

// Load reads and parses the tasks file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewTaskFileError("tasks file not found", errors.ErrTaskFileNotFound).
				WithPath(path)
		}
		return nil, errors.NewTaskFileError("read tasks file", err).WithPath(path)
	}

	f, err := Parse(data)
	if err != nil {
		var tfe *errors.TaskFileError
		if errors.As(err, &tfe) {
			tfe.WithPath(path)
		}
		return nil, err
	}
	f.path = path
	return f, nil
}

// Parse decodes a tasks file from raw bytes.
func Parse(data []byte) (*File, error) {
	f := &File{extra: make(map[string]json.RawMessage)}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, malformed("parse tasks file", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, malformed("tasks file must be a JSON object", nil)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, malformed("parse tasks file", err)
		}
		key := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, malformed("parse tasks file", err)
		}

		switch key {
		case "tasks":
			if err := json.Unmarshal(raw, &f.Tasks); err != nil {
				return nil, malformed("decode tasks array", err)
			}
		case "meta":
			if err := json.Unmarshal(raw, &f.Meta); err != nil {
				return nil, malformed("decode meta object", err)
			}
		default:
			f.extra[key] = raw
		}
		f.ensureKey(key)
	}

	if !f.hasKey("tasks") {
		return nil, malformed("tasks file has no tasks array", nil)
	}
	return f, nil
}

func malformed(message string, cause error) error {
	if cause != nil {
		message = message + ": " + cause.Error()
	}
	return errors.NewTaskFileError(message, errors.ErrTaskFileMalformed)
}

// Path returns the path the file was loaded from, if any.
func (f *File) Path() string {
	return f.path
}

// Graph builds a task graph from the file's tasks.
func (f *File) Graph() (reflection.TaskGraph, error) {
	return reflection.NewGraph(f.Tasks)
}

// ApplyResult replaces the tasks array with the reflected tasks, in execution
// order, and records the pass under "meta". Meta keys the reflector does not
// own are left alone.
func (f *File) ApplyResult(res *reflection.Result) {
	f.Tasks = res.Tasks
	f.ensureKey("tasks")

	if f.Meta == nil {
		f.Meta = make(map[string]json.RawMessage)
	}
	f.Meta["reflected_at"] = rawJSON(res.Meta.ReflectedAt.Format(time.RFC3339))
	f.Meta["topo_order"] = rawJSON(res.Meta.TopoOrder)
	f.Meta["cycles_detected"] = rawJSON(res.Meta.CyclesDetected)
	f.ensureKey("meta")
}

// rawJSON marshals a value that cannot fail (strings, ints, string slices).
func rawJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// Marshal renders the file as indented JSON, keeping the original top-level
// key order. Keys added since load ("meta" on a file that had none) come
// last.
func (f *File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')

		value, err := f.valueFor(key)
		if err != nil {
			return nil, err
		}
		if err := json.Compact(&buf, value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (f *File) valueFor(key string) (json.RawMessage, error) {
	switch key {
	case "tasks":
		tasks := f.Tasks
		if tasks == nil {
			tasks = []reflection.Task{}
		}
		return json.Marshal(tasks)
	case "meta":
		meta := f.Meta
		if meta == nil {
			meta = map[string]json.RawMessage{}
		}
		return json.Marshal(meta)
	default:
		return f.extra[key], nil
	}
}

// Save atomically writes the file to path: the content lands in a temp file
// first and replaces the target via rename.
func (f *File) Save(path string) error {
	data, err := f.Marshal()
	if err != nil {
		return errors.NewTaskFileError("encode tasks file", err).WithPath(path)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.NewTaskFileError("write temp file", err).WithPath(path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return errors.NewTaskFileError("replace tasks file", err).WithPath(path)
	}
	return nil
}

func (f *File) hasKey(key string) bool {
	for _, k := range f.keys {
		if k == key {
			return true
		}
	}
	return false
}

func (f *File) ensureKey(key string) {
	if !f.hasKey(key) {
		f.keys = append(f.keys, key)
	}
}
