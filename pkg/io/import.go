package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/errors"
)

// Dataset is a list of activities plus an optional declared lane order.
type Dataset struct {
	Resources  []string         `json:"resources,omitempty"`
	Activities []state.Activity `json:"activities"`
}

// Events returns the events that load d into a chart.
func (d Dataset) Events() []state.Event {
	return []state.Event{
		state.ResourcesDeclared{Resources: d.Resources},
		state.ActivitiesLoaded{Activities: d.Activities},
	}
}

// Format names a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FormatOf infers the format from a file extension. Anything that is not
// .csv is read as JSON.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

// Read decodes r in the given format.
func Read(r io.Reader, f Format) (Dataset, error) {
	switch f {
	case FormatCSV:
		return ReadCSV(r)
	case FormatJSON, "":
		return ReadJSON(r)
	}
	return Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", f)
}

// ReadJSON decodes a JSON dataset.
func ReadJSON(r io.Reader) (Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("read: %w", err)
	}
	raw = bytes.TrimSpace(raw)

	var ds Dataset
	if len(raw) > 0 && raw[0] == '[' {
		err = json.Unmarshal(raw, &ds.Activities)
	} else {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&ds)
	}
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode activities")
	}
	AssignIDs(ds.Activities)
	return ds, nil
}

var csvColumns = []string{"id", "series", "start", "finish", "type", "title"}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"}

// ReadCSV decodes a CSV dataset. Errors name the offending line.
func ReadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return Dataset{}, nil
	}
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read header")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, req := range []string{"series", "start", "finish"} {
		if _, ok := cols[req]; !ok {
			return Dataset{}, errors.New(errors.ErrCodeInvalidInput, "missing column %q", req)
		}
	}

	field := func(rec []string, name string) string {
		if i, ok := cols[name]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	var ds Dataset
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read record")
		}
		line, _ := cr.FieldPos(0)

		start, err := parseTime(field(rec, "start"))
		if err != nil {
			return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d: start", line)
		}
		finish, err := parseTime(field(rec, "finish"))
		if err != nil {
			return Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d: finish", line)
		}
		ds.Activities = append(ds.Activities, state.Activity{
			ID:     field(rec, "id"),
			Series: field(rec, "series"),
			Start:  start,
			Finish: finish,
			Type:   field(rec, "type"),
			Title:  field(rec, "title"),
		})
	}
	AssignIDs(ds.Activities)
	return ds, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// idSpace is the UUID namespace of generated activity ids.
var idSpace = uuid.MustParse("6f1c2b8e-3d4a-5e9f-8a7b-1c2d3e4f5a6b")

// AssignIDs gives every activity without an id a name-based UUID derived
// from its fields and position, in place. Reading the same data twice
// yields the same ids.
func AssignIDs(acts []state.Activity) {
	for i := range acts {
		if acts[i].ID != "" {
			continue
		}
		a := acts[i]
		name := fmt.Sprintf("%d|%s|%s|%s|%s|%s", i, a.Series,
			a.Start.Format(time.RFC3339Nano), a.Finish.Format(time.RFC3339Nano), a.Type, a.Title)
		acts[i].ID = uuid.NewSHA1(idSpace, []byte(name)).String()
	}
}

// ImportFile reads the dataset at path, choosing the format by extension.
func ImportFile(path string) (Dataset, error) {
	return ImportFileAs(path, FormatOf(path))
}

// ImportFileAs reads the dataset at path in format f.
func ImportFileAs(path string, f Format) (Dataset, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Dataset{}, err
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return Read(file, f)
}
