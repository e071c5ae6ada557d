package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/errors"
)

// Write encodes d in the given format.
func Write(d Dataset, w io.Writer, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(d, w)
	case FormatJSON, "":
		return WriteJSON(d, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", f)
}

// WriteJSON writes d as an indented JSON object that [ReadJSON] reads back.
func WriteJSON(d Dataset, w io.Writer) error {
	if d.Activities == nil {
		d.Activities = []state.Activity{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteCSV writes the activities of d with a header row. Declared
// resources have no CSV representation and are dropped.
func WriteCSV(d Dataset, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}
	for _, a := range d.Activities {
		rec := []string{a.ID, a.Series, a.Start.Format(time.RFC3339Nano), a.Finish.Format(time.RFC3339Nano), a.Type, a.Title}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes d to path, choosing the format by extension.
func ExportFile(d Dataset, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(d, f, FormatOf(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
