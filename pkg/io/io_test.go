package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/errors"
)

func TestReadJSONArray(t *testing.T) {
	ds, err := ReadJSON(strings.NewReader(`[
		{"id": "a", "series": "crane", "start": "2024-03-01T08:00:00Z", "finish": "2024-03-01T12:00:00Z", "type": "lift"},
		{"series": "truck", "start": "2024-03-01T09:00:00Z", "finish": "2024-03-01T10:00:00Z"}
	]`))
	require.NoError(t, err)
	require.Len(t, ds.Activities, 2)
	assert.Nil(t, ds.Resources)
	assert.Equal(t, "a", ds.Activities[0].ID)
	assert.Equal(t, 4*time.Hour, ds.Activities[0].Duration())
	assert.NotEmpty(t, ds.Activities[1].ID, "missing id is assigned")
}

func TestReadJSONObject(t *testing.T) {
	ds, err := ReadJSON(strings.NewReader(`{
		"resources": ["truck", "crane"],
		"activities": [{"id": "a", "series": "crane", "start": "2024-03-01T08:00:00Z", "finish": "2024-03-01T12:00:00Z"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"truck", "crane"}, ds.Resources)
	assert.Len(t, ds.Activities, 1)
}

func TestReadJSONErrors(t *testing.T) {
	for _, in := range []string{`{"activities": "no"}`, `{"bogus": 1}`, `[{"start": "yesterday"}]`} {
		_, err := ReadJSON(strings.NewReader(in))
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "input %s: %v", in, err)
	}
}

func TestReadCSV(t *testing.T) {
	in := "Series, Start, Finish, Title\n" +
		"crane, 2024-03-01, 2024-03-03, Foundations\n" +
		"truck, 2024-03-02 08:30, 2024-03-02T17:00:00Z, \"Haul, then dump\"\n"
	ds, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, ds.Activities, 2)

	a := ds.Activities[0]
	assert.Equal(t, "crane", a.Series)
	assert.Equal(t, "Foundations", a.Title)
	assert.Equal(t, 48*time.Hour, a.Duration())
	assert.NotEmpty(t, a.ID)

	b := ds.Activities[1]
	assert.Equal(t, "Haul, then dump", b.Title)
	assert.Equal(t, time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC), b.Start)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"missing column", "series,start\nA,2024-01-01\n", `missing column "finish"`},
		{"bad time", "series,start,finish\nA,2024-01-01,soon\n", "line 2: finish"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadCSVEmpty(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, ds.Activities)
}

func TestRoundTrip(t *testing.T) {
	in := Dataset{
		Resources: []string{"b", "a"},
		Activities: []state.Activity{
			{ID: "1", Series: "a", Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Finish: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Type: "t", Title: "x, y"},
		},
	}
	for _, f := range []Format{FormatJSON, FormatCSV} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(in, &buf, f))
			out, err := Read(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, in.Activities, out.Activities)
			if f == FormatJSON {
				assert.Equal(t, in.Resources, out.Resources)
			}
		})
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	ds := Dataset{Activities: []state.Activity{{ID: "1", Series: "a", Start: time.Unix(0, 0).UTC(), Finish: time.Unix(60, 0).UTC()}}}

	path := filepath.Join(dir, "acts.CSV")
	require.NoError(t, ExportFile(ds, path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "id,series,start,finish,type,title"))

	got, err := ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, ds.Activities, got.Activities)

	_, err = ImportFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestDatasetEvents(t *testing.T) {
	ds := Dataset{Resources: []string{"x"}, Activities: []state.Activity{{ID: "1", Series: "x"}}}
	s := state.New(nil)
	for _, e := range ds.Events() {
		s = state.Reduce(s, e)
	}
	assert.Equal(t, []string{"x"}, s.Resources)
	assert.Len(t, s.Activities, 1)
}

func TestAssignIDsStable(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	acts := func() []state.Activity {
		return []state.Activity{
			{Series: "a", Start: day, Finish: day.Add(time.Hour)},
			{Series: "a", Start: day, Finish: day.Add(time.Hour)},
			{ID: "keep", Series: "b", Start: day, Finish: day},
		}
	}
	first, second := acts(), acts()
	AssignIDs(first)
	AssignIDs(second)

	assert.Equal(t, first, second, "same input yields same ids")
	assert.NotEqual(t, first[0].ID, first[1].ID, "duplicates are told apart by position")
	assert.Equal(t, "keep", first[2].ID)
}
