// Package io reads and writes activity datasets as JSON or CSV.
//
// # JSON
//
// Either a bare array of activities or an object that also declares the
// resource lanes in display order:
//
//	{
//	  "resources": ["crane", "truck"],
//	  "activities": [
//	    {"id": "a1", "series": "crane", "start": "2024-03-01T08:00:00Z",
//	     "finish": "2024-03-01T12:00:00Z", "type": "lift", "title": "Beams"}
//	  ]
//	}
//
// # CSV
//
// The first row is a header. Columns are matched by name, case-insensitive:
// series, start and finish are required; id, type and title are optional.
// Times are RFC 3339, "2006-01-02 15:04" or "2006-01-02" (UTC).
//
// Activities without an id get a random UUID so they can be dragged and
// moved later. Readers never validate chart semantics such as a finish
// before its start; that is left to the chart, which reports such records
// instead of failing the whole dataset.
package io
