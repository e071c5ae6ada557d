package sink

import (
	"encoding/json"

	"github.com/matzehuels/rxtimeline/pkg/core/timeline"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent       bool
	omitRejected bool
}

// WithIndent pretty-prints the output.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// WithoutRejected drops the list of activities that failed validation.
func WithoutRejected() JSONOption { return func(r *jsonRenderer) { r.omitRejected = true } }

// RenderJSON encodes the view model for clients that draw it themselves.
func RenderJSON(vm timeline.ViewModel, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	if r.omitRejected {
		vm.Rejected = nil
	}
	if r.indent {
		return json.MarshalIndent(vm, "", "  ")
	}
	return json.Marshal(vm)
}

// ReadJSON decodes a view model produced by [RenderJSON].
func ReadJSON(data []byte) (timeline.ViewModel, error) {
	var vm timeline.ViewModel
	err := json.Unmarshal(data, &vm)
	return vm, err
}
