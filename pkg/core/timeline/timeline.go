package timeline

import (
	"sync"

	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
)

// Timeline holds the current snapshot of one chart and its selector graph.
// It is safe for concurrent use.
type Timeline struct {
	mu    sync.RWMutex
	state *state.State
	graph *Graph
}

// New returns a timeline with an empty snapshot configured by opts. A nil
// opts uses [options.Default].
func New(opts *options.Options) *Timeline {
	return &Timeline{state: state.New(opts), graph: NewGraph()}
}

// Dispatch applies events in order and returns the resulting snapshot.
func (t *Timeline) Dispatch(events ...state.Event) *state.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range events {
		t.state = state.Reduce(t.state, e)
	}
	return t.state
}

// State returns the current snapshot.
func (t *Timeline) State() *state.State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// View returns the geometry of the current snapshot. Consecutive calls
// without an intervening change return the same slices.
func (t *Timeline) View() ViewModel {
	return t.graph.ViewModel(t.State())
}

// Graph returns the selector graph.
func (t *Timeline) Graph() *Graph {
	return t.graph
}

// Drop ends the drag in progress. On success the dragged activity is moved
// to where it was dropped; otherwise the drag is cancelled and the error
// says why.
func (t *Timeline) Drop() (state.Moved, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	mv, err := t.graph.Drop(t.state)
	if err != nil {
		t.state = state.Reduce(t.state, state.DragEnded{})
		return state.Moved{}, err
	}
	t.state = state.Reduce(t.state, mv)
	return mv, nil
}
