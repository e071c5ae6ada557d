package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rxtimeline/pkg/cache"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/errors"
	rxio "github.com/matzehuels/rxtimeline/pkg/io"
	"github.com/matzehuels/rxtimeline/pkg/observability"
	"github.com/matzehuels/rxtimeline/pkg/pipeline"
)

func day(d int) time.Time {
	return time.Date(2024, time.July, d, 0, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.New(io.Discard)
	srv := New(pipeline.NewRunner(c, nil, logger), WithLogger(logger))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func body(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func post(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", body(t, v))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func request() map[string]any {
	return map[string]any{
		"width":  400,
		"height": 300,
		"dataset": rxio.Dataset{Activities: []state.Activity{
			{ID: "a", Series: "crane", Start: day(1), Finish: day(2)},
			{ID: "b", Series: "truck", Start: day(3), Finish: day(5)},
		}},
	}
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&eb))
	return eb
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var h healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.Equal(t, "ok", h.Status)

	_, err = uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "request id header")
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.NotEqual(t, "not-a-uuid", resp2.Header.Get(RequestIDHeader))
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/layout", request())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lr layoutResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&lr))
	assert.Len(t, lr.View.Events, 2)
	assert.Len(t, lr.View.Resources, 2)
	assert.False(t, lr.Cached)
	assert.NotEmpty(t, lr.DataHash)

	resp = post(t, ts.URL+"/v1/layout", request())
	var again layoutResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&again))
	assert.True(t, again.Cached)
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/render", request())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))
	svg, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(svg), "<svg"))

	resp = post(t, ts.URL+"/v1/render", request())
	assert.Equal(t, "hit", resp.Header.Get("X-Cache"))

	resp = post(t, ts.URL+"/v1/render?format=json", request())
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestDrop(t *testing.T) {
	ts := newTestServer(t)

	layout := post(t, ts.URL+"/v1/layout", request())
	var lr layoutResponse
	require.NoError(t, json.NewDecoder(layout.Body).Decode(&lr))
	lanes := lr.View.Resources
	require.Len(t, lanes, 2)

	req := request()
	req["drag"] = state.DragEvent{ActivityID: "a", DX: lanes[1].X - lanes[0].X}
	resp := post(t, ts.URL+"/v1/drop", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dr dropResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dr))
	assert.Equal(t, "truck", dr.Moved.Series)
	assert.True(t, dr.Moved.Start.Equal(day(1)))
	assert.Equal(t, "truck", dr.Dataset.Activities[0].Series)
}

func TestDropZoomed(t *testing.T) {
	ts := newTestServer(t)

	zoomed := func() map[string]any {
		r := request()
		r["zoom"] = state.ZoomEvent{K: 2}
		return r
	}
	layout := post(t, ts.URL+"/v1/layout", zoomed())
	var lr layoutResponse
	require.NoError(t, json.NewDecoder(layout.Body).Decode(&lr))
	require.Len(t, lr.View.Events, 2)
	a, b := lr.View.Events[0], lr.View.Events[1]
	require.Equal(t, "a", a.ID)

	// Moving a onto b's position in the zoomed view lands it on b's start.
	req := zoomed()
	req["drag"] = state.DragEvent{ActivityID: "a", DY: b.Y - a.Y}
	resp := post(t, ts.URL+"/v1/drop", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dr dropResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dr))
	assert.Equal(t, "crane", dr.Moved.Series)
	assert.True(t, dr.Moved.Start.Equal(day(3)), "got %s", dr.Moved.Start)
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		code   errors.Code
	}{
		{"unknown field", "/v1/layout", map[string]any{"bogus": 1}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"no dataset", "/v1/layout", map[string]any{}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"local file", "/v1/layout", map[string]any{"source": "/etc/passwd"}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"client mongo uri", "/v1/layout", map[string]any{"source": "mongodb://evil.example.com"}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"mongo not configured", "/v1/layout", map[string]any{"source": "mongodb"}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"remote url", "/v1/layout", map[string]any{"source": "http://169.254.169.254/latest"}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad orientation", "/v1/layout", func() map[string]any {
			r := request()
			r["orientation"] = "sideways"
			return r
		}(), http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"bad format", "/v1/render?format=png", request(), http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"drop without drag", "/v1/drop", request(), http.StatusBadRequest, errors.ErrCodeInvalidDragEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			eb := decodeError(t, resp)
			assert.Equal(t, tt.code, eb.Error.Code)
			assert.NotEmpty(t, eb.RequestID)
		})
	}
}

func TestDecodeMongoSource(t *testing.T) {
	const uri = "mongodb://db.internal:27017"
	srv := New(pipeline.NewRunner(cache.NewNullCache(), nil, nil), WithLogger(log.New(io.Discard)), WithMongoURI(uri))

	decode := func(source string) (pipeline.Options, error) {
		r := httptest.NewRequest(http.MethodPost, "/v1/layout", body(t, map[string]any{"source": source, "collection": "plan"}))
		var opts pipeline.Options
		err := srv.decode(httptest.NewRecorder(), r, &opts, &opts)
		return opts, err
	}

	opts, err := decode(MongoSource)
	require.NoError(t, err)
	assert.Equal(t, uri, opts.Source)
	assert.Equal(t, "plan", opts.Collection)

	for _, foreign := range []string{"mongodb://evil.example.com", "mongodb+srv://evil.example.com", "plan.csv"} {
		_, err := decode(foreign)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "source %q", foreign)
	}
}

func TestRejectsNonJSON(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/v1/layout", "text/plain", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusOf(errors.ErrCodeFileNotFound))
	assert.Equal(t, http.StatusBadGateway, statusOf(errors.ErrCodeNetwork))
	assert.Equal(t, http.StatusGatewayTimeout, statusOf(errors.ErrCodeTimeout))
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.ErrCodeInternal))
}

type httpCounter struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *httpCounter) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &httpCounter{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), WithLogger(log.New(io.Discard)))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	assert.Equal(t, []int{http.StatusOK}, hooks.statuses)
}

func TestListenAndServeStops(t *testing.T) {
	srv := New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), WithAddr("127.0.0.1:0"), WithLogger(log.New(io.Discard)))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
