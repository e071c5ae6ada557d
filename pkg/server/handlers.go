package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/matzehuels/rxtimeline/pkg/buildinfo"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/core/timeline"
	"github.com/matzehuels/rxtimeline/pkg/errors"
	rxio "github.com/matzehuels/rxtimeline/pkg/io"
	"github.com/matzehuels/rxtimeline/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

// decode reads a JSON body into v and rejects sources the server may not
// open.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any, opts *pipeline.Options) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if opts.Dataset == nil && opts.Source != "" {
		if opts.Source != MongoSource || s.mongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "source must be %q on a server started with a MongoDB URI; send other data inline as dataset", MongoSource)
		}
		opts.Source = s.mongoURI
	}
	opts.OptionsFile = ""
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	return opts.ValidateAndSetDefaults()
}

type layoutResponse struct {
	View     timeline.ViewModel `json:"view"`
	DataHash string             `json:"data_hash"`
	Cached   bool               `json:"cached"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	ctx := r.Context()
	ds, _, err := s.runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	vm, hash, hit, err := s.runner.LayoutWithCacheInfo(ctx, ds, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{View: vm, DataHash: hash, Cached: hit})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	var opts pipeline.Options
	if err := s.decode(w, r, &opts, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cache := "miss"
	if res.CacheInfo.RenderHit {
		cache = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cache)
	w.Header().Set("X-Data-Hash", res.DataHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

type dropRequest struct {
	pipeline.Options
	Drag state.DragEvent `json:"drag"`
}

type movedActivity struct {
	ActivityID string    `json:"activityId"`
	Series     string    `json:"series"`
	Start      time.Time `json:"start"`
}

type dropResponse struct {
	Moved   movedActivity `json:"moved"`
	Dataset rxio.Dataset  `json:"dataset"`
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := s.decode(w, r, &req, &req.Options); err != nil {
		s.writeError(w, r, err)
		return
	}
	ds, _, err := s.runner.LoadWithCacheInfo(r.Context(), req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	tl := timeline.New(req.ChartOptions())
	tl.Dispatch(pipeline.ChartEvents(ds, req.Options)...)
	tl.Dispatch(state.Dragged{ActivityID: req.Drag.ActivityID, DX: req.Drag.DX, DY: req.Drag.DY})
	mv, err := tl.Drop()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ds.Activities = tl.State().Activities
	writeJSON(w, http.StatusOK, dropResponse{
		Moved:   movedActivity{ActivityID: mv.ActivityID, Series: mv.Series, Start: mv.Start},
		Dataset: ds,
	})
}
