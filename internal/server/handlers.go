package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphwalk/pkg/bench"
	"github.com/matzehuels/graphwalk/pkg/buildinfo"
	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/observability"
	"github.com/matzehuels/graphwalk/pkg/pipeline"
	"github.com/matzehuels/graphwalk/pkg/render"
	"github.com/matzehuels/graphwalk/pkg/search"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type presetResponse struct {
	Name  string       `json:"name"`
	Graph graph.Params `json:"graph"`
	Title string       `json:"title"`
}

type searchResponse struct {
	RequestID string        `json:"request_id"`
	Graph     graph.Params  `json:"graph"`
	Nodes     int           `json:"nodes"`
	Edges     int           `json:"edges"`
	Cached    bool          `json:"cached"`
	Result    search.Result `json:"result"`
	Hops      int           `json:"hops"`
}

type errorBody struct {
	Code    gwerrors.Code `json:"code"`
	Message string        `json:"message"`
}

type errorResponse struct {
	RequestID string    `json:"request_id"`
	Error     errorBody `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	out := make([]presetResponse, len(s.cfg.Presets))
	for i, p := range s.cfg.Presets {
		out[i] = presetResponse{Name: p.Name, Graph: p.Params(), Title: p.Params().String()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, hit, err := s.runner.BuildWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Search(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		RequestID: middleware.GetReqID(r.Context()),
		Graph:     g.Params(),
		Nodes:     g.NodeCount(),
		Edges:     g.EdgeCount(),
		Cached:    hit,
		Result:    res,
		Hops:      res.Hops(),
	})
}

// handleBench compares strategies. Without start and goal the endpoints are
// drawn with ?seed= (default 1); with only one of them the other takes its
// search default.
func (s *Server) handleBench(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts, err := s.optionsFromQuery(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start, goal := graph.NodeID(*opts.Start), g.MaxNode()
	if opts.Goal != nil {
		goal = graph.NodeID(*opts.Goal)
	}
	if !q.Has("start") && !q.Has("goal") {
		seed, err := queryUint(q, "seed", 1)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if start, goal, err = bench.RandomEndpoints(g, seed); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	var strategies []search.Strategy
	for _, name := range q["strategy"] {
		st, err := search.ParseStrategy(name, *opts.Limit)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		strategies = append(strategies, st)
	}
	if len(strategies) == 0 {
		strategies = []search.Strategy{search.BFS(), search.DFS(), search.DLS(*opts.Limit)}
	}

	report, err := bench.Run(r.Context(), g, bench.Options{Start: start, Goal: goal, Strategies: strategies})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts, err := s.optionsFromQuery(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := q.Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	opts.Formats = []string{format}
	opts.Layout = q.Get("layout")
	opts.Title = q.Get("title")
	opts.Detailed = q.Get("detailed") == "true"
	opts.SkipSearch = !q.Has("start") && !q.Has("goal")
	if opts.Scale, err = queryFloat(q, "scale", 0); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// optionsFromQuery reads the graph and search parameters shared by all
// endpoints. Files are never read on behalf of a request.
func (s *Server) optionsFromQuery(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options
	var err error

	if name := q.Get("preset"); name != "" {
		p, err := s.preset(name)
		if err != nil {
			return opts, err
		}
		opts.Kind, opts.Nodes, opts.Fanout, opts.Seed = string(p.Kind), p.Nodes, p.Fanout, p.Seed
	} else {
		opts.Kind = q.Get("kind")
		if opts.Nodes, err = queryInt(q, "nodes", 0); err != nil {
			return opts, err
		}
		if opts.Fanout, err = queryInt(q, "fanout", 0); err != nil {
			return opts, err
		}
		if opts.Seed, err = queryUint(q, "seed", 0); err != nil {
			return opts, err
		}
	}
	if opts.Start, err = queryOptionalInt(q, "start"); err != nil {
		return opts, err
	}
	if opts.Goal, err = queryOptionalInt(q, "goal"); err != nil {
		return opts, err
	}
	if opts.Limit, err = queryOptionalInt(q, "limit"); err != nil {
		return opts, err
	}
	opts.Strategy = q.Get("strategy")
	opts.Refresh = q.Get("refresh") == "true"

	if err := opts.ValidateForBuild(); err != nil {
		return opts, err
	}
	if s.cfg.MaxNodes > 0 && opts.Nodes > s.cfg.MaxNodes {
		return opts, gwerrors.New(gwerrors.ErrCodeInvalidParameter,
			"nodes must be <= %d, got %d", s.cfg.MaxNodes, opts.Nodes)
	}
	if bound := opts.Params().MaxEdges(); s.cfg.MaxEdges > 0 && bound > s.cfg.MaxEdges {
		return opts, gwerrors.New(gwerrors.ErrCodeInvalidParameter,
			"%s may have up to %d edges, the limit is %d", opts.Params(), bound, s.cfg.MaxEdges)
	}
	opts.SetSearchDefaults()
	return opts, nil
}

func (s *Server) preset(name string) (graph.Params, error) {
	for _, p := range s.cfg.Presets {
		if strings.EqualFold(p.Name, name) {
			return p.Params(), nil
		}
	}
	return graph.Params{}, gwerrors.New(gwerrors.ErrCodePresetNotFound, "no preset named %q", name)
}

func queryInt(q url.Values, key string, def int) (int, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// queryOptionalInt returns nil when key is absent. A present key must hold
// an integer, so ?start=0 and ?start= are not treated as unset.
func queryOptionalInt(q url.Values, key string) (*int, error) {
	if !q.Has(key) {
		return nil, nil
	}
	v := q.Get(key)
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "%s must be an integer, got %q", key, v)
	}
	return &n, nil
}

func queryUint(q url.Values, key string, def uint64) (uint64, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

func queryFloat(q url.Values, key string, def float64) (float64, error) {
	v := q.Get(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, gwerrors.New(gwerrors.ErrCodeInvalidParameter, "%s must be a number, got %q", key, v)
	}
	return f, nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch gwerrors.GetCode(err) {
	case gwerrors.ErrCodeInvalidParameter, gwerrors.ErrCodeInvalidInput,
		gwerrors.ErrCodeInvalidFormat, gwerrors.ErrCodeInvalidStrategy, gwerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case gwerrors.ErrCodeNodeNotFound, gwerrors.ErrCodePresetNotFound, gwerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case gwerrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case gwerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case gwerrors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := gwerrors.GetCode(err)
	if code == "" {
		code = gwerrors.ErrCodeInternal
	}
	msg := gwerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		msg = "internal error"
	}

	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)

	writeJSON(w, status, errorResponse{
		RequestID: middleware.GetReqID(r.Context()),
		Error:     errorBody{Code: code, Message: msg},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
