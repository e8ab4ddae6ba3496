package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/switchpuzzle/pkg/buildinfo"
	perrors "github.com/matzehuels/switchpuzzle/pkg/errors"
	"github.com/matzehuels/switchpuzzle/pkg/perm"
	"github.com/matzehuels/switchpuzzle/pkg/pipeline"
	"github.com/matzehuels/switchpuzzle/pkg/puzzle"
)

// solveFormats are the output formats /v1/solve can return. SVG is left to
// the CLI.
var solveFormats = []string{pipeline.FormatJSON, pipeline.FormatText, pipeline.FormatDOT}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := perrors.ValidateFormat(format, solveFormats...); err != nil {
		writeMappedError(w, r, err)
		return
	}

	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	if limit == 0 || limit > s.config.MaxRoutes {
		limit = s.config.MaxRoutes
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, string(perrors.ErrCodeInvalidInput), "request body is required")
		return
	}

	result, err := s.runner.Solve(r.Context(), pipeline.Options{
		Data:        body,
		Format:      puzzle.FormatJSON,
		Formats:     []string{format},
		Limit:       limit,
		OnlyReached: queryBool(q.Get("only_reached")),
		Glyphs:      queryBool(q.Get("glyphs")),
		Logger:      s.logger,
	})
	if err != nil {
		writeMappedError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Run-Id", result.RunID)
	w.Header().Set("X-Cache", cacheHeader(result.CacheHit))
	w.Header().Set("X-Routes-Total", strconv.Itoa(result.Summary.Total))
	w.Header().Set("X-Routes-Reached", strconv.Itoa(result.Summary.Reached))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

type applyRequest struct {
	Op          string `json:"op"`
	Arrangement string `json:"arrangement"`
}

type applyResponse struct {
	Op          string `json:"op"`
	Arrangement string `json:"arrangement"`
	Result      string `json:"result"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			writeMappedError(w, r, err)
			return
		}
		writeMappedError(w, r, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "invalid JSON body"))
		return
	}

	a, err := perm.ParseArrangement(req.Arrangement)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	op, err := perm.ParseOperation(req.Op)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}
	out, err := perm.Apply(op, a)
	if err != nil {
		writeMappedError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, applyResponse{
		Op:          op.Label(),
		Arrangement: a.String(),
		Result:      out.String(),
	})
}

func queryInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, perrors.New(perrors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", s)
	}
	return n, nil
}

func queryBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
