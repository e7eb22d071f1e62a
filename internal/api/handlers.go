package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/sprite-ai/purecode/internal/analyze"
	"github.com/sprite-ai/purecode/internal/diff"
	"github.com/sprite-ai/purecode/internal/gate"
	"github.com/sprite-ai/purecode/internal/language"
	"github.com/sprite-ai/purecode/internal/report"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Analyze ---

type analyzeRequest struct {
	Diff           string   `json:"diff"`
	MaxNoiseRatio  *float64 `json:"max_noise_ratio,omitempty"`
	MinPureLines   *int64   `json:"min_pure_lines,omitempty"`
	FailOnDecrease bool     `json:"fail_on_decrease,omitempty"`
}

// handleAnalyze runs the full pipeline on a posted diff and returns the JSON
// report, verdict included. Threshold fields are optional; omitting them all
// yields a report that always passes.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if req.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}

	ds, err := diff.Parse(req.Diff)
	if err != nil {
		var parseErr *diff.ParseError
		if errors.As(err, &parseErr) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	set, err := analyze.Diff(r.Context(), ds)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	verdict := gate.Evaluate(set.Summary(), gate.Config{
		MaxNoiseRatio:  req.MaxNoiseRatio,
		MinPureLines:   req.MinPureLines,
		FailOnDecrease: req.FailOnDecrease,
	})

	var buf bytes.Buffer
	if err := report.Render(&buf, set, verdict, report.Options{Format: report.JSON}); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// --- Parse ---

type parseRequest struct {
	Diff string `json:"diff"`
}

type parseResponse struct {
	Files []fileJSON    `json:"files"`
	Stats diffStatsJSON `json:"stats"`
}

type fileJSON struct {
	Name         string `json:"name"`
	OldPath      string `json:"old_path,omitempty"`
	NewPath      string `json:"new_path,omitempty"`
	Language     string `json:"language"`
	IsNew        bool   `json:"is_new,omitempty"`
	IsDeleted    bool   `json:"is_deleted,omitempty"`
	IsRenamed    bool   `json:"is_renamed,omitempty"`
	IsBinary     bool   `json:"is_binary,omitempty"`
	AddedLines   int    `json:"added_lines"`
	RemovedLines int    `json:"removed_lines"`
	Hunks        int    `json:"hunks"`
}

type diffStatsJSON struct {
	Files   int `json:"files"`
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if req.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}

	ds, err := diff.Parse(req.Diff)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	nFiles, added, removed := ds.Stats()
	resp := parseResponse{
		Stats: diffStatsJSON{
			Files:   nFiles,
			Added:   added,
			Removed: removed,
		},
	}

	for _, f := range ds.Files {
		resp.Files = append(resp.Files, fileJSON{
			Name:         f.Name(),
			OldPath:      f.OldPath,
			NewPath:      f.NewPath,
			Language:     language.Detect(f.Path()).Name,
			IsNew:        f.IsNew,
			IsDeleted:    f.IsDeleted,
			IsRenamed:    f.IsRenamed,
			IsBinary:     f.IsBinary,
			AddedLines:   f.AddedLines,
			RemovedLines: f.RemovedLines,
			Hunks:        len(f.Hunks),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
