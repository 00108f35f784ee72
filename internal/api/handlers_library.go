package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scriptgauge/scriptgauge/internal/report"
	"github.com/scriptgauge/scriptgauge/internal/store"
)

// handleListLibrary lists all analyzed scripts, newest first.
func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	scripts, err := s.orchestrator.Library().List(r.Context())
	if err != nil {
		jsonError(w, "failed to list scripts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if scripts == nil {
		scripts = []store.Script{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"scripts": scripts})
}

// handleScriptReport returns a script's stored report, as Markdown by
// default or rendered to HTML with ?format=html.
func (s *Server) handleScriptReport(w http.ResponseWriter, r *http.Request) {
	scriptID := chi.URLParam(r, "scriptID")
	script, err := s.orchestrator.Library().Get(r.Context(), scriptID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "script not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to load script: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		html, err := report.RenderHTML(script.ReportMD)
		if err != nil {
			jsonError(w, "failed to render report: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(script.ReportMD))
}

// handleDeleteScript removes a script from the library.
func (s *Server) handleDeleteScript(w http.ResponseWriter, r *http.Request) {
	scriptID := chi.URLParam(r, "scriptID")
	err := s.orchestrator.Library().Delete(r.Context(), scriptID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "script not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to delete script: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": scriptID})
}

// handleStats returns aggregate library stats plus current queue depth.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.orchestrator.Library().Stats(r.Context())
	if err != nil {
		jsonError(w, "failed to load stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"scripts":     stats.Scripts,
		"total_pages": stats.TotalPages,
		"total_words": stats.TotalWords,
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
