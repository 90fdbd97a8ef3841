package adapthttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"fittrack/internal/app"
	"fittrack/internal/metrics"
)

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "json", "application/json; charset=utf-8", s.transfer.ExportJSON)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "csv", "text/csv; charset=utf-8", s.transfer.ExportCSV)
}

// export buffers the whole document; headers are only sent once it rendered.
func (s *Server) export(w http.ResponseWriter, r *http.Request, ext, contentType string, fn func(context.Context, io.Writer) error) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	var buf bytes.Buffer
	if err := fn(r.Context(), &buf); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	name := fmt.Sprintf("fitness-data-%s.%s", s.tracker.Today(), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleImport merges an uploaded backup. text/csv bodies are read as the CSV
// export; anything else as the JSON export.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	format := "json"
	if ct := r.Header.Get("Content-Type"); strings.HasPrefix(strings.ToLower(ct), "text/csv") {
		format = "csv"
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var (
		res app.ImportResult
		err error
	)
	if format == "csv" {
		res, err = s.transfer.ImportCSV(r.Context(), body)
	} else {
		res, err = s.transfer.ImportJSON(r.Context(), body)
	}
	if s.metrics != nil {
		s.metrics.CounterImports.WithLabelValues(format, metrics.Result(err)).Inc()
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("backup exceeds %d bytes", tooLarge.Limit))
		return
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, http.MethodDelete)
		return
	}
	if err := s.tracker.ClearAll(r.Context()); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
