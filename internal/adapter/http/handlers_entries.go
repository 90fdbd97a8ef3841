package adapthttp

import (
	"net/http"
	"strings"

	"fittrack/internal/domain"
)

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	entries, err := s.tracker.Entries(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.DailyEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}

func (s *Server) handleEntryToday(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		e, err := s.tracker.TodayEntry(r.Context())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"date":  s.tracker.Today(),
			"entry": e,
		})
	case http.MethodPut, http.MethodPost:
		s.writeEntry(w, r, s.tracker.Today())
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPost)
	}
}

// handleEntryByDate serves PUT /entries/{YYYY-MM-DD}.
func (s *Server) handleEntryByDate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPut, http.MethodPost)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/entries/")
	date, err := domain.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeEntry(w, r, date)
}

func (s *Server) writeEntry(w http.ResponseWriter, r *http.Request, date domain.Date) {
	var u domain.EntryUpdate
	if err := parseJSON(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	e, err := s.tracker.UpdateEntry(r.Context(), date, u)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.CounterEntryWrites.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": e})
}
