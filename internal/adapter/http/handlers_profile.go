package adapthttp

import (
	"net/http"

	"fittrack/internal/app"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		p, err := s.tracker.Profile(r.Context())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut, http.MethodPost:
		var in app.ProfileInput
		if err := parseJSON(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		p, err := s.tracker.UpdateProfile(r.Context(), in)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if err := s.tracker.ResetProfile(r.Context()); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete)
	}
}
