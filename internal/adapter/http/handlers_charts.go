package adapthttp

import (
	"net/http"

	"fittrack/internal/domain"
)

func (s *Server) handleChartsWeight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = domain.UnitKG
	}

	chart, err := s.charts.WeightTrend(r.Context(), unit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"today":          s.tracker.Today(),
		"unit":           chart.Unit,
		"items":          chart.Points,
		"startingWeight": chart.StartingWeight,
		"targetWeight":   chart.TargetWeight,
	})
}
