package store

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kennel-records/internal/platform/apierror"
	"kennel-records/internal/platform/dates"
)

func RegisterRoutes(r chi.Router, st *Store) {
	r.Get("/stats", statsHandler(st))
}

type upcomingEventResponse struct {
	ID              string `json:"id"`
	DogID           string `json:"dog_id"`
	Type            string `json:"type"`
	Date            string `json:"date"`
	Title           string `json:"title"`
	Color           string `json:"color"`
	RelatedLitterID string `json:"related_litter_id,omitempty"`
}

type litterStatsResponse struct {
	Total       int      `json:"total"`
	Planned     int      `json:"planned"`
	Born        int      `json:"born"`
	Overdue     int      `json:"overdue"`
	Puppies     int      `json:"puppies"`
	SuccessRate *float64 `json:"success_rate,omitempty"`
}

type statsResponse struct {
	Dogs     int                     `json:"dogs"`
	Females  int                     `json:"females"`
	Males    int                     `json:"males"`
	Litters  litterStatsResponse     `json:"litters"`
	Upcoming []upcomingEventResponse `json:"upcoming"`
}

// statsHandler godoc
// @Summary Resumen del criadero
// @Description Conteo de perros, estadísticas de camadas y próximos eventos (30 días).
// @Tags stats
// @Produce json
// @Success 200 {object} statsResponse
// @Router /stats [get]
func statsHandler(st *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := st.Stats(r.Context())
		if err != nil {
			apierror.Write(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := statsResponse{
			Dogs:    s.Dogs,
			Females: s.Females,
			Males:   s.Males,
			Litters: litterStatsResponse{
				Total:       s.Litters.Total,
				Planned:     s.Litters.Planned,
				Born:        s.Litters.Born,
				Overdue:     s.Litters.Overdue,
				Puppies:     s.Litters.Puppies,
				SuccessRate: s.Litters.SuccessRate,
			},
			Upcoming: make([]upcomingEventResponse, 0, len(s.Upcoming)),
		}
		for _, e := range s.Upcoming {
			out.Upcoming = append(out.Upcoming, upcomingEventResponse{
				ID:              e.ID,
				DogID:           e.DogID,
				Type:            string(e.Type),
				Date:            dates.Format(e.Date),
				Title:           e.Title,
				Color:           e.Color,
				RelatedLitterID: e.RelatedLitterID,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
