package heats

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"kennel-records/internal/platform/apierror"
	"kennel-records/internal/platform/dates"
	"kennel-records/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/heats", func(hr chi.Router) {
		hr.Post("/", addHeatHandler(svc))
		hr.Get("/{heatID}", getHeatHandler(svc))
		hr.Put("/{heatID}", updateHeatHandler(svc))
		hr.Delete("/{heatID}", removeHeatHandler(svc))
	})

	// Vistas por perro
	r.Route("/dogs/{dogID}/heats", func(dr chi.Router) {
		dr.Get("/", listDogHeatsHandler(svc))
		dr.Get("/summary", summaryHandler(svc))
	})
}

type addHeatRequest struct {
	DogID            string `json:"dog_id" validate:"required"`
	StartDate        string `json:"start_date" validate:"required,date"`
	EndDate          string `json:"end_date" validate:"date"`
	CalculateFertile bool   `json:"calculate_fertile"`
	Notes            string `json:"notes"`
	Force            bool   `json:"force"`
}

type updateHeatRequest struct {
	StartDate        string `json:"start_date" validate:"required,date"`
	EndDate          string `json:"end_date" validate:"date"`
	CalculateFertile bool   `json:"calculate_fertile"`
	Notes            string `json:"notes"`
}

type fertileResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type heatResponse struct {
	ID        string           `json:"id"`
	DogID     string           `json:"dog_id"`
	StartDate string           `json:"start_date"`
	EndDate   *string          `json:"end_date,omitempty"`
	Fertile   *fertileResponse `json:"fertile,omitempty"`
	Notes     string           `json:"notes"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type summaryResponse struct {
	DogID            string        `json:"dog_id"`
	Count            int           `json:"count"`
	Last             *heatResponse `json:"last,omitempty"`
	PredictedNext    *string       `json:"predicted_next,omitempty"`
	AverageCycleDays *float64      `json:"average_cycle_days,omitempty"`
}

// addHeatHandler godoc
// @Summary Registrar celo
// @Description Registra un ciclo de celo para una hembra. Genera el evento de inicio y, con calculate_fertile, el de días fértiles (día 9 a 14). Si el inicio está a menos de 6 meses de otro ciclo responde 409 con la advertencia; reenviar con force=true para registrarlo igual.
// @Tags heats
// @Accept json
// @Produce json
// @Param payload body addHeatRequest true "Ciclo; fechas YYYY-MM-DD"
// @Success 201 {object} heatResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError "separación mínima"
// @Failure 422 {object} apierror.APIError "perro inexistente o macho"
// @Router /heats [post]
func addHeatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addHeatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierror.Write(w, http.StatusBadRequest, "invalid json")
			return
		}
		if fields := validation.Struct(req); fields != nil {
			apierror.WriteValidation(w, fields)
			return
		}

		start, _ := dates.Parse(req.StartDate)
		end, _ := dates.ParseOptional(req.EndDate)

		c, err := svc.Add(r.Context(), AddInput{
			DogID:            req.DogID,
			StartDate:        start,
			EndDate:          end,
			CalculateFertile: req.CalculateFertile,
			Notes:            req.Notes,
			Force:            req.Force,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toHeatResponse(c))
	}
}

func getHeatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "heatID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHeatResponse(c))
	}
}

func updateHeatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateHeatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierror.Write(w, http.StatusBadRequest, "invalid json")
			return
		}
		if fields := validation.Struct(req); fields != nil {
			apierror.WriteValidation(w, fields)
			return
		}

		start, _ := dates.Parse(req.StartDate)
		end, _ := dates.ParseOptional(req.EndDate)

		c, err := svc.Update(r.Context(), chi.URLParam(r, "heatID"), UpdateInput{
			StartDate:        start,
			EndDate:          end,
			CalculateFertile: req.CalculateFertile,
			Notes:            req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toHeatResponse(c))
	}
}

func removeHeatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Remove(r.Context(), chi.URLParam(r, "heatID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listDogHeatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByDog(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			apierror.Write(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]heatResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toHeatResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// summaryHandler godoc
// @Summary Resumen de celos
// @Description Último ciclo, próximo celo estimado (último + 180 días) y duración media del ciclo.
// @Tags heats
// @Produce json
// @Param dogID path string true "ID del perro"
// @Success 200 {object} summaryResponse
// @Failure 422 {object} apierror.APIError
// @Router /dogs/{dogID}/heats/summary [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.Summary(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := summaryResponse{
			DogID:            sum.DogID,
			Count:            sum.Count,
			PredictedNext:    dates.FormatPtr(sum.PredictedNext),
			AverageCycleDays: sum.AverageCycleDays,
		}
		if sum.Last != nil {
			last := toHeatResponse(*sum.Last)
			out.Last = &last
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		apierror.Write(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrTooSoon):
		apierror.Write(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrDogNotFound), errors.Is(err, ErrNotFemale):
		apierror.Write(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrNotFound):
		apierror.Write(w, http.StatusNotFound, "heat cycle not found")
	default:
		apierror.Write(w, http.StatusInternalServerError, "internal error")
	}
}

func toHeatResponse(c HeatCycle) heatResponse {
	out := heatResponse{
		ID:        c.ID,
		DogID:     c.DogID,
		StartDate: dates.Format(c.StartDate),
		EndDate:   dates.FormatPtr(c.EndDate),
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Fertile != nil {
		out.Fertile = &fertileResponse{
			StartDate: dates.Format(c.Fertile.StartDate),
			EndDate:   dates.Format(c.Fertile.EndDate),
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
