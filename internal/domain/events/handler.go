package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kennel-records/internal/platform/apierror"
	"kennel-records/internal/platform/dates"
	"kennel-records/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc))
		er.Get("/", listEventsHandler(svc))

		er.Get("/{eventID}", getEventHandler(svc))
		er.Put("/{eventID}", updateEventHandler(svc))
		er.Delete("/{eventID}", removeEventHandler(svc))
	})
}

// createEventRequest es el cuerpo para agregar un evento manual al calendario.
type createEventRequest struct {
	DogID     string `json:"dog_id" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Date      string `json:"date" validate:"required,date"` // YYYY-MM-DD
	Title     string `json:"title" validate:"required,max=200"`
	Notes     string `json:"notes"`
	Color     string `json:"color" validate:"omitempty,hexcolor"`
	Completed bool   `json:"completed"`
}

type updateEventRequest struct {
	Type      string `json:"type" validate:"required"`
	Date      string `json:"date" validate:"required,date"`
	Title     string `json:"title" validate:"required,max=200"`
	Notes     string `json:"notes"`
	Color     string `json:"color" validate:"omitempty,hexcolor"`
	Completed bool   `json:"completed"`
}

// eventResponse representa un evento del calendario de cría devuelto por la API.
type eventResponse struct {
	ID                string    `json:"id"`
	DogID             string    `json:"dog_id"`
	Type              EventType `json:"type"`
	Date              string    `json:"date"`
	Title             string    `json:"title"`
	Notes             string    `json:"notes"`
	Color             string    `json:"color"`
	Completed         bool      `json:"completed"`
	RelatedLitterID   string    `json:"related_litter_id,omitempty"`
	SourceHeatCycleID string    `json:"source_heat_cycle_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// createEventHandler godoc
// @Summary Crear evento
// @Description Agrega un evento manual al calendario de un perro. Los eventos derivados (celo, camadas) los genera el store.
// @Tags events
// @Accept json
// @Produce json
// @Param payload body createEventRequest true "Datos del evento; date en formato YYYY-MM-DD"
// @Success 201 {object} eventResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError "dog not found"
// @Router /events [post]
func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierror.Write(w, http.StatusBadRequest, "invalid json")
			return
		}
		if fields := validation.Struct(req); fields != nil {
			apierror.WriteValidation(w, fields)
			return
		}

		date, _ := dates.Parse(req.Date)
		e, err := svc.Create(r.Context(), CreateInput{
			DogID:     req.DogID,
			Type:      EventType(req.Type),
			Date:      date,
			Title:     req.Title,
			Notes:     req.Notes,
			Color:     req.Color,
			Completed: req.Completed,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// listEventsHandler godoc
// @Summary Listar eventos
// @Description Calendario ordenado por fecha ascendente. Filtros combinables.
// @Tags events
// @Produce json
// @Param dog_id query string false "ID del perro"
// @Param litter_id query string false "Eventos vinculados a una camada"
// @Param types query string false "Lista CSV de tipos (ej: deworming,vaccination)"
// @Param from query string false "Fecha mínima (YYYY-MM-DD)"
// @Param to query string false "Fecha máxima (YYYY-MM-DD)"
// @Param limit query int false "Máximo de eventos (1-1000). Por defecto 200"
// @Success 200 {array} eventResponse
// @Failure 400 {object} apierror.APIError
// @Router /events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			apierror.Write(w, http.StatusBadRequest, err.Error())
			return
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			apierror.Write(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

func updateEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierror.Write(w, http.StatusBadRequest, "invalid json")
			return
		}
		if fields := validation.Struct(req); fields != nil {
			apierror.WriteValidation(w, fields)
			return
		}

		date, _ := dates.Parse(req.Date)
		e, err := svc.Update(r.Context(), chi.URLParam(r, "eventID"), UpdateInput{
			Type:      EventType(req.Type),
			Date:      date,
			Title:     req.Title,
			Notes:     req.Notes,
			Color:     req.Color,
			Completed: req.Completed,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

func removeEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Remove(r.Context(), chi.URLParam(r, "eventID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()

	filter := ListFilter{
		DogID:           strings.TrimSpace(q.Get("dog_id")),
		RelatedLitterID: strings.TrimSpace(q.Get("litter_id")),
	}

	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	// types=deworming,vaccination
	if v := strings.TrimSpace(q.Get("types")); v != "" {
		for _, p := range strings.Split(v, ",") {
			t := EventType(strings.TrimSpace(p))
			if t == "" {
				continue
			}
			if !t.Valid() {
				return ListFilter{}, errors.New("unknown event type: " + string(t))
			}
			filter.Types = append(filter.Types, t)
		}
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := dates.Parse(v)
		if err != nil {
			return ListFilter{}, errors.New("from must be YYYY-MM-DD")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := dates.Parse(v)
		if err != nil {
			return ListFilter{}, errors.New("to must be YYYY-MM-DD")
		}
		filter.To = &t
	}

	return filter, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		apierror.Write(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDogNotFound):
		apierror.Write(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrNotFound):
		apierror.Write(w, http.StatusNotFound, "event not found")
	default:
		apierror.Write(w, http.StatusInternalServerError, "internal error")
	}
}

func toEventResponse(e BreedingEvent) eventResponse {
	return eventResponse{
		ID:                e.ID,
		DogID:             e.DogID,
		Type:              e.Type,
		Date:              dates.Format(e.Date),
		Title:             e.Title,
		Notes:             e.Notes,
		Color:             e.Color,
		Completed:         e.Completed,
		RelatedLitterID:   e.RelatedLitterID,
		SourceHeatCycleID: e.SourceHeatCycleID,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
