package litters

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"kennel-records/internal/domain/events"
	"kennel-records/internal/platform/apierror"
	"kennel-records/internal/platform/dates"
	"kennel-records/internal/platform/validation"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/litters", func(lr chi.Router) {
		lr.Post("/", addLitterHandler(svc))
		lr.Get("/", listLittersHandler(svc))

		lr.Get("/{litterID}", getLitterHandler(svc))
		lr.Put("/{litterID}", updateLitterHandler(svc))
		lr.Delete("/{litterID}", removeLitterHandler(svc))

		lr.Post("/{litterID}/birth", recordBirthHandler(svc))

		lr.Post("/{litterID}/puppies", addPuppyHandler(svc))
		lr.Put("/{litterID}/puppies/{puppyID}", updatePuppyHandler(svc))
		lr.Delete("/{litterID}/puppies/{puppyID}", removePuppyHandler(svc))
	})

	// Vista previa del calendario post-parto (no escribe nada)
	r.Get("/schedule", schedulePreviewHandler())
}

type addLitterRequest struct {
	DogID        string `json:"dog_id" validate:"required"`
	StudName     string `json:"stud_name" validate:"max=120"`
	BreedingDate string `json:"breeding_date" validate:"required,date"`
	PuppyCount   int    `json:"puppy_count" validate:"gte=0,lte=30"`
	Males        int    `json:"males" validate:"gte=0,lte=30"`
	Females      int    `json:"females" validate:"gte=0,lte=30"`
	Notes        string `json:"notes"`
}

type updateLitterRequest struct {
	StudName     string `json:"stud_name" validate:"max=120"`
	BreedingDate string `json:"breeding_date" validate:"required,date"`
	BirthDate    string `json:"birth_date" validate:"date"`
	PuppyCount   int    `json:"puppy_count" validate:"gte=0,lte=30"`
	Males        int    `json:"males" validate:"gte=0,lte=30"`
	Females      int    `json:"females" validate:"gte=0,lte=30"`
	Notes        string `json:"notes"`
}

// recordBirthRequest: los conteos omitidos conservan el valor de la camada.
type recordBirthRequest struct {
	BirthDate  string  `json:"birth_date" validate:"required,date"`
	PuppyCount *int    `json:"puppy_count" validate:"omitempty,gte=0,lte=30"`
	Males      *int    `json:"males" validate:"omitempty,gte=0,lte=30"`
	Females    *int    `json:"females" validate:"omitempty,gte=0,lte=30"`
	Notes      *string `json:"notes"`
}

type puppyRequest struct {
	Name             string          `json:"name" validate:"max=120"`
	Gender           string          `json:"gender" validate:"required,oneof=male female"`
	Color            string          `json:"color"`
	Markings         string          `json:"markings"`
	BirthWeightGrams int             `json:"birth_weight_grams" validate:"gte=0"`
	ChipNumber       string          `json:"chip_number"`
	Status           string          `json:"status" validate:"omitempty,oneof=available reserved sold kept"`
	OwnerName        string          `json:"owner_name"`
	Price            decimal.Decimal `json:"price" validate:"-"`
	Notes            string          `json:"notes"`
}

type puppyResponse struct {
	ID               string          `json:"id"`
	LitterID         string          `json:"litter_id"`
	Name             string          `json:"name"`
	Gender           PuppyGender     `json:"gender"`
	Color            string          `json:"color"`
	Markings         string          `json:"markings"`
	BirthWeightGrams int             `json:"birth_weight_grams"`
	ChipNumber       string          `json:"chip_number"`
	Status           PuppyStatus     `json:"status"`
	OwnerName        string          `json:"owner_name"`
	Price            decimal.Decimal `json:"price"`
	Notes            string          `json:"notes"`
}

type litterResponse struct {
	ID                string          `json:"id"`
	DogID             string          `json:"dog_id"`
	StudName          string          `json:"stud_name"`
	Status            Status          `json:"status"`
	BreedingDate      string          `json:"breeding_date"`
	ExpectedBirthDate string          `json:"expected_birth_date"`
	BirthDate         *string         `json:"birth_date,omitempty"`
	PuppyCount        int             `json:"puppy_count"`
	Males             int             `json:"males"`
	Females           int             `json:"females"`
	Notes             string          `json:"notes"`
	Puppies           []puppyResponse `json:"puppies"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type scheduledEventResponse struct {
	ID    string           `json:"id,omitempty"`
	Date  string           `json:"date"`
	Type  events.EventType `json:"type"`
	Title string           `json:"title"`
	Notes string           `json:"notes"`
	Color string           `json:"color"`
}

type birthResponse struct {
	Litter litterResponse           `json:"litter"`
	Events []scheduledEventResponse `json:"events"`
}

// addLitterHandler godoc
// @Summary Planificar camada
// @Description Crea una camada planificada y su evento "birth_expected" en breeding_date + 60 días.
// @Tags litters
// @Accept json
// @Produce json
// @Param payload body addLitterRequest true "Camada; fechas YYYY-MM-DD"
// @Success 201 {object} litterResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError "madre inexistente o macho"
// @Router /litters [post]
func addLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addLitterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierror.Write(w, http.StatusBadRequest, "invalid json")
			return
		}
		if fields := validation.Struct(req); fields != nil {
			apierror.WriteValidation(w, fields)
			return
		}

		breeding, _ := dates.Parse(req.BreedingDate)
		l, err := svc.Add(r.Context(), AddInput{
			DogID:        req.DogID,
			StudName:     req.StudName,
			BreedingDate: breeding,
			PuppyCount:   req.PuppyCount,
			Males:        req.Males,
			Females:      req.Females,
			Notes:        req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toLitterResponse(l))
	}
}

func listLittersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{
			DogID:  strings.TrimSpace(r.URL.Query().Get("dog_id")),
			Status: Status(strings.TrimSpace(r.URL.Query().Get("status"))),
		}
		if filter.Status != "" && filter.Status != StatusPlanned && filter.Status != StatusBorn {
			apierror.Write(w, http.StatusBadRequest, "status must be planned or born")
			return
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			apierror.Write(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]litterResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLitterResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := svc.GetByID(r.Context(), chi.URLParam(r, "litterID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLitterResponse(l))
	}
}

func updateLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateLitterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierror.Write(w, http.StatusBadRequest, "invalid json")
			return
		}
		if fields := validation.Struct(req); fields != nil {
			apierror.WriteValidation(w, fields)
			return
		}

		breeding, _ := dates.Parse(req.BreedingDate)
		birth, _ := dates.ParseOptional(req.BirthDate)

		l, err := svc.Update(r.Context(), chi.URLParam(r, "litterID"), UpdateInput{
			StudName:     req.StudName,
			BreedingDate: breeding,
			BirthDate:    birth,
			PuppyCount:   req.PuppyCount,
			Males:        req.Males,
			Females:      req.Females,
			Notes:        req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLitterResponse(l))
	}
}

func removeLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Remove(r.Context(), chi.URLParam(r, "litterID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// recordBirthHandler godoc
// @Summary Registrar parto
// @Description Marca la camada como nacida y genera el calendario: parto, 4 desparasitaciones (sem. 3/5/7/11), 3 vacunas (sem. 7.5/12/16), control (sem. 8), entrega (sem. 9) y recordatorios (sem. 6/8/9).
// @Tags litters
// @Accept json
// @Produce json
// @Param litterID path string true "ID de la camada"
// @Param payload body recordBirthRequest true "Parto; birth_date YYYY-MM-DD"
// @Success 200 {object} birthResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError "parto ya registrado"
// @Router /litters/{litterID}/birth [post]
func recordBirthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordBirthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierror.Write(w, http.StatusBadRequest, "invalid json")
			return
		}
		if fields := validation.Struct(req); fields != nil {
			apierror.WriteValidation(w, fields)
			return
		}

		birth, _ := dates.Parse(req.BirthDate)
		l, created, err := svc.RecordBirth(r.Context(), chi.URLParam(r, "litterID"), BirthInput{
			BirthDate:  birth,
			PuppyCount: req.PuppyCount,
			Males:      req.Males,
			Females:    req.Females,
			Notes:      req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := birthResponse{
			Litter: toLitterResponse(l),
			Events: make([]scheduledEventResponse, 0, len(created)),
		}
		for _, e := range created {
			out.Events = append(out.Events, scheduledEventResponse{
				ID:    e.ID,
				Date:  dates.Format(e.Date),
				Type:  e.Type,
				Title: e.Title,
				Notes: e.Notes,
				Color: e.Color,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func addPuppyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodePuppyRequest(w, r)
		if !ok {
			return
		}

		p, err := svc.AddPuppy(r.Context(), chi.URLParam(r, "litterID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPuppyResponse(p))
	}
}

func updatePuppyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodePuppyRequest(w, r)
		if !ok {
			return
		}

		p, err := svc.UpdatePuppy(r.Context(), chi.URLParam(r, "litterID"), chi.URLParam(r, "puppyID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPuppyResponse(p))
	}
}

func removePuppyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.RemovePuppy(r.Context(), chi.URLParam(r, "litterID"), chi.URLParam(r, "puppyID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// schedulePreviewHandler godoc
// @Summary Vista previa del calendario post-parto
// @Tags litters
// @Produce json
// @Param birth_date query string true "Fecha de parto (YYYY-MM-DD)"
// @Param dam query string false "Nombre de la madre"
// @Param stud query string false "Nombre del macho"
// @Success 200 {array} scheduledEventResponse
// @Failure 400 {object} apierror.APIError
// @Router /schedule [get]
func schedulePreviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		birth, err := dates.Parse(q.Get("birth_date"))
		if err != nil {
			apierror.Write(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
			return
		}

		planned := ScheduleFor(birth, q.Get("dam"), q.Get("stud"))
		out := make([]scheduledEventResponse, 0, len(planned))
		for _, p := range planned {
			out = append(out, scheduledEventResponse{
				Date:  dates.Format(p.Date),
				Type:  p.Type,
				Title: p.Title,
				Notes: p.Notes,
				Color: p.Color,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func decodePuppyRequest(w http.ResponseWriter, r *http.Request) (PuppyInput, bool) {
	var req puppyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, http.StatusBadRequest, "invalid json")
		return PuppyInput{}, false
	}
	if fields := validation.Struct(req); fields != nil {
		apierror.WriteValidation(w, fields)
		return PuppyInput{}, false
	}

	return PuppyInput{
		Name:             req.Name,
		Gender:           PuppyGender(req.Gender),
		Color:            req.Color,
		Markings:         req.Markings,
		BirthWeightGrams: req.BirthWeightGrams,
		ChipNumber:       req.ChipNumber,
		Status:           PuppyStatus(req.Status),
		OwnerName:        req.OwnerName,
		Price:            req.Price,
		Notes:            req.Notes,
	}, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		apierror.Write(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPuppyCountMismatch):
		apierror.Write(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrDogNotFound), errors.Is(err, ErrNotFemale):
		apierror.Write(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrBirthAlreadyRecorded), errors.Is(err, ErrBirthNotRecorded):
		apierror.Write(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrPuppyNotFound):
		apierror.Write(w, http.StatusNotFound, "puppy not found")
	case errors.Is(err, ErrNotFound):
		apierror.Write(w, http.StatusNotFound, "litter not found")
	default:
		apierror.Write(w, http.StatusInternalServerError, "internal error")
	}
}

func toLitterResponse(l Litter) litterResponse {
	pups := make([]puppyResponse, 0, len(l.Puppies))
	for _, p := range l.Puppies {
		pups = append(pups, toPuppyResponse(p))
	}

	return litterResponse{
		ID:                l.ID,
		DogID:             l.DogID,
		StudName:          l.StudName,
		Status:            l.Status(),
		BreedingDate:      dates.Format(l.BreedingDate),
		ExpectedBirthDate: dates.Format(ExpectedBirth(l.BreedingDate)),
		BirthDate:         dates.FormatPtr(l.BirthDate),
		PuppyCount:        l.PuppyCount,
		Males:             l.Males,
		Females:           l.Females,
		Notes:             l.Notes,
		Puppies:           pups,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func toPuppyResponse(p Puppy) puppyResponse {
	return puppyResponse{
		ID:               p.ID,
		LitterID:         p.LitterID,
		Name:             p.Name,
		Gender:           p.Gender,
		Color:            p.Color,
		Markings:         p.Markings,
		BirthWeightGrams: p.BirthWeightGrams,
		ChipNumber:       p.ChipNumber,
		Status:           p.Status,
		OwnerName:        p.OwnerName,
		Price:            p.Price,
		Notes:            p.Notes,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
