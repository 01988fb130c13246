package dogs

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"kennel-records/internal/platform/apierror"
	"kennel-records/internal/platform/dates"
	"kennel-records/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 20 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Post("/", createDogHandler(svc))
		dr.Get("/", listDogsHandler(svc))

		dr.Get("/{dogID}", getDogHandler(svc))
		dr.Put("/{dogID}", updateDogHandler(svc))

		// Documentos: metadata only (el archivo no se persiste)
		dr.Post("/{dogID}/documents", addDocumentHandler(svc))
		dr.Delete("/{dogID}/documents/{docID}", removeDocumentHandler(svc))
	})
}

type dogRequest struct {
	Name               string `json:"name" validate:"required,max=120"`
	Breed              string `json:"breed" validate:"max=120"`
	BirthDate          string `json:"birth_date" validate:"date"` // YYYY-MM-DD opcional
	Gender             string `json:"gender" validate:"required,oneof=male female"`
	Color              string `json:"color"`
	ChipNumber         string `json:"chip_number"`
	RegistrationNumber string `json:"registration_number"`
	HealthInfo         string `json:"health_info"`
	Pedigree           string `json:"pedigree"`
	BreedingHistory    string `json:"breeding_history"`
	Notes              string `json:"notes"`
}

type documentRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"omitempty,oneof=pedigree health vaccination registration contract photo other"`
	FileRef  string `json:"file_ref"`
	FileType string `json:"file_type"`
	Size     int64  `json:"size" validate:"gte=0"`
	Date     string `json:"date" validate:"date"`
}

type documentResponse struct {
	ID       string           `json:"id"`
	DogID    string           `json:"dog_id"`
	Name     string           `json:"name"`
	Category DocumentCategory `json:"category"`
	FileRef  string           `json:"file_ref"`
	FileType string           `json:"file_type"`
	Size     int64            `json:"size"`
	Date     string           `json:"date"`
}

type dogResponse struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Breed              string             `json:"breed"`
	BirthDate          *string            `json:"birth_date,omitempty"`
	Gender             Gender             `json:"gender"`
	Color              string             `json:"color"`
	ChipNumber         string             `json:"chip_number"`
	RegistrationNumber string             `json:"registration_number"`
	HealthInfo         string             `json:"health_info"`
	Pedigree           string             `json:"pedigree"`
	BreedingHistory    string             `json:"breeding_history"`
	Notes              string             `json:"notes"`
	Documents          []documentResponse `json:"documents"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// createDogHandler godoc
// @Summary Registrar perro
// @Tags dogs
// @Accept json
// @Produce json
// @Param payload body dogRequest true "Perfil del perro; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} dogResponse
// @Failure 400 {object} apierror.APIError
// @Router /dogs [post]
func createDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeDogRequest(w, r)
		if !ok {
			return
		}

		d, err := svc.Create(r.Context(), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toDogResponse(d))
	}
}

// listDogsHandler godoc
// @Summary Listar perros
// @Tags dogs
// @Produce json
// @Param gender query string false "male | female"
// @Success 200 {array} dogResponse
// @Router /dogs [get]
func listDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{}
		if g := strings.TrimSpace(r.URL.Query().Get("gender")); g != "" {
			filter.Gender = Gender(g)
			if !filter.Gender.Valid() {
				apierror.Write(w, http.StatusBadRequest, "gender must be male or female")
				return
			}
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			apierror.Write(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

// updateDogHandler reemplaza el perfil completo (no es PATCH).
func updateDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeDogRequest(w, r)
		if !ok {
			return
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "dogID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

// addDocumentHandler godoc
// @Summary Adjuntar documento
// @Description Acepta JSON con la metadata o multipart/form-data con campo "file" (+ "name", "category"). Solo se guarda la metadata.
// @Tags dogs
// @Accept json,mpfd
// @Produce json
// @Param dogID path string true "ID del perro"
// @Success 201 {object} documentResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /dogs/{dogID}/documents [post]
func addDocumentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dogID := chi.URLParam(r, "dogID")

		var req documentRequest
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			var err error
			req, err = documentFromMultipart(w, r, dogID)
			if err != nil {
				apierror.Write(w, http.StatusBadRequest, err.Error())
				return
			}
		} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apierror.Write(w, http.StatusBadRequest, "invalid json")
			return
		}

		if fields := validation.Struct(req); fields != nil {
			apierror.WriteValidation(w, fields)
			return
		}

		date, _ := dates.ParseOptional(req.Date)
		doc, err := svc.AddDocument(r.Context(), dogID, DocumentInput{
			Name:     req.Name,
			Category: DocumentCategory(req.Category),
			FileRef:  req.FileRef,
			FileType: req.FileType,
			Size:     req.Size,
			Date:     date,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toDocumentResponse(doc))
	}
}

func removeDocumentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.RemoveDocument(r.Context(), chi.URLParam(r, "dogID"), chi.URLParam(r, "docID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func documentFromMultipart(w http.ResponseWriter, r *http.Request, dogID string) (documentRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return documentRequest{}, errors.New("invalid multipart form")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return documentRequest{}, errors.New("file is required")
	}
	defer file.Close()

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = header.Filename
	}

	return documentRequest{
		Name:     name,
		Category: r.FormValue("category"),
		FileRef:  localRef(dogID, header),
		FileType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Date:     r.FormValue("date"),
	}, nil
}

// localRef es una referencia transitoria, como el blob URL del cliente original.
func localRef(dogID string, h *multipart.FileHeader) string {
	return "local://" + dogID + "/" + h.Filename
}

func decodeDogRequest(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var req dogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, http.StatusBadRequest, "invalid json")
		return Input{}, false
	}
	if fields := validation.Struct(req); fields != nil {
		apierror.WriteValidation(w, fields)
		return Input{}, false
	}

	bd, err := dates.ParseOptional(req.BirthDate)
	if err != nil {
		apierror.Write(w, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		return Input{}, false
	}

	return Input{
		Name:               req.Name,
		Breed:              req.Breed,
		BirthDate:          bd,
		Gender:             Gender(req.Gender),
		Color:              req.Color,
		ChipNumber:         req.ChipNumber,
		RegistrationNumber: req.RegistrationNumber,
		HealthInfo:         req.HealthInfo,
		Pedigree:           req.Pedigree,
		BreedingHistory:    req.BreedingHistory,
		Notes:              req.Notes,
	}, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		apierror.Write(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		apierror.Write(w, http.StatusNotFound, "dog not found")
	case errors.Is(err, ErrDocNotFound):
		apierror.Write(w, http.StatusNotFound, "document not found")
	default:
		apierror.Write(w, http.StatusInternalServerError, "internal error")
	}
}

func toDogResponse(d Dog) dogResponse {
	docs := make([]documentResponse, 0, len(d.Documents))
	for _, doc := range d.Documents {
		docs = append(docs, toDocumentResponse(doc))
	}

	return dogResponse{
		ID:                 d.ID,
		Name:               d.Name,
		Breed:              d.Breed,
		BirthDate:          dates.FormatPtr(d.BirthDate),
		Gender:             d.Gender,
		Color:              d.Color,
		ChipNumber:         d.ChipNumber,
		RegistrationNumber: d.RegistrationNumber,
		HealthInfo:         d.HealthInfo,
		Pedigree:           d.Pedigree,
		BreedingHistory:    d.BreedingHistory,
		Notes:              d.Notes,
		Documents:          docs,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func toDocumentResponse(doc Document) documentResponse {
	return documentResponse{
		ID:       doc.ID,
		DogID:    doc.DogID,
		Name:     doc.Name,
		Category: doc.Category,
		FileRef:  doc.FileRef,
		FileType: doc.FileType,
		Size:     doc.Size,
		Date:     dates.Format(doc.Date),
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
