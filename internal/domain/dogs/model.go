package dogs

import "time"

// Gender define el sexo del perro.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// DocumentCategory clasifica los documentos adjuntos a un perro.
type DocumentCategory string

const (
	DocumentPedigree     DocumentCategory = "pedigree"
	DocumentHealth       DocumentCategory = "health"
	DocumentVaccination  DocumentCategory = "vaccination"
	DocumentRegistration DocumentCategory = "registration"
	DocumentContract     DocumentCategory = "contract"
	DocumentPhoto        DocumentCategory = "photo"
	DocumentOther        DocumentCategory = "other"
)

// Document es solo metadata: el archivo nunca se guarda en el store.
type Document struct {
	ID    string
	DogID string

	Name     string
	Category DocumentCategory
	FileRef  string
	FileType string
	Size     int64

	Date time.Time
}

// Dog es la entidad raíz. No se borra desde la app.
type Dog struct {
	ID string

	Name      string
	Breed     string
	BirthDate *time.Time
	Gender    Gender
	Color     string

	ChipNumber         string
	RegistrationNumber string

	HealthInfo      string
	Pedigree        string
	BreedingHistory string
	Notes           string

	Documents []Document
	// DocumentSeq es el último índice usado en ids de documentos; nunca retrocede.
	DocumentSeq int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d Dog) IsFemale() bool {
	return d.Gender == GenderFemale
}
