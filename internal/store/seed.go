package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"kennel-records/internal/domain/dogs"
	"kennel-records/internal/domain/events"
	"kennel-records/internal/domain/heats"
	"kennel-records/internal/domain/litters"
	"kennel-records/internal/platform/dates"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Dogs    []seedDog    `yaml:"dogs"`
	Heats   []seedHeat   `yaml:"heats"`
	Litters []seedLitter `yaml:"litters"`
	Events  []seedEvent  `yaml:"events"`
}

type seedDog struct {
	Key                string         `yaml:"key"`
	Name               string         `yaml:"name"`
	Breed              string         `yaml:"breed"`
	Gender             string         `yaml:"gender"`
	BirthDate          string         `yaml:"birth_date"`
	Color              string         `yaml:"color"`
	ChipNumber         string         `yaml:"chip_number"`
	RegistrationNumber string         `yaml:"registration_number"`
	HealthInfo         string         `yaml:"health_info"`
	Pedigree           string         `yaml:"pedigree"`
	BreedingHistory    string         `yaml:"breeding_history"`
	Notes              string         `yaml:"notes"`
	Documents          []seedDocument `yaml:"documents"`
}

type seedDocument struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	FileType string `yaml:"file_type"`
	Size     int64  `yaml:"size"`
	Date     string `yaml:"date"`
}

type seedHeat struct {
	Dog              string `yaml:"dog"`
	StartDate        string `yaml:"start_date"`
	EndDate          string `yaml:"end_date"`
	CalculateFertile bool   `yaml:"calculate_fertile"`
	Notes            string `yaml:"notes"`
}

type seedLitter struct {
	Dog          string      `yaml:"dog"`
	StudName     string      `yaml:"stud_name"`
	BreedingDate string      `yaml:"breeding_date"`
	Notes        string      `yaml:"notes"`
	Birth        *seedBirth  `yaml:"birth"`
	Puppies      []seedPuppy `yaml:"puppies"`
}

type seedBirth struct {
	Date       string `yaml:"date"`
	PuppyCount int    `yaml:"puppy_count"`
	Males      int    `yaml:"males"`
	Females    int    `yaml:"females"`
}

type seedPuppy struct {
	Name             string `yaml:"name"`
	Gender           string `yaml:"gender"`
	Color            string `yaml:"color"`
	BirthWeightGrams int    `yaml:"birth_weight_grams"`
	Status           string `yaml:"status"`
	OwnerName        string `yaml:"owner_name"`
	Price            string `yaml:"price"`
}

type seedEvent struct {
	Dog   string `yaml:"dog"`
	Type  string `yaml:"type"`
	Date  string `yaml:"date"`
	Title string `yaml:"title"`
	Notes string `yaml:"notes"`
}

type SeedReport struct {
	Skipped bool
	Dogs    int
	Heats   int
	Litters int
	Events  int
}

// Seed carga los datos de demostración embebidos. Si ya hay perros no hace nada.
func (s *Store) Seed(ctx context.Context) (SeedReport, error) {
	return s.seed(ctx, seedYAML)
}

func (s *Store) seed(ctx context.Context, raw []byte) (SeedReport, error) {
	existing, err := s.Dogs.List(ctx, dogs.ListFilter{})
	if err != nil {
		return SeedReport{}, err
	}
	if len(existing) > 0 {
		return SeedReport{Skipped: true}, nil
	}

	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return SeedReport{}, fmt.Errorf("seed: parse: %w", err)
	}

	var rep SeedReport
	keys := make(map[string]string, len(f.Dogs))

	for _, sd := range f.Dogs {
		birth, err := dates.ParseOptional(sd.BirthDate)
		if err != nil {
			return rep, fmt.Errorf("seed: dog %s: %w", sd.Key, err)
		}
		d, err := s.Dogs.Create(ctx, dogs.Input{
			Name:               sd.Name,
			Breed:              sd.Breed,
			BirthDate:          birth,
			Gender:             dogs.Gender(sd.Gender),
			Color:              sd.Color,
			ChipNumber:         sd.ChipNumber,
			RegistrationNumber: sd.RegistrationNumber,
			HealthInfo:         sd.HealthInfo,
			Pedigree:           sd.Pedigree,
			BreedingHistory:    sd.BreedingHistory,
			Notes:              sd.Notes,
		})
		if err != nil {
			return rep, fmt.Errorf("seed: dog %s: %w", sd.Key, err)
		}
		keys[sd.Key] = d.ID
		rep.Dogs++

		for _, doc := range sd.Documents {
			date, err := dates.ParseOptional(doc.Date)
			if err != nil {
				return rep, fmt.Errorf("seed: document %s: %w", doc.Name, err)
			}
			if _, err := s.Dogs.AddDocument(ctx, d.ID, dogs.DocumentInput{
				Name:     doc.Name,
				Category: dogs.DocumentCategory(doc.Category),
				FileType: doc.FileType,
				Size:     doc.Size,
				Date:     date,
			}); err != nil {
				return rep, fmt.Errorf("seed: document %s: %w", doc.Name, err)
			}
		}
	}

	dogID := func(key string) (string, error) {
		id, ok := keys[key]
		if !ok {
			return "", fmt.Errorf("seed: unknown dog key %q", key)
		}
		return id, nil
	}

	for _, sh := range f.Heats {
		id, err := dogID(sh.Dog)
		if err != nil {
			return rep, err
		}
		start, err := dates.Parse(sh.StartDate)
		if err != nil {
			return rep, fmt.Errorf("seed: heat %s: %w", sh.Dog, err)
		}
		end, err := dates.ParseOptional(sh.EndDate)
		if err != nil {
			return rep, fmt.Errorf("seed: heat %s: %w", sh.Dog, err)
		}
		if _, err := s.Heats.Add(ctx, heats.AddInput{
			DogID:            id,
			StartDate:        start,
			EndDate:          end,
			CalculateFertile: sh.CalculateFertile,
			Notes:            sh.Notes,
		}); err != nil {
			return rep, fmt.Errorf("seed: heat %s %s: %w", sh.Dog, sh.StartDate, err)
		}
		rep.Heats++
	}

	for _, sl := range f.Litters {
		if err := s.seedLitter(ctx, sl, dogID); err != nil {
			return rep, err
		}
		rep.Litters++
	}

	for _, se := range f.Events {
		id, err := dogID(se.Dog)
		if err != nil {
			return rep, err
		}
		date, err := dates.Parse(se.Date)
		if err != nil {
			return rep, fmt.Errorf("seed: event %s: %w", se.Title, err)
		}
		if _, err := s.Events.Create(ctx, events.CreateInput{
			DogID: id,
			Type:  events.EventType(se.Type),
			Date:  date,
			Title: se.Title,
			Notes: se.Notes,
		}); err != nil {
			return rep, fmt.Errorf("seed: event %s: %w", se.Title, err)
		}
		rep.Events++
	}

	s.d.Log.Info("demo data seeded", map[string]any{
		"dogs":    rep.Dogs,
		"heats":   rep.Heats,
		"litters": rep.Litters,
		"events":  rep.Events,
	})
	return rep, nil
}

func (s *Store) seedLitter(ctx context.Context, sl seedLitter, dogID func(string) (string, error)) error {
	id, err := dogID(sl.Dog)
	if err != nil {
		return err
	}
	breeding, err := dates.Parse(sl.BreedingDate)
	if err != nil {
		return fmt.Errorf("seed: litter %s: %w", sl.Dog, err)
	}

	l, err := s.Litters.Add(ctx, litters.AddInput{
		DogID:        id,
		StudName:     sl.StudName,
		BreedingDate: breeding,
		Notes:        sl.Notes,
	})
	if err != nil {
		return fmt.Errorf("seed: litter %s: %w", sl.Dog, err)
	}

	if sl.Birth == nil {
		return nil
	}
	birth, err := dates.Parse(sl.Birth.Date)
	if err != nil {
		return fmt.Errorf("seed: litter %s birth: %w", sl.Dog, err)
	}
	if _, _, err := s.Litters.RecordBirth(ctx, l.ID, litters.BirthInput{
		BirthDate:  birth,
		PuppyCount: &sl.Birth.PuppyCount,
		Males:      &sl.Birth.Males,
		Females:    &sl.Birth.Females,
	}); err != nil {
		return fmt.Errorf("seed: litter %s birth: %w", sl.Dog, err)
	}

	for _, sp := range sl.Puppies {
		price := decimal.Zero
		if sp.Price != "" {
			if price, err = decimal.NewFromString(sp.Price); err != nil {
				return fmt.Errorf("seed: puppy %s price: %w", sp.Name, err)
			}
		}
		if _, err := s.Litters.AddPuppy(ctx, l.ID, litters.PuppyInput{
			Name:             sp.Name,
			Gender:           litters.PuppyGender(sp.Gender),
			Color:            sp.Color,
			BirthWeightGrams: sp.BirthWeightGrams,
			Status:           litters.PuppyStatus(sp.Status),
			OwnerName:        sp.OwnerName,
			Price:            price,
		}); err != nil {
			return fmt.Errorf("seed: puppy %s: %w", sp.Name, err)
		}
	}
	return nil
}
