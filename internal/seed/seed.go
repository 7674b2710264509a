// Package seed provides helpers to create demo data for development and
// testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"psidiario/internal/models"
	"psidiario/internal/repository"
	"psidiario/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Options controls the generated dataset.
type Options struct {
	Username string
	FullName string
	Password string
	// NumEntries is how many journal entries to create.
	NumEntries int
	// MaxDays is how far back the first entry may land.
	MaxDays int
	// Clean wipes the collections before seeding.
	Clean bool
}

// DefaultOptions returns the demo patient used in development.
func DefaultOptions() Options {
	return Options{
		Username:   "demo",
		FullName:   "Paciente de Demonstração",
		Password:   "demo123",
		NumEntries: 40,
		MaxDays:    120,
		Clean:      true,
	}
}

// Seeder writes demo data through the same repositories the server uses, so
// the stored shape is exactly what production writes.
type Seeder struct {
	store     store.Store
	userRepo  repository.UserRepository
	entryRepo repository.EntryRepository
	rng       *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided store.
func NewSeeder(s store.Store) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		store:     s,
		userRepo:  repository.NewUserRepository(s),
		entryRepo: repository.NewEntryRepository(s),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes the three collections.
func (s *Seeder) ClearAll(ctx context.Context) error {
	for _, key := range []string{store.UsersKey, store.EntriesKey, store.SessionKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("clearing %s: %w", key, err)
		}
	}
	log.Println("Cleared all collections")
	return nil
}

// Run seeds the demo patient and their journal history.
func (s *Seeder) Run(ctx context.Context, opts Options) (*models.User, error) {
	if opts.Clean {
		if err := s.ClearAll(ctx); err != nil {
			return nil, err
		}
	}

	existing, err := s.userRepo.GetByUsername(ctx, opts.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user %q already exists; run with -clean to reseed", opts.Username)
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Username:  opts.Username,
		FullName:  opts.FullName,
		BirthDate: gofakeit.DateRange(
			time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)).Format("2006-01-02"),
		Password: opts.Password,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("Created user %s (%s)", user.Username, user.FullName)

	if err := s.seedEntries(ctx, user, opts); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Seeder) seedEntries(ctx context.Context, user *models.User, opts Options) error {
	maxDays := opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}

	for i := 0; i < opts.NumEntries; i++ {
		// Spread entries over the window with some hour-level jitter
		daysBack := s.rng.Intn(maxDays)
		at := time.Now().
			Add(-time.Duration(daysBack) * 24 * time.Hour).
			Add(-time.Duration(s.rng.Intn(12)) * time.Hour)

		mood := s.randomMood()
		entry := &models.DailyEntry{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Date:      at.Format("2006-01-02"),
			Notes:     s.randomNotes(mood),
			Mood:      mood,
			Timestamp: at.UnixMilli(),
		}
		if err := s.entryRepo.Create(ctx, entry); err != nil {
			return err
		}
	}

	log.Printf("Created %d entries over the last %d days", opts.NumEntries, maxDays)
	return nil
}

// randomMood skews toward the middle of the scale the way real journals do.
func (s *Seeder) randomMood() models.Mood {
	weighted := []models.Mood{
		models.MoodVeryBad,
		models.MoodBad, models.MoodBad,
		models.MoodNeutral, models.MoodNeutral, models.MoodNeutral,
		models.MoodGood, models.MoodGood, models.MoodGood,
		models.MoodExcellent, models.MoodExcellent,
	}
	return weighted[s.rng.Intn(len(weighted))]
}

var notesByMood = map[models.Mood][]string{
	models.MoodVeryBad: {
		"Dia muito difícil, não consegui sair da cama até tarde.",
		"Crise de ansiedade pela manhã, o resto do dia foi um esforço.",
		"Discussão em casa me deixou esgotado o dia inteiro.",
	},
	models.MoodBad: {
		"Dormi mal e acordei irritado, o trabalho foi pesado.",
		"Dia cinzento, sem energia para fazer o que tinha planejado.",
		"Muita preocupação com as contas hoje.",
	},
	models.MoodNeutral: {
		"Dia comum, nada de mais para registrar.",
		"Trabalhei, almocei com colegas, voltei cedo para casa.",
		"Sem altos nem baixos, só cansaço normal.",
	},
	models.MoodGood: {
		"Caminhada no parque de manhã me fez bem.",
		"Consegui terminar tudo que tinha planejado, me senti produtivo.",
		"Jantar com amigos, conversa boa, dormi tranquilo.",
	},
	models.MoodExcellent: {
		"Dia ótimo! Recebi uma notícia que esperava há semanas.",
		"Acordei disposto, treinei, e o dia rendeu demais.",
		"Passeio em família, um dos melhores dias do mês.",
	},
}

// randomNotes picks a mood-consistent base note and appends a small
// generated detail so entries do not repeat verbatim.
func (s *Seeder) randomNotes(mood models.Mood) string {
	base := notesByMood[mood]
	note := base[s.rng.Intn(len(base))]
	if s.rng.Intn(3) == 0 {
		note = fmt.Sprintf("%s Dormi por volta das %d horas.", note, 21+s.rng.Intn(3))
	}
	return note
}
