package service

import (
	"context"
	"strings"
	"time"

	"psidiario/internal/models"
	"psidiario/internal/repository"

	"github.com/google/uuid"
)

// EntryService implements the new-entry flow and dashboard summaries.
type EntryService struct {
	entryRepo repository.EntryRepository
}

// CreateEntryInput carries the new-entry form fields. Mood is the raw numeric
// rank as submitted.
type CreateEntryInput struct {
	UserID string
	Date   string
	Notes  string
	Mood   int
}

// DashboardSummary is what the Início screen shows: entry count, the mood of
// the most recent entry, and the five most recent entries.
type DashboardSummary struct {
	TotalEntries int                 `json:"totalEntries"`
	LatestMood   *models.Mood        `json:"latestMood,omitempty"`
	Recent       []models.DailyEntry `json:"recent"`
}

// NewEntryService returns a new EntryService.
func NewEntryService(entryRepo repository.EntryRepository) *EntryService {
	return &EntryService{entryRepo: entryRepo}
}

// Create validates the form fields, stamps the entry with an ID and the
// creation instant in epoch milliseconds, and appends it. Entries are
// immutable once created.
func (s *EntryService) Create(ctx context.Context, in CreateEntryInput) (*models.DailyEntry, error) {
	mood, err := models.ParseMood(in.Mood)
	if err != nil {
		return nil, models.NewValidationError("Por favor, selecione como está seu humor hoje.")
	}
	if strings.TrimSpace(in.Notes) == "" {
		return nil, models.NewValidationError("O relato do dia é obrigatório.")
	}

	date := in.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	entry := &models.DailyEntry{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		Date:      date,
		Notes:     in.Notes,
		Mood:      mood,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListByUser returns the user's entries, most recent first.
func (s *EntryService) ListByUser(ctx context.Context, userID string) ([]models.DailyEntry, error) {
	return s.entryRepo.ListByUser(ctx, userID)
}

// Dashboard builds the summary for the Início screen.
func (s *EntryService) Dashboard(ctx context.Context, userID string) (*DashboardSummary, error) {
	entries, err := s.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalEntries: len(entries),
		Recent:       entries,
	}
	if len(entries) > 0 {
		mood := entries[0].Mood
		summary.LatestMood = &mood
	}
	if len(summary.Recent) > 5 {
		summary.Recent = summary.Recent[:5]
	}
	return summary, nil
}
