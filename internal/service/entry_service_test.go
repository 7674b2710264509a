package service

import (
	"context"
	"testing"
	"time"

	"psidiario/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryService_Create(t *testing.T) {
	t.Parallel()

	t.Run("stamps id, timestamp and default date", func(t *testing.T) {
		t.Parallel()
		var created *models.DailyEntry
		repo := &entryRepoStub{
			createFn: func(_ context.Context, entry *models.DailyEntry) error {
				created = entry
				return nil
			},
		}
		svc := NewEntryService(repo)

		before := time.Now().UnixMilli()
		entry, err := svc.Create(context.Background(), CreateEntryInput{
			UserID: "u1",
			Notes:  "Dia tranquilo.",
			Mood:   int(models.MoodGood),
		})
		after := time.Now().UnixMilli()
		require.NoError(t, err)

		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "u1", entry.UserID)
		assert.Equal(t, models.MoodGood, entry.Mood)
		assert.Equal(t, time.Now().Format("2006-01-02"), entry.Date)
		assert.GreaterOrEqual(t, entry.Timestamp, before)
		assert.LessOrEqual(t, entry.Timestamp, after)
		require.NotNil(t, created)
		assert.Equal(t, entry.ID, created.ID)
	})

	t.Run("keeps an explicit date", func(t *testing.T) {
		t.Parallel()
		svc := NewEntryService(&entryRepoStub{})

		entry, err := svc.Create(context.Background(), CreateEntryInput{
			UserID: "u1",
			Date:   "2026-08-01",
			Notes:  "Relato antigo.",
			Mood:   int(models.MoodNeutral),
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-08-01", entry.Date)
	})

	t.Run("rejects an unselected mood", func(t *testing.T) {
		t.Parallel()
		svc := NewEntryService(&entryRepoStub{})

		for _, mood := range []int{0, 6, -1} {
			_, err := svc.Create(context.Background(), CreateEntryInput{
				UserID: "u1",
				Notes:  "algo",
				Mood:   mood,
			})
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr, "mood %d", mood)
			assert.Equal(t, "Por favor, selecione como está seu humor hoje.", appErr.Message)
		}
	})

	t.Run("rejects blank notes", func(t *testing.T) {
		t.Parallel()
		svc := NewEntryService(&entryRepoStub{})

		for _, notes := range []string{"", "   ", "\n\t"} {
			_, err := svc.Create(context.Background(), CreateEntryInput{
				UserID: "u1",
				Notes:  notes,
				Mood:   int(models.MoodGood),
			})
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "O relato do dia é obrigatório.", appErr.Message)
		}
	})
}

func TestEntryService_Dashboard(t *testing.T) {
	t.Parallel()

	t.Run("summarizes recent history", func(t *testing.T) {
		t.Parallel()
		entries := []models.DailyEntry{
			daysAgo("e1", 0.1, models.MoodExcellent),
			daysAgo("e2", 1, models.MoodBad),
			daysAgo("e3", 2, models.MoodNeutral),
			daysAgo("e4", 3, models.MoodGood),
			daysAgo("e5", 4, models.MoodGood),
			daysAgo("e6", 5, models.MoodVeryBad),
			daysAgo("e7", 6, models.MoodVeryBad),
		}
		svc := NewEntryService(fixedEntries(entries))

		summary, err := svc.Dashboard(context.Background(), "u1")
		require.NoError(t, err)

		assert.Equal(t, 7, summary.TotalEntries)
		require.NotNil(t, summary.LatestMood)
		assert.Equal(t, models.MoodExcellent, *summary.LatestMood)
		require.Len(t, summary.Recent, 5)
		assert.Equal(t, "e1", summary.Recent[0].ID)
		assert.Equal(t, "e5", summary.Recent[4].ID)
	})

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()
		svc := NewEntryService(fixedEntries(nil))

		summary, err := svc.Dashboard(context.Background(), "u1")
		require.NoError(t, err)

		assert.Zero(t, summary.TotalEntries)
		assert.Nil(t, summary.LatestMood)
		assert.Empty(t, summary.Recent)
	})
}
