package service

import (
	"context"
	"fmt"
	"time"

	"psidiario/internal/models"
	"psidiario/internal/observability"
	"psidiario/internal/repository"
)

// Period selects the report time window.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// PageSize is the number of entries revealed per pagination step.
const PageSize = 10

const dayMillis = 24 * 60 * 60 * 1000

// Period windows are deliberately calendar-naive: a month is always 30 days
// and a year 365, in fixed milliseconds. Reports filed against these exact
// boundaries depend on that definition.
var periodWindows = map[Period]int64{
	PeriodWeek:  7 * dayMillis,
	PeriodMonth: 30 * dayMillis,
	PeriodYear:  365 * dayMillis,
}

var periodLabels = map[Period]string{
	PeriodAll:   "Tudo",
	PeriodWeek:  "Semana",
	PeriodMonth: "Mês",
	PeriodYear:  "Ano",
}

// Valid reports whether p is a known filter period.
func (p Period) Valid() bool {
	_, ok := periodLabels[p]
	return ok
}

// Label returns the display label for the period.
func (p Period) Label() string {
	return periodLabels[p]
}

// Window returns the period's fixed-duration window in milliseconds and
// whether the period has one (All does not).
func (p Period) Window() (int64, bool) {
	w, ok := periodWindows[p]
	return w, ok
}

// ParsePeriod converts a query value into a Period, defaulting to All when
// empty.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodAll, nil
	}
	p := Period(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid filter period %q", s)
	}
	return p, nil
}

// MoodStat is one histogram bucket.
type MoodStat struct {
	Mood       models.Mood `json:"mood"`
	Label      string      `json:"label"`
	Emoji      string      `json:"emoji"`
	Color      string      `json:"color"`
	Count      int         `json:"count"`
	Proportion float64     `json:"proportion"`
}

// HistoryWarning tells the user their recorded history is shorter than the
// requested window.
type HistoryWarning struct {
	Message string `json:"message"`
	Days    int    `json:"days"`
	Period  Period `json:"period"`
}

// Report is the aggregation output for the Relatórios screen.
type Report struct {
	Period    Period              `json:"period"`
	Entries   []models.DailyEntry `json:"entries"`
	Total     int                 `json:"total"`
	Visible   int                 `json:"visible"`
	Histogram []MoodStat          `json:"histogram"`
	Warning   *HistoryWarning     `json:"warning,omitempty"`
}

// ReportService is the report aggregation engine: time-window filtering, mood
// histogram and pagination over a user's entries.
type ReportService struct {
	entryRepo repository.EntryRepository
}

// NewReportService returns a new ReportService.
func NewReportService(entryRepo repository.EntryRepository) *ReportService {
	return &ReportService{entryRepo: entryRepo}
}

// WorkingSet returns the user's entries surviving the period filter, ordered
// by timestamp descending, plus the full unfiltered count.
func (s *ReportService) WorkingSet(ctx context.Context, userID string, period Period, now time.Time) ([]models.DailyEntry, int, error) {
	all, err := s.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	window, hasWindow := period.Window()
	if !hasWindow {
		return all, len(all), nil
	}

	threshold := now.UnixMilli() - window
	filtered := make([]models.DailyEntry, 0, len(all))
	for _, e := range all {
		if e.Timestamp >= threshold {
			filtered = append(filtered, e)
		}
	}
	return filtered, len(all), nil
}

// Build assembles the full report. visible is the pagination cursor (how many
// entries the client has revealed so far); anything below one page is clamped
// to PageSize, which is also what a filter change resets to.
func (s *ReportService) Build(ctx context.Context, userID string, period Period, visible int, now time.Time) (*Report, error) {
	all, err := s.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	observability.ReportBuilds.WithLabelValues(string(period)).Inc()

	working := all
	var warning *HistoryWarning

	if window, hasWindow := period.Window(); hasWindow {
		threshold := now.UnixMilli() - window
		working = make([]models.DailyEntry, 0, len(all))
		for _, e := range all {
			if e.Timestamp >= threshold {
				working = append(working, e)
			}
		}

		// Entries arrive sorted descending, so the oldest is the last one.
		if len(all) > 0 {
			oldest := all[len(all)-1]
			historyMillis := now.UnixMilli() - oldest.Timestamp
			if historyMillis < window {
				days := int((historyMillis + dayMillis - 1) / dayMillis)
				if days < 1 {
					days = 1
				}
				warning = &HistoryWarning{
					Message: fmt.Sprintf(
						"O período de um(a) %s é maior que seu tempo de uso. Você tem registros de apenas %d dia(s).",
						period.Label(), days),
					Days:   days,
					Period: period,
				}
			}
		}
	}

	if visible < PageSize {
		visible = PageSize
	}
	page := working
	if len(page) > visible {
		page = page[:visible]
	}

	return &Report{
		Period:    period,
		Entries:   page,
		Total:     len(working),
		Visible:   visible,
		Histogram: buildHistogram(working),
		Warning:   warning,
	}, nil
}

// buildHistogram counts the working set per mood in fixed display order. Bar
// proportions divide by the largest bucket count, floored at one so an empty
// working set yields all-zero proportions instead of dividing by zero.
func buildHistogram(working []models.DailyEntry) []MoodStat {
	counts := map[models.Mood]int{}
	for _, e := range working {
		counts[e.Mood]++
	}

	maxCount := 1
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	stats := make([]MoodStat, 0, len(models.MoodDisplayOrder))
	for _, m := range models.MoodDisplayOrder {
		stats = append(stats, MoodStat{
			Mood:       m,
			Label:      m.Label(),
			Emoji:      m.Emoji(),
			Color:      m.Color(),
			Count:      counts[m],
			Proportion: float64(counts[m]) / float64(maxCount),
		})
	}
	return stats
}
