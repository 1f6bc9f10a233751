package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-engine/internal/domain/summary"
)

// SystemActor is recorded as the author of scheduled regenerations.
const SystemActor = "system"

type SummaryJobs struct {
	dailyService   summary.DailySummaryService
	monthlyService summary.MonthlySummaryService
	hour           int
	now            func() time.Time

	mu      sync.Mutex
	lastRun string
}

// NewSummaryJobs regenerates summaries once a day during hour (local time).
func NewSummaryJobs(dailyService summary.DailySummaryService, monthlyService summary.MonthlySummaryService, hour int) *SummaryJobs {
	return &SummaryJobs{
		dailyService:   dailyService,
		monthlyService: monthlyService,
		hour:           hour,
		now:            time.Now,
	}
}

func (j *SummaryJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("regenerate_attendance_summaries", interval, j.RegenerateSummaries)
}

// RegenerateSummaries rebuilds the daily and monthly summaries of the previous
// and the current month. Late corrections to last month's attendance are picked
// up this way.
func (j *SummaryJobs) RegenerateSummaries(ctx context.Context) error {
	now := j.now()
	if now.Hour() != j.hour {
		return nil
	}

	today := now.Format("2006-01-02")
	j.mu.Lock()
	if j.lastRun == today {
		j.mu.Unlock()
		return nil
	}
	j.mu.Unlock()

	slog.Info("Cron: Starting attendance summary regeneration")

	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for _, month := range []time.Time{current.AddDate(0, -1, 0), current} {
		ym, err := summary.NewYearMonth(month.Year(), int(month.Month()))
		if err != nil {
			return err
		}

		daily, err := j.dailyService.GenerateDailySummaries(ctx, summary.GenerateDailyRequest{
			Year:        ym.Year,
			Month:       int(ym.Month),
			PerformedBy: SystemActor,
		})
		if err != nil {
			return fmt.Errorf("failed to regenerate daily summaries of %s: %w", ym, err)
		}

		monthly, err := j.monthlyService.GenerateMonthlySummaries(ctx, summary.GenerateMonthlyRequest{YearMonth: ym.String()})
		if err != nil {
			return fmt.Errorf("failed to regenerate monthly summaries of %s: %w", ym, err)
		}

		slog.Info("Cron: Regenerated attendance summaries",
			"yyyymm", ym.String(),
			"daily_count", daily.SummaryCount,
			"issue_count", daily.IssueCount,
			"monthly_count", len(monthly.Summaries),
		)
	}

	j.mu.Lock()
	j.lastRun = today
	j.mu.Unlock()
	return nil
}
