package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

// OpenDayInterval is how often the presence sheet of the day is checked.
const OpenDayInterval = time.Hour

type PresenceJobs struct {
	timeClock presence.TimeClock
	now       func() time.Time
}

func NewPresenceJobs(timeClock presence.TimeClock, now func() time.Time) *PresenceJobs {
	if now == nil {
		now = time.Now
	}
	return &PresenceJobs{timeClock: timeClock, now: now}
}

func (j *PresenceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("open_presence_day", OpenDayInterval, j.OpenPresenceDay)
}

// OpenPresenceDay gives every employee an absent record for today, so the
// day's list shows who has not checked in yet. Safe to run repeatedly.
func (j *PresenceJobs) OpenPresenceDay(ctx context.Context) error {
	day := dateonly.NewDate(j.now())

	created, err := j.timeClock.OpenDay(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to open presence day %s: %w", day, err)
	}
	if created > 0 {
		slog.Info("Cron: presence day opened", "date", day.String(), "created", created)
	}
	return nil
}
