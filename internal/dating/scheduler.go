package dating

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	service          Service
	hotpicksHour     int
	tasteRefreshHour int
	cleanupHour      int
	log              *zap.Logger
}

func NewScheduler(service Service, hotpicksHour, tasteRefreshHour int, log *zap.Logger) *Scheduler {
	return &Scheduler{
		service:          service,
		hotpicksHour:     hotpicksHour,
		tasteRefreshHour: tasteRefreshHour,
		cleanupHour:      2,
		log:              log,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	// Taste profiles are refreshed before hotpicks so picks use fresh tastes
	go s.runDaily(ctx, "taste_refresh", s.tasteRefreshHour, 0, s.service.RefreshAllTasteProfiles)

	go s.runDaily(ctx, "daily_hotpicks", s.hotpicksHour, 0, s.service.GenerateDailyHotpicks)

	go s.runDaily(ctx, "hotpick_cleanup", s.cleanupHour, 0, s.service.CleanupExpiredHotpicks)
}

// nextRun returns the first hour:minute strictly after now
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

func (s *Scheduler) runDaily(ctx context.Context, name string, hour, minute int, task func(context.Context) error) {
	for {
		now := time.Now()
		timer := time.NewTimer(nextRun(now, hour, minute).Sub(now))

		select {
		case <-timer.C:
			start := time.Now()
			if err := task(ctx); err != nil {
				s.log.Error("scheduled task failed", zap.String("task", name), zap.Error(err))
				continue
			}
			s.log.Info("scheduled task finished", zap.String("task", name), zap.Duration("took", time.Since(start)))
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}
