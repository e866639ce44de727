package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/robfig/cron/v3"
)

// HousekeepingService periodically clears expired reset codes and refresh
// token fingerprints.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	cron *cron.Cron
	wg   sync.WaitGroup
}

// NewHousekeepingService defaults interval to one hour when not positive.
func NewHousekeepingService(s store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    s,
		Logger:   logger,
		Interval: interval,
	}
}

// Start schedules the cleanup and runs it once right away. Non-blocking.
func (s *HousekeepingService) Start() {
	logger := cronLogger{s.Logger}
	job := cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).
		Then(cron.FuncJob(func() { s.RunOnce(context.Background()) }))

	s.cron = cron.New(cron.WithLogger(logger))
	s.cron.Schedule(cron.Every(s.Interval), job)
	s.cron.Start()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		job.Run()
	}()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop waits for a running cleanup to finish.
func (s *HousekeepingService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.Logger.Info("housekeeping service stopped")
}

// RunOnce performs one cleanup pass. Each step is independent; a failure is
// logged and the next step still runs.
func (s *HousekeepingService) RunOnce(ctx context.Context) (otps, refreshTokens int64) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	otps, err := s.Store.Users().ClearExpiredOTPs(ctx, now)
	if err != nil {
		s.Logger.Error("failed to clear expired OTPs", "error", err)
	}
	refreshTokens, err = s.Store.Users().ClearExpiredRefreshTokens(ctx, now)
	if err != nil {
		s.Logger.Error("failed to clear expired refresh tokens", "error", err)
	}

	s.Logger.Info("housekeeping cleanup completed",
		"expired_otps", otps,
		"expired_refresh_tokens", refreshTokens,
	)
	return otps, refreshTokens
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct{ l *slog.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
