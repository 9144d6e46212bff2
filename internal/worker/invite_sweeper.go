package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// InviteSweep is the subset of application functionality the sweeper needs.
type InviteSweep interface {
	SweepExpiredInvites(ctx context.Context, now time.Time) (int64, error)
}

// InviteSweeper periodically removes expired unused invitation codes. It only
// ever touches invites; order state is never changed by a timer.
type InviteSweeper struct {
	facade   InviteSweep
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewInviteSweeper constructs the background sweeper.
func NewInviteSweeper(facade InviteSweep, interval time.Duration, logger *slog.Logger) *InviteSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &InviteSweeper{
		facade:   facade,
		interval: interval,
		logger:   logger,
	}
}

// Start launches background sweeping.
func (s *InviteSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop waits for the sweep loop to finish.
func (s *InviteSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *InviteSweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *InviteSweeper) sweep(ctx context.Context) {
	removed, err := s.facade.SweepExpiredInvites(ctx, time.Now())
	if err != nil {
		s.logger.Error("invite sweep failed", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		s.logger.Info("expired invites removed", slog.Int64("count", removed))
	}
}
