package reminder

import (
	"context"
	"time"

	"subtrack/internal/models"

	"go.uber.org/zap"
)

type DueLister interface {
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*models.Subscription, error)
}

// Notify receives each due reminder. Delivery channels live outside this
// package; the default just logs.
type Notify func(ctx context.Context, r Reminder)

// Sweeper periodically looks for reminder windows that opened since its last
// successful pass. It is driven by a single goroutine.
type Sweeper struct {
	store    DueLister
	interval time.Duration
	notify   Notify
	now      func() time.Time
	last     time.Time
	logger   *zap.Logger
}

func NewSweeper(store DueLister, interval time.Duration, logger *zap.Logger) *Sweeper {
	s := &Sweeper{
		store:    store,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
	s.notify = s.logReminder
	return s
}

func (s *Sweeper) WithNotify(n Notify) *Sweeper {
	s.notify = n
	return s
}

// Run sweeps immediately and then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reminder sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass and returns the number of reminders emitted.
func (s *Sweeper) Sweep(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	now := s.now()
	since := s.last
	if since.IsZero() {
		since = now.Add(-s.interval)
	}

	subs, err := s.store.ListDueBetween(ctx, now, now.Add(time.Duration(Window48h)))
	if err != nil {
		s.logger.Error("Reminder sweep failed", zap.Error(err))
		return 0
	}
	s.last = now

	reminders := Opened(subs, since, now)
	for _, r := range reminders {
		s.notify(ctx, r)
	}
	if len(reminders) > 0 {
		s.logger.Info("Reminder sweep completed", zap.Int("reminders", len(reminders)))
	}
	return len(reminders)
}

func (s *Sweeper) logReminder(_ context.Context, r Reminder) {
	s.logger.Info("Subscription renewal reminder",
		zap.String("user_id", r.Subscription.UserID.String()),
		zap.String("subscription_id", r.Subscription.ID.String()),
		zap.String("name", r.Subscription.Name),
		zap.String("window", r.Window.String()),
		zap.Duration("due_in", r.DueIn),
	)
}
