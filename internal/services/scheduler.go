package services

import (
	"context"
	"errors"
	"time"

	applog "itemshop/internal/log"
	"itemshop/internal/shop"
)

type Regenerator interface {
	Regenerate(ctx context.Context) (*Published, error)
}

// Scheduler regenerates the shop at every UTC midnight.
type Scheduler struct {
	Shops      Regenerator
	RunOnStart bool
	Now        func() time.Time
	// After is time.After, replaceable in tests.
	After func(d time.Duration) <-chan time.Time
}

func NewScheduler(shops Regenerator, runOnStart bool) *Scheduler {
	return &Scheduler{Shops: shops, RunOnStart: runOnStart, Now: time.Now, After: time.After}
}

// Run blocks until ctx is cancelled. Failed passes are logged and the
// previous shop stays published.
func (s *Scheduler) Run(ctx context.Context) {
	if s.RunOnStart {
		s.pass(ctx)
	}
	for {
		next := shop.NextMidnightUTC(s.Now())
		wait := next.Sub(s.Now())
		applog.Info(nil, "shop.schedule.next", map[string]any{"at": next.Format(time.RFC3339), "in_s": int64(wait.Seconds())})
		select {
		case <-ctx.Done():
			return
		case <-s.After(wait):
			s.pass(ctx)
		}
	}
}

func (s *Scheduler) pass(ctx context.Context) {
	_, err := s.Shops.Regenerate(ctx)
	if errors.Is(err, ErrGenerationInProgress) {
		applog.Warn(nil, "shop.schedule.skip", map[string]any{"reason": "in progress"})
	}
}
