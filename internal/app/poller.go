package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/five82/quikdocs/internal/state"
	"github.com/five82/quikdocs/internal/sysprefs"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// Resolver answers the OS color-scheme question.
type Resolver interface {
	Resolve(ctx context.Context) (sysprefs.Preference, error)
}

// StartPoller launches a background goroutine that refreshes the store. Each
// consecutive failure doubles the wait up to maxBackoff. It returns
// immediately; the goroutine exits when ctx is cancelled.
func StartPoller(ctx context.Context, store *state.Store, resolver Resolver, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, resolver)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// refresh resolves once and records the outcome. Only the first failure of a
// streak is logged.
func refresh(ctx context.Context, store *state.Store, resolver Resolver) error {
	pref, err := resolver.Resolve(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		store.Update(nil, err)
		if store.Snapshot().ConsecutiveFailures == 1 && !errors.Is(err, sysprefs.ErrUndetected) {
			log.Printf("color scheme poll failed: %v", err)
		}
		return err
	}
	store.Update(&pref, nil)
	return nil
}

// calculateBackoff returns base * 2^failures, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
