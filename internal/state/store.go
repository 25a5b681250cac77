package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/quikdocs/internal/sysprefs"
)

// Snapshot represents the latest OS color-scheme reading available to the UI.
type Snapshot struct {
	Preference          sysprefs.Preference
	HasPreference       bool
	LastUpdated         time.Time
	LastChanged         time.Time
	Generation          uint64 // bumped each time Preference changes
	LastError           error
	ConsecutiveFailures int // Number of consecutive detection failures
}

// IsStale returns true when detection has failed for multiple polls.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// PrefersDark reports the last known reading, or false when none is known.
func (s Snapshot) PrefersDark() bool {
	return s.HasPreference && s.Preference.PrefersDark
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a detection result. When err is non-nil the previous reading
// is kept but the error is recorded for visibility.
func (s *Store) Update(pref *sysprefs.Preference, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = now
		s.snapshot.ConsecutiveFailures++
		return
	}

	if pref != nil {
		changed := !s.snapshot.HasPreference || s.snapshot.Preference.PrefersDark != pref.PrefersDark
		s.snapshot.Preference = *pref
		s.snapshot.HasPreference = true
		if changed {
			s.snapshot.Generation++
			s.snapshot.LastChanged = now
		}
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = now
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
