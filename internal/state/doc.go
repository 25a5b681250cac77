// Package state provides thread-safe sharing of the OS color-scheme reading.
//
// # Overview
//
// The background poller asks the sysprefs resolver for the current
// preference and records the answer here. The UI reads snapshots on its own
// tick and forwards a changed reading to the theme controller.
//
// # Architecture
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ Resolve()      │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │ SystemChanged() │
//	└────────────────┘            └─────────────────┘
//
// # Update Semantics
//
//	// Success: record the reading
//	store.Update(&pref, nil)
//	→ snapshot.Preference = pref
//	→ snapshot.Generation++ (only when PrefersDark flipped)
//	→ snapshot.LastError = nil
//
//	// Failure: keep the old reading, record the error
//	store.Update(nil, err)
//	→ snapshot.Preference = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// The UI compares Generation against the last one it saw, so a reading that
// repeats never re-applies a theme.
//
// The zero Store is ready to use.
package state
