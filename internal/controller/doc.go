// Package controller implements the theme and scroll state behind quikdocs.
//
// # Overview
//
// A Controller owns three pieces of UI state:
//
//   - the theme (light or dark), persisted through a Store and pushed to a Sink
//   - the back-to-top flag, true while the scroll offset is past a threshold
//   - the active section, the registered section under a fixed probe line
//
// It reacts to three signals (the stored preference, the OS color-scheme
// preference, the scroll offset) and exposes two user actions: Toggle and
// ScrollToTop.
//
// # Theme Resolution
//
// Start resolves the initial theme in this order:
//
//  1. A stored preference chosen by the user
//  2. The OS signal, when a detector could answer
//  3. A stored preference that was derived from the OS earlier
//  4. Light
//
// Every later transition (Toggle, SetTheme, SystemChanged) writes the store
// first and then applies the theme to the sink, so the store, the sink and
// the in-memory value agree once the call returns. Store failures are logged
// and otherwise ignored; the in-memory theme stays authoritative.
//
// # OS Preference Changes
//
// With Options.FollowSystem set, every OS change overwrites the theme. Without
// it (the default) a change is applied only while the current theme was not
// picked by the user. The origin of the stored value is persisted next to it
// so the distinction survives restarts.
//
// # Scroll Tracking
//
// Scroll updates the back-to-top flag on every call. The active-section scan
// runs on every call too, unless Options.SampleEvery is set: then scans closer
// together than the interval are deferred and coalesced until Flush.
//
// Sections are kept in document order. When several straddle the probe line
// the last one wins, which makes a nested anchor beat its parent.
//
// # Concurrency
//
// A Controller is not safe for concurrent use. quikdocs drives it from the
// bubbletea update loop; background goroutines publish to state.Store and the
// loop forwards what it reads.
package controller
