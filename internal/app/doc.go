// Package app provides the orchestration layer for quikdocs.
//
// # Overview
//
// This package wires together configuration, the catalog, OS color-scheme
// polling, the theme controller and the UI. It is the composition root where
// every dependency is initialized and connected.
//
// # Components
//
//   - app.go: Run, config overrides and logging setup
//   - poller.go: background goroutine that re-reads the OS preference
//   - theme.go: headless theme helpers used by the CLI
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read config.toml, apply flags
//	       ├─────> catalog.Load()        Embedded or configured catalog
//	       ├─────> state.Store{}         Shared OS preference snapshot
//	       ├─────> refresh()             Initial OS reading
//	       ├─────> StartPoller()         Background OS polling
//	       ├─────> controller.New()      Theme and scroll controller
//	       └─────> ui.Run()              Start TUI (blocks)
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> Resolver.Resolve()                 │
//	│  └─> store.Update()                     │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller runs at system_poll_interval (default 2 seconds). Consecutive
// failures double the wait up to 30 seconds. Only the first failure of a
// streak is logged. The UI forwards a changed reading to the controller,
// which decides whether to apply it.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Malformed or invalid config file
//   - Unreadable or malformed catalog
//   - Log file that cannot be opened
//
// Recoverable errors (logged):
//   - OS preference detection failures
//   - Preference file write failures
package app
