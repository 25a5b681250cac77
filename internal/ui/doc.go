// Package ui provides the terminal documentation viewer for quikdocs.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model is a value type: Update returns a
// new copy and View renders from it. The theme and scroll decisions are not
// made here; they belong to controller.Controller, which the model drives
// from its single event loop.
//
// # Package Structure
//
//   - app.go: Model, Update/View, message types, commands and Run
//   - content.go: glamour rendering of catalog blocks and the pixel mapping
//     of anchors to controller sections
//   - sidebar.go: grouped navigation with filtering and active highlighting
//   - header.go: header bar, status line and page footer
//   - help.go: keyboard shortcut overlay
//   - sink.go: the theme sink the controller applies themes to
//   - theme.go, style_helpers.go: palettes and lipgloss helpers
//
// # Event Flow
//
//  1. New starts the controller against the sink with the OS reading from
//     state.Store, then styles the model from the applied theme.
//  2. A periodic tick fetches the store snapshot. A new snapshot generation
//     is forwarded to Controller.SystemChanged.
//  3. Every viewport offset change is reported to Controller.Scroll in
//     pixels (rows times the configured cell height). Deferred section scans
//     are flushed by a one-shot timer.
//  4. The back-to-top key steps a controller.Animation, one frame per tick.
//
// # Key Bindings
//
//   - j/k, arrows, mouse wheel: Scroll
//   - space/f, b, d, u: Page and half page
//   - g/Home: Animated scroll to top
//   - G/End: Jump to bottom
//   - Tab: Toggle sidebar focus
//   - Enter: Jump to the selected section
//   - /: Filter the sidebar
//   - T: Toggle light/dark
//   - h or ?: Help
//   - q or Ctrl+C: Exit
package ui
