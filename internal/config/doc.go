// Package config handles loading and parsing the quikdocs configuration file.
//
// # Overview
//
// quikdocs reads an optional TOML file to tune the theme and scroll behaviour
// of the browser. Every key is optional; a missing file yields Default().
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/quikdocs/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/quikdocs/config.toml
//   - Preferences file: ~/.config/quikdocs/prefs.toml
//   - Back-to-top threshold: 300 px
//   - Probe line: 150 px below the viewport top
//   - Cell height: 16 px per terminal row
//   - Scroll sampling: off (scan on every scroll event)
//   - Scroll-to-top animation: 12 frames, 16ms apart
//   - OS preference poll: every 2s
//   - Base path: "/" ("/quik-css_demo/" when GITHUB_PAGES is set)
//
// Geometry is expressed in pixels so the thresholds match the web page this
// browser mirrors. The UI converts terminal rows with CellHeight.
//
// # TOML Format
//
// Example config.toml:
//
//	prefs_path = "~/.config/quikdocs/prefs.toml"
//	follow_system_preference = false
//	detect_terminal_background = true
//	back_to_top_threshold = 300
//	probe_line = 150
//	cell_height = 16
//	scroll_sample = "50ms"
//	scroll_frames = 12
//	scroll_frame_interval = "16ms"
//	system_poll_interval = "2s"
//	base_path = "/"
//	catalog_path = ""
//	log_file = "~/.cache/quikdocs/debug.log"
//
// # Error Handling
//
// Load returns errors for:
//   - Config file exists but cannot be opened or read
//   - Invalid TOML syntax ("parse config")
//   - Durations that do not parse or values out of range ("invalid config")
//
// A missing file is not an error.
package config
