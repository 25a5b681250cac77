package ui

import "time"

// Terminal size thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the sidebar is hidden.
	LayoutCompactWidth = 70

	// SidebarWidth is the sidebar column width including its border.
	SidebarWidth = 26

	// HeaderHeight and FooterHeight are the fixed chrome rows.
	HeaderHeight = 1
	FooterHeight = 2

	// MaxContentWidth caps the markdown wrap width on wide terminals.
	MaxContentWidth = 100
)

// Timing constants.
const (
	// DefaultUIInterval is the default snapshot refresh interval.
	DefaultUIInterval = time.Second

	// DefaultFrameInterval is the delay between scroll animation frames.
	DefaultFrameInterval = 16 * time.Millisecond

	// FlashDuration is how long a footer notice stays visible.
	FlashDuration = 3 * time.Second
)
