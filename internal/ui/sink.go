package ui

import "github.com/five82/quikdocs/internal/controller"

// themeSink is the document-wide theme attribute. The controller writes to it
// and the model restyles whenever the apply count moves past the one it last
// rendered.
type themeSink struct {
	theme   controller.Theme
	applied int
}

// Apply implements controller.Sink.
func (s *themeSink) Apply(t controller.Theme) {
	s.theme = t
	s.applied++
}

// Current returns the last applied theme and how many applies have happened.
func (s *themeSink) Current() (controller.Theme, int) {
	return s.theme, s.applied
}
