package controller

import "time"

// Section is a registered page section in document coordinates. Top and
// Bottom are measured from the start of the document; Bottom is the bottom
// edge, so adjacent sections share a boundary value.
type Section struct {
	ID     string
	Top    int
	Bottom int
}

// ActiveAt returns the id of the section straddling the probe line when the
// document is scrolled to offset. Sections are evaluated in order and each
// match overwrites the previous one, so the last straddling section wins.
func ActiveAt(sections []Section, offset, probe int) (string, bool) {
	var (
		id    string
		found bool
	)
	for _, s := range sections {
		top := s.Top - offset
		bottom := s.Bottom - offset
		if top <= probe && probe <= bottom {
			id = s.ID
			found = true
		}
	}
	return id, found
}

// PastThreshold reports whether offset is strictly beyond threshold.
func PastThreshold(offset, threshold int) bool {
	return offset > threshold
}

// RegisterSections replaces the set of tracked sections and rescans at the
// current offset.
func (c *Controller) RegisterSections(sections []Section) {
	c.sections = append(c.sections[:0:0], sections...)
	if c.closed {
		return
	}
	c.scan(time.Time{})
}

// Sections returns a copy of the registered sections.
func (c *Controller) Sections() []Section {
	return append([]Section(nil), c.sections...)
}

// Scroll records a new viewport offset. The back-to-top flag is updated
// immediately. The section scan runs now, or is deferred when sampling is
// enabled and the last scan was less than SampleEvery ago. It returns true
// when a scan is pending and the caller should Flush later.
func (c *Controller) Scroll(offset int, now time.Time) bool {
	if c.closed {
		return false
	}
	c.offset = offset
	c.showBackToTop = PastThreshold(offset, c.threshold)

	if c.sampleEvery > 0 && !c.lastScan.IsZero() && now.Sub(c.lastScan) < c.sampleEvery {
		c.pending = true
		return true
	}
	c.scan(now)
	return false
}

// Flush runs a deferred section scan. It reports whether one was pending.
func (c *Controller) Flush(now time.Time) bool {
	if c.closed || !c.pending {
		return false
	}
	c.scan(now)
	return true
}

// Pending reports whether a deferred scan is waiting for Flush.
func (c *Controller) Pending() bool {
	return c.pending
}

// SampleEvery returns the configured sampling interval.
func (c *Controller) SampleEvery() time.Duration {
	return c.sampleEvery
}

func (c *Controller) scan(now time.Time) {
	c.pending = false
	if !now.IsZero() {
		c.lastScan = now
	}
	if id, ok := ActiveAt(c.sections, c.offset, c.probe); ok {
		c.active = id
	}
}

// Offset returns the last observed scroll offset.
func (c *Controller) Offset() int {
	return c.offset
}

// ShowBackToTop reports whether the back-to-top affordance should be visible.
func (c *Controller) ShowBackToTop() bool {
	return c.showBackToTop
}

// ActiveSection returns the id of the section under the probe line, or "" if
// none has been seen yet.
func (c *Controller) ActiveSection() string {
	return c.active
}

// ScrollToTop starts an animated scroll from the current offset to 0. The
// returned animation is fire-and-forget: the caller steps it and reports each
// frame back through Scroll.
func (c *Controller) ScrollToTop() *Animation {
	return NewAnimation(c.offset, c.frames)
}
