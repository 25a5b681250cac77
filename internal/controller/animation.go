package controller

import "math"

// Animation produces eased scroll offsets from a start offset down to 0.
type Animation struct {
	from   int
	frames int
	step   int
}

// NewAnimation plans a scroll from offset from to 0 over the given number of
// frames. Starting at 0 finishes on the first frame.
func NewAnimation(from, frames int) *Animation {
	if frames <= 0 {
		frames = 1
	}
	if from == 0 {
		frames = 1
	}
	return &Animation{from: from, frames: frames}
}

// Next returns the next offset and whether this was the final frame. Once
// done, Next keeps returning (0, true).
func (a *Animation) Next() (int, bool) {
	if a.step >= a.frames {
		return 0, true
	}
	a.step++
	if a.step == a.frames {
		return 0, true
	}
	return a.at(a.step), false
}

// Done reports whether the final frame has been produced.
func (a *Animation) Done() bool {
	return a.step >= a.frames
}

// Frames returns the planned frame count.
func (a *Animation) Frames() int {
	return a.frames
}

// at applies an ease-out cubic curve.
func (a *Animation) at(step int) int {
	t := float64(step) / float64(a.frames)
	eased := 1 - math.Pow(1-t, 3)
	return int(math.Round(float64(a.from) * (1 - eased)))
}
