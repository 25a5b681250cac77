// Package sysprefs detects the operating system's color-scheme preference.
//
// Several detectors may be registered; the Resolver asks them in priority
// order and the first one that can answer wins.
package sysprefs

import (
	"context"
	"errors"
	"sort"
)

// ErrUndetected is returned when no detector could determine a preference.
var ErrUndetected = errors.New("color scheme preference not detected")

// Preference is a resolved "prefers dark" reading and the detector that made it.
type Preference struct {
	PrefersDark bool
	Source      string
}

// Detector reads the color-scheme preference from one source.
type Detector interface {
	Name() string
	// Priority orders detectors; higher values are asked first.
	Priority() int
	// Detect returns the preference and whether this source could answer.
	Detect(ctx context.Context) (prefersDark bool, ok bool)
}

// Resolver picks the highest-priority detector that answers.
type Resolver struct {
	detectors []Detector
}

// NewResolver returns a Resolver over the given detectors.
func NewResolver(detectors ...Detector) *Resolver {
	r := &Resolver{}
	for _, d := range detectors {
		r.Register(d)
	}
	return r
}

// Register adds a detector. Nil detectors are ignored.
func (r *Resolver) Register(d Detector) {
	if d == nil {
		return
	}
	r.detectors = append(r.detectors, d)
	sort.SliceStable(r.detectors, func(i, j int) bool {
		return r.detectors[i].Priority() > r.detectors[j].Priority()
	})
}

// Detectors returns the registered detector names in the order they are asked.
func (r *Resolver) Detectors() []string {
	names := make([]string, 0, len(r.detectors))
	for _, d := range r.detectors {
		names = append(names, d.Name())
	}
	return names
}

// Resolve returns the first answer, or ErrUndetected.
func (r *Resolver) Resolve(ctx context.Context) (Preference, error) {
	for _, d := range r.detectors {
		if err := ctx.Err(); err != nil {
			return Preference{}, err
		}
		if dark, ok := d.Detect(ctx); ok {
			return Preference{PrefersDark: dark, Source: d.Name()}, nil
		}
	}
	return Preference{}, ErrUndetected
}
