// Package slots derives bookable time-of-day points from recurring weekly
// availability windows. The generator is pure: callers load windows and
// booked times from the store and pass them in.
package slots

import (
	"fmt"
	"sort"
	"time"
)

// DefaultInterval is the slot quantization step.
const DefaultInterval = 30 * time.Minute

// Window is one recurring availability interval, both bounds "HH:MM".
type Window struct {
	Start string
	End   string
}

// Options controls slot derivation.
type Options struct {
	// Interval between consecutive slots. Zero means DefaultInterval.
	Interval time.Duration
	// Dedupe collapses duplicate slots produced by overlapping windows.
	Dedupe bool
}

// Generate expands the windows into "HH:MM" slots, removes any slot whose
// time of day matches a booked instant, and returns the remainder sorted
// lexicographically (chronological for zero-padded HH:MM).
//
// Each window emits slots from Start inclusive up to but excluding End,
// stepping by the interval. A window whose bounds do not parse as "HH:MM"
// fails the whole call.
func Generate(windows []Window, booked []time.Time, opts Options) ([]string, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	var generated []string
	for _, w := range windows {
		expanded, err := expand(w, interval)
		if err != nil {
			return nil, err
		}
		generated = append(generated, expanded...)
	}

	if opts.Dedupe {
		generated = dedupe(generated)
	}

	taken := bookedSet(booked)
	available := make([]string, 0, len(generated))
	for _, slot := range generated {
		if _, ok := taken[slot]; ok {
			continue
		}
		available = append(available, slot)
	}

	sort.Strings(available)
	return available, nil
}

// expand walks one window from start to end in interval steps, end exclusive.
func expand(w Window, interval time.Duration) ([]string, error) {
	start, err := parseClock(w.Start)
	if err != nil {
		return nil, fmt.Errorf("parse window start: %w", err)
	}
	end, err := parseClock(w.End)
	if err != nil {
		return nil, fmt.Errorf("parse window end: %w", err)
	}

	var out []string
	for cursor := start; cursor.Before(end); cursor = cursor.Add(interval) {
		out = append(out, cursor.Format("15:04"))
	}
	return out, nil
}

// bookedSet collapses booked instants to their "HH:MM" component.
func bookedSet(booked []time.Time) map[string]struct{} {
	set := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		set[t.Format("15:04")] = struct{}{}
	}
	return set
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func parseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t, nil
}
