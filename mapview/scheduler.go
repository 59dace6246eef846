package mapview

import (
	"time"
)

// RedrawFlags name which render layers need a repaint. Flags combine with
// OR; each bit is tracked and debounced independently.
type RedrawFlags uint8

const (
	RedrawThing RedrawFlags = 1 << iota
	RedrawLight
	RedrawStaticText
	RedrawStaticCreatureInformation
	RedrawDynamicCreatureInformation
)

const (
	RedrawCreatureInformation = RedrawStaticCreatureInformation | RedrawDynamicCreatureInformation
	RedrawAll                 = RedrawThing | RedrawLight | RedrawStaticText | RedrawCreatureInformation
)

// MinTimeRender is the shortest interval between repaints of a debounced
// layer, one frame at 60fps.
const MinTimeRender = 16 * time.Millisecond

const redrawFlagCount = 5

// layerState tracks one flag's pending redraw: when the debt window opened
// and how long it must stay open before the redraw fires.
type layerState struct {
	dirty bool
	since time.Time
	debt  time.Duration
}

// renderScheduler coalesces repaint requests per layer. Repeated marks
// while a redraw is pending never push the deadline back; cancellation
// shrinks the wait but the accumulated debt never goes negative.
type renderScheduler struct {
	layers [redrawFlagCount]layerState
}

func flagIndexes(flags RedrawFlags) []int {
	idx := make([]int, 0, redrawFlagCount)
	for i := 0; i < redrawFlagCount; i++ {
		if flags&(1<<i) != 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// MarkDirty schedules a redraw for every flagged layer after at least
// delay. A zero delay makes the layer due immediately. A mark on an
// already-dirty layer only ever moves the deadline earlier.
func (s *renderScheduler) MarkDirty(flags RedrawFlags, delay time.Duration, now time.Time) {
	for _, i := range flagIndexes(flags) {
		l := &s.layers[i]
		if !l.dirty {
			l.dirty = true
			l.since = now
			l.debt = delay
			continue
		}
		if due := now.Add(delay); l.since.Add(l.debt).After(due) {
			l.debt = due.Sub(l.since)
		}
	}
}

// Cancel withdraws previously scheduled debt when its cause disappeared.
// Debt is floored at zero; the dirty bit itself stays until the layer
// renders or is cleared.
func (s *renderScheduler) Cancel(flags RedrawFlags, delay time.Duration) {
	for _, i := range flagIndexes(flags) {
		l := &s.layers[i]
		if l.debt -= delay; l.debt < 0 {
			l.debt = 0
		}
	}
}

// Due reports whether any flagged layer is dirty and past its debt window.
func (s *renderScheduler) Due(flags RedrawFlags, now time.Time) bool {
	for _, i := range flagIndexes(flags) {
		l := s.layers[i]
		if l.dirty && !now.Before(l.since.Add(l.debt)) {
			return true
		}
	}
	return false
}

// Dirty reports whether any flagged layer has a pending redraw, regardless
// of whether its debt window has elapsed.
func (s *renderScheduler) Dirty(flags RedrawFlags) bool {
	for _, i := range flagIndexes(flags) {
		if s.layers[i].dirty {
			return true
		}
	}
	return false
}

// Rendered clears the flagged layers after their buffers were repainted.
func (s *renderScheduler) Rendered(flags RedrawFlags) {
	for _, i := range flagIndexes(flags) {
		s.layers[i] = layerState{}
	}
}

// Debt returns the remaining wait of a single flagged layer, for tests and
// diagnostics.
func (s *renderScheduler) Debt(flag RedrawFlags) time.Duration {
	for _, i := range flagIndexes(flag) {
		return s.layers[i].debt
	}
	return 0
}
