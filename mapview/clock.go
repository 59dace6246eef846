package mapview

import "time"

// Clock supplies frame time. Injected so tests can drive fades and redraw
// debouncing deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the monotonic wall clock.
func SystemClock() Clock { return systemClock{} }
