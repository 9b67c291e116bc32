// Package clock provides an injectable time source so time-driven behavior can
// be tested against a virtual clock instead of waiting on real time.
package clock

import (
	"time"

	"huddle/shared/timezone"
)

// Clock yields the current instant. Sweeps sample it once per invocation.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// New returns a Clock backed by the application timezone.
func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return timezone.Now()
}
