// Package clock supplies the current time to expiry checks.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
