package infra

import "time"

// SystemClock is the production time source. Tests substitute a fixed clock;
// nothing in the escrow core ever reads the wall clock directly.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
