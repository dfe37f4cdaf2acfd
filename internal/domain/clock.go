package domain

import "time"

// Clock abstracts wall-clock time so session and token expiry can be
// tested without sleeping.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
