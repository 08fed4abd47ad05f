package ports

import "time"

// Clock abstracts time for components that expire or schedule things.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
