package service

import "time"

// SetClock fixes "today" for the duration of a test.
func SetClock(t time.Time) (restore func()) {
	prev := now
	now = func() time.Time { return t }
	return func() { now = prev }
}
