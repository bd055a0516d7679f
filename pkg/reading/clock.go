package reading

import "time"

// Clock returns the current instant. Every openbp component that needs "now"
// takes a Clock so tests can substitute a fixed one.
type Clock func() time.Time

// SystemClock reads the wall clock.
var SystemClock Clock = time.Now

// FixedClock returns a Clock that always returns t.
func FixedClock(t time.Time) Clock { return func() time.Time { return t } }
