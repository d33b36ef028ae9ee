package ledger

import "time"

// nowFunc returns the recording time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider and returns a func restoring the
// previous one (use only in tests).
func SetNowFunc(f func() time.Time) (restore func()) {
	prev := nowFunc
	nowFunc = f
	return func() { nowFunc = prev }
}
