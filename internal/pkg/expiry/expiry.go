package expiry

import "time"

// Expiry is a code's validity deadline in both timestamp and Unix-seconds
// form; the response surfaces both.
type Expiry struct {
	At   time.Time
	Unix int64
}

// At computes the expiry for a code issued at now with the configured
// lifetime. Pure: the lifetime comes from configuration, never from callers.
func At(now time.Time, lifetime time.Duration) Expiry {
	deadline := now.Add(lifetime)
	return Expiry{At: deadline, Unix: deadline.Unix()}
}
