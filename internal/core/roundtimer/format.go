package roundtimer

import (
	"strconv"
	"time"
)

// TimeIsUp is shown once the active phase has run out.
const TimeIsUp = "Time is up!"

// FormatRemaining renders a remaining duration for display:
// a minute count rounded up from 60 whole seconds on, a truncated second
// count below that, and TimeIsUp under one second.
func FormatRemaining(remaining time.Duration) string {
	seconds := int64(remaining / time.Second)
	switch {
	case seconds >= 60:
		minutes := int64((remaining + time.Minute - 1) / time.Minute)
		return strconv.FormatInt(minutes, 10) + " Minutes left in round"
	case seconds >= 1:
		return strconv.FormatInt(seconds, 10) + " Seconds left in round"
	default:
		return TimeIsUp
	}
}
