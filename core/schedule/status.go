package schedule

import (
	"time"
)

// Classifier assigns a Status to a session relative to the current moment.
type Classifier struct {
	g        grammar
	duration time.Duration
}

// NewClassifier returns a Classifier where a session with only a start hour lasts `duration`.
func NewClassifier(duration time.Duration) *Classifier {
	if duration <= 0 {
		duration = defaultSessionDuration
	}
	return &Classifier{g: newGrammar(), duration: duration}
}

// Classify returns the status of a session held on `date` during `timeRange` ("7 a 9").
// A nil date yields fallback: the status of the latest dated session before it in the same course.
func (c *Classifier) Classify(date *time.Time, timeRange string, kind Kind, now time.Time, fallback Status) Status {
	if date == nil {
		return fallback
	}

	event := civilDay(date.In(now.Location()))
	today := civilDay(now)
	switch {
	case event.Before(today):
		return StatusPast
	case event.After(today):
		return StatusFuture
	}

	// today
	if kind == KindIndependent {
		return StatusPresent
	}
	start, end := c.g.hourSpan(timeRange, c.duration)
	current := float64(now.Hour()) + float64(now.Minute())/60
	switch {
	case current >= start && current < end:
		return StatusPresent
	case current >= end:
		return StatusPast
	default:
		return StatusFuture
	}
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
