package schedule

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Normalizer parses every weekly slot of a set of courses.
// It holds no mutable state: Normalize can be called concurrently.
type Normalizer struct {
	parser *Parser
	opts   Options
}

// NewNormalizer returns a Normalizer built on a Parser with the same options.
func NewNormalizer(opts Options) *Normalizer {
	opts = opts.withDefaults()
	return &Normalizer{parser: NewParser(opts), opts: opts}
}

// Normalize returns the courses along with their sessions, as seen at `now`.
// Sessions keep their original week number; rejected slots are dropped.
func (n *Normalizer) Normalize(courses []RawCourse, now time.Time) []Course {
	result := make([]Course, 0, len(courses))
	for _, c := range courses {
		result = append(result, n.NormalizeCourse(c, now))
	}
	return result
}

// NormalizeCourse parses the first Options.MaxWeeks slots of a course in order.
// Undated sessions inherit the status of the latest dated one before them (future if none).
func (n *Normalizer) NormalizeCourse(c RawCourse, now time.Time) Course {
	course := Course{RawCourse: c, Sessions: make([]Session, 0, len(c.WeeklyRaw))}
	fallback := StatusFuture

	for i, slot := range c.WeeklyRaw {
		if i >= n.opts.MaxWeeks {
			break
		}
		s, ok := n.parseSlot(c, i, slot, now, fallback)
		if !ok {
			continue
		}
		s.Num = i + 1
		if s.IsDated() {
			fallback = s.Status
		}
		course.Sessions = append(course.Sessions, s)
	}
	return course
}

// parseSlot isolates failures to the slot: a panic is logged and the slot skipped.
func (n *Normalizer) parseSlot(c RawCourse, i int, slot string, now time.Time, fallback Status) (s Session, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if n.opts.Logger != nil {
				err := errors.Errorf("%v", r)
				n.opts.Logger.Warn(fmt.Sprintf("skipping slot %d of %q: %v", i+1, c.Subject, r), err, map[string]interface{}{"slot": slot})
			}
		}
	}()
	return n.parser.Parse(slot, now, fallback)
}
