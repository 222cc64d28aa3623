package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// grammar holds the static tables the parser matches slots against.
type grammar struct {
	months     map[string]time.Month
	hourRange  *regexp.Regexp // "7 a 9", "11 A 13"
	yearPrefix *regexp.Regexp // "2026 / "
	slashes    *regexp.Regexp
	meetingID  *regexp.Regexp
	link       *regexp.Regexp
}

func newGrammar() grammar {
	return grammar{
		months: map[string]time.Month{
			"enero":      time.January,
			"febrero":    time.February,
			"marzo":      time.March,
			"abril":      time.April,
			"mayo":       time.May,
			"junio":      time.June,
			"julio":      time.July,
			"agosto":     time.August,
			"septiembre": time.September,
			"octubre":    time.October,
			"noviembre":  time.November,
			"diciembre":  time.December,
		},
		hourRange:  regexp.MustCompile(`^(\d+)\s*a\s*(\d+)$`),
		yearPrefix: regexp.MustCompile(`^20\d{2}\s*/\s*`),
		slashes:    regexp.MustCompile(`\s*/\s*`),
		meetingID:  regexp.MustCompile(`(?i)ID\s*[-:.]?\s*(\d{9,11})`),
		link:       regexp.MustCompile(`https?://[^\s,]+`),
	}
}

// leadingInt parses the run of digits `s` starts with.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDate resolves a date fragment such as "sábado / 07 / marzo" or "2026 / 21 / febrero" into a local
// date-time, at the start hour read from timeFragment. Tokens may come in any order.
// The year defaults to now's year. ok is false unless both the day and the month are found.
func (g grammar) parseDate(dateFragment, timeFragment string, now time.Time, fallbackHour int) (time.Time, bool) {
	year := now.Year()
	var day int
	var month time.Month

	for _, part := range strings.Split(dateFragment, "/") {
		part = strings.TrimSpace(part)
		if n, ok := leadingInt(part); ok {
			if n > 2000 {
				year = n
			} else if n >= 1 && n <= 31 && !strings.Contains(strings.ToLower(part), "semana") {
				day = n
			}
			continue
		}
		if m, ok := g.months[strings.ToLower(part)]; ok {
			month = m
		}
	}
	if day == 0 || month == 0 {
		return time.Time{}, false
	}

	return time.Date(year, month, day, g.startHour(timeFragment, fallbackHour), 0, 0, 0, now.Location()), true
}

// startHour reads "7 a 9" or "7" as 7; anything else gives fallback.
func (g grammar) startHour(timeFragment string, fallback int) int {
	frag := strings.ToLower(strings.TrimSpace(timeFragment))
	if frag == "" {
		return fallback
	}
	if m := g.hourRange.FindStringSubmatch(frag); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil {
			return h
		}
		return fallback
	}
	if h, ok := leadingInt(frag); ok {
		return h
	}
	return fallback
}

// hourSpan returns the [start, end) hours of a time fragment. A lone start hour lasts `duration`;
// an unreadable fragment spans the whole day. "00 a 00", the missing fragment, is an empty span.
func (g grammar) hourSpan(timeFragment string, duration time.Duration) (start, end float64) {
	frag := strings.ToLower(strings.TrimSpace(timeFragment))
	if m := g.hourRange.FindStringSubmatch(frag); m != nil {
		s, errS := strconv.Atoi(m[1])
		e, errE := strconv.Atoi(m[2])
		if errS == nil && errE == nil {
			return float64(s), float64(e)
		}
	}
	if h, ok := leadingInt(frag); ok {
		return float64(h), float64(h) + duration.Hours()
	}
	return 0, 24
}

// displayDate strips a leading year and normalises separators: "2026/21 /febrero" -> "21 / febrero".
func (g grammar) displayDate(dateFragment string) string {
	s := g.yearPrefix.ReplaceAllString(dateFragment, "")
	return g.slashes.ReplaceAllString(s, " / ")
}
