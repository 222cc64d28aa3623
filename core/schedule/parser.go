package schedule

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	defaultTimeFragment = "00 a 00"
	allDayText          = "Todo el día"
	scheduledText       = "Programada"
	zoomJoinURL         = "https://zoom.us/j/"
	linkUserMarker      = "-USUARIO"

	independentText     = "Trabajo Independiente"
	independentLocation = "Estudio Autónomo"
	inPersonText        = "Campus Principal - Presencial"
	inPersonLocation    = "Sede Principal"
)

var (
	independentKeywords = []string{"INDEPENDIENTE", "AUTONOMO", "AUTÓNOMO"}
	inPersonKeywords    = []string{"PRESENCIAL", "CAMPUS"}
	roomKeywords        = []string{"Salón", "Aula"}

	// whole word: "independiente" is not a pending note
	pendingNote = regexp.MustCompile(`(?i)\bpendiente\b`)
)

// Parser turns one raw weekly slot into a Session.
// A Parser is immutable and safe for concurrent use.
type Parser struct {
	g          grammar
	classifier *Classifier
	opts       Options
}

// NewParser returns a Parser; zero fields of opts take their defaults.
func NewParser(opts Options) *Parser {
	opts = opts.withDefaults()
	return &Parser{
		g:          newGrammar(),
		classifier: NewClassifier(opts.DefaultDuration),
		opts:       opts,
	}
}

// Rejected reports whether a slot carries no session: empty, too short, the "-" sentinel or a "pendiente" note.
func Rejected(slot string) bool {
	return slot == "" ||
		utf8.RuneCountInString(slot) < 5 ||
		strings.HasPrefix(slot, "-") ||
		pendingNote.MatchString(slot)
}

// Parse parses a slot formatted as "{date}-{time}-{free text}".
// fallback is the status given to the session when its date cannot be resolved.
// ok is false when the slot is Rejected.
func (p *Parser) Parse(slot string, now time.Time, fallback Status) (s Session, ok bool) {
	if Rejected(slot) {
		return Session{}, false
	}

	segments := strings.Split(slot, "-")
	dateFragment := strings.TrimSpace(segments[0])
	timeFragment := defaultTimeFragment
	if len(segments) > 1 && segments[1] != "" {
		timeFragment = strings.TrimSpace(segments[1])
	}

	s = Session{
		DateText:  p.g.displayDate(dateFragment),
		TimeText:  timeFragment,
		TimeRange: timeFragment,
	}
	if s.TimeText == "" {
		s.TimeText = scheduledText
	}
	p.describe(&s, slot)

	if date, ok := p.g.parseDate(dateFragment, timeFragment, now, p.opts.DefaultHour); ok {
		s.Date = &date
	}
	s.Status = p.classifier.Classify(s.Date, s.TimeRange, s.Kind, now, fallback)
	return s, true
}

// describe sets the kind of the session along with its labels and meeting details.
func (p *Parser) describe(s *Session, slot string) {
	upper := strings.ToUpper(slot)
	switch {
	case containsAny(upper, independentKeywords):
		s.Kind = KindIndependent
		s.DisplayText = independentText
		s.Location = independentLocation
		s.TimeText = allDayText
	case containsAny(upper, inPersonKeywords):
		s.Kind = KindInPerson
		s.DisplayText = inPersonText
		s.Location = inPersonLocation
		if containsAny(slot, roomKeywords) {
			s.Location = slot
		}
	default:
		s.Kind = KindOnline
		if m := p.g.meetingID.FindStringSubmatch(slot); m != nil {
			s.MeetingID = m[1]
			s.MeetingLink = zoomJoinURL + m[1]
		} else if link := p.g.link.FindString(slot); link != "" {
			if i := strings.Index(link, linkUserMarker); i >= 0 {
				link = link[:i]
			}
			s.MeetingLink = link
		}
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
