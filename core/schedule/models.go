package schedule

import (
	"time"
)

// Kind is the modality of a session.
type Kind string

const (
	KindOnline      Kind = "ZOOM"
	KindInPerson    Kind = "PRESENCIAL"
	KindIndependent Kind = "INDEPENDIENTE"
)

// Status is the position of a session relative to the current moment.
type Status string

const (
	StatusPast    Status = "past"
	StatusPresent Status = "present"
	StatusFuture  Status = "future"
)

// Weight orders statuses for display: present first, then future, then past.
func (s Status) Weight() int {
	switch s {
	case StatusPresent:
		return 0
	case StatusFuture:
		return 1
	default:
		return 2
	}
}

// EmptySlot is the sentinel stored for weeks without content.
const EmptySlot = "-"

// RawCourse is a course row as imported from the spreadsheet.
type RawCourse struct {
	Subject   string   `json:"materia" bson:"materia" validate:"required,notblank"`
	Group     string   `json:"grupo" bson:"grupo"`
	Block     string   `json:"bloque" bson:"bloque"`
	StartsOn  string   `json:"fInicio" bson:"fInicio"`
	EndsOn    string   `json:"fFin" bson:"fFin"`
	WeeklyRaw []string `json:"semanasRaw" bson:"semanasRaw"`
}

// Session is one parsed week of a course.
type Session struct {
	Num         int        `json:"num"`
	DateText    string     `json:"fecha"`
	TimeText    string     `json:"hora"`
	TimeRange   string     `json:"horaRaw"`
	Kind        Kind       `json:"tipo"`
	DisplayText string     `json:"displayTexto"`
	Location    string     `json:"ubicacion"`
	MeetingID   string     `json:"zoomId,omitempty"`
	MeetingLink string     `json:"zoomLink,omitempty"`
	Status      Status     `json:"status"`
	Date        *time.Time `json:"fechaObj"`
}

// IsDated reports whether the session resolved to a calendar date.
func (s Session) IsDated() bool { return s.Date != nil }

// Course is a RawCourse along with its parsed sessions.
type Course struct {
	RawCourse
	Sessions []Session `json:"semanas"`
}
