package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrammar_parseDate(t *testing.T) {
	g := newGrammar()
	now := at(2026, time.March, 7, 8, 0)

	tests := []struct {
		name   string
		date   string
		time   string
		want   time.Time
		wantOk bool
	}{
		{name: "weekday day month", date: "sábado / 07 / marzo", time: "7 a 9", want: at(2026, time.March, 7, 7, 0), wantOk: true},
		{name: "explicit year", date: "2025 / 21 / febrero", time: "11 A 13", want: at(2025, time.February, 21, 11, 0), wantOk: true},
		{name: "month before day", date: "marzo / 14", time: "15", want: at(2026, time.March, 14, 15, 0), wantOk: true},
		{name: "uppercase month", date: "Lunes / 2 / ABRIL", time: "18 a 20", want: at(2026, time.April, 2, 18, 0), wantOk: true},
		{name: "tight separators", date: "2026/21/febrero", time: "8", want: at(2026, time.February, 21, 8, 0), wantOk: true},
		{name: "unreadable hour", date: "14 / marzo", time: "mañana", want: at(2026, time.March, 14, 9, 0), wantOk: true},
		{name: "empty hour", date: "14 / marzo", time: "", want: at(2026, time.March, 14, 9, 0), wantOk: true},
		{name: "no month", date: "11/05/2026", time: "7 a 9"},
		{name: "week label", date: "Semana 5", time: ""},
		{name: "week number is no day", date: "5 semana / marzo", time: ""},
		{name: "day out of range", date: "32 / marzo", time: "7"},
		{name: "unknown month", date: "07 / march", time: "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.parseDate(tt.date, tt.time, now, 9)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGrammar_hourSpan(t *testing.T) {
	g := newGrammar()
	tests := []struct {
		frag      string
		duration  time.Duration
		wantStart float64
		wantEnd   float64
	}{
		{frag: "7 a 9", duration: 2 * time.Hour, wantStart: 7, wantEnd: 9},
		{frag: "11 A 13", duration: 2 * time.Hour, wantStart: 11, wantEnd: 13},
		{frag: "18a20", duration: 2 * time.Hour, wantStart: 18, wantEnd: 20},
		{frag: "14", duration: 2 * time.Hour, wantStart: 14, wantEnd: 16},
		{frag: "14", duration: 90 * time.Minute, wantStart: 14, wantEnd: 15.5},
		{frag: "00 a 00", duration: 2 * time.Hour, wantStart: 0, wantEnd: 0},
		{frag: "mañana", duration: 2 * time.Hour, wantStart: 0, wantEnd: 24},
		{frag: "", duration: 2 * time.Hour, wantStart: 0, wantEnd: 24},
	}
	for _, tt := range tests {
		start, end := g.hourSpan(tt.frag, tt.duration)
		assert.Equal(t, tt.wantStart, start, tt.frag)
		assert.Equal(t, tt.wantEnd, end, tt.frag)
	}
}

func TestGrammar_displayDate(t *testing.T) {
	g := newGrammar()
	tests := map[string]string{
		"2026 / 21 / febrero": "21 / febrero",
		"2026/21 /febrero":    "21 / febrero",
		"sábado / 07 / marzo": "sábado / 07 / marzo",
		"Semana 5":            "Semana 5",
	}
	for in, want := range tests {
		assert.Equal(t, want, g.displayDate(in), in)
	}
}
