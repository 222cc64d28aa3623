package schedule

import (
	"time"

	"github.com/trezcool/portal/core"
)

// Options tunes the parser heuristics. Zero values fall back to the defaults below.
type Options struct {
	MaxWeeks        int           // slots considered per course
	DefaultHour     int           // hour used when the time fragment does not parse (1-23)
	DefaultDuration time.Duration // length of a session whose time fragment only has a start hour
	Logger          core.Logger   // receives recovered parse failures; optional
}

const (
	defaultMaxWeeks        = 16
	defaultHour            = 9
	defaultSessionDuration = 2 * time.Hour
)

// OptionsFromConfig maps the `schedule.*` configuration keys.
func OptionsFromConfig(conf *core.Config, logger core.Logger) Options {
	return Options{
		MaxWeeks:        conf.Schedule.MaxWeeks,
		DefaultHour:     conf.Schedule.DefaultHour,
		DefaultDuration: conf.Schedule.DefaultDuration,
		Logger:          logger,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxWeeks <= 0 {
		o.MaxWeeks = defaultMaxWeeks
	}
	if o.DefaultHour <= 0 || o.DefaultHour > 23 {
		o.DefaultHour = defaultHour
	}
	if o.DefaultDuration <= 0 {
		o.DefaultDuration = defaultSessionDuration
	}
	return o
}
