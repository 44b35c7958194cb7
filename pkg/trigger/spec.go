package trigger

import (
	"fmt"
	"strings"
	"time"
)

// Spec is the textual form of a schedule as entered in a form, a flag set or a job file.
// Exactly one of Every, AtDate (with optional AtTime), Daily or Cron must be set.
type Spec struct {
	Every  string `yaml:"every,omitempty" json:"every,omitempty"`
	AtDate string `yaml:"at_date,omitempty" json:"at_date,omitempty"`
	AtTime string `yaml:"at_time,omitempty" json:"at_time,omitempty"`
	Daily  string `yaml:"daily,omitempty" json:"daily,omitempty"`
	Cron   string `yaml:"cron,omitempty" json:"cron,omitempty"`
}

// IsZero reports whether no schedule field is set.
func (s Spec) IsZero() bool {
	return s.set() == 0
}

func (s Spec) set() int {
	n := 0
	for _, v := range []string{s.Every, s.AtDate, s.Daily, s.Cron} {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// Merge returns s, or fallback when s names no schedule.
// Schedules are never mixed field by field.
func (s Spec) Merge(fallback Spec) Spec {
	if !s.IsZero() {
		return s
	}
	return fallback
}

func zone(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

// Policy parses the spec. Dates and clock times are read in loc (nil means Local).
func (s Spec) Policy(loc *time.Location) (Policy, error) {
	switch s.set() {
	case 0:
		if strings.TrimSpace(s.AtTime) != "" {
			return nil, fmt.Errorf("%w: a time needs a date", ErrInvalidTime)
		}
		return nil, ErrNoPolicy
	case 1:
	default:
		return nil, ErrAmbiguousPolicy
	}

	switch {
	case strings.TrimSpace(s.Every) != "":
		return ParseInterval(s.Every)
	case strings.TrimSpace(s.AtDate) != "":
		return ParseAt(s.AtDate, s.AtTime, loc)
	case strings.TrimSpace(s.Daily) != "":
		p, err := Daily(s.Daily)
		if err != nil {
			return nil, err
		}
		return p.In(zone(loc)), nil
	default:
		p, err := ParseCron(s.Cron)
		if err != nil {
			return nil, err
		}
		return p.In(zone(loc)), nil
	}
}
