package trigger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// dateLayouts are tried in order by ParseAt.
// "01/02/06" is what calendar widgets commonly emit for the default US locale.
var dateLayouts = []string{
	time.DateOnly,
	"01/02/06",
	"01/02/2006",
	"02.01.2006",
}

var clockLayouts = []string{
	time.TimeOnly,
	"15:04",
}

// cronParser accepts 6-field expressions (seconds first) and descriptors like @daily.
var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseInterval parses an interval given either as whole seconds ("30")
// or as a Go duration ("1m30s"). The result must be a positive whole number of seconds.
func ParseInterval(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Interval{}, fmt.Errorf("%w: empty", ErrInvalidInterval)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	switch {
	case err == nil && n > MaxIntervalSeconds:
		return Interval{}, fmt.Errorf("%w: %d exceeds %d", ErrInvalidInterval, n, MaxIntervalSeconds)
	case err == nil:
		return checkedInterval(int(n))
	case errors.Is(err, strconv.ErrRange):
		return Interval{}, fmt.Errorf("%w: %q out of range", ErrInvalidInterval, s)
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	if d%time.Second != 0 {
		return Interval{}, fmt.Errorf("%w: %q is not whole seconds", ErrInvalidInterval, s)
	}

	return checkedInterval(int(d / time.Second))
}

func checkedInterval(n int) (Interval, error) {
	p := Every(n)
	if err := p.validate(); err != nil {
		return Interval{}, err
	}
	return p, nil
}

// ParseAt combines a date and a time of day into a one-shot policy in loc.
// An empty clock means midnight. A nil loc means time.Local.
func ParseAt(date, clock string, loc *time.Location) (At, error) {
	if loc == nil {
		loc = time.Local
	}

	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return At{}, fmt.Errorf("%w: empty date", ErrInvalidTime)
	}
	if clock == "" {
		clock = "00:00:00"
	}

	for _, dl := range dateLayouts {
		for _, cl := range clockLayouts {
			t, err := time.ParseInLocation(dl+" "+cl, date+" "+clock, loc)
			if err == nil {
				return OnceAt(t), nil
			}
		}
	}

	return At{}, fmt.Errorf("%w: %q %q", ErrInvalidTime, date, clock)
}

// Daily returns a policy firing every day at the given time of day (HH:MM:SS or HH:MM),
// in the location of the instant the evaluator starts from. Use Recurring.In to fix the zone.
func Daily(clock string) (Recurring, error) {
	clock = strings.TrimSpace(clock)

	var (
		t   time.Time
		err error
	)
	for _, cl := range clockLayouts {
		if t, err = time.Parse(cl, clock); err == nil {
			break
		}
	}
	if err != nil {
		return Recurring{}, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}

	return ParseCron(fmt.Sprintf("%d %d %d * * *", t.Second(), t.Minute(), t.Hour()))
}

// ParseCron parses a 6-field cron expression with a leading seconds field,
// or a descriptor such as "@hourly".
func ParseCron(expr string) (Recurring, error) {
	expr = strings.TrimSpace(expr)
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return Recurring{}, fmt.Errorf("%w: %q: %v", ErrInvalidCron, expr, err)
	}
	return Recurring{schedule: schedule, spec: expr}, nil
}
