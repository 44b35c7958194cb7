package trigger

import (
	"fmt"
	"math"
	"time"

	"github.com/robfig/cron/v3"
)

// Kind identifies the policy variant.
type Kind int

const (
	KindInterval  Kind = iota // fixed delay, repeating
	KindAt                    // absolute, one-shot
	KindRecurring             // calendar schedule, repeating
)

func (k Kind) String() string {
	switch k {
	case KindInterval:
		return "interval"
	case KindAt:
		return "at"
	case KindRecurring:
		return "recurring"
	default:
		return "unknown"
	}
}

// Policy is the rule that decides when due events occur.
// The set of implementations is closed: Interval, At and Recurring.
type Policy interface {
	// Kind reports the policy variant.
	Kind() Kind

	// First returns the first due instant for a run started at start.
	First(start time.Time) time.Time

	// Next returns the due instant following an event fired at last.
	// A zero time means the policy is exhausted.
	Next(last time.Time) time.Time

	String() string

	validate() error
}

// MaxIntervalSeconds is the longest interval a time.Duration can hold.
const MaxIntervalSeconds = math.MaxInt64 / int64(time.Second)

// Interval fires every Seconds seconds.
type Interval struct {
	Seconds int
}

// Every returns an interval policy firing every n seconds.
func Every(n int) Interval {
	return Interval{Seconds: n}
}

// Duration returns the interval as a time.Duration.
func (p Interval) Duration() time.Duration {
	return time.Duration(p.Seconds) * time.Second
}

func (p Interval) Kind() Kind { return KindInterval }

func (p Interval) First(start time.Time) time.Time {
	return start.Add(p.Duration())
}

func (p Interval) Next(last time.Time) time.Time {
	return last.Add(p.Duration())
}

func (p Interval) String() string {
	return fmt.Sprintf("every %s", p.Duration())
}

func (p Interval) validate() error {
	if p.Seconds <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, p.Seconds)
	}
	if int64(p.Seconds) > MaxIntervalSeconds {
		return fmt.Errorf("%w: %d exceeds %d", ErrInvalidInterval, p.Seconds, MaxIntervalSeconds)
	}
	return nil
}

// At fires exactly once, at or after Time.
type At struct {
	Time time.Time
}

// OnceAt returns a one-shot policy for t.
func OnceAt(t time.Time) At {
	return At{Time: t}
}

func (p At) Kind() Kind { return KindAt }

// First returns the target regardless of start.
// A target in the past is therefore due on the first check.
func (p At) First(time.Time) time.Time {
	return p.Time
}

func (p At) Next(time.Time) time.Time {
	return time.Time{}
}

func (p At) String() string {
	return "at " + p.Time.Format(time.DateTime)
}

func (p At) validate() error {
	if p.Time.IsZero() {
		return fmt.Errorf("%w: zero instant", ErrInvalidTime)
	}
	return nil
}

// Recurring fires on a calendar schedule.
// Times of day are read in the policy's location, or in the zone of the
// instant passed to First and Next when no location is set.
type Recurring struct {
	schedule cron.Schedule
	spec     string
	loc      *time.Location
}

// In returns a copy of p whose times of day are read in loc.
func (p Recurring) In(loc *time.Location) Recurring {
	p.loc = loc
	return p
}

// Location returns the zone set with In, or nil.
func (p Recurring) Location() *time.Location { return p.loc }

// Spec returns the cron expression the policy was built from.
func (p Recurring) Spec() string { return p.spec }

func (p Recurring) Kind() Kind { return KindRecurring }

func (p Recurring) First(start time.Time) time.Time {
	return p.next(start)
}

func (p Recurring) Next(last time.Time) time.Time {
	return p.next(last)
}

func (p Recurring) next(t time.Time) time.Time {
	if p.loc != nil {
		t = t.In(p.loc)
	}
	return p.schedule.Next(t)
}

func (p Recurring) String() string {
	if p.loc != nil {
		return "cron " + p.spec + " " + p.loc.String()
	}
	return "cron " + p.spec
}

func (p Recurring) validate() error {
	if p.schedule == nil {
		return fmt.Errorf("%w: empty schedule", ErrInvalidCron)
	}
	return nil
}

// Validate reports whether p satisfies its invariants.
func Validate(p Policy) error {
	if p == nil {
		return ErrNoPolicy
	}
	return p.validate()
}
