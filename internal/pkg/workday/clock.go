// Package workday resolves "now" and "today" in the business timezone.
package workday

import (
	"time"
)

const DateLayout = "2006-01-02"

// Clock reports instants in UTC and calendar days in the configured location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: time.Now}
}

// WithNow returns a copy of the clock that reads time from fn.
func (c *Clock) WithNow(fn func() time.Time) *Clock {
	return &Clock{loc: c.loc, now: fn}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current instant normalized to UTC.
func (c *Clock) Now() time.Time {
	return c.now().UTC()
}

// Today returns the current calendar date in the business timezone.
func (c *Clock) Today() time.Time {
	return c.DateOf(c.now())
}

// DateOf returns the calendar date of t as seen in the business timezone,
// encoded as midnight UTC so it compares equal to DATE columns read by pgx.
func (c *Clock) DateOf(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into the same date encoding as DateOf.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
