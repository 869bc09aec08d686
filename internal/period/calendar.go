// Package period resolves report periods into concrete local-time ranges.
package period

import (
	"fmt"
	"strings"
	"time"
)

// Calendar normalizes instants to local day, week, month and year boundaries.
// The zero value uses time.Local, weeks starting on Sunday and the wall clock.
type Calendar struct {
	Location       *time.Location
	FirstDayOfWeek time.Weekday
	Now            func() time.Time
}

func NewCalendar(loc *time.Location, firstDayOfWeek time.Weekday) *Calendar {
	return &Calendar{
		Location:       loc,
		FirstDayOfWeek: firstDayOfWeek,
		Now:            time.Now,
	}
}

func (c *Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}

	return c.Location
}

// Current returns the calendar's notion of now in its location.
func (c *Calendar) Current() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	return now().In(c.location())
}

func (c *Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.location())
}

// EndOfDay returns the last millisecond of t's local day.
func (c *Calendar) EndOfDay(t time.Time) time.Time {
	t = t.In(c.location())
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), c.location())
}

func (c *Calendar) StartOfWeek(t time.Time) time.Time {
	t = t.In(c.location())
	diff := (int(t.Weekday()) - int(c.FirstDayOfWeek) + 7) % 7

	return time.Date(t.Year(), t.Month(), t.Day()-diff, 0, 0, 0, 0, c.location())
}

func (c *Calendar) StartOfMonth(t time.Time) time.Time {
	t = t.In(c.location())
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.location())
}

// EndOfMonth returns the last millisecond of t's month. Day 0 of the next
// month normalizes to the actual last day, leap years included.
func (c *Calendar) EndOfMonth(t time.Time) time.Time {
	t = t.In(c.location())
	return c.EndOfDay(time.Date(t.Year(), t.Month()+1, 0, 12, 0, 0, 0, c.location()))
}

func (c *Calendar) StartOfYear(t time.Time) time.Time {
	t = t.In(c.location())
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, c.location())
}

// DaysAgo returns local midnight n whole days before today.
func (c *Calendar) DaysAgo(n int) time.Time {
	now := c.Current()
	return time.Date(now.Year(), now.Month(), now.Day()-n, 0, 0, 0, 0, c.location())
}

// AddDays moves t by n calendar days and returns the start of that day.
func (c *Calendar) AddDays(t time.Time, n int) time.Time {
	t = t.In(c.location())
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, c.location())
}

// Day returns the range covering t's local day.
func (c *Calendar) Day(t time.Time) Range {
	return Range{Start: c.StartOfDay(t), End: c.EndOfDay(t)}
}

func (c *Calendar) Today() Range {
	return c.Day(c.Current())
}

// ThisWeek runs from the start of the current week to the end of today.
func (c *Calendar) ThisWeek() Range {
	now := c.Current()
	return Range{Start: c.StartOfWeek(now), End: c.EndOfDay(now)}
}

// ThisMonth runs from the first of the current month to the end of today.
func (c *Calendar) ThisMonth() Range {
	now := c.Current()
	return Range{Start: c.StartOfMonth(now), End: c.EndOfDay(now)}
}

func (c *Calendar) SameDay(a, b time.Time) bool {
	return c.StartOfDay(a).Equal(c.StartOfDay(b))
}

// ParseWeekday accepts English weekday names, case-insensitively, full or
// abbreviated to three letters.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}

	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}
