package period

import "time"

// DayCursor walks single days backwards and forwards, never past today.
type DayCursor struct {
	cal *Calendar
	day time.Time
}

// Cursor returns a cursor positioned on t's day.
func (c *Calendar) Cursor(t time.Time) *DayCursor {
	return &DayCursor{cal: c, day: c.StartOfDay(t)}
}

// Day returns local midnight of the selected day.
func (d *DayCursor) Day() time.Time {
	return d.day
}

func (d *DayCursor) Range() Range {
	return d.cal.Day(d.day)
}

func (d *DayCursor) Previous() {
	d.day = d.cal.AddDays(d.day, -1)
}

// CanAdvance reports whether the next day has already started.
func (d *DayCursor) CanAdvance() bool {
	return !d.cal.AddDays(d.day, 1).After(d.cal.Current())
}

// Next moves to the following day unless it would start in the future.
func (d *DayCursor) Next() bool {
	if !d.CanAdvance() {
		return false
	}

	d.day = d.cal.AddDays(d.day, 1)

	return true
}

func (d *DayCursor) IsToday() bool {
	return d.cal.SameDay(d.day, d.cal.Current())
}
