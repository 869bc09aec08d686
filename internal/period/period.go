package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidSelection = errors.New("invalid period selection")

// Kind is the length of a report period.
type Kind int

const (
	Week Kind = iota
	Month
	Year
)

func (k Kind) String() string {
	switch k {
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	}

	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week":
		return Week, nil
	case "month", "":
		return Month, nil
	case "year":
		return Year, nil
	}

	return Month, fmt.Errorf("%w: unknown kind %q", ErrInvalidSelection, s)
}

// Selection identifies a report period. Month is zero-based (0 = January).
// WeekOffset counts whole weeks from the current week and is only used by Week.
type Selection struct {
	Kind       Kind `json:"kind"`
	Month      int  `json:"month"`
	Year       int  `json:"year"`
	WeekOffset int  `json:"week_offset"`
}

func (s Selection) Validate() error {
	switch s.Kind {
	case Week, Month, Year:
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidSelection, s.Kind)
	}

	if s.Month < 0 || s.Month > 11 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidSelection, s.Month)
	}

	if s.Year < 1 || s.Year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidSelection, s.Year)
	}

	return nil
}

// Previous returns the selection one period earlier.
func (s Selection) Previous() Selection {
	switch s.Kind {
	case Week:
		s.WeekOffset--
	case Month:
		if s.Month == 0 {
			s.Month = 11
			s.Year--
		} else {
			s.Month--
		}
	case Year:
		s.Year--
	}

	return s
}

// Next returns the selection one period later.
func (s Selection) Next() Selection {
	switch s.Kind {
	case Week:
		s.WeekOffset++
	case Month:
		if s.Month == 11 {
			s.Month = 0
			s.Year++
		} else {
			s.Month++
		}
	case Year:
		s.Year++
	}

	return s
}

// Range is an inclusive [Start, End] interval.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) StartMillis() int64 {
	return r.Start.UnixMilli()
}

func (r Range) EndMillis() int64 {
	return r.End.UnixMilli()
}

// Empty reports whether the range is inverted and therefore matches nothing.
func (r Range) Empty() bool {
	return r.Start.After(r.End)
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Selection returns the current period of the given kind.
func (c *Calendar) Selection(kind Kind) Selection {
	now := c.Current()

	return Selection{
		Kind:  kind,
		Month: int(now.Month()) - 1,
		Year:  now.Year(),
	}
}

// Resolve converts a selection into its local-time range. Weeks are anchored
// to the current week, so the same Week selection resolves differently over time.
func (c *Calendar) Resolve(s Selection) (Range, error) {
	if err := s.Validate(); err != nil {
		return Range{}, err
	}

	loc := c.location()

	switch s.Kind {
	case Week:
		start := c.StartOfWeek(c.Current())
		start = time.Date(start.Year(), start.Month(), start.Day()+7*s.WeekOffset, 0, 0, 0, 0, loc)
		end := c.EndOfDay(time.Date(start.Year(), start.Month(), start.Day()+6, 12, 0, 0, 0, loc))

		return Range{Start: start, End: end}, nil
	case Month:
		start := time.Date(s.Year, time.Month(s.Month+1), 1, 0, 0, 0, 0, loc)
		return Range{Start: start, End: c.EndOfMonth(start)}, nil
	default:
		start := time.Date(s.Year, time.January, 1, 0, 0, 0, 0, loc)
		end := c.EndOfDay(time.Date(s.Year, time.December, 31, 12, 0, 0, 0, loc))

		return Range{Start: start, End: end}, nil
	}
}

// PreviousRange resolves the period immediately before s.
func (c *Calendar) PreviousRange(s Selection) (Range, error) {
	return c.Resolve(s.Previous())
}
