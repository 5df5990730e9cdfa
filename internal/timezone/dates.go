package timezone

import (
	"time"

	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
)

const (
	DayLayout   = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDay validates a YYYY-MM-DD string.
func ParseDay(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DayLayout, s, Location(""))
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return d, nil
}

// ParseClock validates an HH:MM string. Empty is allowed.
func ParseClock(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(ClockLayout, s); err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	return nil
}

// Day formats t as a calendar day in the business time zone.
func Day(t time.Time) string {
	return t.In(Location("")).Format(DayLayout)
}

// Range is an inclusive range of calendar days.
type Range struct {
	Start string
	End   string
}

func ParseRange(start, end string) (Range, error) {
	s, err := ParseDay(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseDay(end)
	if err != nil {
		return Range{}, err
	}
	if e.Before(s) {
		return Range{}, httperr.ErrBusiness("invalid_date_range")
	}
	return Range{Start: start, End: end}, nil
}

// Days returns the number of calendar days covered, both ends included.
func (r Range) Days() int {
	s, err1 := time.Parse(DayLayout, r.Start)
	e, err2 := time.Parse(DayLayout, r.End)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// At combines a calendar day and an optional clock into an instant in the
// business time zone. An empty clock falls back to def.
func At(day, clock, def string) (time.Time, error) {
	if clock == "" {
		clock = def
	}
	t, err := time.ParseInLocation(DayLayout+" "+ClockLayout, day+" "+clock, Location(""))
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return t, nil
}
